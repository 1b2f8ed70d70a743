package registry

import "fmt"

// TagNotFoundError is returned when the registry has no manifest for the tag.
type TagNotFoundError struct {
	Repository string
	Tag        string
}

func (e *TagNotFoundError) Error() string {
	return fmt.Sprintf("tag '%s' not found for repository '%s'", e.Tag, e.Repository)
}

// ManifestFetchError wraps any other failure while fetching a manifest.
type ManifestFetchError struct {
	Repository string
	Tag        string
	Err        error
}

func (e *ManifestFetchError) Error() string {
	return fmt.Sprintf("failed to get manifest for %s:%s: %v", e.Repository, e.Tag, e.Err)
}

func (e *ManifestFetchError) Unwrap() error { return e.Err }

// AuthTokenError is a soft failure: the manifest request may still be
// attempted without a token.
type AuthTokenError struct {
	Repository string
	Err        error
}

func (e *AuthTokenError) Error() string {
	return fmt.Sprintf("failed to get auth token for %s: %v", e.Repository, e.Err)
}

func (e *AuthTokenError) Unwrap() error { return e.Err }
