// Package reference parses and validates Docker Hub image references of the
// form repository[:tag].
package reference

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// DefaultTag is used when the reference carries no tag.
	DefaultTag = "latest"

	officialPrefix = "library/"
	scratch        = "scratch"
)

var namePattern = regexp.MustCompile(
	`(?i)^[a-z0-9]+(?:[._-][a-z0-9]+)*(?:/[a-z0-9]+(?:[._-][a-z0-9]+)*)*(?::[a-z0-9]+(?:[._-][a-z0-9]+)*)?$`)

// Reference is a validated image reference.
type Reference struct {
	Repository string
	Tag        string
	Original   string
}

// String returns the reference as repository:tag.
func (r Reference) String() string {
	return r.Repository + ":" + r.Tag
}

// InvalidReferenceError reports user input that is not a valid image reference.
type InvalidReferenceError struct {
	Input  string
	Reason string
}

func (e *InvalidReferenceError) Error() string {
	return e.Reason
}

// Parse validates raw and splits it into repository and tag.
func Parse(raw string) (Reference, error) {
	if raw == "" {
		return Reference{}, &InvalidReferenceError{
			Input:  raw,
			Reason: "image name must be a non-empty string",
		}
	}

	normalized := strings.TrimPrefix(raw, officialPrefix)
	if !namePattern.MatchString(normalized) {
		return Reference{}, &InvalidReferenceError{
			Input:  raw,
			Reason: fmt.Sprintf("invalid Docker image name format: %s", raw),
		}
	}

	parts := strings.Split(raw, ":")
	if len(parts) > 2 {
		return Reference{}, &InvalidReferenceError{
			Input:  raw,
			Reason: "invalid Docker image format, use repository[:tag]",
		}
	}

	ref := Reference{
		Repository: parts[0],
		Tag:        DefaultTag,
		Original:   raw,
	}
	if len(parts) == 2 && parts[1] != "" {
		ref.Tag = parts[1]
	}

	return ref, nil
}

// SanitizeRepositoryName qualifies official images with the library/ namespace.
func SanitizeRepositoryName(repo string) string {
	if !strings.Contains(repo, "/") && repo != scratch {
		return officialPrefix + repo
	}

	return repo
}
