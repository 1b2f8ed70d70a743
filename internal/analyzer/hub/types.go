package hub

// RepositoryInfo is the Docker Hub repository metadata, passed through as
// returned by the API. Optional fields are empty when absent.
type RepositoryInfo struct {
	User           string `json:"user,omitempty" yaml:"user,omitempty"`
	Name           string `json:"name" yaml:"name"`
	Namespace      string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	RepositoryType string `json:"repository_type,omitempty" yaml:"repository_type,omitempty"`
	Status         int    `json:"status,omitempty" yaml:"status,omitempty"`
	Description    string `json:"description,omitempty" yaml:"description,omitempty"`
	IsPrivate      bool   `json:"is_private" yaml:"is_private"`
	StarCount      int64  `json:"star_count" yaml:"star_count"`
	PullCount      int64  `json:"pull_count" yaml:"pull_count"`
	LastUpdated    string `json:"last_updated,omitempty" yaml:"last_updated,omitempty"`
	DateRegistered string `json:"date_registered,omitempty" yaml:"date_registered,omitempty"`
}
