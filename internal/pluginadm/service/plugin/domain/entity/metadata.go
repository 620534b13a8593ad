package entity

// PackageMetadata is what the package registry knows about a plugin's package.
// It shares nothing with Plugin but the name.
type PackageMetadata struct {
	Name          string `json:"name"`
	RepositoryURL string `json:"repositoryUrl,omitempty"`
	Readme        string `json:"readme,omitempty"`
	// Version is the "latest" dist-tag, if the registry reports one.
	Version string `json:"version,omitempty"`
}

// HasReadme reports whether a non-blank readme is available.
func (m *PackageMetadata) HasReadme() bool {
	return m != nil && m.Readme != "" && m.Readme != "ERROR: No README data found!"
}
