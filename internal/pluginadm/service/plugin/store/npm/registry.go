package npm

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/kiosk404/pluginadm/internal/pluginadm/pkg/errno"
	"github.com/kiosk404/pluginadm/internal/pluginadm/service/plugin/domain/entity"
	"github.com/kiosk404/pluginadm/internal/pluginadm/service/plugin/domain/repo"
	"github.com/kiosk404/pluginadm/pkg/logger"
)

// DefaultRegistryURL is the public npm registry.
const DefaultRegistryURL = "https://registry.npmjs.org"

// Packuments of popular packages are large; readmes are usually the bulk.
const maxPackumentBytes = 32 << 20

var _ repo.MetadataRepository = (*Registry)(nil)

// Registry reads package metadata from an npm-compatible registry.
type Registry struct {
	baseURL    string
	httpClient *http.Client
}

// NewRegistry creates a registry client. An empty baseURL means DefaultRegistryURL.
func NewRegistry(baseURL string, httpClient *http.Client) *Registry {
	if baseURL == "" {
		baseURL = DefaultRegistryURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Registry{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Lookup fetches the packument of name and extracts the repository URL and readme.
func (r *Registry) Lookup(ctx context.Context, name string) (*entity.PackageMetadata, error) {
	if name == "" {
		return nil, errno.ErrEmptyName
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/"+EscapeName(name), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create registry request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query registry for %s: %w", name, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", name, errno.ErrPackageNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("registry returned %d for %s", resp.StatusCode, name)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPackumentBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read registry response: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("registry returned invalid JSON for %s", name)
	}

	meta := parsePackument(name, body)
	logger.DebugX("npm", "looked up %s (repository=%q, readme=%d bytes)", name, meta.RepositoryURL, len(meta.Readme))
	return meta, nil
}

func parsePackument(name string, body []byte) *entity.PackageMetadata {
	res := gjson.GetManyBytes(body, "repository", "readme", "dist-tags.latest")

	var repository string
	if res[0].IsObject() {
		repository = res[0].Get("url").String()
	} else {
		repository = res[0].String()
	}

	return &entity.PackageMetadata{
		Name:          name,
		RepositoryURL: NormalizeRepositoryURL(repository),
		Readme:        res[1].String(),
		Version:       res[2].String(),
	}
}

// EscapeName encodes a package name for use as a registry path segment.
// Scoped names keep their "@" and have the slash escaped: @scope%2Fname.
func EscapeName(name string) string {
	if strings.HasPrefix(name, "@") {
		if scope, pkg, ok := strings.Cut(name[1:], "/"); ok {
			return "@" + url.PathEscape(scope) + "%2F" + url.PathEscape(pkg)
		}
	}
	return url.PathEscape(name)
}
