package npm

import (
	"strings"
)

var shorthandHosts = map[string]string{
	"github":    "github.com",
	"gitlab":    "gitlab.com",
	"bitbucket": "bitbucket.org",
}

// NormalizeRepositoryURL turns the repository forms found in package.json
// into a browsable https URL:
//
//	git+https://github.com/a/b.git   -> https://github.com/a/b
//	git://github.com/a/b.git         -> https://github.com/a/b
//	git@github.com:a/b.git           -> https://github.com/a/b
//	github:a/b, a/b                  -> https://github.com/a/b
//
// Anything unrecognised is returned trimmed but otherwise untouched.
func NormalizeRepositoryURL(raw string) string {
	u := strings.TrimSpace(raw)
	if u == "" {
		return ""
	}

	if prefix, rest, ok := strings.Cut(u, ":"); ok {
		if host, known := shorthandHosts[prefix]; known && !strings.HasPrefix(rest, "//") {
			return "https://" + host + "/" + strings.TrimSuffix(rest, ".git")
		}
	}
	if !strings.Contains(u, ":") && strings.Count(u, "/") == 1 {
		return "https://github.com/" + strings.TrimSuffix(u, ".git")
	}

	u = strings.TrimPrefix(u, "git+")
	switch {
	case strings.HasPrefix(u, "git://"):
		u = "https://" + strings.TrimPrefix(u, "git://")
	case strings.HasPrefix(u, "ssh://"):
		u = "https://" + strings.TrimPrefix(u, "ssh://")
	case strings.HasPrefix(u, "git@"):
		u = "https://" + strings.Replace(strings.TrimPrefix(u, "git@"), ":", "/", 1)
	case strings.HasPrefix(u, "http://"), strings.HasPrefix(u, "https://"):
	default:
		return u
	}
	u = strings.Replace(u, "://git@", "://", 1)
	u = strings.TrimSuffix(u, "/")
	return strings.TrimSuffix(u, ".git")
}

// FallbackURL is the link used when the registry reports no repository. The
// ghub.io service redirects to the package's repository itself.
func FallbackURL(base, name string) string {
	if base == "" {
		base = "https://ghub.io"
	}
	return strings.TrimRight(base, "/") + "/" + name
}
