package util

import (
	"context"
	"errors"
	"strings"

	"github.com/kiosk404/pluginadm/internal/pluginadm/page"
	"github.com/kiosk404/pluginadm/internal/pluginadm/pkg/errno"
)

// PluginName extracts the plugin name argument. A leading "/plugins/" is
// accepted so page paths can be pasted as they are.
func PluginName(args []string) (string, error) {
	if len(args) == 0 {
		return "", errno.ErrEmptyName
	}
	if len(args) > 1 {
		return "", errors.New("exactly one plugin name is expected")
	}
	name := strings.TrimPrefix(strings.TrimSpace(args[0]), "/plugins/")
	name = strings.Trim(name, "/")
	if name == "" {
		return "", errno.ErrEmptyName
	}
	return name, nil
}

// LoadPage creates a page for name and waits for its initial queries.
func LoadPage(ctx context.Context, f Factory, name string, confirm page.Confirmer, navigate page.Navigator) (*page.Page, error) {
	deps, err := f.PageDeps(confirm, navigate)
	if err != nil {
		return nil, err
	}
	p := page.New(name, deps)
	if err := page.Run(ctx, p, p.Init()...); err != nil {
		return nil, err
	}
	if v := p.View(); v.Error != "" {
		return nil, errors.New(v.Error)
	}
	return p, nil
}
