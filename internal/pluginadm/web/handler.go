package web

import (
	"context"
	"html/template"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kiosk404/pluginadm/internal/pluginadm/page"
	"github.com/kiosk404/pluginadm/pkg/logger"
)

// Form fields of POST /plugins/*name.
const (
	fieldAction  = "action"
	fieldOptions = "options"
	fieldConfirm = "confirm"

	actionInstall   = "install"
	actionSave      = "save"
	actionUninstall = "uninstall"
)

// DepsProvider builds the collaborators of a page.
type DepsProvider interface {
	PageDeps(confirm page.Confirmer, navigate page.Navigator) (page.Deps, error)
}

// PageHandler renders and drives plugin pages.
type PageHandler struct {
	deps    DepsProvider
	timeout time.Duration
}

// pageData is what page.html is executed with.
type pageData struct {
	View       page.View
	ReadmeHTML template.HTML
	// OptionsHelp is the text above the editor.
	OptionsHelp string
	// Prompt is set while an uninstall waits for confirmation.
	Prompt string
}

// visit is one request's page and where the page asked to go.
type visit struct {
	page     *page.Page
	location string
}

// Index handles GET /. A name query parameter redirects to that plugin's page.
func (h *PageHandler) Index(c *gin.Context) {
	if name := strings.Trim(strings.TrimSpace(c.Query("name")), "/"); name != "" {
		c.Redirect(http.StatusSeeOther, pagePath(name))
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{})
}

// Get handles GET /plugins/*name.
func (h *PageHandler) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	v, ok := h.open(ctx, c, nil)
	if !ok {
		return
	}
	h.render(c, v.page, "")
}

// Post handles POST /plugins/*name: install, save and uninstall.
func (h *PageHandler) Post(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	action := c.PostForm(fieldAction)
	switch action {
	case actionInstall, actionSave, actionUninstall:
	default:
		c.String(http.StatusBadRequest, "unknown action %q", action)
		return
	}

	answer := c.PostForm(fieldConfirm)
	confirm := func(context.Context, string) bool { return answer == "yes" }
	v, ok := h.open(ctx, c, confirm)
	if !ok {
		return
	}
	if v.page.View().Error != "" {
		h.render(c, v.page, "")
		return
	}

	p := v.page
	var cmds []page.Cmd
	switch action {
	case actionInstall:
		cmds = p.Install()
	case actionSave:
		p.EditDraft(c.PostForm(fieldOptions))
		cmds = p.Submit()
	case actionUninstall:
		if answer == "" {
			if p.IsInstalled() {
				h.render(c, p, page.ConfirmPrompt(p.Name()))
				return
			}
			break
		}
		cmds = p.Uninstall()
	}

	if err := page.Run(ctx, p, cmds...); err != nil {
		c.String(http.StatusGatewayTimeout, "%s: %v", action, err)
		return
	}
	if action == actionSave && p.ValidationError() != nil {
		h.render(c, p, "")
		return
	}

	location := pagePath(p.Name())
	if v.location != "" {
		location = v.location
	}
	logger.DebugX("web", "%s %s done, redirecting to %s", action, p.Name(), location)
	c.Redirect(http.StatusSeeOther, location)
}

// open creates the page for the request and waits for its initial queries.
// It writes the response itself when it returns false.
func (h *PageHandler) open(ctx context.Context, c *gin.Context, confirm page.Confirmer) (*visit, bool) {
	name := strings.Trim(c.Param("name"), "/")
	if name == "" {
		c.Redirect(http.StatusSeeOther, "/")
		return nil, false
	}

	v := &visit{}
	deps, err := h.deps.PageDeps(confirm, func(path string) { v.location = path })
	if err != nil {
		logger.ErrorX("web", "failed to build page dependencies: %v", err)
		c.String(http.StatusInternalServerError, "%v", err)
		return nil, false
	}

	v.page = page.New(name, deps)
	if err := page.Run(ctx, v.page, v.page.Init()...); err != nil {
		c.String(http.StatusGatewayTimeout, "loading %s: %v", name, err)
		return nil, false
	}
	return v, true
}

func (h *PageHandler) render(c *gin.Context, p *page.Page, prompt string) {
	data := pageData{View: p.View(), Prompt: prompt, OptionsHelp: page.OptionsHelp}
	status := http.StatusOK
	switch {
	case data.View.Error != "":
		status = http.StatusBadGateway
	case data.View.ValidationError != "":
		status = http.StatusUnprocessableEntity
	}
	if data.View.HasReadme {
		data.ReadmeHTML = renderReadme(data.View.Readme)
	}
	c.HTML(status, "page.html", data)
}

func pagePath(name string) string {
	segments := strings.Split(name, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return "/plugins/" + strings.Join(segments, "/")
}
