package view

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mitchellh/go-wordwrap"

	"github.com/kiosk404/pluginadm/internal/pluginadm/cmd/util"
	"github.com/kiosk404/pluginadm/internal/pluginadm/page"
	"github.com/kiosk404/pluginadm/pkg/logger"
)

// Widths from which the readme and the options sit side by side.
const wideLayout = 100

type focus int

const (
	focusReadme focus = iota
	focusEditor
)

// pageMsg carries the completion of a page.Cmd through the program loop.
type pageMsg struct {
	msg page.Msg
}

// confirmRequest is a question of the page's Confirmer waiting for y or n.
type confirmRequest struct {
	prompt string
	answer chan bool
}

type confirmRequestMsg confirmRequest

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	linkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Underline(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	buttonStyle         = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62"))
	dangerButtonStyle   = buttonStyle.Background(lipgloss.Color("160"))
	disabledButtonStyle = buttonStyle.Foreground(lipgloss.Color("245")).Background(lipgloss.Color("237"))

	panelStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	focusedPanelStyle = panelStyle.BorderForeground(lipgloss.Color("62"))
	modalStyle        = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("160")).Padding(1, 3)
)

// model is the terminal front end of a page.Page.
type model struct {
	ctx  context.Context
	page *page.Page

	// requests is written by the Confirmer, which runs inside a page command.
	requests chan confirmRequest
	pending  *confirmRequest

	// navigated is the last path the page asked for.
	navigated string

	focus   focus
	spinner spinner.Model
	editor  textarea.Model
	readme  viewport.Model

	width, height int
	readmeWidth   int
	readmeSource  string
}

func newModel(ctx context.Context, f util.Factory, name string) (*model, error) {
	m := &model{
		ctx:      ctx,
		requests: make(chan confirmRequest),
	}
	deps, err := f.PageDeps(m.confirm, m.navigate)
	if err != nil {
		return nil, err
	}
	m.page = page.New(name, deps)

	m.spinner = spinner.New(spinner.WithSpinner(spinner.Dot))
	m.editor = textarea.New()
	m.editor.ShowLineNumbers = false
	m.editor.CharLimit = 0
	m.editor.MaxHeight = 0
	m.readme = viewport.New(0, 0)
	m.resize(80, 24)
	return m, nil
}

// confirm implements page.Confirmer by handing the question to the program
// loop and waiting for the key press that answers it.
func (m *model) confirm(ctx context.Context, prompt string) bool {
	req := confirmRequest{prompt: prompt, answer: make(chan bool, 1)}
	select {
	case m.requests <- req:
	case <-ctx.Done():
		return false
	}
	select {
	case ok := <-req.answer:
		return ok
	case <-ctx.Done():
		return false
	}
}

func (m *model) navigate(path string) {
	m.navigated = path
}

func (m *model) waitForConfirm() tea.Msg {
	select {
	case req := <-m.requests:
		return confirmRequestMsg(req)
	case <-m.ctx.Done():
		return nil
	}
}

// wrap turns page commands into program commands.
func (m *model) wrap(cmds []page.Cmd) tea.Cmd {
	out := make([]tea.Cmd, 0, len(cmds))
	for _, c := range cmds {
		if c == nil {
			continue
		}
		c := c
		out = append(out, func() tea.Msg {
			return pageMsg{msg: c(m.ctx)}
		})
	}
	return tea.Batch(out...)
}

// afterPage brings the widgets in line with the page once its state changed,
// and ends the program when the page left for the root.
func (m *model) afterPage(cmds []page.Cmd) tea.Cmd {
	if m.navigated == page.RootPath {
		return tea.Quit
	}
	m.syncEditor()
	m.syncReadme()
	return m.wrap(cmds)
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(m.wrap(m.page.Init()), m.waitForConfirm, m.spinner.Tick)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case pageMsg:
		return m, m.afterPage(m.page.Update(msg.msg))

	case confirmRequestMsg:
		req := confirmRequest(msg)
		m.pending = &req
		m.editor.Blur()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	if m.focus == focusEditor {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if key == "ctrl+c" {
		return tea.Quit
	}

	if m.pending != nil {
		switch key {
		case "y", "Y":
			return m.answer(true)
		case "n", "N", "esc", "q":
			return m.answer(false)
		}
		return nil
	}

	switch key {
	case "tab", "shift+tab":
		if m.focus == focusEditor {
			return m.setFocus(focusReadme)
		}
		return m.setFocus(focusEditor)
	case "ctrl+s":
		return m.afterPage(m.page.Submit())
	}

	if m.focus == focusEditor {
		return m.editDraft(msg)
	}

	switch key {
	case "q", "esc":
		return tea.Quit
	case "i":
		return m.afterPage(m.page.Install())
	case "u":
		return m.afterPage(m.page.Uninstall())
	case "r":
		return m.afterPage(m.page.Refresh())
	case "e", "enter":
		return m.setFocus(focusEditor)
	}

	var cmd tea.Cmd
	m.readme, cmd = m.readme.Update(msg)
	return cmd
}

func (m *model) editDraft(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "esc" {
		return m.setFocus(focusReadme)
	}
	if _, ok := m.page.Draft(); !ok {
		return nil
	}

	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if after := m.editor.Value(); after != before {
		m.page.EditDraft(after)
	}
	return cmd
}

// answer resolves the pending question and listens for the next one.
func (m *model) answer(ok bool) tea.Cmd {
	if m.pending == nil {
		return nil
	}
	logger.DebugX("view", "confirmation answered: %v", ok)
	m.pending.answer <- ok
	m.pending = nil
	return m.waitForConfirm
}

func (m *model) setFocus(f focus) tea.Cmd {
	m.focus = f
	if f == focusEditor {
		return m.editor.Focus()
	}
	m.editor.Blur()
	return nil
}

// syncEditor copies the draft into the editor when the page replaced it.
func (m *model) syncEditor() {
	draft, ok := m.page.Draft()
	if ok && draft != m.editor.Value() {
		m.editor.SetValue(draft)
	}
}

func (m *model) syncReadme() {
	v := m.page.View()
	if v.ReadmeLoading || (v.Readme == m.readmeSource && m.readme.Width == m.readmeWidth) {
		return
	}
	m.readmeSource, m.readmeWidth = v.Readme, m.readme.Width

	if !v.HasReadme {
		m.readme.SetContent(dimStyle.Render(v.Readme))
	} else {
		m.readme.SetContent(util.RenderMarkdown(v.Readme, m.readme.Width))
	}
	m.readme.GotoTop()
}

func (m *model) resize(width, height int) {
	m.width, m.height = width, height
	body := max(height-6, 8)

	if width >= wideLayout {
		readmeWidth := width * 3 / 5
		m.readme.Width, m.readme.Height = readmeWidth-4, body-2
		m.editor.SetWidth(width - readmeWidth - 4)
		m.editor.SetHeight(max(body-10, 3))
	} else {
		m.readme.Width, m.readme.Height = max(width-4, 10), max(body/2-2, 3)
		m.editor.SetWidth(max(width-4, 10))
		m.editor.SetHeight(max(body/2-8, 3))
	}
	m.syncReadme()
}

func (m *model) View() string {
	if m.pending != nil {
		return m.renderModal()
	}

	v := m.page.View()
	if v.Error != "" {
		return lipgloss.JoinVertical(lipgloss.Left,
			errorStyle.Render("Error: "+v.Error),
			dimStyle.Render("q quit"),
		)
	}

	readme, options := m.renderReadme(v), m.renderOptions(v)
	var body string
	if m.width >= wideLayout {
		body = lipgloss.JoinHorizontal(lipgloss.Top, readme, options)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, readme, options)
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(v), body, m.renderHelp(v))
}

func (m *model) renderHeader(v page.View) string {
	title := lipgloss.JoinHorizontal(lipgloss.Center, headingStyle.Render(v.Name), "  ", m.renderControl(v))
	lines := []string{title}
	if v.Description != "" {
		lines = append(lines, dimStyle.Render(v.Description))
	}
	lines = append(lines, "View on GitHub: "+linkStyle.Render(v.RepositoryURL))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *model) renderControl(v page.View) string {
	switch v.Control {
	case page.ControlInstall:
		if v.Installing {
			return m.spinner.View() + " Installing…"
		}
		return buttonStyle.Render("Install")
	case page.ControlUninstall:
		if v.Uninstalling {
			return m.spinner.View() + " Uninstalling…"
		}
		return dangerButtonStyle.Render("Uninstall")
	default:
		return m.spinner.View()
	}
}

func (m *model) renderReadme(v page.View) string {
	style := panelStyle
	if m.focus == focusReadme {
		style = focusedPanelStyle
	}
	content := m.readme.View()
	if v.ReadmeLoading {
		content = m.spinner.View() + " Loading readme…"
	}
	return style.Width(m.readme.Width + 2).Render(content)
}

func (m *model) renderOptions(v page.View) string {
	style := panelStyle
	if m.focus == focusEditor {
		style = focusedPanelStyle
	}
	width := m.editor.Width()

	lines := []string{
		headingStyle.Render("Configuration options"),
		dimStyle.Render(wordwrap.WrapString(page.OptionsHelp, uint(max(width, 20)))),
		"",
	}
	if v.DraftLoading {
		lines = append(lines, m.spinner.View())
	} else {
		lines = append(lines, m.editor.View())
	}
	if v.ValidationError != "" {
		lines = append(lines, errorStyle.Render(wordwrap.WrapString("Invalid JSON: "+v.ValidationError, uint(max(width, 20)))))
	}

	save := buttonStyle.Render("Save")
	switch {
	case v.Saving:
		save = m.spinner.View() + " Saving…"
	case !v.SaveEnabled:
		save = disabledButtonStyle.Render("Save")
	}
	lines = append(lines, "", save)
	if v.SaveHint != "" {
		lines = append(lines, dimStyle.Render(v.SaveHint))
	}
	return style.Width(width + 2).Render(strings.Join(lines, "\n"))
}

func (m *model) renderHelp(v page.View) string {
	keys := []string{"tab switch", "ctrl+s save"}
	switch v.Control {
	case page.ControlInstall:
		keys = append(keys, "i install")
	case page.ControlUninstall:
		keys = append(keys, "u uninstall")
	}
	keys = append(keys, "r reload")
	if m.focus == focusEditor {
		keys = append(keys, "esc leave editor", "ctrl+c quit")
	} else {
		keys = append(keys, "q quit")
	}
	return dimStyle.Render(strings.Join(keys, " • "))
}

func (m *model) renderModal() string {
	box := modalStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
		m.pending.prompt,
		"",
		dimStyle.Render("y confirm • n cancel"),
	))
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
