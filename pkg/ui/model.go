package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/biasaware/biasview/pkg/browser"
	"github.com/biasaware/biasview/pkg/loader"
	"github.com/biasaware/biasview/pkg/model"
	"github.com/biasaware/biasview/pkg/selection"
	"github.com/biasaware/biasview/pkg/session"
)

// AppTitle is shown in the header of every screen
const AppTitle = "Bias Aware News"

// DatasetLoader loads a dataset from a source
type DatasetLoader interface {
	Load(ctx context.Context, src loader.Source) (*loader.Dataset, error)
}

// DatasetChangedMsg asks the model to reload its source. The file watcher
// delivers it through tea.Program.Send.
type DatasetChangedMsg struct{}

type datasetLoadedMsg struct {
	seq int
	ds  *loader.Dataset
	err error
}

// Option configures a Model
type Option func(*Model)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithTheme replaces the default theme
func WithTheme(t Theme) Option {
	return func(m *Model) {
		m.theme = t
	}
}

// WithOpenURL replaces the browser launcher
func WithOpenURL(open func(string) error) Option {
	return func(m *Model) {
		m.openURL = open
	}
}

// WithCopy replaces the clipboard writer
func WithCopy(copyText func(string) error) Option {
	return func(m *Model) {
		m.copyText = copyText
	}
}

// WithContext sets the context passed to every load
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		m.ctx = ctx
	}
}

// Model is the bubbletea model for the viewer. All state lives in the
// session; the model only renders it and turns keys into transitions.
type Model struct {
	session *session.Session
	loader  DatasetLoader
	source  loader.Source
	ctx     context.Context
	loadSeq int

	list     list.Model
	spinner  spinner.Model
	viewport viewport.Model
	help     HelpOverlayModel
	theme    Theme

	// roundup renderer, rebuilt only when the width changes
	markdown      *glamour.TermRenderer
	markdownWidth int

	width  int
	height int
	status string

	openURL  func(string) error
	copyText func(string) error
	logger   *zap.Logger
}

// NewModel creates a model that loads src with l. The first load starts
// from Init.
func NewModel(l DatasetLoader, src loader.Source, opts ...Option) Model {
	m := Model{
		session:  session.New(),
		loader:   l,
		source:   src,
		ctx:      context.Background(),
		theme:    DefaultTheme(nil),
		width:    80,
		height:   24,
		openURL:  browser.Open,
		copyText: clipboard.WriteAll,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Dot
	m.spinner.Style = m.theme.Renderer.NewStyle().Foreground(m.theme.Primary)

	m.list = list.New(nil, IssueDelegate{Theme: m.theme}, m.width, m.bodyHeight())
	m.list.Title = "Select an Issue"
	m.list.SetFilteringEnabled(false)
	m.list.SetShowHelp(false)
	m.list.Styles.Title = m.theme.Renderer.NewStyle().Bold(true).Foreground(m.theme.Primary)

	m.viewport = viewport.New(m.width, m.bodyHeight())
	m.help = NewHelpOverlayModel(m.theme)

	m.session.BeginLoad()
	m.loadSeq = 1
	return m
}

// Session exposes the underlying session
func (m Model) Session() *session.Session {
	return m.session
}

// Init starts the first load
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd(m.loadSeq))
}

func (m Model) loadCmd(seq int) tea.Cmd {
	l, src, ctx := m.loader, m.source, m.ctx
	return func() tea.Msg {
		ds, err := l.Load(ctx, src)
		return datasetLoadedMsg{seq: seq, ds: ds, err: err}
	}
}

// reload starts a new load; results of earlier loads are dropped
func (m *Model) reload() tea.Cmd {
	m.session.BeginLoad()
	m.loadSeq++
	m.status = ""
	m.syncList()
	return tea.Batch(m.spinner.Tick, m.loadCmd(m.loadSeq))
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.SetSize(msg.Width, msg.Height)
		m.list.SetSize(m.width, m.bodyHeight())
		m.viewport.Width = m.width
		m.viewport.Height = m.bodyHeight()
		m.syncContent()
		return m, nil

	case spinner.TickMsg:
		if m.session.Status() != session.StatusLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case datasetLoadedMsg:
		if msg.seq != m.loadSeq {
			return m, nil
		}
		m.session.Finish(msg.ds, msg.err)
		if msg.err != nil {
			m.logger.Error("Error loading issues data", zap.Stringer("source", m.source), zap.Error(msg.err))
		} else if msg.ds != nil {
			m.logger.Info("dataset ready",
				zap.Stringer("source", m.source),
				zap.Int("issues", len(msg.ds.Issues)),
				zap.Int("warnings", len(msg.ds.Warnings)))
		}
		m.syncList()
		m.syncContent()
		return m, nil

	case DatasetChangedMsg:
		m.logger.Info("dataset changed on disk, reloading", zap.Stringer("source", m.source))
		return m, m.reload()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.session.Status() == session.StatusLoaded && m.session.Selection() != selection.NoIssueSelected {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}
	if m.help.IsVisible() {
		m.help, _ = m.help.Update(msg)
		return m, nil
	}
	if key == "?" {
		m.help.Toggle()
		return m, nil
	}

	switch m.session.Status() {
	case session.StatusLoading:
		if key == "q" {
			return m, tea.Quit
		}
		return m, nil

	case session.StatusFailed:
		switch key {
		case "s":
			if err := m.session.UseSample(); err != nil {
				m.status = err.Error()
				return m, nil
			}
			m.logger.Info("using sample data", zap.Int("issues", len(m.session.Issues())))
			m.status = "Using sample data"
			m.syncList()
		case "r":
			return m, m.reload()
		case "q":
			return m, tea.Quit
		}
		return m, nil
	}

	m.status = ""
	switch m.session.Selection() {
	case selection.NoIssueSelected:
		switch key {
		case "q":
			return m, tea.Quit
		case "R":
			return m, m.reload()
		case "enter":
			if item, ok := m.list.SelectedItem().(IssueItem); ok {
				m.session.SelectIssue(item.Issue.ID)
				m.syncContent()
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd

	case selection.IssueSelected:
		switch key {
		case "q":
			return m, tea.Quit
		case "esc", "backspace":
			m.session.ClearSelection()
			m.syncContent()
			return m, nil
		case "1", "2", "3":
			m.selectPerspective(key)
			return m, nil
		}

	case selection.ArticleSelected:
		switch key {
		case "q":
			return m, tea.Quit
		case "esc", "backspace":
			m.session.Back()
			m.syncContent()
			return m, nil
		case "1", "2", "3":
			m.selectPerspective(key)
			return m, nil
		case "o":
			m.openArticle()
			return m, nil
		case "y":
			m.copyArticleLink()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) selectPerspective(key string) {
	p := model.Perspectives()[key[0]-'1']
	err := m.session.SelectPerspective(p)
	switch {
	case err == nil:
		m.syncContent()
	case errors.Is(err, selection.ErrPerspectiveUnavailable):
		m.status = fmt.Sprintf("No %s article for this issue", p)
	default:
		m.status = err.Error()
	}
}

func (m *Model) openArticle() {
	a, _, ok := m.session.SelectedArticle()
	if !ok || a.Link == "" {
		m.status = "This article has no link"
		return
	}
	if err := m.openURL(a.Link); err != nil {
		m.logger.Warn("open article link", zap.String("link", a.Link), zap.Error(err))
		m.status = "Could not open link: " + err.Error()
		return
	}
	m.status = "Opened " + a.Link
}

func (m *Model) copyArticleLink() {
	a, _, ok := m.session.SelectedArticle()
	if !ok || a.Link == "" {
		m.status = "This article has no link"
		return
	}
	if err := m.copyText(a.Link); err != nil {
		m.logger.Warn("copy article link", zap.Error(err))
		m.status = "Could not copy link: " + err.Error()
		return
	}
	m.status = "Copied link to clipboard"
}

// syncList rebuilds the list items from the session
func (m *Model) syncList() {
	issues := m.session.Issues()
	items := make([]list.Item, len(issues))
	for i, issue := range issues {
		items[i] = IssueItem{Issue: issue}
	}
	m.list.SetItems(items)
	m.list.ResetSelected()
}

// syncContent renders the selected issue or article into the viewport
func (m *Model) syncContent() {
	switch m.session.Selection() {
	case selection.IssueSelected:
		issue, ok := m.session.SelectedIssue()
		if !ok {
			m.viewport.SetContent(m.theme.Renderer.NewStyle().Foreground(m.theme.Subtext).Render("Issue not found"))
			break
		}
		m.viewport.SetContent(renderIssue(*issue, m.width, m.theme, m.markdownRenderer()))
	case selection.ArticleSelected:
		a, p, _ := m.session.SelectedArticle()
		m.viewport.SetContent(RenderArticle(a, p, m.width, m.theme))
	default:
		m.viewport.SetContent("")
	}
	m.viewport.GotoTop()
}

func (m *Model) markdownRenderer() *glamour.TermRenderer {
	if m.markdown != nil && m.markdownWidth == m.width {
		return m.markdown
	}
	md, err := NewMarkdownRenderer(m.width, m.theme)
	if err != nil {
		m.logger.Warn("build markdown renderer", zap.Error(err))
		return nil
	}
	m.markdown, m.markdownWidth = md, m.width
	return md
}

// header and footer take a line each
func (m Model) bodyHeight() int {
	h := m.height - 2
	if h < 1 {
		h = 1
	}
	return h
}

// View implements tea.Model
func (m Model) View() string {
	if m.help.IsVisible() {
		return m.help.View()
	}

	var body string
	switch m.session.Status() {
	case session.StatusLoading:
		body = m.loadingView()
	case session.StatusFailed:
		body = m.errorView()
	default:
		if m.session.Selection() == selection.NoIssueSelected {
			body = m.list.View()
		} else {
			body = m.viewport.View()
		}
	}

	body = m.theme.Renderer.NewStyle().Height(m.bodyHeight()).MaxHeight(m.bodyHeight()).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, m.headerView(), body, m.footerView())
}

func (m Model) headerView() string {
	title := m.theme.Renderer.NewStyle().Bold(true).Foreground(m.theme.Primary).Render(AppTitle)

	var info []string
	if m.session.Status() == session.StatusLoaded {
		if m.session.UsingSample() {
			info = append(info, loader.SampleSource)
		} else if m.source != nil {
			info = append(info, m.source.String())
		}
		info = append(info, fmt.Sprintf("%d issues", len(m.session.Issues())))
		if n := len(m.session.Warnings()); n > 0 {
			info = append(info, fmt.Sprintf("%d warnings", n))
		}
	}
	if len(info) == 0 {
		return title
	}
	return title + "  " + m.theme.Renderer.NewStyle().Foreground(m.theme.Subtext).Render(strings.Join(info, " • "))
}

func (m Model) loadingView() string {
	return "\n  " + m.spinner.View() + " Loading issues data..."
}

func (m Model) errorView() string {
	bannerWidth := m.width - 4
	if bannerWidth < 20 {
		bannerWidth = 20
	}
	danger := m.theme.Renderer.NewStyle().Foreground(m.theme.Danger)
	key := m.theme.Renderer.NewStyle().Foreground(m.theme.Primary).Bold(true)

	lines := []string{
		danger.Bold(true).Render("Error loading data: ") + danger.Render(m.session.Reason()),
		"",
		"Try using sample data instead:",
		key.Render("[s]") + " Use sample data   " + key.Render("[r]") + " Retry   " + key.Render("[q]") + " Quit",
	}
	return m.theme.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Danger).
		Width(bannerWidth).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

func (m Model) footerView() string {
	style := m.theme.Renderer.NewStyle().Foreground(m.theme.Secondary)
	if m.status != "" {
		return style.Foreground(m.theme.Subtext).Render(m.status)
	}

	var hints string
	switch m.session.Status() {
	case session.StatusLoading:
		hints = "q quit"
	case session.StatusFailed:
		hints = "s use sample data • r retry • q quit"
	default:
		switch m.session.Selection() {
		case selection.NoIssueSelected:
			hints = "enter open • R reload • ? help • q quit"
		case selection.IssueSelected:
			hints = "1 left • 2 center • 3 right • esc back • ? help"
		case selection.ArticleSelected:
			hints = "o open link • y copy link • 1/2/3 switch • esc back • ? help"
		}
	}
	return style.Render(hints)
}
