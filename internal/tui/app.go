package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tunjipaul/folio/internal/browser"
	"github.com/tunjipaul/folio/pkg/client"
	"github.com/tunjipaul/folio/pkg/session"
)

type view int

const (
	viewLogin view = iota
	viewOverview
	viewHero
	viewAbout
	viewSkills
	viewProjects
	viewMessages
	viewResume
)

// sessionEndedMsg returns the dashboard to login. It is sent by the
// client's logout hook and by the L key.
type sessionEndedMsg struct {
	notice string
}

// sessionChangedMsg carries the session record after the session file
// changed on disk, for example from `folio login` or `folio logout`.
type sessionChangedMsg struct {
	record session.Record
}

// Options configures the dashboard.
type Options struct {
	Version string
	SiteURL string
	Email   string // login prefill when no session identity is stored
}

// App is the root Bubbletea model.
type App struct {
	client     *client.Client
	opts       Options
	view       view
	login      loginModel
	overview   overviewModel
	hero       editorModel
	about      editorModel
	skills     editorModel
	projects   editorModel
	messages   messagesModel
	resume     resumeModel
	helpOpen   bool
	helpCursor int
	width      int
	height     int
	frame      int // logo shimmer animation frame
}

// NewApp creates the dashboard. It starts on the login view unless the
// stored session is authenticated.
func NewApp(c *client.Client, opts Options) App {
	a := App{client: c, opts: opts}
	a.reset()
	a.view = viewLogin
	if c != nil && c.Session().Authenticated() {
		a.view = viewOverview
	}
	return a
}

// reset discards every tab's state, so nothing loaded under one session
// is shown under the next.
func (a *App) reset() {
	c := a.client
	a.login = newLoginModel(c, a.identity(), "")
	a.overview = newOverviewModel(c)
	a.hero = newEditorModel(c, heroResource{})
	a.about = newEditorModel(c, aboutResource{})
	a.skills = newEditorModel(c, skillResource{})
	a.projects = newEditorModel(c, projectResource{})
	a.messages = newMessagesModel(c)
	a.resume = newResumeModel(c)
	a.resize()
}

func (a App) identity() string {
	if a.client == nil {
		return a.opts.Email
	}
	r, err := a.client.Session().Load()
	if err != nil || r.AdminEmail == "" {
		return a.opts.Email
	}
	return r.AdminEmail
}

func (a App) store() *session.Store {
	if a.client == nil {
		return nil
	}
	return a.client.Session()
}

func (a App) now() time.Time {
	if s := a.store(); s != nil {
		return s.Now()
	}
	return time.Now()
}

func (a App) Init() tea.Cmd {
	if a.view == viewLogin {
		return shimmerTickCmd()
	}
	return tea.Batch(shimmerTickCmd(), a.overview.Init(), a.messages.Init())
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case sessionEndedMsg:
		return a.toLogin(msg.notice), nil

	case sessionChangedMsg:
		now := a.now()
		switch {
		case a.view != viewLogin && !msg.record.AuthenticatedAt(now):
			return a.toLogin("signed out"), nil
		case a.view == viewLogin && msg.record.AuthenticatedAt(now) && !a.login.submitting:
			return a.toDashboard()
		}
		return a, nil

	case loginDoneMsg:
		if msg.err == nil {
			return a.toDashboard()
		}
		a.login, _ = a.login.Update(msg)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.view == viewLogin {
			var cmd tea.Cmd
			a.login, cmd = a.login.Update(msg)
			return a, cmd
		}
		if a.helpOpen {
			return a.helpKeys(msg)
		}
		if !a.isEditing() {
			if next, cmd, ok := a.globalKeys(msg); ok {
				return next, cmd
			}
		}
		return a.routeKey(msg)
	}

	// Results go to every tab; each ignores what is not addressed to it.
	var cmds [8]tea.Cmd
	a.overview, cmds[0] = a.overview.Update(msg)
	a.hero, cmds[1] = a.hero.Update(msg)
	a.about, cmds[2] = a.about.Update(msg)
	a.skills, cmds[3] = a.skills.Update(msg)
	a.projects, cmds[4] = a.projects.Update(msg)
	a.messages, cmds[5] = a.messages.Update(msg)
	a.resume, cmds[6] = a.resume.Update(msg)
	a.login, cmds[7] = a.login.Update(msg)
	return a, tea.Batch(cmds[:]...)
}

func (a *App) resize() {
	// Chrome: header(2) + tabs(1) + blank(1) + help(1) = 5 lines
	body := tea.WindowSizeMsg{Width: a.width, Height: a.height - 5}
	a.hero, _ = a.hero.Update(body)
	a.about, _ = a.about.Update(body)
	a.skills, _ = a.skills.Update(body)
	a.projects, _ = a.projects.Update(body)
	a.messages, _ = a.messages.Update(body)
	a.resume, _ = a.resume.Update(body)
}

func (a App) toLogin(notice string) App {
	if notice == "" {
		notice = "session ended, please login again"
	}
	email := a.login.fields[fieldEmail]
	a.reset()
	a.login = newLoginModel(a.client, email, notice)
	a.view = viewLogin
	a.helpOpen = false
	return a
}

func (a App) toDashboard() (tea.Model, tea.Cmd) {
	a.reset()
	a.view = viewOverview
	return a, tea.Batch(a.overview.Init(), a.messages.Init())
}

func (a App) helpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := helpItems(a.opts.SiteURL, a.baseURL())
	switch msg.String() {
	case "h", "esc":
		a.helpOpen = false
	case "q":
		return a, tea.Quit
	case "j", "down":
		if a.helpCursor < len(items)-1 {
			a.helpCursor++
		}
	case "k", "up":
		if a.helpCursor > 0 {
			a.helpCursor--
		}
	case "enter":
		if url := items[a.helpCursor].url; url != "" {
			browser.Open(url) //nolint:errcheck // best-effort browser open
		}
	}
	return a, nil
}

func (a App) baseURL() string {
	if a.client == nil {
		return ""
	}
	return a.client.BaseURL()
}

// globalKeys handles tab switching and app-wide actions. ok is false when
// the key belongs to the active tab.
func (a App) globalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "h":
		a.helpOpen = true
		a.helpCursor = 0
		return a, nil, true
	case "q":
		return a, tea.Quit, true
	case "L":
		c := a.client
		return a, func() tea.Msg {
			if c != nil {
				c.Logout()
			}
			return sessionEndedMsg{notice: "logged out"}
		}, true
	case "1", "2", "3", "4", "5", "6", "7":
		next := viewOverview + view(msg.String()[0]-'1')
		if next == a.view {
			return a, nil, true
		}
		a.view = next
		return a, a.initView(), true
	}
	return a, nil, false
}

// initView reloads the active tab, as the tab is entered.
func (a App) initView() tea.Cmd {
	switch a.view {
	case viewOverview:
		return a.overview.Init()
	case viewHero:
		return a.hero.Init()
	case viewAbout:
		return a.about.Init()
	case viewSkills:
		return a.skills.Init()
	case viewProjects:
		return a.projects.Init()
	case viewMessages:
		return a.messages.Init()
	case viewResume:
		return a.resume.Init()
	}
	return nil
}

func (a App) routeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.view {
	case viewHero:
		a.hero, cmd = a.hero.Update(msg)
	case viewAbout:
		a.about, cmd = a.about.Update(msg)
	case viewSkills:
		a.skills, cmd = a.skills.Update(msg)
	case viewProjects:
		a.projects, cmd = a.projects.Update(msg)
	case viewMessages:
		a.messages, cmd = a.messages.Update(msg)
	case viewResume:
		a.resume, cmd = a.resume.Update(msg)
	case viewOverview:
		if msg.String() == "r" {
			cmd = a.overview.Init()
		}
	}
	return a, cmd
}

func (a App) isEditing() bool {
	switch a.view {
	case viewLogin:
		return true
	case viewHero:
		return a.hero.editing()
	case viewAbout:
		return a.about.editing()
	case viewSkills:
		return a.skills.editing()
	case viewProjects:
		return a.projects.editing()
	case viewMessages:
		return a.messages.editing()
	case viewResume:
		return a.resume.editing()
	}
	return false
}

func (a App) View() string {
	header := centered(renderShimmerLogo(a.frame), a.width)
	if a.opts.SiteURL != "" {
		header += "\n" + centered(metaStyle.Render(a.opts.SiteURL), a.width)
	} else {
		header += "\n"
	}

	if a.view == viewLogin {
		help := helpBar("tab", "next", "enter", "sign in", "ctrl+c", "quit")
		body := strings.TrimRight(truncateToHeight(a.login.View(), a.height-4), "\n")
		return fmt.Sprintf("%s\n\n%s\n\n%s", header, body, help)
	}

	var body, help string
	switch a.view {
	case viewOverview:
		body = a.overview.View(a.store())
		help = helpBar("1-7", "tabs", "r", "refresh", "L", "logout", "h", "help", "q", "quit")
	case viewHero:
		body, help = a.hero.View(), a.hero.helpKeys()
	case viewAbout:
		body, help = a.about.View(), a.about.helpKeys()
	case viewSkills:
		body, help = a.skills.View(), a.skills.helpKeys()
	case viewProjects:
		body, help = a.projects.View(), a.projects.helpKeys()
	case viewMessages:
		body, help = a.messages.View(), a.messages.helpKeys()
	case viewResume:
		body, help = a.resume.View(), a.resume.helpKeys()
	}

	if a.helpOpen {
		body = helpView(helpItems(a.opts.SiteURL, a.baseURL()), a.helpCursor)
		help = helpBar("j/k", "nav", "enter", "open", "esc", "close")
	}

	body = strings.TrimRight(truncateToHeight(body, a.height-5), "\n")
	return fmt.Sprintf("%s\n%s\n%s\n\n%s", header, a.tabBar(), body, help)
}

// tabBar spreads the seven tabs across the terminal width.
func (a App) tabBar() string {
	tabs := []struct {
		name string
		v    view
	}{
		{"Overview", viewOverview},
		{"Hero", viewHero},
		{"About", viewAbout},
		{"Skills", viewSkills},
		{"Projects", viewProjects},
		{"Messages", viewMessages},
		{"Resume", viewResume},
	}
	colWidth := a.width / len(tabs)
	var b strings.Builder
	for i, t := range tabs {
		key := fmt.Sprintf("%d", i+1)
		var label string
		if t.v == a.view {
			label = accentStyle.Render(key) + " " + selectedStyle.Underline(true).Render(t.name)
		} else {
			label = metaStyle.Render(key) + " " + dimStyle.Render(t.name)
		}
		if t.v == viewMessages {
			if n := a.messages.unread(); n > 0 {
				label += " " + unreadStyle.Render(fmt.Sprintf("%d", n))
			}
		}
		w := lipgloss.Width(label)
		left := max((colWidth-w)/2, 0)
		right := max(colWidth-w-left, 0)
		b.WriteString(strings.Repeat(" ", left) + label + strings.Repeat(" ", right))
	}
	return b.String()
}

func centered(s string, width int) string {
	pad := max((width-lipgloss.Width(s))/2, 0)
	return strings.Repeat(" ", pad) + s
}
