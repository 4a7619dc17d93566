package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tunjipaul/folio/pkg/client"
	"github.com/tunjipaul/folio/pkg/domain"
	"github.com/tunjipaul/folio/pkg/session"
)

type overviewStats struct {
	heroes, abouts, skills, projects int
	messages, unread                 int
	files                            domain.ResumeFiles
}

type overviewLoadedMsg struct {
	stats overviewStats
	err   error
}

type overviewModel struct {
	client *client.Client
	stats  overviewStats
	loaded bool
	err    error
}

func newOverviewModel(c *client.Client) overviewModel {
	return overviewModel{client: c}
}

func (m overviewModel) Init() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		return loadOverview(context.Background(), c)
	}
}

// loadOverview collects section counts. A failing section does not stop
// the others; the first session-ending error is reported over the rest.
func loadOverview(ctx context.Context, c *client.Client) overviewLoadedMsg {
	var (
		s    overviewStats
		errs []error
	)
	count := func(n int, err error) int {
		if err != nil {
			errs = append(errs, err)
		}
		return n
	}
	heroes, err := c.ListHeroes(ctx)
	if client.IsSessionEnded(err) {
		return overviewLoadedMsg{err: err}
	}
	s.heroes = count(len(heroes), err)
	abouts, err := c.ListAbout(ctx)
	s.abouts = count(len(abouts), err)
	skills, err := c.ListSkills(ctx)
	s.skills = count(len(skills), err)
	projects, err := c.ManageProjects(ctx)
	s.projects = count(len(projects), err)
	msgs, err := c.ListMessages(ctx)
	s.messages = count(len(msgs), err)
	s.unread = domain.UnreadCount(msgs)
	if files, err := c.CurrentDocuments(ctx); err != nil {
		errs = append(errs, err)
	} else {
		s.files = *files
	}
	return overviewLoadedMsg{stats: s, err: errors.Join(errs...)}
}

func (m overviewModel) Update(msg tea.Msg) (overviewModel, tea.Cmd) {
	if msg, ok := msg.(overviewLoadedMsg); ok {
		m.loaded = true
		m.stats = msg.stats
		m.err = msg.err
	}
	return m, nil
}

func (m overviewModel) View(store *session.Store) string {
	var b strings.Builder

	if store != nil {
		if r, err := store.Load(); err == nil && r.AdminEmail != "" {
			exp := "no expiry"
			if t, ok := r.Expiry(); ok {
				exp = formatRemaining(t, store.Now())
			}
			fmt.Fprintf(&b, " %s %s  %s\n\n", dimStyle.Render("signed in as"), selectedStyle.Render(r.AdminEmail), metaStyle.Render(exp))
		}
	}

	if !m.loaded {
		b.WriteString(" " + dimStyle.Render("loading...") + "\n")
		return b.String()
	}

	row := func(key, label string, n int, extra string) {
		fmt.Fprintf(&b, " %s %-10s %s  %s\n", metaStyle.Render(key), normalStyle.Render(label), selectedStyle.Render(fmt.Sprintf("%3d", n)), extra)
	}
	row("2", "hero", m.stats.heroes, "")
	row("3", "about", m.stats.abouts, "")
	row("4", "skills", m.stats.skills, "")
	row("5", "projects", m.stats.projects, "")
	unread := dimStyle.Render("all read")
	if m.stats.unread > 0 {
		unread = unreadStyle.Render(fmt.Sprintf("%d unread", m.stats.unread))
	}
	row("6", "messages", m.stats.messages, unread)

	var docs []string
	for _, t := range domain.DocTypes {
		if m.stats.files.Has(t) {
			docs = append(docs, okStyle.Render(string(t)))
		} else {
			docs = append(docs, dimStyle.Render(string(t)+" missing"))
		}
	}
	fmt.Fprintf(&b, " %s %-10s %s\n", metaStyle.Render("7"), normalStyle.Render("resume"), strings.Join(docs, dimStyle.Render(" · ")))

	if m.err != nil {
		b.WriteString("\n" + statusLine("", m.err) + "\n")
	}
	return b.String()
}
