package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/tunjipaul/folio/pkg/client"
	"github.com/tunjipaul/folio/pkg/domain"
)

// fieldSpec describes one form input of a resource.
type fieldSpec struct {
	label     string
	choices   []string // non-empty: cycled with h/l instead of typed
	multiline bool
}

// record is a resource row flattened for the editor.
type record struct {
	id     int
	title  string
	meta   string
	values []string
}

// resource adapts one content section to the shared list/form editor.
// values are ordered like fields.
type resource interface {
	kind() string
	fields() []fieldSpec
	defaults() []string
	list(ctx context.Context, c *client.Client) ([]record, error)
	save(ctx context.Context, c *client.Client, id int, values []string) error
	remove(ctx context.Context, c *client.Client, id int) error
}

// -- hero --

type heroResource struct{}

func (heroResource) kind() string { return "hero" }

func (heroResource) fields() []fieldSpec {
	return []fieldSpec{
		{label: "title"},
		{label: "subtitle", multiline: true},
		{label: "image url"},
		{label: "view button"},
		{label: "contact button"},
	}
}

func (heroResource) defaults() []string { return make([]string, 5) }

func (heroResource) list(ctx context.Context, c *client.Client) ([]record, error) {
	heroes, err := c.ListHeroes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]record, 0, len(heroes))
	for _, h := range heroes {
		out = append(out, record{
			id:    h.ID,
			title: h.Title,
			meta:  h.Subtitle,
			values: []string{
				h.Title, h.Subtitle, h.ImageURL, h.ViewButtonText, h.ContactButtonText,
			},
		})
	}
	return out, nil
}

func (heroResource) save(ctx context.Context, c *client.Client, id int, v []string) error {
	in := domain.HeroInput{
		Title:             strings.TrimSpace(v[0]),
		Subtitle:          strings.TrimSpace(v[1]),
		ImageURL:          strings.TrimSpace(v[2]),
		ViewButtonText:    strings.TrimSpace(v[3]),
		ContactButtonText: strings.TrimSpace(v[4]),
	}
	var err error
	if id == 0 {
		_, err = c.CreateHero(ctx, in)
	} else {
		_, err = c.UpdateHero(ctx, id, in)
	}
	return err
}

func (heroResource) remove(ctx context.Context, c *client.Client, id int) error {
	return c.DeleteHero(ctx, id)
}

// -- about --

type aboutResource struct{}

func (aboutResource) kind() string { return "about" }

func (aboutResource) fields() []fieldSpec {
	return []fieldSpec{
		{label: "title"},
		{label: "content", multiline: true},
		{label: "image url"},
		{label: "skills (comma separated)"},
		{label: "education", multiline: true},
	}
}

func (aboutResource) defaults() []string { return make([]string, 5) }

func (aboutResource) list(ctx context.Context, c *client.Client) ([]record, error) {
	abouts, err := c.ListAbout(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]record, 0, len(abouts))
	for _, a := range abouts {
		title := a.Title
		if title == "" {
			title = fmt.Sprintf("about #%d", a.ID)
		}
		out = append(out, record{
			id:     a.ID,
			title:  title,
			meta:   fmt.Sprintf("%d skills", len(a.Skills)),
			values: []string{a.Title, a.Content, a.ImageURL, strings.Join(a.Skills, ", "), a.Education},
		})
	}
	return out, nil
}

func (aboutResource) save(ctx context.Context, c *client.Client, id int, v []string) error {
	in := domain.AboutInput{
		Title:     strings.TrimSpace(v[0]),
		Content:   strings.TrimSpace(v[1]),
		ImageURL:  strings.TrimSpace(v[2]),
		Skills:    splitList(v[3]),
		Education: strings.TrimSpace(v[4]),
	}
	var err error
	if id == 0 {
		_, err = c.CreateAbout(ctx, in)
	} else {
		_, err = c.UpdateAbout(ctx, id, in)
	}
	return err
}

func (aboutResource) remove(ctx context.Context, c *client.Client, id int) error {
	return c.DeleteAbout(ctx, id)
}

// splitList parses "a, b,,c" into [a b c].
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// -- skills --

type skillResource struct{}

func (skillResource) kind() string { return "skills" }

func (skillResource) fields() []fieldSpec {
	return []fieldSpec{
		{label: "name"},
		{label: "category", choices: domain.SkillCategories},
		{label: "icon"},
	}
}

func (skillResource) defaults() []string {
	return []string{"", domain.DefaultSkillCategory, ""}
}

func (skillResource) list(ctx context.Context, c *client.Client) ([]record, error) {
	skills, err := c.ListSkills(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]record, 0, len(skills))
	for _, s := range skills {
		out = append(out, record{
			id:     s.ID,
			title:  s.Name,
			meta:   CategoryStyle(s.Category).Render(s.Category),
			values: []string{s.Name, s.Category, s.Icon},
		})
	}
	return out, nil
}

func (skillResource) save(ctx context.Context, c *client.Client, id int, v []string) error {
	in := domain.SkillInput{
		Name:     strings.TrimSpace(v[0]),
		Category: v[1],
		Icon:     strings.TrimSpace(v[2]),
	}
	var err error
	if id == 0 {
		_, err = c.CreateSkill(ctx, in)
	} else {
		_, err = c.UpdateSkill(ctx, id, in)
	}
	return err
}

func (skillResource) remove(ctx context.Context, c *client.Client, id int) error {
	return c.DeleteSkill(ctx, id)
}

// -- projects --

type projectResource struct{}

func (projectResource) kind() string { return "projects" }

func (projectResource) fields() []fieldSpec {
	return []fieldSpec{
		{label: "title"},
		{label: "description", multiline: true},
		{label: "github url"},
		{label: "demo url"},
	}
}

func (projectResource) defaults() []string { return make([]string, 4) }

func (projectResource) list(ctx context.Context, c *client.Client) ([]record, error) {
	projects, err := c.ManageProjects(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]record, 0, len(projects))
	for _, p := range projects {
		meta := formatTime(p.UpdatedAt)
		if p.Demo != "" {
			meta = strings.TrimSpace(meta + " · demo")
		}
		out = append(out, record{
			id:     p.ID,
			title:  p.Title,
			meta:   meta,
			values: []string{p.Title, p.Description, p.GitHub, p.Demo},
		})
	}
	return out, nil
}

func (projectResource) save(ctx context.Context, c *client.Client, id int, v []string) error {
	in := domain.ProjectInput{
		Title:       strings.TrimSpace(v[0]),
		Description: strings.TrimSpace(v[1]),
		GitHub:      strings.TrimSpace(v[2]),
		Demo:        strings.TrimSpace(v[3]),
	}
	var err error
	if id == 0 {
		_, err = c.CreateProject(ctx, in)
	} else {
		_, err = c.UpdateProject(ctx, id, in)
	}
	return err
}

func (projectResource) remove(ctx context.Context, c *client.Client, id int) error {
	return c.DeleteProject(ctx, id)
}
