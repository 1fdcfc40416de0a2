package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/folio/internal/portfolio"
	"github.com/llehouerou/folio/internal/ui/playerbar"
	"github.com/llehouerou/folio/internal/ui/render"
	"github.com/llehouerou/folio/internal/ui/styles"
)

const (
	headerHeight = 1
	statusHeight = 1
	pageMargin   = 2
	maxPageWidth = 96
)

// footerHeight is the number of rows below the page.
func (m Model) footerHeight() int {
	h := statusHeight
	if m.showHelp {
		h += lipgloss.Height(m.help.View(m.helpKeys))
	}
	if m.player != nil {
		h += playerbar.Height(m.DisplayMode)
	}
	return h
}

// resize lays the page out again for the current size and content. The
// scroll position is kept when possible.
func (m *Model) resize() {
	if m.Width == 0 || m.Height == 0 {
		return
	}
	m.help.Width = m.Width
	offset := m.page.YOffset

	page, sections := renderPage(m.currentContent(), m.Filter, m.pageWidth())
	m.sections = sections
	m.page.Width = m.Width
	m.page.Height = max(m.Height-headerHeight-m.footerHeight(), 1)
	m.page.SetContent(page)
	m.page.SetYOffset(offset)
	m.updateActive()
}

func (m Model) pageWidth() int {
	return max(min(m.Width-pageMargin*2, maxPageWidth), 20)
}

// spyOffset is the row lookahead used to pick the active section: a
// section becomes active once its top passes the upper third of the page.
func (m Model) spyOffset() int {
	return m.page.Height / 3
}

func (m *Model) updateActive() {
	if m.page.AtBottom() && len(m.sections) > 0 {
		m.Active = m.sections[len(m.sections)-1].ID
		return
	}
	if id, ok := portfolio.ActiveSectionAt(m.sections, m.page.YOffset, m.spyOffset()); ok {
		m.Active = id
	}
}

// scrollTo brings a section's first row to the top of the page, or as
// close as the page allows, and marks it active.
func (m *Model) scrollTo(id string) {
	for _, s := range m.sections {
		if s.ID == id {
			m.page.SetYOffset(s.Offset)
			m.Active = id
			return
		}
	}
}

// renderPage draws every section in order and records where each starts.
func renderPage(c *portfolio.Content, filter string, width int) (string, []portfolio.Section) {
	blocks := []struct {
		id   string
		body string
	}{
		{portfolio.SectionHome, renderHome(c, width)},
		{portfolio.SectionAbout, renderAbout(c, width)},
		{portfolio.SectionProjects, renderProjects(c, filter, width)},
		{portfolio.SectionContact, renderContact(c, width)},
	}

	indent := strings.Repeat(" ", pageMargin)
	var lines []string
	sections := make([]portfolio.Section, 0, len(blocks))
	for _, b := range blocks {
		body := strings.Split(b.body, "\n")
		body = append(body, "")
		sections = append(sections, portfolio.Section{ID: b.id, Offset: len(lines), Height: len(body)})
		for _, l := range body {
			lines = append(lines, indent+l)
		}
	}
	return strings.Join(lines, "\n"), sections
}

func sectionTitle(title string) string {
	t := styles.T()
	return t.Heading(title) + "\n" + t.S().Subtle.Render(render.Separator(lipgloss.Width(title)+4))
}

func renderHome(c *portfolio.Content, width int) string {
	t := styles.T()
	p := c.Profile
	lines := []string{
		"",
		t.Heading(render.Truncate(render.Sanitize(p.Name), width)),
	}
	if p.Role != "" {
		lines = append(lines, t.S().Title.Render(render.Sanitize(p.Role)))
	}
	if p.Tagline != "" {
		lines = append(lines, "", t.S().Muted.Render(render.Wrap(render.Sanitize(p.Tagline), width)))
	}
	if p.Location != "" {
		lines = append(lines, t.S().Subtle.Render(render.Sanitize(p.Location)))
	}
	return strings.Join(lines, "\n")
}

func renderAbout(c *portfolio.Content, width int) string {
	t := styles.T()
	lines := []string{sectionTitle("About")}
	if c.Profile.About != "" {
		lines = append(lines, t.S().Base.Render(render.Wrap(render.Sanitize(c.Profile.About), width)))
	}
	if len(c.Skills) > 0 {
		names := make([]string, 0, len(c.Skills))
		for _, s := range c.Skills {
			names = append(names, t.S().Tag.Render(render.Sanitize(s.Name)))
		}
		lines = append(lines, "", t.S().Title.Render("Skills"), render.Wrap(strings.Join(names, "  "), width))
	}
	return strings.Join(lines, "\n")
}

func renderProjects(c *portfolio.Content, filter string, width int) string {
	t := styles.T()
	lines := []string{sectionTitle("Projects")}

	if filter == "" {
		filter = portfolio.FilterAll
	}
	lines = append(lines, t.S().Muted.Render("filter: ")+t.S().Active.Render(filter)+
		t.S().Subtle.Render("   (f next, esc all)"), "")

	projects := c.FilterProjects(filter)
	if len(projects) == 0 {
		lines = append(lines, t.S().Subtle.Render("No projects use "+filter+"."))
	}
	for i, p := range projects {
		if i > 0 {
			lines = append(lines, "")
		}
		title := render.Sanitize(p.Title)
		if p.Category != "" {
			title += t.S().Subtle.Render("  " + render.Sanitize(p.Category))
		}
		lines = append(lines, t.S().Title.Render(title))
		if len(p.Tags) > 0 {
			lines = append(lines, t.S().Tag.Render(render.Wrap(strings.Join(p.Tags, " · "), width)))
		}
		if p.Description != "" {
			lines = append(lines, t.S().Base.Render(render.Wrap(render.Sanitize(p.Description), width)))
		}
		if p.Link != "" {
			lines = append(lines, t.S().Muted.Render("code ")+t.S().Link.Render(p.Link))
		}
		if p.Demo != "" {
			lines = append(lines, t.S().Muted.Render("demo ")+t.S().Link.Render(p.Demo))
		}
	}
	return strings.Join(lines, "\n")
}

func renderContact(c *portfolio.Content, width int) string {
	t := styles.T()
	lines := []string{sectionTitle("Contact")}

	labelWidth := 0
	for _, ct := range c.Contacts {
		labelWidth = max(labelWidth, lipgloss.Width(ct.Title))
	}
	for _, ct := range c.Contacts {
		line := t.S().Muted.Render(render.Pad(render.Sanitize(ct.Title), labelWidth)) + "  " +
			t.S().Link.Render(render.Sanitize(ct.Value))
		if ct.Href != "" && ct.Href != ct.Value {
			line += t.S().Subtle.Render("  " + ct.Href)
		}
		lines = append(lines, render.Truncate(line, width))
	}
	return strings.Join(lines, "\n")
}
