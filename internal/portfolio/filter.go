package portfolio

import (
	"slices"
	"strings"
)

// FilterAll selects every project.
const FilterAll = "all"

// Technologies returns the sorted union of all project tags.
func (c *Content) Technologies() []string {
	seen := make(map[string]bool)
	var techs []string
	for _, p := range c.Projects {
		for _, tag := range p.Tags {
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			techs = append(techs, tag)
		}
	}
	slices.Sort(techs)
	return techs
}

// FilterProjects returns the projects having a tag that contains filter,
// case-insensitively. FilterAll or an empty filter returns every project.
func (c *Content) FilterProjects(filter string) []Project {
	if filter == "" || filter == FilterAll {
		return slices.Clone(c.Projects)
	}
	needle := strings.ToLower(filter)
	var out []Project
	for _, p := range c.Projects {
		if slices.ContainsFunc(p.Tags, func(tag string) bool {
			return strings.Contains(strings.ToLower(tag), needle)
		}) {
			out = append(out, p)
		}
	}
	return out
}

// NextFilter cycles FilterAll -> each technology in order -> FilterAll.
// An unknown current filter restarts at FilterAll.
func (c *Content) NextFilter(current string) string {
	techs := c.Technologies()
	if len(techs) == 0 {
		return FilterAll
	}
	if current == "" || current == FilterAll {
		return techs[0]
	}
	i := slices.Index(techs, current)
	if i < 0 || i == len(techs)-1 {
		return FilterAll
	}
	return techs[i+1]
}
