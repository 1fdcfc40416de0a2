// Package portfolio holds the portfolio content and the pure logic the hosts
// share: technology filtering and scroll-spy section resolution.
package portfolio

import (
	"errors"
	"fmt"
	"strings"
)

// Content is everything the page shows. It is loaded from a TOML file so
// the copy never lives in code.
type Content struct {
	Profile  Profile   `koanf:"profile" json:"profile"`
	Skills   []Skill   `koanf:"skills" json:"skills"`
	Projects []Project `koanf:"projects" json:"projects"`
	Contacts []Contact `koanf:"contacts" json:"contacts"`
}

type Profile struct {
	Name     string `koanf:"name" json:"name"`
	Role     string `koanf:"role" json:"role"`
	Tagline  string `koanf:"tagline" json:"tagline"`
	About    string `koanf:"about" json:"about"`
	Location string `koanf:"location" json:"location,omitempty"`
}

type Skill struct {
	Name string `koanf:"name" json:"name"`
	Icon string `koanf:"icon" json:"icon,omitempty"`
}

type Project struct {
	Title       string   `koanf:"title" json:"title"`
	Description string   `koanf:"description" json:"description"`
	Tags        []string `koanf:"tags" json:"tags"`
	Category    string   `koanf:"category" json:"category,omitempty"`
	Link        string   `koanf:"link" json:"link,omitempty"`
	Demo        string   `koanf:"demo" json:"demo,omitempty"`
}

type Contact struct {
	Title string `koanf:"title" json:"title"`
	Value string `koanf:"value" json:"value"`
	Href  string `koanf:"href" json:"href,omitempty"`
}

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid portfolio content")

// Validate requires a profile name and unique, non-empty project titles.
func (c *Content) Validate() error {
	if strings.TrimSpace(c.Profile.Name) == "" {
		return fmt.Errorf("%w: profile.name is required", ErrInvalid)
	}
	seen := make(map[string]bool, len(c.Projects))
	for i, p := range c.Projects {
		title := strings.TrimSpace(p.Title)
		if title == "" {
			return fmt.Errorf("%w: project %d has no title", ErrInvalid, i+1)
		}
		key := strings.ToLower(title)
		if seen[key] {
			return fmt.Errorf("%w: duplicate project %q", ErrInvalid, title)
		}
		seen[key] = true
	}
	return nil
}
