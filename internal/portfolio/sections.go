package portfolio

// Section ids in page order.
const (
	SectionHome     = "home"
	SectionAbout    = "about"
	SectionProjects = "projects"
	SectionContact  = "contact"
)

// SectionIDs lists the page sections in order.
var SectionIDs = []string{SectionHome, SectionAbout, SectionProjects, SectionContact}

// ScrollSpyOffset is added to the scroll position before matching, so a
// section counts as active slightly before its top reaches the viewport.
const ScrollSpyOffset = 100

// Section is a laid-out block of the page, in rows or pixels.
type Section struct {
	ID     string
	Offset int
	Height int
}

// ActiveSection returns the first section whose [Offset, Offset+Height)
// contains scroll+ScrollSpyOffset.
func ActiveSection(sections []Section, scroll int) (string, bool) {
	return ActiveSectionAt(sections, scroll, ScrollSpyOffset)
}

// ActiveSectionAt is ActiveSection with a custom lookahead, for layouts
// measured in rows rather than pixels.
func ActiveSectionAt(sections []Section, scroll, offset int) (string, bool) {
	pos := scroll + offset
	for _, s := range sections {
		if pos >= s.Offset && pos < s.Offset+s.Height {
			return s.ID, true
		}
	}
	return "", false
}

// NextSection returns the section after id, wrapping to the first.
func NextSection(id string) string {
	for i, s := range SectionIDs {
		if s == id {
			return SectionIDs[(i+1)%len(SectionIDs)]
		}
	}
	return SectionIDs[0]
}

// PrevSection returns the section before id, wrapping to the last.
func PrevSection(id string) string {
	for i, s := range SectionIDs {
		if s == id {
			return SectionIDs[(i+len(SectionIDs)-1)%len(SectionIDs)]
		}
	}
	return SectionIDs[0]
}
