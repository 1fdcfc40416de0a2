package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// ansiGray stands in for palette colors, which have no RGB value to blend.
var ansiGray = colorful.Color{R: 128.0 / 255, G: 128.0 / 255, B: 128.0 / 255}

// Heading renders text bold with the theme's primary to secondary gradient.
func (t *Theme) Heading(text string) string {
	return Gradient(text, t.Primary, t.Secondary, lipgloss.NewStyle().Bold(true))
}

// Gradient colors each grapheme of text along an HCL blend between from and
// to. base carries every other attribute.
func Gradient(text string, from, to lipgloss.Color, base lipgloss.Style) string {
	clusters := graphemes(text)
	switch len(clusters) {
	case 0:
		return ""
	case 1:
		return base.Foreground(from).Render(text)
	}

	var b strings.Builder
	for i, c := range blend(len(clusters), from, to) {
		b.WriteString(base.Foreground(lipgloss.Color(c.Hex())).Render(clusters[i]))
	}
	return b.String()
}

func graphemes(text string) []string {
	var out []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		out = append(out, gr.Str())
	}
	return out
}

// blend returns n evenly spaced colors from from to to. Fewer than two
// stops yield from alone.
func blend(n int, from, to lipgloss.Color) []colorful.Color {
	a, b := toColorful(from), toColorful(to)
	if n < 2 {
		return []colorful.Color{a}
	}
	out := make([]colorful.Color, n)
	for i := range out {
		out[i] = a.BlendHcl(b, float64(i)/float64(n-1)).Clamped()
	}
	return out
}

func toColorful(c lipgloss.Color) colorful.Color {
	if col, err := colorful.Hex(string(c)); err == nil {
		return col
	}
	return ansiGray
}
