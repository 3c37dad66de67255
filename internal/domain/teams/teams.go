// Package teams holds read-only team presentation metadata.
package teams

import (
	"regexp"
	"sort"
)

// DefaultFallback is used for teams without a configured colour.
const DefaultFallback = "#808080"

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// proLeague holds the club colours of the Belgian Pro League.
var proLeague = map[string]string{
	"Anderlecht":     "#4c2484",
	"Antwerp":        "#d3072a",
	"Beerschot":      "#714394",
	"Cercle Brugge":  "#60B22C",
	"Charleroi":      "#000000",
	"Club Brugge":    "#008dcc",
	"Dender":         "#27579b",
	"Genk":           "#04407E",
	"Gent":           "#004794",
	"Kortrijk":       "#CA2027",
	"Mechelen":       "#E41B13",
	"OH Leuven":      "#36bd00",
	"Sint-Truiden":   "#ffd13a",
	"Standard Liège": "#e31f13",
	"Union SG":       "#fdd516",
	"Westerlo":       "#198fd9",
}

// Palette maps team names to chart colours. It is immutable once built and
// safe for concurrent use.
type Palette struct {
	colors   map[string]string
	fallback string
}

// Option applies a configuration option to the Palette.
type Option func(*Palette)

// WithColors adds or overrides team colours. Values that are not #RGB or
// #RRGGBB hex are ignored.
func WithColors(colors map[string]string) Option {
	return func(p *Palette) {
		for team, c := range colors {
			if team != "" && hexColor.MatchString(c) {
				p.colors[team] = c
			}
		}
	}
}

// WithFallback sets the colour returned by ColorOr for unknown teams.
func WithFallback(color string) Option {
	return func(p *Palette) {
		if hexColor.MatchString(color) {
			p.fallback = color
		}
	}
}

// NewPalette returns the Pro League palette with opts applied.
func NewPalette(opts ...Option) *Palette {
	p := &Palette{
		colors:   make(map[string]string, len(proLeague)),
		fallback: DefaultFallback,
	}
	for team, c := range proLeague {
		p.colors[team] = c
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Color returns the colour of team.
func (p *Palette) Color(team string) (string, bool) {
	c, ok := p.colors[team]
	return c, ok
}

// ColorOr returns the colour of team or the fallback colour.
func (p *Palette) ColorOr(team string) string {
	if c, ok := p.colors[team]; ok {
		return c
	}
	return p.fallback
}

// Teams returns the known team names in sorted order.
func (p *Palette) Teams() []string {
	names := make([]string, 0, len(p.colors))
	for team := range p.colors {
		names = append(names, team)
	}
	sort.Strings(names)
	return names
}
