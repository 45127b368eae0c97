package mermaid

import (
	"strings"

	"github.com/matzehuels/wsgraph/pkg/errors"
)

// Style is the class used to mark cycle edges.
type Style struct {
	Class string // Class name appended to edges as ":::<Class>"
	CSS   string // Declaration body of the classDef line
}

// Recognized styles.
var (
	StyleRed    = Style{Class: "red", CSS: "stroke:#ff0000,stroke-width:2px"}
	StyleOrange = Style{Class: "orange", CSS: "stroke:#ff8c00,stroke-width:2px"}
	StyleBold   = Style{Class: "bold", CSS: "stroke:#000000,stroke-width:4px"}
)

// DefaultStyle is used when no style is configured.
const DefaultStyle = "red"

var styles = map[string]Style{
	StyleRed.Class:    StyleRed,
	StyleOrange.Class: StyleOrange,
	StyleBold.Class:   StyleBold,
}

// StyleNames lists the recognized style names.
var StyleNames = []string{StyleRed.Class, StyleOrange.Class, StyleBold.Class}

// ParseStyle returns the style called name. Matching ignores case and
// surrounding spaces, and an empty name selects [DefaultStyle].
func ParseStyle(name string) (Style, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = DefaultStyle
	}
	s, ok := styles[key]
	if !ok {
		return Style{}, errors.New(errors.ErrCodeInvalidStyle,
			"unknown style %q (valid: %s)", name, strings.Join(StyleNames, ", "))
	}
	return s, nil
}

// Marker returns the suffix appended to cycle edges.
func (s Style) Marker() string { return ":::" + s.Class }

// Definition returns the trailing classDef line without newline.
func (s Style) Definition() string {
	return "classDef " + s.Class + " " + s.CSS + ";"
}
