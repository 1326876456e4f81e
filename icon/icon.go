// Package icon provides a multi-variant rendering engine for UI symbols and feedback indicators.
//
// Icons can be displayed as emoji, plain ASCII or kaomoji depending on user preference.
package icon

import (
	"github.com/animeverse/animeverse/key"
	"github.com/spf13/viper"
)

const (
	emoji   = "emoji"
	plain   = "plain"
	kaomoji = "kaomoji"
)

// AvailableVariants returns a slice of all registered icon style identifiers.
func AvailableVariants() []string {
	return []string{emoji, plain, kaomoji}
}

// Icon identifies a UI symbol.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Score
	Timer
	Trophy
	Quiz
	Correct
	Wrong
)

// iconDef holds the representations of a single UI symbol across all supported variants.
type iconDef struct {
	emoji   string
	plain   string
	kaomoji string
}

func (d iconDef) get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case plain:
		return d.plain
	case kaomoji:
		return d.kaomoji
	default:
		return ""
	}
}

var icons = map[Icon]iconDef{
	Success:  {emoji: "✅", plain: "+", kaomoji: "(ᵔᴥᵔ)"},
	Fail:     {emoji: "❌", plain: "x", kaomoji: "(╥﹏╥)"},
	Progress: {emoji: "⏳", plain: "~", kaomoji: "(・_・ヾ"},
	Score:    {emoji: "⭐", plain: "*", kaomoji: "☆"},
	Timer:    {emoji: "⏱", plain: "T", kaomoji: "(⊙_⊙)"},
	Trophy:   {emoji: "🏆", plain: "#", kaomoji: "٩(◕‿◕)۶"},
	Quiz:     {emoji: "🧠", plain: "?", kaomoji: "(￢_￢)"},
	Correct:  {emoji: "✔", plain: "v", kaomoji: "(^_^)b"},
	Wrong:    {emoji: "✘", plain: "x", kaomoji: "(>_<)"},
}

// Get returns the rendered string for an icon under the configured variant.
func Get(i Icon) string {
	return icons[i].get()
}
