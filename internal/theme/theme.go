// Package theme maps ride names to visual themes and wait categories to
// colors. The ride lookup is an ordered pattern list with case-insensitive
// substring matching; first match wins. Existing configuration data
// depends on those exact semantics.
package theme

import (
	"strings"

	"github.com/example/parkboard/internal/model"
)

// RGB is an 8-bit display color.
type RGB struct{ R, G, B uint8 }

// Scheme is the palette for one theme.
type Scheme struct {
	Background    RGB
	Accent        RGB
	TextPrimary   RGB
	TextSecondary RGB
}

const DefaultTheme = "classic"

var schemes = map[string]Scheme{
	"scifi":     {Background: RGB{10, 10, 25}, Accent: RGB{76, 201, 240}, TextPrimary: RGB{255, 255, 255}, TextSecondary: RGB{180, 180, 180}},
	"spooky":    {Background: RGB{25, 10, 25}, Accent: RGB{128, 19, 54}, TextPrimary: RGB{255, 255, 255}, TextSecondary: RGB{150, 130, 150}},
	"pirate":    {Background: RGB{20, 15, 10}, Accent: RGB{201, 162, 39}, TextPrimary: RGB{255, 255, 255}, TextSecondary: RGB{180, 160, 130}},
	"adventure": {Background: RGB{15, 35, 25}, Accent: RGB{149, 213, 178}, TextPrimary: RGB{255, 255, 255}, TextSecondary: RGB{180, 180, 180}},
	"whimsical": {Background: RGB{40, 35, 50}, Accent: RGB{255, 159, 28}, TextPrimary: RGB{255, 255, 255}, TextSecondary: RGB{200, 190, 210}},
	"playful":   {Background: RGB{30, 30, 45}, Accent: RGB{255, 107, 107}, TextPrimary: RGB{255, 255, 255}, TextSecondary: RGB{180, 180, 180}},
	"action":    {Background: RGB{15, 15, 20}, Accent: RGB{255, 65, 54}, TextPrimary: RGB{255, 255, 255}, TextSecondary: RGB{180, 180, 180}},
	"fantasy":   {Background: RGB{25, 20, 35}, Accent: RGB{180, 130, 255}, TextPrimary: RGB{255, 255, 255}, TextSecondary: RGB{190, 180, 200}},
	"future":    {Background: RGB{15, 20, 30}, Accent: RGB{100, 200, 255}, TextPrimary: RGB{255, 255, 255}, TextSecondary: RGB{180, 180, 180}},
	"starwars":  {Background: RGB{5, 5, 10}, Accent: RGB{255, 69, 0}, TextPrimary: RGB{255, 255, 255}, TextSecondary: RGB{180, 180, 180}},
	"classic":   {Background: RGB{20, 25, 40}, Accent: RGB{255, 215, 0}, TextPrimary: RGB{255, 255, 255}, TextSecondary: RGB{180, 180, 180}},
}

// WaitColors is the universal wait-category palette, shared by every theme.
var WaitColors = map[model.WaitCategory]RGB{
	model.WaitShort:    {46, 204, 113},
	model.WaitModerate: {241, 196, 15},
	model.WaitLong:     {230, 126, 34},
	model.WaitVeryLong: {231, 76, 60},
}

// Badge colors for the data-freshness indicator.
var (
	StatusWarning = RGB{255, 193, 7}
	StatusError   = RGB{220, 53, 69}
)

// Pattern pairs are evaluated in order; the first case-insensitive
// substring hit decides the theme.
type pattern struct{ substr, theme string }

var rideThemes = []pattern{
	{"space mountain", "scifi"},
	{"tron", "scifi"},
	{"buzz lightyear", "scifi"},
	{"space ranger", "scifi"},
	{"guardians", "scifi"},
	{"cosmic rewind", "scifi"},
	{"mission: space", "scifi"},
	{"mission space", "scifi"},
	{"haunted mansion", "spooky"},
	{"tower of terror", "spooky"},
	{"twilight zone", "spooky"},
	{"pirates", "pirate"},
	{"jungle cruise", "adventure"},
	{"kilimanjaro", "adventure"},
	{"safari", "adventure"},
	{"kali river", "adventure"},
	{"expedition everest", "adventure"},
	{"everest", "adventure"},
	{"indiana jones", "adventure"},
	{"small world", "whimsical"},
	{"peter pan", "whimsical"},
	{"dumbo", "whimsical"},
	{"winnie the pooh", "whimsical"},
	{"mad tea party", "whimsical"},
	{"figment", "whimsical"},
	{"imagination", "whimsical"},
	{"slinky dog", "playful"},
	{"toy story", "playful"},
	{"alien swirling", "playful"},
	{"barnstormer", "playful"},
	{"rock 'n' roller", "action"},
	{"aerosmith", "action"},
	{"test track", "action"},
	{"big thunder", "action"},
	{"seven dwarfs", "fantasy"},
	{"frozen", "fantasy"},
	{"little mermaid", "fantasy"},
	{"under the sea", "fantasy"},
	{"tiana", "fantasy"},
	{"bayou adventure", "fantasy"},
	{"spaceship earth", "future"},
	{"carousel of progress", "future"},
	{"peoplemover", "future"},
	{"transit authority", "future"},
	{"rise of the resistance", "starwars"},
	{"millennium falcon", "starwars"},
	{"smugglers run", "starwars"},
	{"star tours", "starwars"},
	{"flight of passage", "adventure"},
	{"avatar", "adventure"},
	{"na'vi river", "adventure"},
	{"soarin", "adventure"},
}

// ForRide returns the theme identifier for a ride name.
func ForRide(name string) string {
	lower := strings.ToLower(name)
	for _, p := range rideThemes {
		if strings.Contains(lower, p.substr) {
			return p.theme
		}
	}
	return DefaultTheme
}

// SchemeFor returns the palette for a theme, falling back to classic.
func SchemeFor(theme string) Scheme {
	if s, ok := schemes[theme]; ok {
		return s
	}
	return schemes[DefaultTheme]
}

// ForItem resolves the theme for a display item. Closed-park cards
// always use the classic theme.
func ForItem(it model.Item) string {
	if it.Kind == model.ItemClosedPark {
		return DefaultTheme
	}
	return ForRide(it.Ride.Name)
}
