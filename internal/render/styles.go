package render

// Glamour built-in style names
const (
	StyleDark       = "dark"
	StyleLight      = "light"
	StyleDracula    = "dracula"
	StyleTokyoNight = "tokyo-night"
	StylePink       = "pink"
	StyleNoTTY      = "notty"
	StyleASCII      = "ascii"
)

// StyleInfo describes a markdown style for the config menu
type StyleInfo struct {
	Name        string
	Description string
}

// AvailableStyles lists the built-in markdown styles
func AvailableStyles() []StyleInfo {
	return []StyleInfo{
		{Name: StyleDark, Description: "Dark terminals (default)"},
		{Name: StyleLight, Description: "Light terminals"},
		{Name: StyleDracula, Description: "Dracula palette"},
		{Name: StyleTokyoNight, Description: "Tokyo Night palette"},
		{Name: StylePink, Description: "Pink accents"},
		{Name: StyleNoTTY, Description: "No colors, keeps layout"},
		{Name: StyleASCII, Description: "ASCII only"},
	}
}

// StyleNames returns the built-in style names
func StyleNames() []string {
	styles := AvailableStyles()
	names := make([]string, len(styles))
	for i, s := range styles {
		names[i] = s.Name
	}
	return names
}

// IsBuiltinStyle reports whether name is a built-in glamour style.
// Anything else is treated as a path to a JSON style file.
func IsBuiltinStyle(name string) bool {
	for _, s := range AvailableStyles() {
		if s.Name == name {
			return true
		}
	}
	return false
}
