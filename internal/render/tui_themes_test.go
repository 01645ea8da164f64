package render

import "testing"

func TestTUIThemes(t *testing.T) {
	names := TUIThemeNames()
	if len(names) == 0 || names[0] != "tokyonight" {
		t.Fatalf("TUIThemeNames() = %v, want tokyonight first", names)
	}

	seen := map[string]bool{}
	for _, name := range names {
		if seen[name] {
			t.Errorf("duplicate theme %s", name)
		}
		seen[name] = true

		theme, ok := TUIThemeByName(name)
		if !ok {
			t.Fatalf("TUIThemeByName(%s) not found", name)
		}
		if theme.Description == "" || theme.Primary == "" || theme.Secondary == "" || theme.Text == "" || theme.Error == "" {
			t.Errorf("theme %s has empty fields: %+v", name, theme)
		}
	}
}

func TestSetTUITheme(t *testing.T) {
	defer SetTUITheme("tokyonight")

	if !SetTUITheme("nord") {
		t.Fatal("SetTUITheme(nord) = false")
	}
	if CurrentTUITheme().Name != "nord" {
		t.Errorf("CurrentTUITheme() = %s, want nord", CurrentTUITheme().Name)
	}

	if SetTUITheme("solarized-neon") {
		t.Error("SetTUITheme(unknown) = true")
	}
	if CurrentTUITheme().Name != "nord" {
		t.Error("unknown theme must not change the current theme")
	}
}
