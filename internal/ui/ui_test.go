package ui

import (
	"os"
	"testing"
)

// Theme state is global; these tests restore it and do not run in parallel.

func withTheme(t *testing.T, th Theme) {
	t.Helper()
	prev := GetCurrentTheme()
	SetCurrentTheme(th)
	t.Cleanup(func() { SetCurrentTheme(prev) })
}

func TestSelectTheme(t *testing.T) {
	withTheme(t, DarkTheme)
	t.Setenv("NO_COLOR", "")
	os.Unsetenv("NO_COLOR")

	tests := []struct {
		name    string
		noColor bool
		want    string
		wantErr bool
	}{
		{"", false, "dark", false},
		{"light", false, "light", false},
		{"orange", false, "orange", false},
		{"none", false, "none", false},
		{"light", true, "none", false},
		{"neon", false, "none", true}, // unchanged from the previous case
	}
	for _, tt := range tests {
		err := SelectTheme(tt.name, tt.noColor)
		if (err != nil) != tt.wantErr {
			t.Errorf("SelectTheme(%q, %v) error = %v, wantErr %v", tt.name, tt.noColor, err, tt.wantErr)
		}
		if got := GetCurrentTheme().Name; got != tt.want {
			t.Errorf("SelectTheme(%q, %v) -> %q, want %q", tt.name, tt.noColor, got, tt.want)
		}
	}
}

func TestSelectTheme_NoColorEnvWins(t *testing.T) {
	withTheme(t, DarkTheme)
	t.Setenv("NO_COLOR", "1")
	if err := SelectTheme("orange", false); err != nil {
		t.Fatal(err)
	}
	if GetCurrentTheme().Name != "none" {
		t.Errorf("NO_COLOR should win over the theme, got %q", GetCurrentTheme().Name)
	}
}

func TestThemeNames(t *testing.T) {
	got := ThemeNames()
	want := []string{"dark", "light", "none", "orange"}
	if len(got) != len(want) {
		t.Fatalf("ThemeNames() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ThemeNames() = %v, want %v", got, want)
		}
		if _, ok := LookupTheme(want[i]); !ok {
			t.Errorf("LookupTheme(%q) not found", want[i])
		}
	}
}

func TestInitTheme_NoColorFlag(t *testing.T) {
	withTheme(t, DarkTheme)
	InitTheme(true)
	if GetCurrentTheme().Name != "none" {
		t.Errorf("InitTheme(true) should disable colors, got %q", GetCurrentTheme().Name)
	}
}

func TestInitTheme_NoColorEnv(t *testing.T) {
	withTheme(t, DarkTheme)
	t.Setenv("NO_COLOR", "1")
	InitTheme(false)
	if GetCurrentTheme().Name != "none" {
		t.Errorf("NO_COLOR should disable colors, got %q", GetCurrentTheme().Name)
	}
}

func TestColorAccessors(t *testing.T) {
	withTheme(t, DarkTheme)
	if ColorRed() != DarkTheme.Error || ColorGreen() != DarkTheme.Success || ColorReset() != DarkTheme.Reset {
		t.Error("color accessors should follow DarkTheme")
	}

	SetCurrentTheme(NoColorTheme)
	for name, got := range map[string]string{
		"red": ColorRed(), "green": ColorGreen(), "yellow": ColorYellow(),
		"blue": ColorBlue(), "magenta": ColorMagenta(), "cyan": ColorCyan(),
		"grey": ColorGrey(), "bold": ColorBold(), "underline": ColorUnderline(),
		"reset": ColorReset(),
	} {
		if got != "" {
			t.Errorf("%s should be empty without colors, got %q", name, got)
		}
	}
}

func TestCurrentStyles_NoColor(t *testing.T) {
	withTheme(t, NoColorTheme)
	s := CurrentStyles()
	for _, text := range []string{"Result", "aimless"} {
		if got := s.Title.Render(text); got != text {
			t.Errorf("Title.Render(%q) = %q without colors", text, got)
		}
		if got := s.Failure.Render(text); got != text {
			t.Errorf("Failure.Render(%q) = %q without colors", text, got)
		}
	}
}

func TestCurrentStyles_Themed(t *testing.T) {
	withTheme(t, LightTheme)
	s := CurrentStyles()
	if got := s.Title.GetForeground(); got != color256(27) {
		t.Errorf("light title color = %v, want 27", got)
	}
	if !s.Title.GetBold() {
		t.Error("themed title should be bold")
	}
	if !s.Header.GetUnderline() {
		t.Error("themed header should be underlined")
	}
}
