package ui

import (
	"fmt"
	"os"
	"sort"
	"sync"
)

// Theme is a color scheme for terminal output. Every color field holds an
// ANSI escape sequence, empty when colors are disabled.
type Theme struct {
	Name      string
	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Info      string
	Bold      string
	Underline string
	Reset     string

	// codes are the 256-color indexes behind Primary, Secondary, Success
	// and Error; the lipgloss styles are derived from them.
	codes *themeCodes
}

type themeCodes struct {
	primary, secondary, success, failure int
}

// DefaultThemeName is the theme used when none is selected.
const DefaultThemeName = "dark"

func ansi256(code int) string { return fmt.Sprintf("\033[38;5;%dm", code) }

// newTheme builds a colored theme from 256-color indexes.
func newTheme(name string, primary, secondary, success, warning, failure, info int) Theme {
	return Theme{
		Name:      name,
		Primary:   ansi256(primary),
		Secondary: ansi256(secondary),
		Success:   ansi256(success),
		Warning:   ansi256(warning),
		Error:     ansi256(failure),
		Info:      ansi256(info),
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
		codes:     &themeCodes{primary, secondary, success, failure},
	}
}

var (
	// DarkTheme suits dark terminal backgrounds.
	DarkTheme = newTheme("dark", 39, 245, 82, 220, 196, 141)
	// LightTheme uses darker colors for light backgrounds.
	LightTheme = newTheme("light", 27, 240, 28, 130, 124, 54)
	// OrangeTheme is a warm variant of DarkTheme.
	OrangeTheme = newTheme("orange", 208, 245, 82, 214, 196, 69)
	// NoColorTheme disables colors (--no-color, NO_COLOR).
	NoColorTheme = Theme{Name: "none"}

	themes = map[string]Theme{
		DarkTheme.Name:    DarkTheme,
		LightTheme.Name:   LightTheme,
		OrangeTheme.Name:  OrangeTheme,
		NoColorTheme.Name: NoColorTheme,
	}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// ThemeNames lists the selectable theme names in sorted order.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupTheme returns the theme called name.
func LookupTheme(name string) (Theme, bool) {
	t, ok := themes[name]
	return t, ok
}

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SelectTheme activates the theme called name ("" selects DefaultThemeName).
// noColor and the NO_COLOR environment variable (https://no-color.org/)
// take precedence and select NoColorTheme. An unknown name leaves the
// active theme unchanged and returns an error.
func SelectTheme(name string, noColor bool) error {
	if name == "" {
		name = DefaultThemeName
	}
	t, ok := LookupTheme(name)
	if !ok {
		return fmt.Errorf("unknown theme %q (want one of %v)", name, ThemeNames())
	}
	if _, set := os.LookupEnv("NO_COLOR"); noColor || set {
		t = NoColorTheme
	}
	SetCurrentTheme(t)
	return nil
}

// InitTheme selects the default theme, or none when colors are disabled.
func InitTheme(noColor bool) {
	_ = SelectTheme(DefaultThemeName, noColor)
}
