package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Theme holds the visual configuration for the TUI. It can be overridden
// from a yaml file; unset fields keep their defaults.
type Theme struct {
	Colors ThemeColors `yaml:"colors"`
	Icons  ThemeIcons  `yaml:"icons"`
	Title  ThemeTitle  `yaml:"title"`
}

// ThemeColors defines the color palette.
type ThemeColors struct {
	Primary string `yaml:"primary"` // title bar, focused borders
	Success string `yaml:"success"` // PASS, passed assertions
	Error   string `yaml:"error"`   // FAIL, errors
	Warning string `yaml:"warning"` // busy/pending
	Muted   string `yaml:"muted"`   // secondary text
	Text    string `yaml:"text"`    // normal text
	Border  string `yaml:"border"`  // unfocused borders
}

// ThemeIcons defines the status glyphs.
type ThemeIcons struct {
	Pass    string `yaml:"pass"`
	Fail    string `yaml:"fail"`
	Pending string `yaml:"pending"`
	Prompt  string `yaml:"prompt"`
}

// ThemeTitle defines the title bar.
type ThemeTitle struct {
	Text string `yaml:"text"`
	Icon string `yaml:"icon"`
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() *Theme {
	return &Theme{
		Colors: ThemeColors{
			Primary: "#7D56F4",
			Success: "#04B575",
			Error:   "#FF5F56",
			Warning: "#FFBD2E",
			Muted:   "#626262",
			Text:    "#CCCCCC",
			Border:  "#444444",
		},
		Icons: ThemeIcons{
			Pass:    "✓",
			Fail:    "✗",
			Pending: "○",
			Prompt:  "❯",
		},
		Title: ThemeTitle{
			Text: "n8n-render",
			Icon: "⚡",
		},
	}
}

// LoadTheme reads a yaml theme file over the defaults. An empty path
// returns the defaults unchanged.
func LoadTheme(path string) (*Theme, error) {
	theme := DefaultTheme()
	if path == "" {
		return theme, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme: %w", err)
	}
	if err := yaml.Unmarshal(data, theme); err != nil {
		return nil, fmt.Errorf("parsing theme: %w", err)
	}
	return theme, nil
}

// CompiledTheme holds pre-built lipgloss styles.
type CompiledTheme struct {
	TitleStyle     lipgloss.Style
	PaneStyle      lipgloss.Style
	FocusPaneStyle lipgloss.Style
	PaneTitleStyle lipgloss.Style
	StatusBarStyle lipgloss.Style
	PassStyle      lipgloss.Style
	FailStyle      lipgloss.Style
	BusyStyle      lipgloss.Style
	MutedStyle     lipgloss.Style
	TextStyle      lipgloss.Style
	ErrorTextStyle lipgloss.Style

	Icons     ThemeIcons
	TitleText string
	TitleIcon string
}

// Compile builds lipgloss styles from the theme configuration.
func (t *Theme) Compile() *CompiledTheme {
	primary := lipgloss.Color(t.Colors.Primary)
	success := lipgloss.Color(t.Colors.Success)
	errorC := lipgloss.Color(t.Colors.Error)
	warning := lipgloss.Color(t.Colors.Warning)
	muted := lipgloss.Color(t.Colors.Muted)
	text := lipgloss.Color(t.Colors.Text)
	border := lipgloss.Color(t.Colors.Border)

	return &CompiledTheme{
		TitleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(primary).
			Padding(0, 1),
		PaneStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		FocusPaneStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(0, 1),
		PaneTitleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),
		StatusBarStyle: lipgloss.NewStyle().
			Foreground(muted),
		PassStyle:      lipgloss.NewStyle().Foreground(success).Bold(true),
		FailStyle:      lipgloss.NewStyle().Foreground(errorC).Bold(true),
		BusyStyle:      lipgloss.NewStyle().Foreground(warning),
		MutedStyle:     lipgloss.NewStyle().Foreground(muted),
		TextStyle:      lipgloss.NewStyle().Foreground(text),
		ErrorTextStyle: lipgloss.NewStyle().Foreground(errorC),

		Icons:     t.Icons,
		TitleText: t.Title.Text,
		TitleIcon: t.Title.Icon,
	}
}
