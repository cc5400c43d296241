package output

import "github.com/charmbracelet/lipgloss"

// Styles is the lipgloss style set a renderer applies in text mode.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Success lipgloss.Style

	// Status glyphs carry their character via SetString, so
	// StatusSuccess.String() renders a styled check mark.
	StatusSuccess lipgloss.Style
	StatusFailed  lipgloss.Style

	// FilePath styles document provenance in reports.
	FilePath lipgloss.Style
}

// NewStyles builds the style set. With colored false every style is a plain
// passthrough, so rendered output carries no escape codes.
func NewStyles(colored bool) Styles {
	if !colored {
		plain := lipgloss.NewStyle()
		return Styles{
			Header1:       plain,
			Header2:       plain,
			Bold:          plain,
			Muted:         plain,
			Error:         plain,
			Warning:       plain,
			Info:          plain,
			Success:       plain,
			StatusSuccess: plain.SetString("✓"),
			StatusFailed:  plain.SetString("✗"),
			FilePath:      plain,
		}
	}

	return Styles{
		Header1:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81")),
		Header2:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75")),
		Bold:          lipgloss.NewStyle().Bold(true),
		Muted:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Error:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		Warning:       lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Info:          lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Success:       lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("42")).SetString("✓"),
		StatusFailed:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).SetString("✗"),
		FilePath:      lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
	}
}
