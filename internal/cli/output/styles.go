package output

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	ColorPrimary   = lipgloss.AdaptiveColor{Light: "#6D28D9", Dark: "#A78BFA"}
	ColorSecondary = lipgloss.AdaptiveColor{Light: "#0E7490", Dark: "#22D3EE"}
	ColorAccent    = lipgloss.AdaptiveColor{Light: "#BE123C", Dark: "#F43F5E"}
	ColorSuccess   = lipgloss.AdaptiveColor{Light: "#047857", Dark: "#34D399"}
	ColorWarning   = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}
	ColorDim       = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
)

// Styles holds the lipgloss styles used by commands and the TUI.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Code    lipgloss.Style

	// Boxes for panels.
	Box        lipgloss.Style
	ErrorBox   lipgloss.Style
	SuccessBox lipgloss.Style
	InfoBox    lipgloss.Style
}

// NewStyles builds styles bound to lr's color profile.
func NewStyles(lr *lipgloss.Renderer) *Styles {
	box := lr.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	return &Styles{
		Header1: lr.NewStyle().Bold(true).Foreground(ColorPrimary),
		Header2: lr.NewStyle().Bold(true).Foreground(ColorSecondary),
		Bold:    lr.NewStyle().Bold(true),
		Muted:   lr.NewStyle().Foreground(ColorDim),
		Error:   lr.NewStyle().Foreground(ColorAccent),
		Success: lr.NewStyle().Foreground(ColorSuccess),
		Warning: lr.NewStyle().Foreground(ColorWarning),
		Info:    lr.NewStyle().Foreground(ColorSecondary),
		Code:    lr.NewStyle().Foreground(ColorPrimary),

		Box:        box.BorderForeground(ColorDim),
		ErrorBox:   box.BorderForeground(ColorAccent),
		SuccessBox: box.BorderForeground(ColorSuccess),
		InfoBox:    box.BorderForeground(ColorSecondary),
	}
}
