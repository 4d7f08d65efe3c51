package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/runoshun/tasktracker/internal/domain"
)

// Colors defines the palette used for terminal output.
var Colors = struct {
	Primary    lipgloss.Color
	Muted      lipgloss.Color
	Error      lipgloss.Color
	New        lipgloss.Color
	InProgress lipgloss.Color
	Done       lipgloss.Color
}{
	Primary:    lipgloss.Color("#6C5CE7"), // Purple
	Muted:      lipgloss.Color("#636E72"), // Gray
	Error:      lipgloss.Color("#D63031"), // Red
	New:        lipgloss.Color("#74B9FF"), // Light blue
	InProgress: lipgloss.Color("#FDCB6E"), // Yellow
	Done:       lipgloss.Color("#00B894"), // Green
}

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(Colors.Primary)
	mutedStyle   = lipgloss.NewStyle().Foreground(Colors.Muted)
	warnStyle    = lipgloss.NewStyle().Foreground(Colors.Error)
)

// statusStyle returns the badge style for a status.
func statusStyle(s domain.Status) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)
	switch s {
	case domain.StatusNew:
		return base.Foreground(Colors.New)
	case domain.StatusInProgress:
		return base.Foreground(Colors.InProgress)
	case domain.StatusDone:
		return base.Foreground(Colors.Done)
	default:
		return base
	}
}

// statusBadge renders a status for terminal output.
func statusBadge(s domain.Status) string {
	return statusStyle(s).Render(string(s))
}
