package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Status output goes to stderr so stdout carries only command results
// (SVG, PNG, record JSON) and stays pipeable.
var uiOut io.Writer = os.Stderr

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	// StyleDim renders secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue renders paths and values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleCached      = lipgloss.NewStyle().Foreground(colorGreen)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
)

// status icons and their colors
var (
	iconSuccess = lipgloss.NewStyle().Foreground(colorGreen).Render("✓")
	iconError   = lipgloss.NewStyle().Foreground(colorRed).Render("✗")
	iconWarning = lipgloss.NewStyle().Foreground(colorYellow).Render("!")
	iconInfo    = lipgloss.NewStyle().Foreground(colorGray).Render("›")
)

func printStatus(icon, format string, args ...any) {
	fmt.Fprintln(uiOut, icon+" "+fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) { printStatus(iconSuccess, format, args...) }
func printError(format string, args ...any)   { printStatus(iconError, format, args...) }
func printWarning(format string, args ...any) { printStatus(iconWarning, format, args...) }
func printInfo(format string, args ...any)    { printStatus(iconInfo, format, args...) }

// printDetail prints an indented dim line under a status line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(uiOut, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints the path a command wrote.
func printFile(path string) {
	fmt.Fprintln(uiOut, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(uiOut, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printArtifact prints "kind · size · cached|fresh" for a produced artifact.
func printArtifact(kind string, size int, cached bool) {
	origin := StyleDim.Render("fresh")
	if cached {
		origin = styleCached.Render("cached")
	}
	sep := StyleDim.Render(" · ")
	fmt.Fprintln(uiOut, "  "+strings.Join([]string{StyleDim.Render(kind), StyleDim.Render(formatBytes(size)), origin}, sep))
}

// formatBytes renders a byte count with a binary unit.
func formatBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(uiOut, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}
