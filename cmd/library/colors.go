package main

import (
	"os"
	"strings"
)

// ANSI color codes for terminal output.
const (
	ColorReset = "\033[0m"
	ColorBold  = "\033[1m"
	ColorGray  = "\033[90m"

	ColorBrightRed    = "\033[91m"
	ColorBrightGreen  = "\033[92m"
	ColorBrightYellow = "\033[93m"
	ColorBrightCyan   = "\033[96m"
)

// colorEnabled is switched off by -no-color and when stdout is not a color terminal.
var colorEnabled = ColorSupported()

// ColorSupported checks TERM and COLORTERM for a color-capable terminal. NO_COLOR disables colors.
func ColorSupported() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	term := strings.ToLower(os.Getenv("TERM"))
	for _, colorTerm := range []string{"xterm", "screen", "tmux", "color", "ansi"} {
		if strings.Contains(term, colorTerm) {
			return true
		}
	}

	return os.Getenv("COLORTERM") != ""
}

// Colorize wraps text with color codes if colors are enabled.
func Colorize(text, color string) string {
	if !colorEnabled {
		return text
	}

	return color + text + ColorReset
}

func Success(text string) string { return Colorize(text, ColorBrightGreen) }
func Error(text string) string   { return Colorize(text, ColorBrightRed) }
func Warning(text string) string { return Colorize(text, ColorBrightYellow) }
func Info(text string) string    { return Colorize(text, ColorBrightCyan) }
func Dim(text string) string     { return Colorize(text, ColorGray) }

// Header renders a section title.
func Header(text string) string {
	return Colorize(Info(text), ColorBold)
}

// Separator renders a horizontal line.
func Separator(length int) string {
	return Dim(strings.Repeat("─", length))
}
