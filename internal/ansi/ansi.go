// Package ansi provides ANSI escape code constants and helpers for terminal output.
// All colored/styled terminal output should reference these constants to avoid duplication.
package ansi

import (
	"fmt"
	"image/color"
)

// ANSI SGR (Select Graphic Rendition) codes.
const (
	Reset   = "\033[0m"
	Bold    = "\033[1m"
	Dim     = "\033[2m"
	Blue    = "\033[34m"
	Yellow  = "\033[33m"
	Green   = "\033[32m"
	Red     = "\033[31m"
	Cyan    = "\033[36m"
	Magenta = "\033[35m"
)

// FgRGB returns the 24-bit foreground colour sequence for c.
func FgRGB(c color.Color) string {
	r, g, b := rgb8(c)
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", r, g, b)
}

// BgRGB returns the 24-bit background colour sequence for c.
func BgRGB(c color.Color) string {
	r, g, b := rgb8(c)
	return fmt.Sprintf("\033[48;2;%d;%d;%dm", r, g, b)
}

// Swatch renders width blank cells on background c followed by a reset.
func Swatch(c color.Color, width int) string {
	if width <= 0 {
		return ""
	}
	return fmt.Sprintf("%s%*s%s", BgRGB(c), width, "", Reset)
}

func rgb8(c color.Color) (r, g, b uint8) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return n.R, n.G, n.B
}
