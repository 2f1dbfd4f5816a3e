package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the waypoint banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{` __      __                     _       _   `, "#38bdf8"},
		{` \ \    / /_ _ _  _ _ __  ___ (_)_ _ | |_ `, "#22d3ee"},
		{`  \ \/\/ / _' | || | '_ \/ _ \| | ' \|  _|`, "#2dd4bf"},
		{`   \_/\_/\__,_|\_, | .__/\___/|_|_||_|\__|`, "#34d399"},
		{`                |__/|_|                    `, "#4ade80"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// Styled colors s by kind label when the terminal supports it.
func Styled(s, kindLabel string) string {
	p := termenv.ColorProfile()
	color, ok := kindColors[kindLabel]
	if !ok {
		return s
	}
	return termenv.String(s).Foreground(p.Color(color)).String()
}

var kindColors = map[string]string{
	"Mission":  "#818cf8",
	"Device":   "#c084fc",
	"Scenario": "#f472b6",
	"Route":    "#fb923c",
	"Family":   "#facc15",
	"Rail":     "#34d399",
	"Segment":  "#22d3ee",
	"Point":    "#94a3b8",
}
