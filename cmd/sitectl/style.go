package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(20)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

func printTitle(w io.Writer, title string) {
	fmt.Fprintln(w, titleStyle.Render(title))
}

func printField(w io.Writer, key string, value any) {
	fmt.Fprintln(w, keyStyle.Render(key)+fmt.Sprint(value))
}

func yesNo(ok bool) string {
	if ok {
		return okStyle.Render("yes")
	}
	return warnStyle.Render("no")
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
