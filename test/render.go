package test

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Plain strips escape sequences and carriage returns from a rendered view.
func Plain(view string) string {
	return strings.ReplaceAll(ansi.Strip(view), "\r", "")
}

// Lines splits a rendered view into its plain text rows, dropping trailing
// blanks on each row.
func Lines(view string) []string {
	rows := strings.Split(Plain(view), "\n")
	for i, row := range rows {
		rows[i] = strings.TrimRight(row, " ")
	}
	return rows
}
