// Package table provides a simple API for outputting tabular data to
// stdout. It is used to implement --format=table.
package table

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/estimagic/momentsens/internal/util"
	"golang.org/x/term"
)

// New creates a new table with the given headers. The table has no
// rows; add them with AddRow. The headers should all be unique.
func New(headers ...string) Table {
	seen := map[string]bool{}
	for _, header := range headers {
		if seen[header] {
			util.Panicf("duplicate table header: %s", header)
		} else {
			seen[header] = true
		}
	}
	return Table{headers: headers}
}

// SetTitle sets a line printed above the headers.
func (t *Table) SetTitle(title string) {
	t.title = title
}

// AddRow adds a row at the end of a table. The length of the row must
// be the same as the number of headers in the table, or a panic will
// be generated.
func (t *Table) AddRow(row ...string) {
	if len(row) != len(t.headers) {
		util.Panicf(
			"wrong number of columns in table row (%d != %d)",
			len(row), len(t.headers),
		)
	}
	t.rows = append(t.rows, row)
}

// lines formats the table, aligning columns by inserting whitespace.
// It also returns the width of the widest line.
func (t *Table) lines() ([]string, int) {
	lines := []string{}
	widths := make([]int, len(t.headers))
	for j := range t.headers {
		widths[j] = len([]rune(t.headers[j]))
	}
	for i := range t.rows {
		for j := range t.rows[i] {
			if len([]rune(t.rows[i][j])) > widths[j] {
				widths[j] = len([]rune(t.rows[i][j]))
			}
		}
	}
	fields := make([]string, len(t.headers))
	for j := range t.headers {
		padding := widths[j] - len([]rune(t.headers[j]))
		fields[j] = t.headers[j] + strings.Repeat(" ", padding)
	}
	lines = append(lines, strings.TrimRight(strings.Join(fields, "   "), " "))
	for j := range t.headers {
		fields[j] = strings.Repeat("-", widths[j])
	}
	separator := strings.Join(fields, "   ")
	lines = append(lines, separator)
	for i := range t.rows {
		for j := range t.rows[i] {
			padding := widths[j] - len([]rune(t.rows[i][j]))
			fields[j] = t.rows[i][j] + strings.Repeat(" ", padding)
		}
		lines = append(lines, strings.TrimRight(strings.Join(fields, "   "), " "))
	}
	if t.title != "" {
		lines = append([]string{t.title}, lines...)
	}
	return lines, len([]rune(separator))
}

// String returns the formatted table.
func (t *Table) String() string {
	lines, _ := t.lines()
	return strings.Join(lines, "\n") + "\n"
}

// printOrPage either prints text to stdout or invokes the 'less'
// utility to display it. 'less' is invoked if stdout is connected to
// a tty, the provided width is too wide for the tty, and 'less' is
// actually installed.
func printOrPage(text string, width int) {
	termWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < termWidth {
		fmt.Print(text)
		return
	}

	less, err := exec.LookPath("less")
	if err != nil {
		fmt.Print(text)
		return
	}

	util.ProgressMsg("less -S")

	cmd := exec.Cmd{
		Path: less,
		Args: []string{"less", "-S"},
		// less needs the charset when LANG is unset (e.g. in
		// Docker), or it escapes non-ASCII parameter names.
		Env:    append(os.Environ(), "LESSCHARSET=utf-8"),
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	stdin, err := cmd.StdinPipe()
	if err != nil {
		util.Die("connecting pipe to pager stdin: %s", err)
	}

	if err := cmd.Start(); err != nil {
		util.Die("running pager: %s", err)
	}
	if _, err := io.WriteString(stdin, text); err != nil {
		util.Die("writing to pager: %s", err)
	}
	if err := stdin.Close(); err != nil {
		util.Die("closing pipe to pager stdin: %s", err)
	}
	if err := cmd.Wait(); err != nil {
		util.Die("running pager: %s", err)
	}
}

// Print writes the table to stdout. If the table is too wide for the
// current terminal, and the 'less' utility is installed, Print
// invokes it with the -S option to truncate long lines and allow
// horizontal scrolling.
func (t *Table) Print() {
	lines, width := t.lines()
	printOrPage(strings.Join(lines, "\n")+"\n", width)
}
