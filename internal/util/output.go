package util

import (
	"fmt"
	"os"

	"github.com/estimagic/momentsens/internal/config"
)

// Die is like fmt.Printf, but writes to stderr, adds a newline, and
// terminates the process.
func Die(format string, a ...interface{}) {
	Logger().Debug("exiting with error", zapMessage(format, a...))
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}

// Panicf is a composition of fmt.Sprintf and panic.
func Panicf(format string, a ...interface{}) {
	panic(fmt.Sprintf(format, a...))
}

// ProgressMsg prints a line announcing what is about to happen,
// unless --quiet was given.
func ProgressMsg(msg string) {
	if !config.Quiet {
		fmt.Println("-->", msg)
	}
}

// Log writes a status line to stderr, even with --quiet. It is used
// for warnings that are not the command's output, such as values
// left out of a plot.
func Log(a ...interface{}) {
	fmt.Fprintln(os.Stderr, a...)
}
