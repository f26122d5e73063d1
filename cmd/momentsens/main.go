// Package main implements the momentsens binary. It is the only
// public-facing entry point, since the Go packages are all internal.
package main

import "github.com/estimagic/momentsens/internal/cli"

// Main entry point for the momentsens binary.
func main() {
	cli.DoCLI()
}
