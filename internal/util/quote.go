package util

import (
	"strings"

	"github.com/kballard/go-shellquote"
)

// QuoteArgs joins args into a single string that a shell would split
// back into the same arguments. Arguments containing newlines (such
// as inline SQL) are abbreviated.
func QuoteArgs(args ...string) string {
	cleaned := make([]string, len(args))
	copy(cleaned, args)
	for i := range args {
		if strings.ContainsRune(args[i], '\n') {
			cleaned[i] = "multi-line-query"
		}
	}
	return shellquote.Join(cleaned...)
}
