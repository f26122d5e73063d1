package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	tbl := New("index", "a", "beta")
	tbl.SetTitle("Sensitivity 1")
	tbl.AddRow("m1", "1", "2.5")
	tbl.AddRow("moment_2", "10", "3")

	want := "Sensitivity 1\n" +
		"index      a    beta\n" +
		"--------   --   ----\n" +
		"m1         1    2.5\n" +
		"moment_2   10   3\n"
	assert.Equal(t, want, tbl.String())
}

func TestAddRowWrongLength(t *testing.T) {
	tbl := New("a", "b")
	assert.Panics(t, func() { tbl.AddRow("only one") })
}

func TestDuplicateHeader(t *testing.T) {
	assert.Panics(t, func() { New("a", "a") })
}
