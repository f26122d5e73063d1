package cli

// outputFormat is an enum representing the argument of the --format
// option.
type outputFormat int

// Values for outputFormat.
const (
	// --format=table
	outputFormatTable outputFormat = iota

	// --format=json
	outputFormatJSON
)

// reshapedJSON is one element of the array printed by
// 'momentsens reshape --format=json'. Missing values are null.
type reshapedJSON struct {
	Title  string       `json:"title"`
	Params []string     `json:"params"`
	Index  []string     `json:"index"`
	Values [][]*float64 `json:"values"`
}
