package table

// Table represents a set of simple tabular data. Tables have a list
// of header cells and a list of rows. Each row must be the same
// length as the list of header cells. Tables can be formatted nicely
// to stdout. Construct a table with New, then use AddRow and Print.
type Table struct {
	title   string
	headers []string
	rows    [][]string
}
