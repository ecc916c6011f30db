package excel

// RawSheet represents one sheet read with a chosen header row
type RawSheet struct {
	SheetName string     // Sheet the data came from
	HeaderRow int        // Effective 0-based header row after clamping
	Headers   []string   // Raw header cells, unnormalized
	Rows      [][]string // Data rows below the header, padded to header width
}
