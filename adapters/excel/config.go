package excel

// ReaderConfig holds configuration for workbook reading
type ReaderConfig struct {
	MaxHeaderScan int `json:"max_header_scan"` // Deepest row selectable as header
	PreviewRows   int `json:"preview_rows"`    // Rows shown before a header is picked
}

// DefaultReaderConfig returns sensible defaults for workbook reading
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{
		MaxHeaderScan: 50,
		PreviewRows:   15,
	}
}
