package excel

// ReaderConfig holds configuration for spreadsheet decoding
type ReaderConfig struct {
	Sheet             string `json:"sheet"`                // Worksheet to read; empty means the first sheet
	UnzipSizeLimit    int64  `json:"unzip_size_limit"`     // Cap on the decompressed workbook size
	UnzipXMLSizeLimit int64  `json:"unzip_xml_size_limit"` // Cap on a single worksheet kept in memory
}

// DefaultReaderConfig returns sensible defaults for uploads capped at a few megabytes
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{
		UnzipSizeLimit:    256 << 20,
		UnzipXMLSizeLimit: 64 << 20,
	}
}
