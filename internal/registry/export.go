package registry

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
)

// Export formats
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

var csvHeader = []string{"corp_code", "corp_name", "stock_code", "modify_date"}

// Export writes companies to w in the given format
func Export(w io.Writer, format string, companies []Company) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, companies)
	case FormatJSON:
		return WriteJSON(w, companies)
	default:
		return fmt.Errorf("unsupported export format %q (csv|json)", format)
	}
}

// WriteCSV writes a header row followed by one row per company
func WriteCSV(w io.Writer, companies []Company) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, c := range companies {
		if err := cw.Write([]string{c.CorpCode, c.CorpName, c.StockCode, c.ModifyDate}); err != nil {
			return fmt.Errorf("write csv row %s: %w", c.CorpCode, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteJSON writes companies as an indented UTF-8 JSON array (한글 그대로)
func WriteJSON(w io.Writer, companies []Company) error {
	if companies == nil {
		companies = []Company{}
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(companies); err != nil {
		return fmt.Errorf("encode companies: %w", err)
	}
	return nil
}
