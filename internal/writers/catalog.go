package writers

import (
	"encoding/json"
	"fmt"
	"io"

	"tapscore-core/metrics"
	"tapscore-core/tap"

	"tapscore/internal/report"
)

// WriteCatalog lists metrics with their flag ranges as text or JSON.
func WriteCatalog(w io.Writer, format string, entries []tap.CatalogEntry) error {
	switch format {
	case "json", "jsonl":
		enc := json.NewEncoder(w)
		if format == "json" {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(report.Catalog(entries))
	case "text", "csv":
		for _, e := range entries {
			if _, err := fmt.Fprintf(w, "%s (%s)\n  green: %s\n  amber: %s\n",
				e.Name, e.Key, metrics.Describe(e.Green), metrics.Describe(e.Amber)); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unknown catalog format %q", format)
}
