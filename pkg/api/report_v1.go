// pkg/api/report_v1.go
package api

// ModelReportV1 is the stable JSON/JSONL schema for one scored model.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ModelReportV1 struct {
	RunID     string     `json:"run_id"`
	Model     string     `json:"model"`
	Path      string     `json:"path"`
	Metrics   []MetricV1 `json:"metrics,omitempty"`
	Error     string     `json:"error,omitempty"`
	ErrorKind string     `json:"error_kind,omitempty"` // taperr kind
}

// MetricV1 is one scored metric.
type MetricV1 struct {
	Key   string  `json:"key"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Flag  string  `json:"flag"` // "GREEN" | "AMBER" | "RED"
}

// RangeV1 is a closed interval; an absent bound is unbounded.
type RangeV1 struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// MetricCatalogV1 describes a metric and its flag ranges (--list-metrics).
type MetricCatalogV1 struct {
	Key   string    `json:"key"`
	Name  string    `json:"name"`
	Green []RangeV1 `json:"green"`
	Amber []RangeV1 `json:"amber"`
}
