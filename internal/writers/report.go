package writers

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"tapscore/internal/jsonlutil"
	"tapscore/internal/report"
	"tapscore/pkg/api"
)

// Reports holds the writers for scored models. Failed models carry an error
// and are only written by the JSON formats; text and CSV skip them.
var Reports = NewRegistry[api.ModelReportV1]("report")

func init() {
	Reports.Register("text", writeReportText)
	Reports.Register("csv", writeReportCSV)
	Reports.Register("json", writeReportJSON)
	Reports.Register("jsonl", writeReportJSONL)
}

// StartReportWriter starts a report writer; sort orders output by model path.
func StartReportWriter(out io.Writer, format string, sort, header bool, bufSize int) (chan<- api.ModelReportV1, <-chan error) {
	var sortFn func([]api.ModelReportV1)
	if sort {
		sortFn = report.SortReports
	}
	return Reports.Start(out, format, sortFn, header, bufSize)
}

const reportTextHeader = "model\tmetric\tvalue\tflag\n"

func writeReportText(w io.Writer, in <-chan api.ModelReportV1, header bool) error {
	var err error
	if header {
		_, err = io.WriteString(w, reportTextHeader)
	}
	for r := range in {
		if err != nil || r.Error != "" {
			continue
		}
		for _, m := range r.Metrics {
			if _, err = fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\n", r.Model, m.Name, m.Value, m.Flag); err != nil {
				break
			}
		}
	}
	return err
}

func writeReportCSV(w io.Writer, in <-chan api.ModelReportV1, header bool) error {
	cw := csv.NewWriter(w)
	if header {
		_ = cw.Write([]string{"Model", "Metric", "Value", "Flag"})
	}
	for r := range in {
		if r.Error != "" {
			continue
		}
		for _, m := range r.Metrics {
			_ = cw.Write([]string{r.Model, m.Name, strconv.FormatFloat(m.Value, 'f', 2, 64), m.Flag})
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeReportJSON(w io.Writer, in <-chan api.ModelReportV1, _ bool) error {
	all := []api.ModelReportV1{}
	for r := range in {
		all = append(all, r)
	}
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(all); err != nil {
		return err
	}
	return bw.Flush()
}

func writeReportJSONL(w io.Writer, in <-chan api.ModelReportV1, _ bool) error {
	return jsonlutil.Stream(w, in,
		func(enc *json.Encoder, r api.ModelReportV1) error { return enc.Encode(r) },
		IsBrokenPipe,
	)
}
