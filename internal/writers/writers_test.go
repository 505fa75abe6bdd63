package writers

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tapscore-core/metrics"
	"tapscore-core/tap"

	"tapscore/pkg/api"
)

func reports() []api.ModelReportV1 {
	return []api.ModelReportV1{
		{RunID: "r", Model: "b", Path: "/x/b.pdb", Metrics: []api.MetricV1{
			{Key: "sfvcsp", Name: "SFvCSP", Value: -3.804, Flag: "GREEN"},
		}},
		{RunID: "r", Model: "c", Path: "/x/c.pdb", Error: "psa not found", ErrorKind: "tool_unavailable"},
		{RunID: "r", Model: "a", Path: "/x/a.pdb", Metrics: []api.MetricV1{
			{Key: "total_cdr_length", Name: "Total IMGT CDR Length", Value: 48, Flag: "GREEN"},
			{Key: "positive_patch", Name: "Positive Patch Score", Value: 1.5, Flag: "AMBER"},
		}},
	}
}

func runReports(t *testing.T, format string, sort, header bool) string {
	t.Helper()
	var b bytes.Buffer
	in, done := StartReportWriter(&b, format, sort, header, 1)
	for _, r := range reports() {
		in <- r
	}
	close(in)
	require.NoError(t, <-done)
	return b.String()
}

func TestReportTextSortedWithHeader(t *testing.T) {
	got := runReports(t, "text", true, true)
	want := "model\tmetric\tvalue\tflag\n" +
		"a\tTotal IMGT CDR Length\t48.00\tGREEN\n" +
		"a\tPositive Patch Score\t1.50\tAMBER\n" +
		"b\tSFvCSP\t-3.80\tGREEN\n"
	assert.Equal(t, want, got)
}

func TestReportTextStreamsInArrivalOrder(t *testing.T) {
	got := runReports(t, "text", false, false)
	assert.True(t, strings.HasPrefix(got, "b\tSFvCSP"), got)
}

func TestReportCSV(t *testing.T) {
	got := runReports(t, "csv", true, true)
	want := "Model,Metric,Value,Flag\n" +
		"a,Total IMGT CDR Length,48.00,GREEN\n" +
		"a,Positive Patch Score,1.50,AMBER\n" +
		"b,SFvCSP,-3.80,GREEN\n"
	assert.Equal(t, want, got)
}

func TestReportJSONKeepsFailures(t *testing.T) {
	var got []api.ModelReportV1
	require.NoError(t, json.Unmarshal([]byte(runReports(t, "json", true, false)), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].Model)
	assert.Equal(t, "tool_unavailable", got[2].ErrorKind)
}

func TestReportJSONEmptyIsArray(t *testing.T) {
	var b bytes.Buffer
	in, done := StartReportWriter(&b, "json", false, false, 1)
	close(in)
	require.NoError(t, <-done)
	assert.Equal(t, "[]\n", b.String())
}

func TestReportJSONL(t *testing.T) {
	lines := strings.Split(strings.TrimSpace(runReports(t, "jsonl", false, false)), "\n")
	require.Len(t, lines, 3)
	var r api.ModelReportV1
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &r))
	assert.Equal(t, "psa not found", r.Error)
}

func TestUnknownFormat(t *testing.T) {
	in, done := StartReportWriter(io.Discard, "xml", false, false, 1)
	in <- api.ModelReportV1{}
	close(in)
	err := <-done
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown report format "xml"`)
	assert.Contains(t, err.Error(), "csv | json | jsonl | text")
}

func TestResidueText(t *testing.T) {
	var b bytes.Buffer
	in, done := StartResidueWriter(&b, "text", true, true, 4)
	in <- api.ResidueV1{Model: "m2", Chain: "H", Number: 1, Type: "GLY"}
	in <- api.ResidueV1{Model: "m1", Chain: "H", Number: 111, InsertionCode: "A", Type: "LYS", RSA: 40, Surface: true,
		CDR: 3, InCDRVicinity: true, Neighbors: 4, SaltBridgePartner: "L50", Hydrophobicity: 1.0, Charge: 0}
	close(in)
	require.NoError(t, <-done)
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "m1\tH\t111A\tLYS\t40.00\tyes\t3\tno\tyes\t4\tL50\t1.000\t0.0", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "m2\tH\t1\tGLY"))
	assert.Contains(t, lines[2], "\t-\t")
}

func TestCatalog(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, WriteCatalog(&b, "text", tap.Catalog(metrics.Default())))
	assert.Contains(t, b.String(), "SFvCSP (sfvcsp)\n  green: -4.2 to inf\n  amber: -20.5 to -4.2\n")

	b.Reset()
	require.NoError(t, WriteCatalog(&b, "json", tap.Catalog(metrics.Default())))
	var cat []api.MetricCatalogV1
	require.NoError(t, json.Unmarshal(b.Bytes(), &cat))
	require.Len(t, cat, 5)
	assert.Nil(t, cat[3].Green[0].Max)

	assert.Error(t, WriteCatalog(&b, "xml", nil))
}

func TestIsBrokenPipe(t *testing.T) {
	assert.True(t, IsBrokenPipe(syscall.EPIPE))
	assert.True(t, IsBrokenPipe(io.ErrClosedPipe))
	assert.False(t, IsBrokenPipe(io.EOF))
	assert.False(t, IsBrokenPipe(nil))
}
