// Package report converts core results into the pkg/api wire types.
package report

import (
	"sort"

	"tapscore-core/metrics"
	"tapscore-core/structure"
	"tapscore-core/tap"
	"tapscore-core/taperr"

	"tapscore/pkg/api"
)

// FromScore converts a scored model.
func FromScore(runID string, r *tap.Report) api.ModelReportV1 {
	out := api.ModelReportV1{
		RunID:   runID,
		Model:   r.Structure.Name,
		Path:    r.Path,
		Metrics: make([]api.MetricV1, len(r.Results)),
	}
	for i, m := range r.Results {
		out.Metrics[i] = api.MetricV1{Key: m.Key, Name: m.Name, Value: m.Value, Flag: string(m.Flag)}
	}
	return out
}

// Failure describes a model that could not be scored.
func Failure(runID, path string, err error) api.ModelReportV1 {
	out := api.ModelReportV1{
		RunID: runID,
		Model: structure.ModelName(path),
		Path:  path,
		Error: err.Error(),
	}
	if k, ok := taperr.KindOf(err); ok {
		out.ErrorKind = string(k)
	}
	return out
}

// Residues flattens the annotations of s in structure order.
func Residues(runID string, s *structure.Structure) []api.ResidueV1 {
	res := s.Residues()
	out := make([]api.ResidueV1, len(res))
	for i, r := range res {
		v := api.ResidueV1{
			RunID:          runID,
			Model:          s.Name,
			Chain:          r.ID.Chain,
			Number:         r.ID.Num,
			InsertionCode:  r.ID.ICode,
			Type:           r.Type,
			RSA:            r.Ann.RelativeSurfaceArea,
			Surface:        r.IsSurface(),
			CDR:            r.Ann.CDRNumber,
			Anchor:         r.IsAnchor(),
			InCDRVicinity:  r.Ann.InCDRVicinity,
			Neighbors:      len(r.Ann.Neighbors),
			Hydrophobicity: r.Ann.Hydrophobicity,
			Charge:         r.Ann.Charge,
		}
		if p := r.Ann.SaltBridgePartner; p != nil {
			v.SaltBridgePartner = p.String()
		}
		out[i] = v
	}
	return out
}

// Catalog converts a metric listing.
func Catalog(entries []tap.CatalogEntry) []api.MetricCatalogV1 {
	out := make([]api.MetricCatalogV1, len(entries))
	for i, e := range entries {
		out[i] = api.MetricCatalogV1{Key: e.Key, Name: e.Name, Green: ranges(e.Green), Amber: ranges(e.Amber)}
	}
	return out
}

func ranges(rs []metrics.Range) []api.RangeV1 {
	out := make([]api.RangeV1, len(rs))
	for i, r := range rs {
		out[i] = api.RangeV1{Min: r.Min, Max: r.Max}
	}
	return out
}

// SortReports orders reports by path, then model name.
func SortReports(rs []api.ModelReportV1) {
	sort.SliceStable(rs, func(i, j int) bool {
		if rs[i].Path != rs[j].Path {
			return rs[i].Path < rs[j].Path
		}
		return rs[i].Model < rs[j].Model
	})
}

// SortResidues orders residues by model, keeping structure order within one.
func SortResidues(rs []api.ResidueV1) {
	sort.SliceStable(rs, func(i, j int) bool { return rs[i].Model < rs[j].Model })
}
