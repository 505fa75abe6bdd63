package writers

import (
	"encoding/json"
	"fmt"
	"io"

	"tapscore/internal/jsonlutil"
	"tapscore/internal/report"
	"tapscore/pkg/api"
)

// Residues holds the writers for per-residue annotation dumps.
var Residues = NewRegistry[api.ResidueV1]("residue")

func init() {
	Residues.Register("text", writeResidueText)
	Residues.Register("json", writeResidueJSON)
	Residues.Register("jsonl", writeResidueJSONL)
}

// StartResidueWriter starts a residue writer; sort groups output by model.
func StartResidueWriter(out io.Writer, format string, sort, header bool, bufSize int) (chan<- api.ResidueV1, <-chan error) {
	var sortFn func([]api.ResidueV1)
	if sort {
		sortFn = report.SortResidues
	}
	return Residues.Start(out, format, sortFn, header, bufSize)
}

const residueTextHeader = "model\tchain\tnumber\ttype\trsa\tsurface\tcdr\tanchor\tvicinity\tneighbors\tpartner\thydrophobicity\tcharge\n"

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func writeResidueText(w io.Writer, in <-chan api.ResidueV1, header bool) error {
	var err error
	if header {
		_, err = io.WriteString(w, residueTextHeader)
	}
	for r := range in {
		if err != nil {
			continue
		}
		partner := r.SaltBridgePartner
		if partner == "" {
			partner = "-"
		}
		_, err = fmt.Fprintf(w, "%s\t%s\t%d%s\t%s\t%.2f\t%s\t%d\t%s\t%s\t%d\t%s\t%.3f\t%.1f\n",
			r.Model, r.Chain, r.Number, r.InsertionCode, r.Type, r.RSA, yesNo(r.Surface), r.CDR,
			yesNo(r.Anchor), yesNo(r.InCDRVicinity), r.Neighbors, partner, r.Hydrophobicity, r.Charge)
	}
	return err
}

func writeResidueJSON(w io.Writer, in <-chan api.ResidueV1, _ bool) error {
	all := []api.ResidueV1{}
	for r := range in {
		all = append(all, r)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(all)
}

func writeResidueJSONL(w io.Writer, in <-chan api.ResidueV1, _ bool) error {
	return jsonlutil.Stream(w, in,
		func(enc *json.Encoder, r api.ResidueV1) error { return enc.Encode(r) },
		IsBrokenPipe,
	)
}
