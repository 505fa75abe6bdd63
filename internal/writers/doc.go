// Package writers turns scored models and annotated residues into
// serialized outputs.
//
// Design:
//   - Writers own all presentation knowledge (TSV, CSV, JSON, JSONL).
//   - Core stays domain-only; batch stays orchestration-only.
//   - JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers
