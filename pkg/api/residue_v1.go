// pkg/api/residue_v1.go
package api

// ResidueV1 is the stable schema for one annotated residue (tap-annotate).
type ResidueV1 struct {
	RunID             string  `json:"run_id"`
	Model             string  `json:"model"`
	Chain             string  `json:"chain"`
	Number            int     `json:"number"`
	InsertionCode     string  `json:"insertion_code,omitempty"`
	Type              string  `json:"type"`
	RSA               float64 `json:"rsa"`
	Surface           bool    `json:"surface"`
	CDR               int     `json:"cdr"` // 0 = framework
	Anchor            bool    `json:"anchor"`
	InCDRVicinity     bool    `json:"in_cdr_vicinity"`
	Neighbors         int     `json:"neighbors"`
	SaltBridgePartner string  `json:"salt_bridge_partner,omitempty"` // chain+number, e.g. "L50"
	Hydrophobicity    float64 `json:"hydrophobicity"`
	Charge            float64 `json:"charge"`
}
