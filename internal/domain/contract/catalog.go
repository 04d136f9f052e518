package contract

import "strings"

// PatternRule maps a behavioral category to its trigger vocabulary and
// intrinsic risk tier. Rules are matched as case-insensitive substrings,
// never as regular expressions, so the contract stays portable.
type PatternRule struct {
	Name        string
	Keywords    []string
	Description string
	RiskTier    RiskTier
}

// Matches reports whether any keyword occurs in the source. The caller is
// expected to pass text already lowered once per analysis.
func (r PatternRule) Matches(lowered string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// Catalog is the fixed rule set, in definition order. Detection output is
// ordered by this slice, which makes results deterministic across runs.
// Read-only after init; safe for concurrent use.
var Catalog = []PatternRule{
	{
		Name:        "covenant",
		Keywords:    []string{"checklocktimeverify", "cltv", "sequence", "timelock", "op_cltv", "op_csv"},
		Description: "Covenant mechanism",
		RiskTier:    TierHigh,
	},
	{
		Name:        "multisig",
		Keywords:    []string{"multisig", "m_of_n", "op_checkmultisig", "threshold", "checkmultisig"},
		Description: "Multi-signature requirement",
		RiskTier:    TierMedium,
	},
	{
		Name:        "custody",
		Keywords:    []string{"custody", "custodian", "wallet", "key_management", "segregate", "hsm"},
		Description: "Custodial mechanism",
		RiskTier:    TierHigh,
	},
	{
		Name:        "oracle",
		Keywords:    []string{"oracle", "attestation", "signature", "verify", "external_data", "feed"},
		Description: "Oracle integration",
		RiskTier:    TierMedium,
	},
	{
		Name:        "yield",
		Keywords:    []string{"yield", "staking", "reward", "return", "dividend", "interest", "payout"},
		Description: "Yield generation mechanism",
		RiskTier:    TierHigh,
	},
	{
		Name:        "escrow",
		Keywords:    []string{"escrow", "dispute", "release", "condition", "atomic", "swap", "htlc"},
		Description: "Escrow mechanism",
		RiskTier:    TierMedium,
	},
	{
		Name:        "asset_backing",
		Keywords:    []string{"asset", "backing", "reserve", "collateral", "commodity", "proof_of_reserves"},
		Description: "Asset-backing mechanism",
		RiskTier:    TierHigh,
	},
	{
		Name:        "emergency",
		Keywords:    []string{"emergency", "pause", "halt", "stop", "shutdown", "recovery", "failsafe"},
		Description: "Emergency control mechanism",
		RiskTier:    TierMedium,
	},
}
