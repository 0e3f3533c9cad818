package rules

// All is the sentinel for report fields that do not single anything out:
// the variable of whole and row packs, and the row id of whole, col and
// group packs.
const All = "all"

// ReportRow is the canonical unit of a validation report: one verdict for
// one (pack, rule, variable, row) combination. Verdict true marks a
// breaker (rule violated), false an obeyer (rule satisfied).
type ReportRow struct {
	Pack    string `json:"pack"`
	Rule    string `json:"rule"`
	Var     string `json:"var"`
	ID      string `json:"id"`
	Verdict bool   `json:"verdict"`
}

// PackInfo is per-pack execution metadata. One entry is recorded per pack
// in invocation order, whether or not the pack succeeded.
type PackInfo struct {
	Name    string   `json:"name"`
	Type    PackType `json:"type"`
	OK      bool     `json:"ok"`
	Warning string   `json:"warning,omitempty"`
	Error   string   `json:"error,omitempty"`
}
