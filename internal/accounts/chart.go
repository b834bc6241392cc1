// Package accounts holds the chart-of-accounts reference table used to
// label expense heads in reports. The chart is static catalog data consumed
// as an injected, read-only value so tests can supply alternate charts
// without touching shared state.
package accounts

// Head is one entry in the chart of accounts.
type Head struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Chart maps expense-head codes to their catalog entries.
type Chart struct {
	heads map[string]Head
}

// NewChart builds a chart from the given heads.
func NewChart(heads []Head) *Chart {
	m := make(map[string]Head, len(heads))
	for _, h := range heads {
		m[h.Code] = h
	}
	return &Chart{heads: m}
}

// Lookup returns the head for a code, if present.
func (c *Chart) Lookup(code string) (Head, bool) {
	h, ok := c.heads[code]
	return h, ok
}

// Label returns the display name for a code, falling back to the code
// itself for heads outside the catalog.
func (c *Chart) Label(code string) string {
	if h, ok := c.heads[code]; ok {
		return h.Name
	}
	return code
}

// Heads returns a copy of all entries.
func (c *Chart) Heads() []Head {
	out := make([]Head, 0, len(c.heads))
	for _, h := range c.heads {
		out = append(out, h)
	}
	return out
}

// Default returns a fresh copy of the standard society chart. Each call
// returns a new value; callers own their copy.
func Default() *Chart {
	return NewChart([]Head{
		{Code: "SEC", Name: "Security", Category: "services"},
		{Code: "HKP", Name: "Housekeeping", Category: "services"},
		{Code: "LIFT", Name: "Lift AMC", Category: "maintenance"},
		{Code: "PEST", Name: "Pest Control", Category: "maintenance"},
		{Code: "GARD", Name: "Gardening", Category: "maintenance"},
		{Code: "ELEC", Name: "Common Area Electricity", Category: "utilities"},
		{Code: "WTR", Name: "Water Charges", Category: "utilities"},
		{Code: "SINK", Name: "Sinking Fund", Category: "reserves"},
		{Code: "MISC", Name: "Miscellaneous", Category: "other"},
	})
}
