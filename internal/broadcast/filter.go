package broadcast

import "strings"

// Policy decides which national broadcasts are worth showing.
// Fragments are matched case-insensitively as substrings of the display name.
type Policy struct {
	wanted   []string
	excluded []string
}

// Decision is the outcome of evaluating one game's broadcasts.
type Decision struct {
	Relevant bool
	// Matched lists the broadcast names that contain a wanted fragment, in feed order.
	Matched []string
}

// NewPolicy normalizes the wanted and excluded fragments. Blank fragments are
// dropped because an empty substring would match every name.
func NewPolicy(wanted, excluded []string) Policy {
	return Policy{
		wanted:   normalizeFragments(wanted),
		excluded: normalizeFragments(excluded),
	}
}

// Wanted returns the normalized wanted fragments.
func (p Policy) Wanted() []string {
	return append([]string(nil), p.wanted...)
}

// Excluded returns the normalized excluded fragments.
func (p Policy) Excluded() []string {
	return append([]string(nil), p.excluded...)
}

// Evaluate applies the policy to a game's broadcast names. Any excluded
// fragment rejects the whole game, including jointly labeled broadcasts
// such as "ESPN/ABC".
func (p Policy) Evaluate(names []string) Decision {
	if len(names) == 0 {
		return Decision{}
	}
	for _, name := range names {
		if containsAny(normalize(name), p.excluded) {
			return Decision{}
		}
	}

	var matched []string
	for _, name := range names {
		if containsAny(normalize(name), p.wanted) {
			matched = append(matched, strings.TrimSpace(name))
		}
	}
	return Decision{Relevant: len(matched) > 0, Matched: matched}
}

// IsWanted reports whether a single broadcast name passes the policy on its own.
func (p Policy) IsWanted(name string) bool {
	upper := normalize(name)
	if upper == "" || containsAny(upper, p.excluded) {
		return false
	}
	return containsAny(upper, p.wanted)
}

func containsAny(s string, fragments []string) bool {
	for _, f := range fragments {
		if strings.Contains(s, f) {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func normalizeFragments(in []string) []string {
	out := make([]string, 0, len(in))
	for _, f := range in {
		if n := normalize(f); n != "" {
			out = append(out, n)
		}
	}
	return out
}
