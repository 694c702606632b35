// Package identity encodes and decodes synthetic event instance ids.
//
// Recurring templates are expanded upstream into one list item per concrete
// occurrence. Each instance carries a single integer id packing the template
// id together with the occurrence date, so lists can treat occurrences as
// distinct while applications keep referencing the template. The packing
// contract is shared with the upstream expansion step and must not drift.
package identity

import "time"

// dateModulus is both the multiplier applied to the template id and the
// divisor that splits a synthetic id back apart. Ids at or below it are
// assumed to be plain template ids. The assumption is a heuristic, not a
// sound discriminator: a template id above the threshold would be
// mis-detected. Callers go through this package so a future explicit tag
// can replace the heuristic without touching them.
const dateModulus = 1_000_000

// Encode packs a template id and an occurrence-date integer into a synthetic
// instance id. dateDigits may carry 6 to 8 decimal digits (YYMMDD, YYYYMMDD
// and similar); it is normalized to its trailing six digits so that Decode's
// quotient/remainder split recovers the template id exactly.
func Encode(templateID, dateDigits int64) int64 {
	return templateID*dateModulus + dateDigits%dateModulus
}

// EncodeDate packs a template id with a concrete occurrence date.
func EncodeDate(templateID int64, occurrence time.Time) int64 {
	y, m, d := occurrence.Date()
	return Encode(templateID, int64(y%100)*10_000+int64(m)*100+int64(d))
}

// Decode recovers the template id from an id that may or may not be
// synthetic. Ids at or below the modulus pass through unchanged. Otherwise
// the id splits into quotient and remainder; the quotient is the template id
// only when the remainder is six digits long (a plausible date encoding).
// Anything else is treated as an already-plain template id.
func Decode(id int64) int64 {
	if id <= dateModulus {
		return id
	}
	remainder := id % dateModulus
	if remainder < 100_000 {
		// Remainder too short to be a date encoding; no legitimate
		// decomposition found.
		return id
	}
	return id / dateModulus
}

// IsSynthetic reports whether Decode would treat id as a packed instance id.
func IsSynthetic(id int64) bool {
	return Decode(id) != id
}
