package ranking

import "sort"

// Tier is an ordered percentile bucket label, S highest through F lowest.
// TierUnranked is reserved for categories with no comparison data at all;
// it is never mixed with the real tiers.
type Tier string

// Tier labels.
const (
	TierS        Tier = "S"
	TierA        Tier = "A"
	TierB        Tier = "B"
	TierC        Tier = "C"
	TierD        Tier = "D"
	TierF        Tier = "F"
	TierUnranked Tier = "unranked"
)

// TierOrder lists the real tiers best-first. Consumers iterate this
// instead of ranging over the bucket map so rendering is deterministic.
var TierOrder = []Tier{TierS, TierA, TierB, TierC, TierD, TierF}

// tierCutoffs maps cumulative rank percentile to tier: the first cutoff
// strictly greater than position/n wins. F's cutoff is above 1 so the
// last item always lands somewhere.
var tierCutoffs = []struct {
	below float64
	tier  Tier
}{
	{0.10, TierS},
	{0.25, TierA},
	{0.50, TierB},
	{0.75, TierC},
	{0.90, TierD},
	{1.10, TierF},
}

// TierList groups standings into percentile buckets.
type TierList struct {
	Category         string
	Tiers            map[Tier][]Standing
	InsufficientData bool
}

// AssignTiers buckets standings by percentile of rank position: top 10%
// is S, then A to 25%, B to 50%, C to 75%, D to 90%, F below. Standings
// are ordered by score descending with item id as the stable tie-break.
//
// A block of identical scores is never split across two tiers: the whole
// block takes the tier of its first (highest-ranked) position. Without
// this the neutral 0.5 score, which many moves share early on, would make
// tier boundaries depend on input order.
//
// When the input carries the InsufficientData flag every move lands in
// the unranked bucket so callers can tell "no data yet" apart from a
// populated-but-weak tier list.
func AssignTiers(s Standings) TierList {
	tl := TierList{
		Category:         s.Category,
		Tiers:            make(map[Tier][]Standing),
		InsufficientData: s.InsufficientData,
	}
	if len(s.Entries) == 0 {
		return tl
	}

	sorted := make([]Standing, len(s.Entries))
	copy(sorted, s.Entries)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		return sorted[i].ItemID < sorted[j].ItemID
	})

	if tl.InsufficientData {
		tl.Tiers[TierUnranked] = sorted
		return tl
	}

	n := float64(len(sorted))
	for start := 0; start < len(sorted); {
		end := start + 1
		for end < len(sorted) && sorted[end].Score == sorted[start].Score {
			end++
		}
		tier := tierFor(float64(start) / n)
		tl.Tiers[tier] = append(tl.Tiers[tier], sorted[start:end]...)
		start = end
	}
	return tl
}

func tierFor(percentile float64) Tier {
	for _, c := range tierCutoffs {
		if percentile < c.below {
			return c.tier
		}
	}
	return TierF
}
