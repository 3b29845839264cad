// Package matching holds the pure match rules: mutual-radius eligibility,
// candidate selection and mutual match resolution.
package matching

import (
	"math"
	"sort"

	"friender/pkg/geo"

	"github.com/samber/lo"
)

// Profile is the engine's view of a user.
type Profile struct {
	ID       uint
	Location int
	Radius   int
}

type Candidate struct {
	Profile
	// Distance to the requester in miles, request scoped.
	Distance float64
}

// Eligible reports whether a and b are inside each other's radius.
func Eligible(calc geo.Calculator, a, b Profile) (float64, bool) {
	d, err := calc.Distance(a.Location, b.Location)
	if err != nil {
		return 0, false
	}
	return d, d < float64(a.Radius) && d < float64(b.Radius)
}

// SelectCandidate returns the lowest-id pool member that is mutually in range
// and not excluded. The requester is always excluded. Pairs whose distance
// cannot be computed are skipped.
func SelectCandidate(calc geo.Calculator, requester Profile, pool []Profile, excluded []uint) (Candidate, bool) {
	skip := make(map[uint]struct{}, len(excluded)+1)
	for _, id := range excluded {
		skip[id] = struct{}{}
	}
	skip[requester.ID] = struct{}{}

	ordered := lo.Filter(pool, func(p Profile, _ int) bool {
		_, ok := skip[p.ID]
		return !ok
	})
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	for _, p := range ordered {
		if d, ok := Eligible(calc, requester, p); ok {
			return Candidate{Profile: p, Distance: d}, true
		}
	}
	return Candidate{}, false
}

// MutualMatches intersects the ids self likes with the ids that like self,
// sorted ascending.
func MutualMatches(liked, likers []uint, self uint) []uint {
	out := lo.Without(lo.Intersect(lo.Uniq(liked), lo.Uniq(likers)), self)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func RoundMiles(d float64) int {
	return int(math.Round(d))
}
