// internal/app/balance/balance.go

// Package balance derives per-member workload shares from a household's
// active cards. It is pure computation over records already fetched; it
// never touches the database.
package balance

import (
	"math"

	"github.com/tandemhq/tandem/internal/domain/models"
)

// Tolerance is how many percentage points a two-person split may deviate
// from 50/50 and still count as fair.
const Tolerance = 10.0

// Status classifies a household's current split.
type Status string

const (
	// StatusFair means the split is within Tolerance of even.
	StatusFair Status = "fair"
	// StatusNeedsReview means one member carries a noticeably larger share.
	StatusNeedsReview Status = "needs_review"
	// StatusUnknown means there is not enough data to judge: fewer or more
	// than two members holding cards, or no owned cards at all.
	StatusUnknown Status = "unknown"
)

// MemberLoad is one member's share of the household's active cards.
type MemberLoad struct {
	UserID  models.UserID `json:"userId"`
	Count   int           `json:"count"`
	Percent float64       `json:"percent"`
}

// Report is the derived balance picture for one household.
type Report struct {
	Status     Status       `json:"status"`
	Loads      []MemberLoad `json:"loads"`
	Unassigned int          `json:"unassigned"`
}

// Compute tallies active owned cards per member and judges fairness.
// Inactive cards and cards without an owner do not count toward anyone's
// load; unowned active cards are reported separately. Members are listed
// in the order given, including members who own nothing.
func Compute(members []models.UserID, cards []models.HouseholdCard) Report {
	counts := make(map[models.UserID]int, len(members))
	for _, m := range members {
		counts[m] = 0
	}

	unassigned := 0
	total := 0
	for _, c := range cards {
		if !c.IsActive {
			continue
		}
		if c.CurrentOwner == nil {
			unassigned++
			continue
		}
		// Owners no longer in the member list still count toward the total
		// but are not reported as a load.
		if _, ok := counts[*c.CurrentOwner]; ok {
			counts[*c.CurrentOwner]++
		}
		total++
	}

	loads := make([]MemberLoad, 0, len(members))
	for _, m := range members {
		l := MemberLoad{UserID: m, Count: counts[m]}
		if total > 0 {
			l.Percent = 100 * float64(counts[m]) / float64(total)
		}
		loads = append(loads, l)
	}

	return Report{
		Status:     judge(loads, total),
		Loads:      loads,
		Unassigned: unassigned,
	}
}

func judge(loads []MemberLoad, total int) Status {
	if len(loads) != 2 || total == 0 {
		return StatusUnknown
	}
	if math.Abs(50-loads[0].Percent) <= Tolerance {
		return StatusFair
	}
	return StatusNeedsReview
}
