// Package rules computes break deductions over gross worked minutes.
//
// A rule set is a sequence of (threshold, deduction) pairs. The engine uses
// the ratchet policy: a rule applies once gross minutes reach its threshold,
// but net minutes never drop below the net value achieved exactly at that
// threshold. Between 6:00 and 6:30 gross with a 30-minute deduction at 6:00,
// net holds at 6:00 instead of regressing, then grows again. This keeps net
// a non-decreasing function of gross, which the inverse lookup requires.
package rules

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/mkarsai/worktime/internal/tz"
)

// Rule deducts DeductionMin break minutes once gross minutes reach
// ThresholdMin.
type Rule struct {
	ThresholdMin int `json:"thresholdMin"`
	DeductionMin int `json:"deductionMin"`
}

// Default is the stock rule set: 30 min break after 6h, 50 min after 9h.
var Default = []Rule{
	{ThresholdMin: 360, DeductionMin: 30},
	{ThresholdMin: 540, DeductionMin: 50},
}

var (
	// ErrNegativeDuration is returned when an end instant precedes its start.
	ErrNegativeDuration = errors.New("negative duration")

	// ErrRuleOrder is returned at save time when rule thresholds are not
	// strictly increasing as entered.
	ErrRuleOrder = errors.New("rule thresholds must be strictly increasing")
)

// Summary is the result of applying a rule set to a worked interval.
type Summary struct {
	GrossMinutes     int
	DeductionMinutes int
	NetMinutes       int
}

// Normalize coerces a rule set into canonical form: negative values clamped
// to zero, rules sorted ascending by threshold, duplicate thresholds
// deduplicated keeping the later entry. Normalize is idempotent.
func Normalize(rs []Rule) []Rule {
	cleaned := make([]Rule, 0, len(rs))
	for _, r := range rs {
		if r.ThresholdMin < 0 {
			r.ThresholdMin = 0
		}
		if r.DeductionMin < 0 {
			r.DeductionMin = 0
		}
		cleaned = append(cleaned, r)
	}
	sort.SliceStable(cleaned, func(i, j int) bool {
		return cleaned[i].ThresholdMin < cleaned[j].ThresholdMin
	})

	deduped := make([]Rule, 0, len(cleaned))
	for _, r := range cleaned {
		if n := len(deduped); n > 0 && deduped[n-1].ThresholdMin == r.ThresholdMin {
			deduped[n-1] = r
			continue
		}
		deduped = append(deduped, r)
	}
	return deduped
}

// ValidateOrder rejects rule sets whose thresholds are not strictly
// increasing as entered. Normalization would silently reorder or merge such
// input; at save time that is a user mistake worth surfacing instead.
func ValidateOrder(rs []Rule) error {
	for i := 1; i < len(rs); i++ {
		if rs[i].ThresholdMin <= rs[i-1].ThresholdMin {
			return fmt.Errorf("%w: rule %d (%dm) does not exceed rule %d (%dm)",
				ErrRuleOrder, i+1, rs[i].ThresholdMin, i, rs[i-1].ThresholdMin)
		}
	}
	return nil
}

// NetFromGross maps gross worked minutes to net minutes under the ratchet
// policy. The result is non-decreasing in gross.
func NetFromGross(gross int, rs []Rule) int {
	net := gross
	if net < 0 {
		net = 0
	}

	prevDeduction := 0
	for _, r := range Normalize(rs) {
		if gross < r.ThresholdMin {
			break
		}
		thresholdNet := r.ThresholdMin - prevDeduction
		if thresholdNet < 0 {
			thresholdNet = 0
		}
		net = gross - r.DeductionMin
		if net < thresholdNet {
			net = thresholdNet
		}
		prevDeduction = r.DeductionMin
	}

	if net < 0 {
		net = 0
	}
	return net
}

// DeductionFor returns the minutes deducted from the given gross under the
// ratchet policy.
func DeductionFor(gross int, rs []Rule) int {
	d := gross - NetFromGross(gross, rs)
	if d < 0 {
		d = 0
	}
	return d
}

// Summarize computes gross, deduction and net minutes for a worked interval.
// Returns ErrNegativeDuration when end precedes start.
func Summarize(start, end time.Time, rs []Rule) (Summary, error) {
	gross := tz.MinutesBetween(start, end)
	if gross < 0 {
		return Summary{}, fmt.Errorf("%w: end %s before start %s",
			ErrNegativeDuration, end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	deduction := DeductionFor(gross, rs)
	return Summary{
		GrossMinutes:     gross,
		DeductionMinutes: deduction,
		NetMinutes:       gross - deduction,
	}, nil
}
