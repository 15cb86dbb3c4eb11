package rules

import "time"

// TargetGrossForNet returns the smallest non-negative gross-minute value
// whose net is at least targetNet. Net is non-decreasing in gross, so a
// binary search over a doubled upper bound finds the exact boundary.
// Returns 0 when targetNet is zero or negative.
func TargetGrossForNet(targetNet int, rs []Rule) int {
	if targetNet <= 0 {
		return 0
	}

	low, high := 0, targetNet
	for NetFromGross(high, rs) < targetNet {
		high *= 2
	}
	for low < high {
		mid := (low + high) / 2
		if NetFromGross(mid, rs) >= targetNet {
			high = mid
		} else {
			low = mid + 1
		}
	}
	return low
}

// TargetTimeForNet returns the instant at which a session started at checkIn
// reaches targetNet net minutes.
func TargetTimeForNet(checkIn time.Time, targetNet int, rs []Rule) time.Time {
	gross := TargetGrossForNet(targetNet, rs)
	return checkIn.Add(time.Duration(gross) * time.Minute)
}

// AchievedAt reports whether a session running from checkIn to at has reached
// targetNet net minutes, and if so at which instant it did.
func AchievedAt(checkIn, at time.Time, targetNet int, rs []Rule) (time.Time, bool) {
	target := TargetTimeForNet(checkIn, targetNet, rs)
	if at.Before(target) {
		return time.Time{}, false
	}
	return target, true
}
