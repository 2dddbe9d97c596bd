package domain

import "time"

// AgingSentinel is the aging assigned when a record's reference instant is
// unknown. It is deliberately enormous so such records surface at the top of
// reports instead of dropping out silently.
const AgingSentinel = 9999 * time.Hour

// ComputeDeadline returns N+ = N0 + offset, or nil when N0 is absent.
func ComputeDeadline(n0 *time.Time, offset time.Duration) *time.Time {
	if n0 == nil {
		return nil
	}
	d := n0.Add(offset)
	return &d
}

// ComputeAging returns now − deadline. Negative means not yet due. When the
// deadline is undefined the sentinel is returned.
func ComputeAging(now time.Time, deadline *time.Time) time.Duration {
	if deadline == nil {
		return AgingSentinel
	}
	return now.Sub(*deadline)
}
