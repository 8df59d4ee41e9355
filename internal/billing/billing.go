// Package billing holds the tariff arithmetic. Everything here is pure;
// persistence and locking live in the service layer.
package billing

// Cost computes the bill for one window: the consumed units with the
// percentage surcharge applied under integer floor division, plus the fixed
// surcharge. The floor semantics determine the bill amount and must not be
// replaced with float math.
func Cost(reading, lastReading, extraPercent, extra int64) int64 {
	return (reading-lastReading)*(100+extraPercent)/100 + extra
}

// OverLimit returns how far the raw meter reading exceeds the branch limit,
// never negative. The rule works on the reading, not the computed cost.
func OverLimit(reading, limit int64) int64 {
	if over := reading - limit; over > 0 {
		return over
	}
	return 0
}
