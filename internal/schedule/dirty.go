package schedule

import "time"

// NeedsSync decides whether the planned-value rows must be regenerated.
// With no prior sync, any eligible stage with value triggers one; after
// that, any stage modified strictly later than the last sync does. This is
// an optimization only: re-running the distribution is idempotent.
func NeedsSync(lastSync *time.Time, stages []Stage) bool {
	if lastSync == nil {
		for _, s := range stages {
			if Eligible(s, stages) {
				return true
			}
		}
		return false
	}
	for _, s := range stages {
		if s.UpdatedAt.After(*lastSync) {
			return true
		}
	}
	return false
}
