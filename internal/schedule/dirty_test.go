package schedule

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestNeedsSync(t *testing.T) {
	syncedAt := time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)
	before := syncedAt.Add(-time.Hour)
	after := syncedAt.Add(time.Hour)

	eligible := Stage{
		ID:         uuid.New(),
		StartDate:  dayPtr(2025, time.January, 15),
		EndDate:    dayPtr(2025, time.March, 10),
		TotalValue: decimal.RequireFromString("1000.00"),
		UpdatedAt:  before,
	}
	ineligible := Stage{
		ID:        uuid.New(),
		UpdatedAt: before,
	}

	cases := []struct {
		name     string
		lastSync *time.Time
		stages   []Stage
		want     bool
	}{
		{"never synced, eligible stage", nil, []Stage{eligible}, true},
		{"never synced, nothing eligible", nil, []Stage{ineligible}, false},
		{"never synced, no stages", nil, nil, false},
		{"synced, nothing changed since", &syncedAt, []Stage{eligible}, false},
		{"synced, stage changed after", &syncedAt, []Stage{{ID: uuid.New(), UpdatedAt: after}}, true},
		{"synced, change at the exact sync instant", &syncedAt, []Stage{{ID: uuid.New(), UpdatedAt: syncedAt}}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NeedsSync(tc.lastSync, tc.stages); got != tc.want {
				t.Errorf("NeedsSync = %v, want %v", got, tc.want)
			}
		})
	}
}
