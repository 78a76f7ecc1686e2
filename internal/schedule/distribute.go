// Package schedule implements the planned-value distributor: allocating a
// work stage's total value across calendar months proportionally to the days
// the stage overlaps each month, with exact penny reconciliation. Internal
// arithmetic runs on integer cents; output rows carry decimal currency.
package schedule

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FeeStageType marks fee stages ("taxas"), which are treated as single-day
// events regardless of any stored end date.
const FeeStageType = "taxas"

// MonthKeyLayout is the competência format of a planned-value row.
const MonthKeyLayout = "2006-01"

// Stage is a work-breakdown node as seen by the distributor. The loader
// hands over only non-deleted stages.
type Stage struct {
	ID         uuid.UUID
	ParentID   *uuid.UUID
	StageType  string
	StartDate  *time.Time
	EndDate    *time.Time
	TotalValue decimal.Decimal
	UpdatedAt  time.Time
}

// Row is one month's share of a stage's planned value.
type Row struct {
	StageID  uuid.UUID
	MonthKey string
	Value    decimal.Decimal
}

// atNoon normalizes to a date-only instant anchored at noon UTC, so day
// counts are immune to daylight-saving shifts in the source timestamps.
func atNoon(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC)
}

func daysBetween(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

// Distribute allocates totalCents across the calendar months overlapped by
// the inclusive [start, end] range, proportionally to overlapping days. The
// last month absorbs the rounding remainder so the rows always sum to
// exactly totalCents; zero-value months are dropped.
func Distribute(stageID uuid.UUID, start, end time.Time, totalCents int64) []Row {
	start = atNoon(start)
	end = atNoon(end)

	totalDays := daysBetween(start, end)
	if totalDays <= 0 {
		return nil
	}

	type segment struct {
		key  string
		days int
	}
	var segments []segment
	for cur := time.Date(start.Year(), start.Month(), 1, 12, 0, 0, 0, time.UTC); !cur.After(end); cur = cur.AddDate(0, 1, 0) {
		monthEnd := cur.AddDate(0, 1, -1)
		segStart, segEnd := start, end
		if cur.After(segStart) {
			segStart = cur
		}
		if monthEnd.Before(segEnd) {
			segEnd = monthEnd
		}
		if days := daysBetween(segStart, segEnd); days > 0 {
			segments = append(segments, segment{key: cur.Format(MonthKeyLayout), days: days})
		}
	}
	if len(segments) == 0 {
		return nil
	}

	cents := make([]int64, len(segments))
	last := len(segments) - 1
	var allocated int64
	for i := 0; i < last; i++ {
		share := float64(segments[i].days) / float64(totalDays) * float64(totalCents)
		cents[i] = int64(math.Round(share))
		allocated += cents[i]
	}
	// The last month takes whatever is left, so the sum reconciles exactly.
	cents[last] = totalCents - allocated

	// Degenerate rounding cascades on very short ranges can leave the
	// remainder negative; pull the deficit back from earlier months.
	for i := last - 1; i >= 0 && cents[last] < 0; i-- {
		take := -cents[last]
		if take > cents[i] {
			take = cents[i]
		}
		cents[i] -= take
		cents[last] += take
	}

	rows := make([]Row, 0, len(segments))
	for i, seg := range segments {
		if cents[i] == 0 {
			continue
		}
		rows = append(rows, Row{
			StageID:  stageID,
			MonthKey: seg.key,
			Value:    decimal.New(cents[i], -2),
		})
	}
	return rows
}

// Leaves filters to leaf stages: nodes no other stage declares as parent.
// Only leaves carry planned value; internal nodes are structural.
func Leaves(stages []Stage) []Stage {
	parents := make(map[uuid.UUID]bool, len(stages))
	for _, s := range stages {
		if s.ParentID != nil {
			parents[*s.ParentID] = true
		}
	}
	var leaves []Stage
	for _, s := range stages {
		if !parents[s.ID] {
			leaves = append(leaves, s)
		}
	}
	return leaves
}

// resolveRange returns the effective date range of a stage. Fee stages
// collapse to their start day; other stages need both dates set.
func resolveRange(s Stage) (start, end time.Time, ok bool) {
	if s.StartDate == nil {
		return start, end, false
	}
	start = *s.StartDate
	if strings.EqualFold(s.StageType, FeeStageType) {
		return start, start, true
	}
	if s.EndDate == nil {
		return start, end, false
	}
	return start, *s.EndDate, true
}

// Eligible reports whether a stage of the given set receives planned-value
// rows: it must be a leaf with a positive total and a resolvable range.
func Eligible(s Stage, stages []Stage) bool {
	for _, other := range stages {
		if other.ParentID != nil && *other.ParentID == s.ID {
			return false
		}
	}
	if s.TotalValue.Sign() <= 0 {
		return false
	}
	_, _, ok := resolveRange(s)
	return ok
}

// DistributeStages runs the distribution for every eligible leaf of the
// stage set and returns the combined rows.
func DistributeStages(stages []Stage) []Row {
	var rows []Row
	for _, s := range Leaves(stages) {
		if s.TotalValue.Sign() <= 0 {
			continue
		}
		start, end, ok := resolveRange(s)
		if !ok {
			continue
		}
		totalCents := s.TotalValue.Round(2).Shift(2).IntPart()
		rows = append(rows, Distribute(s.ID, start, end, totalCents)...)
	}
	return rows
}
