package tracking

import (
	"time"

	"rughaven_back_end/internal/models"
)

// Stage is one step of the fulfillment sequence.
type Stage string

const (
	StagePlaced         Stage = "placed"
	StagePacked         Stage = "packed"
	StageShipped        Stage = "shipped"
	StageOutForDelivery Stage = "out_for_delivery"
	StageDelivered      Stage = "delivered"
)

// Sequence is the fixed, totally ordered list of stages an order moves
// through. The canonical `status` field of an order is always one of these.
var Sequence = []Stage{
	StagePlaced,
	StagePacked,
	StageShipped,
	StageOutForDelivery,
	StageDelivered,
}

// StageState is the derived display state for a single stage.
type StageState struct {
	Stage     Stage      `json:"stage"`
	Completed bool       `json:"completed"`
	Active    bool       `json:"active"`
	Date      *time.Time `json:"date,omitempty"`
}

// Index returns the position of s in Sequence, or -1 if s is not a known
// stage.
func Index(s Stage) int {
	for i, stage := range Sequence {
		if stage == s {
			return i
		}
	}
	return -1
}

// IsValid reports whether s is a known fulfillment stage.
func IsValid(s Stage) bool {
	return Index(s) >= 0
}

// Progress derives the per-stage display state from an order's current
// status and its (unordered) status history. Stages at or before the index
// of current are completed, the stage exactly at that index is active, later
// stages are pending. A history record attaches its date to the matching
// stage but never overrides which stage is the highest reached one.
//
// An unrecognized status yields index -1: every stage pending, none active.
func Progress(current Stage, history []models.StatusEvent) []StageState {
	idx := Index(current)

	dates := make(map[Stage]time.Time, len(history))
	for _, ev := range history {
		if _, seen := dates[Stage(ev.Stage)]; !seen {
			dates[Stage(ev.Stage)] = ev.Date
		}
	}

	states := make([]StageState, len(Sequence))
	for i, stage := range Sequence {
		st := StageState{
			Stage:     stage,
			Completed: idx >= 0 && i <= idx,
			Active:    idx >= 0 && i == idx,
		}
		if d, ok := dates[stage]; ok {
			date := d
			st.Date = &date
		}
		states[i] = st
	}
	return states
}

// EstimatedDelivery computes the promised delivery date from the placement
// time. Rugs ship from a single warehouse, so a flat offset is enough.
func EstimatedDelivery(placedAt time.Time, days int) time.Time {
	if days <= 0 {
		days = 7
	}
	return placedAt.AddDate(0, 0, days)
}
