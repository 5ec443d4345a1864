package tracking

import (
	"testing"
	"time"

	"rughaven_back_end/internal/models"
)

func TestProgress_EveryStageAsCurrent(t *testing.T) {
	for i, current := range Sequence {
		states := Progress(current, nil)
		if len(states) != len(Sequence) {
			t.Fatalf("want %d states, got %d", len(Sequence), len(states))
		}
		for j, st := range states {
			if wantCompleted := j <= i; st.Completed != wantCompleted {
				t.Fatalf("current=%s stage=%s: completed=%v, want %v", current, st.Stage, st.Completed, wantCompleted)
			}
			if wantActive := j == i; st.Active != wantActive {
				t.Fatalf("current=%s stage=%s: active=%v, want %v", current, st.Stage, st.Active, wantActive)
			}
		}
	}
}

func TestProgress_ShippedScenario(t *testing.T) {
	states := Progress(StageShipped, nil)

	byStage := map[Stage]StageState{}
	for _, st := range states {
		byStage[st.Stage] = st
	}

	if !byStage[StagePlaced].Completed || !byStage[StagePacked].Completed {
		t.Fatal("placed and packed should be completed")
	}
	if !byStage[StageShipped].Active {
		t.Fatal("shipped should be active")
	}
	for _, s := range []Stage{StageOutForDelivery, StageDelivered} {
		if byStage[s].Completed || byStage[s].Active {
			t.Fatalf("%s should be pending", s)
		}
	}
}

func TestProgress_UnknownStatusFallback(t *testing.T) {
	states := Progress(Stage("refunded"), nil)
	for _, st := range states {
		if st.Completed || st.Active {
			t.Fatalf("unknown status: stage %s should be pending", st.Stage)
		}
	}
	if Index("refunded") != -1 {
		t.Fatal("unknown status should index to -1")
	}
}

func TestProgress_HistoryAttachesDates(t *testing.T) {
	placed := time.Date(2025, 11, 2, 10, 0, 0, 0, time.UTC)
	packed := placed.Add(24 * time.Hour)

	// History arrives unordered and may mention stages past the canonical
	// status; those dates still attach but do not complete the stage.
	history := []models.StatusEvent{
		{Stage: "packed", Date: packed},
		{Stage: "placed", Date: placed},
		{Stage: "delivered", Date: packed.Add(96 * time.Hour)},
	}

	states := Progress(StagePacked, history)
	for _, st := range states {
		switch st.Stage {
		case StagePlaced:
			if st.Date == nil || !st.Date.Equal(placed) {
				t.Fatalf("placed date not attached: %v", st.Date)
			}
		case StagePacked:
			if st.Date == nil || !st.Date.Equal(packed) {
				t.Fatalf("packed date not attached: %v", st.Date)
			}
		case StageDelivered:
			if st.Completed || st.Active {
				t.Fatal("history must not override the canonical status")
			}
			if st.Date == nil {
				t.Fatal("delivered history date should still attach")
			}
		case StageShipped, StageOutForDelivery:
			if st.Date != nil {
				t.Fatalf("%s has no history record, got date %v", st.Stage, st.Date)
			}
		}
	}
}

func TestEstimatedDelivery(t *testing.T) {
	placed := time.Date(2025, 11, 2, 10, 0, 0, 0, time.UTC)
	if got := EstimatedDelivery(placed, 5); !got.Equal(placed.AddDate(0, 0, 5)) {
		t.Fatalf("got %v", got)
	}
	// non-positive offset falls back to a week
	if got := EstimatedDelivery(placed, 0); !got.Equal(placed.AddDate(0, 0, 7)) {
		t.Fatalf("got %v", got)
	}
}
