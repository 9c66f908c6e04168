package effort

import (
	"math"
	"testing"

	"github.com/effortwise/gearbox/pkg/models"
)

func TestAssessAndPropagateDown_SeedsAllRoles(t *testing.T) {
	ctrl, store, sink := newTestController(t, Params{})

	result, err := ctrl.AssessAndPropagateDown(0.5, "task-1")
	if err != nil {
		t.Fatalf("AssessAndPropagateDown failed: %v", err)
	}

	if result.Bucket != BucketMedium {
		t.Errorf("bucket = %s, want %s", result.Bucket, BucketMedium)
	}
	if len(result.NodeStates) != len(models.AllRoles) {
		t.Errorf("seeded %d roles, want %d", len(result.NodeStates), len(models.AllRoles))
	}
	for _, role := range models.AllRoles {
		if _, ok := result.NodeStates[role]; !ok {
			t.Errorf("missing profile for %s", role)
		}
	}

	if store.saves != 1 {
		t.Errorf("saves = %d, want 1", store.saves)
	}
	if sink.lastType() != EventTopDown {
		t.Errorf("last event = %s, want %s", sink.lastType(), EventTopDown)
	}

	state := ctrl.State()
	if state.EscalationLevel != 0 {
		t.Errorf("escalation level = %d, want 0", state.EscalationLevel)
	}
	if len(state.EffortHistory) != 1 || state.EffortHistory[0].Direction != models.DirectionTopDown {
		t.Errorf("expected one top_down audit entry, got %+v", state.EffortHistory)
	}
}

func TestAssessAndPropagateDown_MediumBaselines(t *testing.T) {
	ctrl, _, _ := newTestController(t, Params{})
	result, err := ctrl.AssessAndPropagateDown(0.5, "task-1")
	if err != nil {
		t.Fatalf("AssessAndPropagateDown failed: %v", err)
	}

	tests := []struct {
		role  models.Role
		tier  models.Tier
		depth float64
	}{
		{models.RoleVision, models.TierPremium, 0.5},
		{models.RoleVariantGen, models.TierPremium, 0.5},
		{models.RoleDecomposer, models.TierMid, 0.5},
		{models.RoleSelector, models.TierMid, 0.4},
		{models.RoleAdapter, models.TierMid, 0.5},
		{models.RoleExecutor, models.TierMid, 0.5},
		{models.RoleVerifier, models.TierMid, 0.4},
	}

	for _, tt := range tests {
		p := result.NodeStates[tt.role]
		if p.Tier != tt.tier {
			t.Errorf("%s tier = %s, want %s", tt.role, p.Tier, tt.tier)
		}
		if math.Abs(p.Depth-tt.depth) > 1e-9 {
			t.Errorf("%s depth = %v, want %v", tt.role, p.Depth, tt.depth)
		}
	}

	// Mid-scale budget, mid-scale generative temperature.
	if p := result.NodeStates[models.RoleExecutor]; p.TokenBudget != 20000 {
		t.Errorf("executor budget = %d, want 20000", p.TokenBudget)
	}
	if p := result.NodeStates[models.RoleExecutor]; math.Abs(p.Temperature-0.55) > 1e-9 {
		t.Errorf("executor temperature = %v, want 0.55", p.Temperature)
	}
}

func TestAssessAndPropagateDown_SelectorNeverPremium(t *testing.T) {
	// For every bucket the selector stays off the premium tier and its
	// temperature is pinned for deterministic selection.
	scores := []float64{0.1, 0.3, 0.5, 0.7, 0.9}
	for _, score := range scores {
		ctrl, _, _ := newTestController(t, Params{})
		result, err := ctrl.AssessAndPropagateDown(score, "task-1")
		if err != nil {
			t.Fatalf("AssessAndPropagateDown(%v) failed: %v", score, err)
		}

		selector := result.NodeStates[models.RoleSelector]
		if selector.Tier == models.TierPremium {
			t.Errorf("score %v: selector reached premium tier", score)
		}
		if selector.Temperature != 0.1 {
			t.Errorf("score %v: selector temperature = %v, want 0.1", score, selector.Temperature)
		}
	}
}

func TestAssessAndPropagateDown_VerifierTierFloor(t *testing.T) {
	// Buckets with a local Level3 baseline (trivial, simple) still put
	// the verifier on the mid tier.
	for _, score := range []float64{0.1, 0.3} {
		ctrl, _, _ := newTestController(t, Params{})
		result, err := ctrl.AssessAndPropagateDown(score, "task-1")
		if err != nil {
			t.Fatalf("AssessAndPropagateDown(%v) failed: %v", score, err)
		}

		if got := result.NodeStates[models.RoleExecutor].Tier; got != models.TierLocal {
			t.Fatalf("score %v: executor tier = %s, want local baseline", score, got)
		}
		if got := result.NodeStates[models.RoleVerifier].Tier; got != models.TierMid {
			t.Errorf("score %v: verifier tier = %s, want mid", score, got)
		}
	}
}

func TestAssessAndPropagateDown_VariantGenScalesWithScore(t *testing.T) {
	tests := []struct {
		score        float64
		wantVariants int
		wantCycles   int
	}{
		{0.0, 1, 1},
		{0.5, 3, 3},
		{1.0, 5, 4},
	}

	for _, tt := range tests {
		ctrl, _, _ := newTestController(t, Params{})
		result, err := ctrl.AssessAndPropagateDown(tt.score, "task-1")
		if err != nil {
			t.Fatalf("AssessAndPropagateDown(%v) failed: %v", tt.score, err)
		}

		vg := result.NodeStates[models.RoleVariantGen]
		if vg.VariantCount != tt.wantVariants {
			t.Errorf("score %v: variant count = %d, want %d", tt.score, vg.VariantCount, tt.wantVariants)
		}
		if vg.MaxMutationCycles != tt.wantCycles {
			t.Errorf("score %v: mutation cycles = %d, want %d", tt.score, vg.MaxMutationCycles, tt.wantCycles)
		}
	}
}

func TestAssessAndPropagateDown_ClampsScore(t *testing.T) {
	ctrl, _, _ := newTestController(t, Params{})

	result, err := ctrl.AssessAndPropagateDown(3.7, "task-1")
	if err != nil {
		t.Fatalf("AssessAndPropagateDown failed: %v", err)
	}
	if result.Score != 1 {
		t.Errorf("score = %v, want clamped 1", result.Score)
	}
	if result.Bucket != BucketExtreme {
		t.Errorf("bucket = %s, want %s", result.Bucket, BucketExtreme)
	}
}

func TestAssessAndPropagateDown_GeneratesTaskID(t *testing.T) {
	ctrl, _, _ := newTestController(t, Params{})

	result, err := ctrl.AssessAndPropagateDown(0.5, "")
	if err != nil {
		t.Fatalf("AssessAndPropagateDown failed: %v", err)
	}
	if result.TaskID == "" {
		t.Error("expected a generated task id")
	}
}

func TestAssessAndPropagateDown_ReplacesPreviousTask(t *testing.T) {
	ctrl, _, _ := newTestController(t, Params{})

	if _, err := ctrl.AssessAndPropagateDown(0.9, "task-1"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := ctrl.HandleFailure(models.RoleExecutor, "rejected"); err != nil {
			t.Fatalf("HandleFailure failed: %v", err)
		}
	}

	if _, err := ctrl.AssessAndPropagateDown(0.3, "task-2"); err != nil {
		t.Fatalf("re-seed failed: %v", err)
	}

	state := ctrl.State()
	if state.TaskID != "task-2" {
		t.Errorf("task id = %q, want task-2", state.TaskID)
	}
	if state.EscalationLevel != 0 {
		t.Errorf("escalation level = %d, want 0 after re-seed", state.EscalationLevel)
	}
	if len(state.FailureTraces) != 0 {
		t.Errorf("failure traces not cleared: %d left", len(state.FailureTraces))
	}
}
