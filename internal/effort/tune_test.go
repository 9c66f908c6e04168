package effort

import (
	"math"
	"strings"
	"testing"

	"github.com/effortwise/gearbox/pkg/models"
)

func seedMedium(t *testing.T, ctrl *Controller) {
	t.Helper()
	if _, err := ctrl.AssessAndPropagateDown(0.5, "task-1"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
}

func TestMidExecutionTune_InvalidSignal(t *testing.T) {
	ctrl, store, _ := newTestController(t, Params{})
	seedMedium(t, ctrl)
	savesAfterSeed := store.saves

	res, err := ctrl.MidExecutionTune(models.RoleExecutor, Signal("panicking"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Success {
		t.Error("expected Success=false for an unknown signal")
	}
	if res.Error == "" {
		t.Error("expected an error message")
	}
	if store.saves != savesAfterSeed {
		t.Error("rejected tune must not persist")
	}
}

func TestMidExecutionTune_UnknownRole(t *testing.T) {
	ctrl, _, _ := newTestController(t, Params{})
	seedMedium(t, ctrl)

	res, err := ctrl.MidExecutionTune(models.Role("compiler"), SignalConfident)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Success {
		t.Error("expected Success=false for an unknown role")
	}
	if !strings.Contains(res.Error, "unknown role") {
		t.Errorf("error = %q, want it to name the unknown role", res.Error)
	}
}

func TestMidExecutionTune_UnseededRole(t *testing.T) {
	// A valid role on a never-assessed controller is a different failure
	// than an unknown role: the caller forgot to assess, not a typo.
	ctrl, _, _ := newTestController(t, Params{})

	res, err := ctrl.MidExecutionTune(models.RoleExecutor, SignalStruggling)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Success {
		t.Error("expected Success=false for an unseeded role")
	}
	if strings.Contains(res.Error, "unknown role") {
		t.Errorf("error = %q, must not call a valid role unknown", res.Error)
	}
	if !strings.Contains(res.Error, "no effort profile") {
		t.Errorf("error = %q, want it to point at the missing profile", res.Error)
	}
}

func TestMidExecutionTune_Struggling(t *testing.T) {
	// Tier rises first; depth only moves once the tier is maxed.
	ctrl, _, sink := newTestController(t, Params{})
	seedMedium(t, ctrl)

	before, _ := ctrl.NodeEffort(models.RoleExecutor)
	if before.Tier != models.TierMid {
		t.Fatalf("executor tier = %s, want mid baseline", before.Tier)
	}

	res, err := ctrl.MidExecutionTune(models.RoleExecutor, SignalStruggling)
	if err != nil {
		t.Fatalf("tune 1: %v", err)
	}
	if res.NewProfile.Tier != models.TierPremium {
		t.Errorf("tune 1: tier = %s, want premium", res.NewProfile.Tier)
	}
	if res.NewProfile.Depth != before.Depth {
		t.Errorf("tune 1: depth moved to %v while tier could still rise", res.NewProfile.Depth)
	}
	if want := int(float64(before.TokenBudget) * 1.3); res.NewProfile.TokenBudget != want {
		t.Errorf("tune 1: budget = %d, want %d", res.NewProfile.TokenBudget, want)
	}
	if sink.lastType() != EventMidTune {
		t.Errorf("last event = %s, want %s", sink.lastType(), EventMidTune)
	}

	res, err = ctrl.MidExecutionTune(models.RoleExecutor, SignalStruggling)
	if err != nil {
		t.Fatalf("tune 2: %v", err)
	}
	if math.Abs(res.NewProfile.Depth-(before.Depth+0.15)) > 1e-9 {
		t.Errorf("tune 2: depth = %v, want %v", res.NewProfile.Depth, before.Depth+0.15)
	}
}

func TestMidExecutionTune_Confident(t *testing.T) {
	tests := []struct {
		name      string
		start     models.EffortProfile
		wantTier  models.Tier
		wantDepth float64
	}{
		{
			name:      "premium deep shaves depth",
			start:     models.EffortProfile{Tier: models.TierPremium, Depth: 0.7, VariantCount: 1, TokenBudget: 20000},
			wantTier:  models.TierPremium,
			wantDepth: 0.6,
		},
		{
			name:      "premium shallow drops to mid",
			start:     models.EffortProfile{Tier: models.TierPremium, Depth: 0.3, VariantCount: 1, TokenBudget: 20000},
			wantTier:  models.TierMid,
			wantDepth: 0.3,
		},
		{
			name:      "mid drops to local",
			start:     models.EffortProfile{Tier: models.TierMid, Depth: 0.5, VariantCount: 1, TokenBudget: 20000},
			wantTier:  models.TierLocal,
			wantDepth: 0.5,
		},
		{
			name:      "local stays local",
			start:     models.EffortProfile{Tier: models.TierLocal, Depth: 0.3, VariantCount: 1, TokenBudget: 20000},
			wantTier:  models.TierLocal,
			wantDepth: 0.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := applySignal(tt.start, SignalConfident)
			got.Clamp()
			if got.Tier != tt.wantTier {
				t.Errorf("tier = %s, want %s", got.Tier, tt.wantTier)
			}
			if math.Abs(got.Depth-tt.wantDepth) > 1e-9 {
				t.Errorf("depth = %v, want %v", got.Depth, tt.wantDepth)
			}
		})
	}
}

func TestMidExecutionTune_NovelTerritory(t *testing.T) {
	ctrl, _, _ := newTestController(t, Params{})
	seedMedium(t, ctrl)

	before, _ := ctrl.NodeEffort(models.RoleVariantGen)
	res, err := ctrl.MidExecutionTune(models.RoleVariantGen, SignalNovelTerritory)
	if err != nil {
		t.Fatalf("tune failed: %v", err)
	}

	p := res.NewProfile
	if p.Tier != models.TierPremium {
		t.Errorf("tier = %s, want premium", p.Tier)
	}
	if math.Abs(p.Depth-(before.Depth+0.25)) > 1e-9 {
		t.Errorf("depth = %v, want %v", p.Depth, before.Depth+0.25)
	}
	if math.Abs(p.Temperature-math.Min(0.9, before.Temperature+0.2)) > 1e-9 {
		t.Errorf("temperature = %v", p.Temperature)
	}
	if p.VariantCount != before.VariantCount+2 {
		t.Errorf("variant count = %d, want %d", p.VariantCount, before.VariantCount+2)
	}
	if p.MaxMutationCycles != before.MaxMutationCycles+1 {
		t.Errorf("mutation cycles = %d, want %d", p.MaxMutationCycles, before.MaxMutationCycles+1)
	}
	if want := int(float64(before.TokenBudget) * 1.5); p.TokenBudget != want {
		t.Errorf("budget = %d, want %d", p.TokenBudget, want)
	}
}

func TestMidExecutionTune_PatternMatch(t *testing.T) {
	ctrl, _, _ := newTestController(t, Params{})
	seedMedium(t, ctrl)

	before, _ := ctrl.NodeEffort(models.RoleVariantGen)
	res, err := ctrl.MidExecutionTune(models.RoleVariantGen, SignalPatternMatch)
	if err != nil {
		t.Fatalf("tune failed: %v", err)
	}

	p := res.NewProfile
	if math.Abs(p.Depth-math.Max(0.1, before.Depth-0.2)) > 1e-9 {
		t.Errorf("depth = %v", p.Depth)
	}
	if p.Temperature != 0.1 {
		t.Errorf("temperature = %v, want 0.1", p.Temperature)
	}
	if p.Tier != before.Tier.Down() {
		t.Errorf("tier = %s, want %s", p.Tier, before.Tier.Down())
	}
	if p.VariantCount != 1 {
		t.Errorf("variant count = %d, want 1", p.VariantCount)
	}
	if p.MaxMutationCycles != 0 {
		t.Errorf("mutation cycles = %d, want 0", p.MaxMutationCycles)
	}
	if want := int(float64(before.TokenBudget) * 0.7); p.TokenBudget != want {
		t.Errorf("budget = %d, want %d", p.TokenBudget, want)
	}
}

func TestMidExecutionTune_DepthFloorOnRepeatedPatternMatch(t *testing.T) {
	p := models.EffortProfile{Tier: models.TierPremium, Depth: 0.5, Temperature: 0.6, VariantCount: 3, TokenBudget: 20000}
	for i := 0; i < 5; i++ {
		p = applySignal(p, SignalPatternMatch)
		p.Clamp()
	}
	if p.Depth < 0.1-1e-9 {
		t.Errorf("depth fell below floor: %v", p.Depth)
	}
}

func TestMidExecutionTune_RecordsAudit(t *testing.T) {
	ctrl, _, _ := newTestController(t, Params{})
	seedMedium(t, ctrl)

	if _, err := ctrl.MidExecutionTune(models.RoleSelector, SignalConfident); err != nil {
		t.Fatalf("tune failed: %v", err)
	}

	history := ctrl.State().EffortHistory
	last := history[len(history)-1]
	if last.Direction != models.DirectionMidExecution {
		t.Errorf("direction = %s, want %s", last.Direction, models.DirectionMidExecution)
	}
	if last.Role != models.RoleSelector || last.Reason != string(SignalConfident) {
		t.Errorf("audit entry = %+v", last)
	}
}
