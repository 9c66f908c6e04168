package models

import "testing"

func TestEffortProfile_Clamp(t *testing.T) {
	tests := []struct {
		name string
		in   EffortProfile
		want EffortProfile
	}{
		{
			name: "in-range profile is unchanged",
			in: EffortProfile{
				Tier: TierMid, Depth: 0.5, Temperature: 0.7,
				VariantCount: 2, MaxMutationCycles: 1, MaxRetries: 3, TokenBudget: 10000,
			},
			want: EffortProfile{
				Tier: TierMid, Depth: 0.5, Temperature: 0.7,
				VariantCount: 2, MaxMutationCycles: 1, MaxRetries: 3, TokenBudget: 10000,
			},
		},
		{
			name: "overshoot is pulled back",
			in: EffortProfile{
				Tier: Tier(9), Depth: 1.4, Temperature: 2,
				VariantCount: 5, MaxMutationCycles: 2, MaxRetries: 1, TokenBudget: 100,
			},
			want: EffortProfile{
				Tier: TierPremium, Depth: 1, Temperature: 1,
				VariantCount: 5, MaxMutationCycles: 2, MaxRetries: 1, TokenBudget: 100,
			},
		},
		{
			name: "undershoot is pulled up",
			in: EffortProfile{
				Tier: Tier(-2), Depth: -0.3, Temperature: -1,
				VariantCount: 0, MaxMutationCycles: -1, MaxRetries: -5, TokenBudget: -100,
			},
			want: EffortProfile{
				Tier: TierLocal, Depth: 0, Temperature: 0,
				VariantCount: 1, MaxMutationCycles: 0, MaxRetries: 0, TokenBudget: 0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in
			got.Clamp()
			if got != tt.want {
				t.Errorf("Clamp() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestControllerState_Clone(t *testing.T) {
	s := NewControllerState()
	s.TaskID = "task-1"
	s.ComplexityScore = 0.5
	s.EscalationLevel = 2
	s.NodeStates[RoleExecutor] = EffortProfile{Tier: TierMid, TokenBudget: 8000, VariantCount: 1}
	s.FailureTraces = []FailureTrace{{Role: RoleExecutor, Reason: "rejected"}}

	clone := s.Clone()

	// Mutating the clone must not touch the original.
	p := clone.NodeStates[RoleExecutor]
	p.Tier = TierPremium
	clone.NodeStates[RoleExecutor] = p
	clone.FailureTraces = append(clone.FailureTraces, FailureTrace{Role: RoleVerifier})
	clone.EscalationLevel = 6

	if s.NodeStates[RoleExecutor].Tier != TierMid {
		t.Error("clone mutation leaked into original NodeStates")
	}
	if len(s.FailureTraces) != 1 {
		t.Errorf("original has %d failure traces, want 1", len(s.FailureTraces))
	}
	if s.EscalationLevel != 2 {
		t.Errorf("original escalation level = %d, want 2", s.EscalationLevel)
	}
}
