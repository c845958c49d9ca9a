package analysis

import "testing"

func TestUpdateMastery(t *testing.T) {
	tests := []struct {
		name              string
		prev              float64
		improvement       float64
		errors            int
		independentSolves int
		want              float64
	}{
		{"no signals leaves score unchanged", 50, 0, 0, 0, 50},
		{"improvement raises score", 50, 0.3, 0, 0, 51.5},
		{"errors lower score", 50, 0, 2, 0, 44},
		{"independent solves raise score", 50, 0, 0, 2, 58},
		{"mixed session", 45, 0.3, 2, 1, 44.5},
		{"clamped at upper bound", 99, 1.0, 0, 3, 100},
		{"clamped at lower bound", 2, 0, 3, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UpdateMastery(tt.prev, tt.improvement, tt.errors, tt.independentSolves)
			if got != tt.want {
				t.Errorf("UpdateMastery(%v, %v, %d, %d) = %v, want %v",
					tt.prev, tt.improvement, tt.errors, tt.independentSolves, got, tt.want)
			}
		})
	}
}

func TestUpdateConfidence(t *testing.T) {
	tests := []struct {
		name        string
		prev        float64
		hesitations int
		positives   int
		want        float64
	}{
		{"no signals leaves score unchanged", 40, 0, 0, 40},
		{"positives raise score", 40, 0, 2, 46},
		{"hesitations lower score faster", 40, 2, 2, 38},
		{"clamped at lower bound", 3, 5, 0, 0},
		{"clamped at upper bound", 99, 0, 4, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UpdateConfidence(tt.prev, tt.hesitations, tt.positives)
			if got != tt.want {
				t.Errorf("UpdateConfidence(%v, %d, %d) = %v, want %v",
					tt.prev, tt.hesitations, tt.positives, got, tt.want)
			}
		})
	}
}
