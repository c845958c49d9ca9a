package analysis

import "testing"

func TestDetectBlockSignals_avoidance(t *testing.T) {
	signals := DetectBlockSignals("i hate fractions. can we skip this one?")

	if len(signals) != 2 {
		t.Fatalf("expected 2 signals, got %d: %+v", len(signals), signals)
	}
	for _, s := range signals {
		if s.Type != SignalAvoidance {
			t.Errorf("expected avoidance signal, got %q", s.Type)
		}
		if s.Severity != 3.0 {
			t.Errorf("avoidance severity = %v, want 3.0", s.Severity)
		}
	}
}

func TestDetectBlockSignals_emotional(t *testing.T) {
	signals := DetectBlockSignals("i feel stupid, everyone else gets it right away")

	if len(signals) != 2 {
		t.Fatalf("expected 2 signals, got %d: %+v", len(signals), signals)
	}
	for _, s := range signals {
		if s.Type != SignalEmotional {
			t.Errorf("expected emotional signal, got %q", s.Type)
		}
		if s.Severity != 4.0 {
			t.Errorf("emotional severity = %v, want 4.0", s.Severity)
		}
	}
}

func TestDetectBlockSignals_hesitationDensity(t *testing.T) {
	// Two distinct hesitation phrases: below the threshold, no signal.
	signals := DetectBlockSignals("i'm not sure about this. i'm confused")
	if len(signals) != 0 {
		t.Fatalf("expected no signals below hesitation threshold, got %+v", signals)
	}

	// Three distinct phrases crosses the threshold.
	signals = DetectBlockSignals("i'm not sure. i'm confused. i don't understand the step")
	if len(signals) != 1 {
		t.Fatalf("expected 1 hesitation signal, got %d: %+v", len(signals), signals)
	}
	if signals[0].Type != SignalHesitation {
		t.Errorf("expected hesitation signal, got %q", signals[0].Type)
	}
	if signals[0].Severity != 3.5 {
		t.Errorf("hesitation severity = %v, want 3.5 (2.0 + 3*0.5)", signals[0].Severity)
	}
}

func TestDetectBlockSignals_cleanTranscript(t *testing.T) {
	signals := DetectBlockSignals("we solved all the equations and the student enjoyed the lesson")
	if len(signals) != 0 {
		t.Errorf("expected no signals, got %+v", signals)
	}
}

func TestComputeSeverity(t *testing.T) {
	tests := []struct {
		name         string
		frequency    int
		hasAvoidance bool
		hasEmotional bool
		want         float64
	}{
		{"first occurrence", 1, false, false, 1},
		{"below escalation threshold", 2, false, false, 2},
		{"escalates at threshold", 3, false, false, 4.5},
		{"base frequency capped at 5", 8, false, false, 6.5},
		{"avoidance adds 2", 1, true, false, 3},
		{"emotional adds 1.5", 1, false, true, 2.5},
		{"capped at 10", 8, true, true, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeSeverity(tt.frequency, tt.hasAvoidance, tt.hasEmotional)
			if got != tt.want {
				t.Errorf("ComputeSeverity(%d, %v, %v) = %v, want %v",
					tt.frequency, tt.hasAvoidance, tt.hasEmotional, got, tt.want)
			}
		})
	}
}
