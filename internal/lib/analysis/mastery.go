package analysis

import "github.com/tutorlens/tutorlens/internal/lib/utils"

// Mastery formula weights. Kept as named constants so tuning stays a
// one-line change.
const (
	improvementWeight     = 5.0 // points per improvement signal
	errorPenaltyWeight    = 3.0 // points deducted per error signal
	independentSolveBonus = 4.0 // points per independent solve

	confidencePositiveWeight   = 3.0
	confidenceHesitationWeight = 4.0

	minScore = 0.0
	maxScore = 100.0
)

// UpdateMastery computes an updated mastery score from session signals.
//
// Formula:
//
//	new = prev + improvement*5 - errors*3 + independentSolves*4
//
// clamped to [0, 100] and rounded to one decimal.
func UpdateMastery(prevScore, improvementFactor float64, errorCount, independentSolves int) float64 {
	delta := improvementFactor*improvementWeight -
		float64(errorCount)*errorPenaltyWeight +
		float64(independentSolves)*independentSolveBonus

	return utils.Clamp(utils.Round1(prevScore+delta), minScore, maxScore)
}

// UpdateConfidence computes an updated confidence score.
//
// Positive signals (confident language, independent solves) raise it;
// hesitation/avoidance signals lower it faster than positives raise it.
// Clamped to [0, 100], rounded to one decimal.
func UpdateConfidence(prevConfidence float64, hesitationCount, positiveSignals int) float64 {
	delta := float64(positiveSignals)*confidencePositiveWeight -
		float64(hesitationCount)*confidenceHesitationWeight

	return utils.Clamp(utils.Round1(prevConfidence+delta), minScore, maxScore)
}
