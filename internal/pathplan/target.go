package pathplan

import (
	"fmt"

	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/assess"
)

// Strategy names the planning posture chosen for a path.
type Strategy string

const (
	StrategyAccelerate Strategy = "accelerate"
	StrategyRemediate  Strategy = "remediate"
	StrategyDefault    Strategy = "default"
)

// TargetLevel is where a path is meant to take the learner.
type TargetLevel struct {
	GradeLevel        int      `json:"gradeLevel"`
	MasteryPercentage float64  `json:"masteryPercentage"`
	Strategy          Strategy `json:"strategy"`
}

// selectTarget applies the target-level rules to a current-level snapshot.
// Acceleration requires strong mastery, no growth areas and high running
// accuracy; remediation fires on weak overall mastery or growth areas
// outnumbering strengths. Each decision records its cited evidence.
func selectTarget(level *assess.PersonalizedLevel) (TargetLevel, []string) {
	switch {
	case level.MasteryPercentage >= 85 && len(level.GrowthAreas) == 0 && level.Accuracy >= 85:
		reason := fmt.Sprintf(
			"accelerating to grade %d: mastery %.0f%% >= 85%%, no growth areas, accuracy %.0f%% >= 85%%",
			level.GradeLevel+1, level.MasteryPercentage, level.Accuracy)
		return TargetLevel{
			GradeLevel:        level.GradeLevel + 1,
			MasteryPercentage: 75,
			Strategy:          StrategyAccelerate,
		}, []string{reason}

	case level.MasteryPercentage < 50 || len(level.GrowthAreas) > len(level.StrengthAreas):
		target := level.MasteryPercentage + 20
		if target < 70 {
			target = 70
		}
		reason := fmt.Sprintf(
			"remediating: mastery %.0f%%, %d growth areas vs %d strengths",
			level.MasteryPercentage, len(level.GrowthAreas), len(level.StrengthAreas))
		return TargetLevel{
			GradeLevel:        level.GradeLevel,
			MasteryPercentage: target,
			Strategy:          StrategyRemediate,
		}, []string{reason}

	default:
		target := level.MasteryPercentage + 15
		if target > 85 {
			target = 85
		}
		reason := fmt.Sprintf(
			"steady progression: mastery %.0f%%, targeting %.0f%%",
			level.MasteryPercentage, target)
		return TargetLevel{
			GradeLevel:        level.GradeLevel,
			MasteryPercentage: target,
			Strategy:          StrategyDefault,
		}, []string{reason}
	}
}
