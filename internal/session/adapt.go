package session

import (
	"fmt"
	"math"

	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/dailyplan"
)

const (
	increaseAccuracy = 90.0
	decreaseAccuracy = 50.0

	// paceOverrunFactor flags sessions that ran more than half again over
	// their estimate; paceGrowthFactor sets the new estimate.
	paceOverrunFactor = 1.5
	paceGrowthFactor  = 1.2
)

// deriveAdjustments turns one session's performance into adaptive
// adjustments. Difficulty moves one level at a time; only a decrease applies
// immediately, everything else informs the next session or plan.
func deriveAdjustments(s *dailyplan.Session, perf dailyplan.Performance) []dailyplan.AdaptiveAdjustment {
	var out []dailyplan.AdaptiveAdjustment

	if perf.DifficultyFeedback == dailyplan.FeedbackTooEasy && perf.Accuracy >= increaseAccuracy {
		out = append(out, dailyplan.AdaptiveAdjustment{
			Type:     dailyplan.AdjustDifficultyIncrease,
			Reason:   fmt.Sprintf("%s felt too easy at %.0f%% accuracy", s.SkillArea, perf.Accuracy),
			Impact:   dailyplan.ImpactNextSession,
			NewValue: float64(clampDifficulty(s.DifficultyLevel + 1)),
		})
	}
	if perf.DifficultyFeedback == dailyplan.FeedbackTooHard && perf.Accuracy < decreaseAccuracy {
		out = append(out, dailyplan.AdaptiveAdjustment{
			Type:     dailyplan.AdjustDifficultyDecrease,
			Reason:   fmt.Sprintf("%s felt too hard at %.0f%% accuracy", s.SkillArea, perf.Accuracy),
			Impact:   dailyplan.ImpactImmediate,
			NewValue: float64(clampDifficulty(s.DifficultyLevel - 1)),
		})
	}
	if float64(perf.TimeSpentMinutes) > paceOverrunFactor*float64(s.EstimatedMinutes) {
		out = append(out, dailyplan.AdaptiveAdjustment{
			Type:     dailyplan.AdjustPace,
			Reason:   fmt.Sprintf("%s took %d min against a %d min estimate", s.SkillArea, perf.TimeSpentMinutes, s.EstimatedMinutes),
			Impact:   dailyplan.ImpactNextSession,
			NewValue: math.Ceil(paceGrowthFactor * float64(s.EstimatedMinutes)),
		})
	}
	return out
}

// applyImmediate applies immediate-impact adjustments to the plan's
// remaining sessions. A difficulty decrease propagates to every pending
// session sharing the completed session's skill area.
func applyImmediate(plan *dailyplan.Plan, completed *dailyplan.Session, adjustments []dailyplan.AdaptiveAdjustment) {
	for _, adj := range adjustments {
		if adj.Impact != dailyplan.ImpactImmediate || adj.Type != dailyplan.AdjustDifficultyDecrease {
			continue
		}
		for _, s := range plan.RemainingSessions() {
			if s.SkillArea == completed.SkillArea {
				s.DifficultyLevel = int(adj.NewValue)
			}
		}
	}
}

func clampDifficulty(d int) int {
	if d < 1 {
		return 1
	}
	if d > 10 {
		return 10
	}
	return d
}
