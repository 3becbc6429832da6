package pathplan

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/assess"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/curriculum"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/learner"
)

const (
	remediationCutoff  = 0.7
	masteredCutoff     = 0.8
	inProgressCutoff   = 0.6
	prereqCutoff       = 0.6
	advancedMaxDiff    = 4
	advancedPerSubject = 3
)

// baseWeeks is the shared week estimate: ceil(difficulty/2), scaled by 1.2
// for grades above 5.
func baseWeeks(difficulty, grade int) float64 {
	w := math.Ceil(float64(difficulty) / 2)
	if grade > 5 {
		w *= 1.2
	}
	return w
}

// styleAdaptation names the presentation adaptation for a learning style.
func styleAdaptation(style learner.LearningStyle) string {
	switch style {
	case learner.StyleVisual:
		return "visual-first presentation with diagrams"
	case learner.StyleAuditory:
		return "spoken prompts and read-aloud support"
	case learner.StyleKinesthetic:
		return "interactive manipulatives before abstract practice"
	case learner.StyleReading:
		return "text-based worked examples"
	default:
		return ""
	}
}

// buildRemediationSteps creates high-priority steps for previous-grade
// standards the learner has not secured (matched mastery below 0.7).
func buildRemediationSteps(catalog curriculum.Catalog, records []learner.ConceptMastery, grade int, subjects []curriculum.Subject, style learner.LearningStyle) []Step {
	var steps []Step
	for _, subject := range subjects {
		for _, std := range catalog.ByGradeSubject(grade-1, subject) {
			m, _ := assess.MatchedMastery(records, std)
			if m >= remediationCutoff {
				continue
			}
			step := newStep(std, PriorityHigh, StatusNotStarted, style)
			step.EstimatedWeeks = 1
			step.Adaptations = append(step.Adaptations,
				fmt.Sprintf("revisits grade %d groundwork (matched mastery %.0f%%)", grade-1, m*100))
			step.CompletionCriteria = []string{"accuracy >= 75% on mixed practice sets"}
			// Remediation targets known gaps; sequencing does not hold it
			// back behind unmet prerequisites.
			step.PrerequisitesMet = true
			steps = append(steps, step)
		}
	}
	return steps
}

// buildGradeLevelSteps creates steps for every current-grade standard, with
// status and priority derived from matched mastery.
func buildGradeLevelSteps(catalog curriculum.Catalog, records []learner.ConceptMastery, grade int, subjects []curriculum.Subject, style learner.LearningStyle) []Step {
	var steps []Step
	for _, subject := range subjects {
		for _, std := range catalog.ByGradeSubject(grade, subject) {
			m, _ := assess.MatchedMastery(records, std)

			var status StepStatus
			var priority Priority
			switch {
			case m >= masteredCutoff:
				status, priority = StatusMastered, PriorityLow
			case m >= inProgressCutoff:
				status, priority = StatusInProgress, PriorityMedium
			default:
				status, priority = StatusNotStarted, PriorityHigh
			}

			step := newStep(std, priority, status, style)
			step.EstimatedWeeks = baseWeeks(std.Difficulty, grade)
			step.PrerequisitesMet = prerequisitesMet(catalog, records, std)
			step.CompletionCriteria = []string{
				fmt.Sprintf("demonstrate each objective of %q", std.Title),
				"accuracy >= 80% across two practice sessions",
			}
			steps = append(steps, step)
		}
	}
	return steps
}

// buildAdvancedSteps creates low-priority preview steps from the target
// grade when accelerating: easy standards only (difficulty <= 4), at most
// three per subject.
func buildAdvancedSteps(catalog curriculum.Catalog, records []learner.ConceptMastery, targetGrade int, subjects []curriculum.Subject, style learner.LearningStyle) []Step {
	var steps []Step
	for _, subject := range subjects {
		count := 0
		for _, std := range catalog.ByGradeSubject(targetGrade, subject) {
			if std.Difficulty > advancedMaxDiff || count >= advancedPerSubject {
				continue
			}
			step := newStep(std, PriorityLow, StatusNotStarted, style)
			step.EstimatedWeeks = baseWeeks(std.Difficulty, targetGrade) + 1
			step.PrerequisitesMet = prerequisitesMet(catalog, records, std)
			step.CompletionCriteria = []string{"understanding >= 70% on an end-of-step check"}
			step.Adaptations = append(step.Adaptations, fmt.Sprintf("grade %d preview", targetGrade))
			steps = append(steps, step)
			count++
		}
	}
	return steps
}

// prerequisitesMet reports whether every prerequisite standard has matched
// mastery of at least 0.6.
func prerequisitesMet(catalog curriculum.Catalog, records []learner.ConceptMastery, std curriculum.Standard) bool {
	for _, prereq := range catalog.Prerequisites(std.ID) {
		if m, _ := assess.MatchedMastery(records, prereq); m < prereqCutoff {
			return false
		}
	}
	return true
}

func newStep(std curriculum.Standard, priority Priority, status StepStatus, style learner.LearningStyle) Step {
	step := Step{
		ID:         uuid.NewString(),
		StandardID: std.ID,
		Subject:    std.Subject,
		SkillArea:  std.Domain,
		Title:      std.Title,
		Priority:   priority,
		Status:     status,
	}
	if a := styleAdaptation(style); a != "" {
		step.Adaptations = append(step.Adaptations, a)
	}
	return step
}
