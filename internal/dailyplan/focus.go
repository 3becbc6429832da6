package dailyplan

import (
	"sort"

	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/curriculum"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/learner"
)

// FocusArea is one (subject, skillArea) pair the day's sessions should
// target, with its source priority.
type FocusArea struct {
	learner.SkillRef

	// Priority ranks the source: 1 weaknesses, 2 learning gaps, 3 unmet
	// curriculum goals. Lower runs first.
	Priority int
}

// rankFocusAreas merges the profile's weakness, gap, and unmet-goal lists
// into a deduplicated focus list sorted by ascending priority. The first
// occurrence of a (subject, skillArea) pair wins, so a skill that is both a
// weakness and a gap keeps priority 1.
//
// When the profile carries no signals at all, the catalog's grade-level
// domains stand in so a plan can still be packed.
func rankFocusAreas(p learner.Profile, catalog curriculum.Catalog, grade int) []FocusArea {
	var out []FocusArea
	seen := map[learner.SkillRef]bool{}

	add := func(refs []learner.SkillRef, priority int) {
		for _, r := range refs {
			if seen[r] {
				continue
			}
			seen[r] = true
			out = append(out, FocusArea{SkillRef: r, Priority: priority})
		}
	}
	add(p.Weaknesses, 1)
	add(p.LearningGaps, 2)
	add(p.UnmetGoals, 3)

	if len(out) == 0 {
		for _, std := range catalog.ByGrade(grade) {
			r := learner.SkillRef{Subject: std.Subject, SkillArea: std.Domain}
			if seen[r] {
				continue
			}
			seen[r] = true
			out = append(out, FocusArea{SkillRef: r, Priority: 2})
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out
}

// standardFor finds a grade-level standard matching a focus area by domain,
// so sessions can carry a curriculum link. Returns "" when none matches.
func standardFor(catalog curriculum.Catalog, grade int, fa FocusArea) string {
	for _, std := range catalog.ByGradeSubject(grade, fa.Subject) {
		if std.Domain == fa.SkillArea {
			return std.ID
		}
	}
	return ""
}
