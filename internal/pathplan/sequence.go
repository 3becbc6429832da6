package pathplan

import (
	"sort"

	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/curriculum"
)

// sequenceSteps orders steps so every step follows its in-path prerequisite
// steps, with a ready queue kept sorted by priority (high < medium < low,
// stable by insertion order). Steps caught in a prerequisite cycle are not
// dropped: they are appended at the end with PrerequisitesMet forced false,
// and their standard IDs returned for path metadata.
//
// The queue is fully re-sorted after every insertion. That is O(n^2 log n)
// over the path, which is fine at the tens of steps a single learner gets.
func sequenceSteps(catalog curriculum.Catalog, steps []Step) (ordered []Step, cycleIDs []string) {
	if len(steps) == 0 {
		return nil, nil
	}

	byStandard := make(map[string]int, len(steps))
	for i, s := range steps {
		byStandard[s.StandardID] = i
	}

	// Edges only between standards that both have steps in this path.
	inDegree := make([]int, len(steps))
	dependents := make(map[int][]int)
	for i, s := range steps {
		std, err := catalog.Standard(s.StandardID)
		if err != nil {
			continue
		}
		for _, prereqID := range std.PrerequisiteIDs {
			if j, ok := byStandard[prereqID]; ok {
				inDegree[i]++
				dependents[j] = append(dependents[j], i)
			}
		}
	}

	type queued struct {
		idx      int
		insertat int
	}
	var queue []queued
	seq := 0
	push := func(idx int) {
		queue = append(queue, queued{idx: idx, insertat: seq})
		seq++
		sort.SliceStable(queue, func(a, b int) bool {
			pa := steps[queue[a].idx].Priority.rank()
			pb := steps[queue[b].idx].Priority.rank()
			if pa != pb {
				return pa < pb
			}
			return queue[a].insertat < queue[b].insertat
		})
	}

	for i := range steps {
		if inDegree[i] == 0 {
			push(i)
		}
	}

	done := make([]bool, len(steps))
	for len(queue) > 0 {
		head := queue[0]
		queue = queue[1:]

		ordered = append(ordered, steps[head.idx])
		done[head.idx] = true

		for _, dep := range dependents[head.idx] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				push(dep)
			}
		}
	}

	// Anything left is part of a prerequisite cycle. Fail closed on the
	// ordering guarantee but keep the steps usable.
	for i := range steps {
		if done[i] {
			continue
		}
		s := steps[i]
		s.PrerequisitesMet = false
		ordered = append(ordered, s)
		cycleIDs = append(cycleIDs, s.StandardID)
	}
	return ordered, cycleIDs
}
