package curriculum

import (
	"fmt"
	"strings"

	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/shared"
)

// validateStandards performs all structural checks on a standard set.
// Returns a combined error describing every problem found, or nil.
func validateStandards(standards []Standard) error {
	var errs []string

	idSet := make(map[string]bool, len(standards))
	for _, s := range standards {
		if idSet[s.ID] {
			errs = append(errs, fmt.Sprintf("duplicate standard ID: %q", s.ID))
		}
		idSet[s.ID] = true
	}

	for _, s := range standards {
		for _, prereqID := range s.PrerequisiteIDs {
			if !idSet[prereqID] {
				errs = append(errs, fmt.Sprintf("standard %q references nonexistent prerequisite %q", s.ID, prereqID))
			}
		}
		if s.Difficulty < 1 || s.Difficulty > 10 {
			errs = append(errs, fmt.Sprintf("standard %q: difficulty must be in [1,10], got %d", s.ID, s.Difficulty))
		}
	}

	// Cycle check via Kahn's algorithm.
	inDegree := make(map[string]int, len(standards))
	adjList := make(map[string][]string)
	for _, s := range standards {
		inDegree[s.ID] = len(s.PrerequisiteIDs)
		for _, prereqID := range s.PrerequisiteIDs {
			adjList[prereqID] = append(adjList[prereqID], s.ID)
		}
	}

	var queue []string
	for _, s := range standards {
		if inDegree[s.ID] == 0 {
			queue = append(queue, s.ID)
		}
	}

	visited := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited++
		for _, depID := range adjList[id] {
			inDegree[depID]--
			if inDegree[depID] == 0 {
				queue = append(queue, depID)
			}
		}
	}

	if visited < len(standards) {
		var cycleNodes []string
		for _, s := range standards {
			if inDegree[s.ID] > 0 {
				cycleNodes = append(cycleNodes, s.ID)
			}
		}
		errs = append(errs, fmt.Sprintf("%v involving standards: %s", shared.ErrCycleDetected, strings.Join(cycleNodes, ", ")))
	}

	if len(errs) > 0 {
		err := fmt.Errorf("curriculum validation failed:\n  %s", strings.Join(errs, "\n  "))
		if visited < len(standards) {
			return fmt.Errorf("%w: %w", shared.ErrCycleDetected, err)
		}
		return err
	}
	return nil
}
