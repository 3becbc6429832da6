package curriculum

import (
	"fmt"
	"slices"
	"sort"

	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/shared"
)

// Catalog is the read-only view of curriculum standards the learning core
// depends on. Hosts may supply their own; StaticCatalog is the built-in one.
type Catalog interface {
	// Standard returns a standard by ID.
	Standard(id string) (Standard, error)

	// ByGrade returns all standards for a grade level, ordered by subject
	// then topological position.
	ByGrade(grade int) []Standard

	// ByGradeSubject returns the standards for one grade and subject,
	// in topological order.
	ByGradeSubject(grade int, subject Subject) []Standard

	// Prerequisites returns the direct prerequisite standards of id.
	Prerequisites(id string) []Standard
}

// StaticCatalog holds an immutable standard set with precomputed indices.
type StaticCatalog struct {
	standards      []Standard
	byID           map[string]*Standard
	byGrade        map[int][]Standard
	byGradeSubject map[gradeSubject][]Standard
	dependents     map[string][]string
	topoIndex      map[string]int
}

type gradeSubject struct {
	grade   int
	subject Subject
}

// NewStaticCatalog builds a catalog from a standard set. The prerequisite
// graph is validated up front; a cycle, dangling reference, or duplicate ID
// fails closed with an error rather than producing a catalog that could loop.
func NewStaticCatalog(standards []Standard) (*StaticCatalog, error) {
	if err := validateStandards(standards); err != nil {
		return nil, err
	}

	c := &StaticCatalog{
		standards:      standards,
		byID:           make(map[string]*Standard, len(standards)),
		byGrade:        make(map[int][]Standard),
		byGradeSubject: make(map[gradeSubject][]Standard),
		dependents:     make(map[string][]string),
		topoIndex:      make(map[string]int, len(standards)),
	}

	for i := range c.standards {
		c.byID[c.standards[i].ID] = &c.standards[i]
	}
	for i := range c.standards {
		for _, prereqID := range c.standards[i].PrerequisiteIDs {
			c.dependents[prereqID] = append(c.dependents[prereqID], c.standards[i].ID)
		}
	}

	// Topological order via Kahn's algorithm; validation above guarantees
	// the queue drains completely.
	inDegree := make(map[string]int, len(standards))
	for i := range standards {
		inDegree[standards[i].ID] = len(standards[i].PrerequisiteIDs)
	}
	var queue []string
	for id, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, id)
		}
	}
	sort.Strings(queue)

	pos := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		c.topoIndex[id] = pos
		pos++

		deps := slices.Clone(c.dependents[id])
		sort.Strings(deps)
		for _, depID := range deps {
			inDegree[depID]--
			if inDegree[depID] == 0 {
				queue = append(queue, depID)
			}
		}
	}

	subjectOrder := make(map[Subject]int, len(AllSubjects()))
	for i, s := range AllSubjects() {
		subjectOrder[s] = i
	}

	for i := range c.standards {
		s := c.standards[i]
		c.byGrade[s.GradeLevel] = append(c.byGrade[s.GradeLevel], s)
		key := gradeSubject{s.GradeLevel, s.Subject}
		c.byGradeSubject[key] = append(c.byGradeSubject[key], s)
	}
	for grade, list := range c.byGrade {
		sorted := slices.Clone(list)
		sort.Slice(sorted, func(i, j int) bool {
			if sorted[i].Subject != sorted[j].Subject {
				return subjectOrder[sorted[i].Subject] < subjectOrder[sorted[j].Subject]
			}
			return c.topoIndex[sorted[i].ID] < c.topoIndex[sorted[j].ID]
		})
		c.byGrade[grade] = sorted
	}
	for key, list := range c.byGradeSubject {
		sorted := slices.Clone(list)
		sort.Slice(sorted, func(i, j int) bool {
			return c.topoIndex[sorted[i].ID] < c.topoIndex[sorted[j].ID]
		})
		c.byGradeSubject[key] = sorted
	}

	return c, nil
}

// Standard returns a standard by ID.
func (c *StaticCatalog) Standard(id string) (Standard, error) {
	s, ok := c.byID[id]
	if !ok {
		return Standard{}, fmt.Errorf("standard %q: %w", id, shared.ErrNotFound)
	}
	return *s, nil
}

// All returns every standard in the catalog.
func (c *StaticCatalog) All() []Standard {
	return slices.Clone(c.standards)
}

// ByGrade returns all standards for a grade level, ordered by subject then
// topological position.
func (c *StaticCatalog) ByGrade(grade int) []Standard {
	return slices.Clone(c.byGrade[grade])
}

// ByGradeSubject returns the standards for one grade and subject in
// topological order.
func (c *StaticCatalog) ByGradeSubject(grade int, subject Subject) []Standard {
	return slices.Clone(c.byGradeSubject[gradeSubject{grade, subject}])
}

// Prerequisites returns the direct prerequisite standards of id.
func (c *StaticCatalog) Prerequisites(id string) []Standard {
	s, ok := c.byID[id]
	if !ok {
		return nil
	}
	result := make([]Standard, 0, len(s.PrerequisiteIDs))
	for _, prereqID := range s.PrerequisiteIDs {
		if p, ok := c.byID[prereqID]; ok {
			result = append(result, *p)
		}
	}
	return result
}

// Dependents returns the standards that directly require id.
func (c *StaticCatalog) Dependents(id string) []Standard {
	depIDs := c.dependents[id]
	result := make([]Standard, 0, len(depIDs))
	for _, depID := range depIDs {
		if s, ok := c.byID[depID]; ok {
			result = append(result, *s)
		}
	}
	return result
}
