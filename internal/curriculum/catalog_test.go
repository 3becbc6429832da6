package curriculum

import (
	"errors"
	"testing"

	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/shared"
)

func TestDefaultCatalog_SeedIsValid(t *testing.T) {
	c, err := NewStaticCatalog(DefaultStandards())
	if err != nil {
		t.Fatalf("seed catalog invalid: %v", err)
	}
	if len(c.All()) == 0 {
		t.Fatal("seed catalog is empty")
	}
}

func TestStandard_NotFound(t *testing.T) {
	c := DefaultCatalog()
	_, err := c.Standard("nonexistent")
	if !errors.Is(err, shared.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestNewStaticCatalog_CycleFailsClosed(t *testing.T) {
	standards := []Standard{
		{ID: "a", Subject: SubjectMath, GradeLevel: 3, Difficulty: 1, PrerequisiteIDs: []string{"b"}},
		{ID: "b", Subject: SubjectMath, GradeLevel: 3, Difficulty: 1, PrerequisiteIDs: []string{"a"}},
	}
	_, err := NewStaticCatalog(standards)
	if err == nil {
		t.Fatal("expected error for cyclic prerequisites, got nil")
	}
	if !errors.Is(err, shared.ErrCycleDetected) {
		t.Errorf("got %v, want ErrCycleDetected", err)
	}
}

func TestNewStaticCatalog_DanglingPrerequisite(t *testing.T) {
	standards := []Standard{
		{ID: "a", Subject: SubjectMath, GradeLevel: 3, Difficulty: 1, PrerequisiteIDs: []string{"missing"}},
	}
	if _, err := NewStaticCatalog(standards); err == nil {
		t.Fatal("expected error for dangling prerequisite, got nil")
	}
}

func TestNewStaticCatalog_DuplicateID(t *testing.T) {
	standards := []Standard{
		{ID: "a", Subject: SubjectMath, GradeLevel: 3, Difficulty: 1},
		{ID: "a", Subject: SubjectMath, GradeLevel: 4, Difficulty: 1},
	}
	if _, err := NewStaticCatalog(standards); err == nil {
		t.Fatal("expected error for duplicate ID, got nil")
	}
}

func TestByGradeSubject_TopologicalOrder(t *testing.T) {
	c := DefaultCatalog()
	for _, subject := range AllSubjects() {
		for grade := 3; grade <= 6; grade++ {
			list := c.ByGradeSubject(grade, subject)
			seen := make(map[string]int, len(list))
			for i, s := range list {
				seen[s.ID] = i
			}
			for i, s := range list {
				for _, prereqID := range s.PrerequisiteIDs {
					if j, ok := seen[prereqID]; ok && j > i {
						t.Errorf("%s/%d: standard %q appears before its prerequisite %q", subject, grade, s.ID, prereqID)
					}
				}
			}
		}
	}
}

func TestPrerequisites(t *testing.T) {
	c := DefaultCatalog()
	prereqs := c.Prerequisites("math-4-mult")
	if len(prereqs) != 2 {
		t.Fatalf("got %d prerequisites, want 2", len(prereqs))
	}
	ids := map[string]bool{}
	for _, p := range prereqs {
		ids[p.ID] = true
	}
	if !ids["math-3-mult"] || !ids["math-4-pv"] {
		t.Errorf("got %v, want math-3-mult and math-4-pv", ids)
	}
}

func TestDependents(t *testing.T) {
	c := DefaultCatalog()
	deps := c.Dependents("math-3-pv")
	if len(deps) == 0 {
		t.Fatal("math-3-pv should have dependents")
	}
}

func TestRelatesTo(t *testing.T) {
	c := DefaultCatalog()
	frac, _ := c.Standard("math-3-frac")
	geom, _ := c.Standard("math-3-geom")

	tests := []struct {
		concept string
		std     Standard
		want    bool
	}{
		{"fractions", frac, true},
		{"comparing fractions", frac, true},
		{"geometry", geom, true}, // matches via the domain field
		{"shapes", geom, true},
		{"the and of", frac, false}, // stopwords only
		{"", frac, false},
	}

	for _, tt := range tests {
		if got := RelatesTo(tt.concept, tt.std); got != tt.want {
			t.Errorf("RelatesTo(%q, %s): got %v, want %v", tt.concept, tt.std.ID, got, tt.want)
		}
	}
}
