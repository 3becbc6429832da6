package curriculum

// Subject identifies a school subject.
type Subject string

const (
	SubjectMath          Subject = "mathematics"
	SubjectEnglish       Subject = "english"
	SubjectScience       Subject = "science"
	SubjectSocialStudies Subject = "social-studies"
)

// AllSubjects returns all subjects in display order.
func AllSubjects() []Subject {
	return []Subject{SubjectMath, SubjectEnglish, SubjectScience, SubjectSocialStudies}
}

// SubjectDisplayName returns a human-readable name for a subject.
func SubjectDisplayName(s Subject) string {
	switch s {
	case SubjectMath:
		return "Mathematics"
	case SubjectEnglish:
		return "English"
	case SubjectScience:
		return "Science"
	case SubjectSocialStudies:
		return "Social Studies"
	default:
		return string(s)
	}
}

// Standard is a single curriculum standard: a graded, prerequisite-linked
// unit of required learning content. Immutable catalog entry.
type Standard struct {
	ID          string
	Subject     Subject
	GradeLevel  int
	Domain      string // skill area within the subject, e.g. "fractions"
	Title       string
	Description string

	// PrerequisiteIDs reference standards that must be mastered first.
	// Across the whole catalog these edges must form a DAG.
	PrerequisiteIDs []string

	// Difficulty is on a 1-10 scale.
	Difficulty int

	LearningObjectives []string
	EstimatedMinutes   int
}
