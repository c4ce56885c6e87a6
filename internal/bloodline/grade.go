package bloodline

import "fmt"

type Grade string

const (
	GradeMutt      Grade = "mutt"
	GradeHalfblood Grade = "halfblood"
	GradePureblood Grade = "pureblood"
	GradeSacred    Grade = "sacred28"
)

func ParseGrade(s string) (Grade, error) {
	switch g := Grade(s); g {
	case GradeMutt, GradeHalfblood, GradePureblood, GradeSacred:
		return g, nil
	default:
		return "", fmt.Errorf("unknown bloodline grade: %q", s)
	}
}

// InitialGrade is the grade a mutt receives when it is hatched or bred.
func InitialGrade(parentA, parentB int64) Grade {
	if parentA <= 0 && parentB <= 0 {
		return GradeMutt
	}
	return GradeHalfblood
}

// Elevated reports whether g came from a qualifying route.
func (g Grade) Elevated() bool {
	return g == GradePureblood || g == GradeSacred
}

func (g Grade) Label() string {
	switch g {
	case GradeHalfblood:
		return "Halfblood"
	case GradePureblood:
		return "Pureblood"
	case GradeSacred:
		return "Sacred 28"
	default:
		return "Mutt"
	}
}
