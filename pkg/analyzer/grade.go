package analyzer

// Grade buckets a best rank into the five exposure tiers shown to
// users. 미노출 means the blog never appeared within the rank horizon.
type Grade string

const (
	GradeS         Grade = "S"
	GradeA         Grade = "A"
	GradeB         Grade = "B"
	GradeC         Grade = "C"
	GradeUnexposed Grade = "미노출"
)

// CalcGrade maps a best rank to its grade. Boundaries are closed
// intervals: 1→S, 2–5→A, 6–10→B, 11–30→C, anything else (including
// no rank at all) is 미노출.
func CalcGrade(bestRank *int) Grade {
	if bestRank == nil {
		return GradeUnexposed
	}
	switch rank := *bestRank; {
	case rank == 1:
		return GradeS
	case rank >= 2 && rank <= 5:
		return GradeA
	case rank >= 6 && rank <= 10:
		return GradeB
	case rank >= 11 && rank <= 30:
		return GradeC
	default:
		return GradeUnexposed
	}
}
