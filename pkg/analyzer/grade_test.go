package analyzer

import "testing"

func TestCalcGrade_BoundaryTable(t *testing.T) {
	intp := func(n int) *int { return &n }

	tests := []struct {
		name string
		rank *int
		want Grade
	}{
		{"rank 1", intp(1), GradeS},
		{"rank 2", intp(2), GradeA},
		{"rank 5", intp(5), GradeA},
		{"rank 6", intp(6), GradeB},
		{"rank 10", intp(10), GradeB},
		{"rank 11", intp(11), GradeC},
		{"rank 30", intp(30), GradeC},
		{"rank 31", intp(31), GradeUnexposed},
		{"no rank", nil, GradeUnexposed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalcGrade(tt.rank); got != tt.want {
				t.Errorf("CalcGrade(%v) = %s, want %s", tt.rank, got, tt.want)
			}
		})
	}
}
