package diagnosis

import "testing"

func TestScoreNumericAge(t *testing.T) {
	kind := NumericAge
	tests := []struct {
		value float64
		want  int
	}{
		{18, 1},
		{24.9, 1},
		{25, 2},
		{29.9, 2},
		{30, 3},
		{34.9, 3},
		{35, 5},
		{39.9, 5},
		{40, 8},
		{52, 8},
	}
	for _, tt := range tests {
		if got := scoreNumeric(&kind, tt.value); got != tt.want {
			t.Errorf("age %.1f = %d, want %d", tt.value, got, tt.want)
		}
	}
}

func TestScoreNumericBMI(t *testing.T) {
	kind := NumericBMI
	tests := []struct {
		value float64
		want  int
	}{
		{16, 3},
		{18.4, 3},
		{18.5, 0},
		{24.9, 0},
		{25, 2},
		{29.9, 2},
		{30, 5},
		{41, 5},
	}
	for _, tt := range tests {
		if got := scoreNumeric(&kind, tt.value); got != tt.want {
			t.Errorf("bmi %.1f = %d, want %d", tt.value, got, tt.want)
		}
	}
}

func TestScoreNumericNoKind(t *testing.T) {
	if got := scoreNumeric(nil, 33); got != 0 {
		t.Errorf("untagged numeric question scored %d, want 0", got)
	}
}
