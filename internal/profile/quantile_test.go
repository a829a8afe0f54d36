package profile

import (
	"math"
	"testing"
)

func TestQuantile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		q      float64
		want   float64
	}{
		{"single value", []float64{5}, 0.25, 5},
		{"median of pair", []float64{1, 3}, 0.5, 2},
		{"q1 interpolated", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 100}, 0.25, 3.25},
		{"q3 interpolated", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 100}, 0.75, 7.75},
		{"min", []float64{1, 2, 3}, 0, 1},
		{"max", []float64{1, 2, 3}, 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := quantile(tt.sorted, tt.q)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("quantile(%v, %v) = %v, want %v", tt.sorted, tt.q, got, tt.want)
			}
		})
	}
}
