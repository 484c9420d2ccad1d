package embedding

import (
	"math"
	"testing"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name     string
		a        []float64
		b        []float64
		expected float64
	}{
		{"identical vectors", []float64{1, 2, 3}, []float64{1, 2, 3}, 1.0},
		{"orthogonal vectors", []float64{1, 0, 0}, []float64{0, 1, 0}, 0.0},
		{"opposite vectors", []float64{1, 1, 1}, []float64{-1, -1, -1}, -1.0},
		{"similar vectors", []float64{1, 2, 3}, []float64{1.1, 2.1, 3.1}, 0.999},
		{"zero vector", []float64{0, 0, 0}, []float64{1, 2, 3}, 0.0},
		{"empty vectors", nil, nil, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Cosine(tt.a, tt.b)
			if diff := math.Abs(result - tt.expected); diff > 0.001 {
				t.Errorf("Cosine() = %v, want %v (diff: %v)", result, tt.expected, diff)
			}
		})
	}
}

func TestMean(t *testing.T) {
	got, err := Mean([][]float64{{1, 2}, {3, 4}, {5, 9}})
	if err != nil {
		t.Fatalf("Mean() error = %v", err)
	}
	want := []float64{3, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Mean()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestMeanErrors(t *testing.T) {
	if _, err := Mean(nil); err == nil {
		t.Error("Mean(nil) should return error")
	}
	if _, err := Mean([][]float64{{1, 2}, {1}}); err == nil {
		t.Error("Mean() should reject mismatched dimensions")
	}
}
