package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundWithTwoDecimalPlace(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"zero", 0, 0},
		{"já arredondado", 4.5, 4.5},
		{"dízima para baixo", 4.333333333333333, 4.33},
		{"dízima para cima", 4.666666666666667, 4.67},
		{"três casas", 10.456, 10.46},
		{"inteiro", 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RoundWithTwoDecimalPlace(tt.input))
		})
	}
}
