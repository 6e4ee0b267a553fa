package llm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClampTemperature(t *testing.T) {
	tests := []struct {
		description string
		in          float64
		want        float64
	}{
		{"Should raise a negative value to 0", -5, 0.0},
		{"Should lower a value above 2 to 2", 10, 2.0},
		{"Should keep an in range value", 0.7, 0.7},
		{"Should keep the lower bound", 0, 0},
		{"Should keep the upper bound", 2, 2},
		{"Should default NaN", math.NaN(), 0.2},
		{"Should lower +Inf to 2", math.Inf(1), 2.0},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			require.Equal(t, tt.want, ClampTemperature(tt.in))
		})
	}
}

func TestParseTemperature(t *testing.T) {
	tests := []struct {
		description string
		in          string
		want        float64
	}{
		{"Should default non numeric input", "abc", 0.2},
		{"Should default empty input", "", 0.2},
		{"Should clamp parsed values", "-5", 0.0},
		{"Should clamp parsed large values", "10", 2.0},
		{"Should trim spaces", " 1.25 ", 1.25},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			require.Equal(t, tt.want, ParseTemperature(tt.in))
		})
	}
}

func TestClampMaxTokens(t *testing.T) {
	require.Equal(t, 1, ClampMaxTokens(0))
	require.Equal(t, 1, ClampMaxTokens(-20))
	require.Equal(t, 4096, ClampMaxTokens(100000))
	require.Equal(t, 512, ClampMaxTokens(512))
}

func TestParseMaxTokens(t *testing.T) {
	tests := []struct {
		description string
		in          string
		want        int
	}{
		{"Should default non numeric input", "abc", 1024},
		{"Should default empty input", "", 1024},
		{"Should raise 0 to 1", "0", 1},
		{"Should lower 100000 to 4096", "100000", 4096},
		{"Should lower huge numbers to 4096", "99999999999999999999999", 4096},
		{"Should truncate decimals", "12.9", 12},
		{"Should raise negative decimals to 1", "-3.5", 1},
		{"Should keep valid values", "2048", 2048},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			require.Equal(t, tt.want, ParseMaxTokens(tt.in))
		})
	}
}
