package llm

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultTemperature = 0.2
	MinTemperature     = 0.0
	MaxTemperature     = 2.0

	DefaultMaxTokens = 1024
	MinMaxTokens     = 1
	MaxMaxTokens     = 4096
)

// ClampTemperature bounds t to [0, 2]. NaN falls back to the default.
func ClampTemperature(t float64) float64 {
	switch {
	case math.IsNaN(t):
		return DefaultTemperature
	case t < MinTemperature:
		return MinTemperature
	case t > MaxTemperature:
		return MaxTemperature
	}
	return t
}

// ParseTemperature reads a user supplied temperature. Non-numeric input
// falls back to the default.
func ParseTemperature(s string) float64 {
	t, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return DefaultTemperature
	}
	return ClampTemperature(t)
}

// ClampMaxTokens bounds n to [1, 4096].
func ClampMaxTokens(n int) int {
	switch {
	case n < MinMaxTokens:
		return MinMaxTokens
	case n > MaxMaxTokens:
		return MaxMaxTokens
	}
	return n
}

// ParseMaxTokens reads a user supplied token limit. Non-numeric input falls
// back to the default.
func ParseMaxTokens(s string) int {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		// "100000.5" or an out of range integer still carries a number
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || math.IsNaN(f) {
			return DefaultMaxTokens
		}
		switch {
		case f > MaxMaxTokens:
			return MaxMaxTokens
		case f < MinMaxTokens:
			return MinMaxTokens
		}
		n = int(f)
	}
	return ClampMaxTokens(n)
}
