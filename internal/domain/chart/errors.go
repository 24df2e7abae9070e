package chart

import (
	"errors"
	"math"
)

// Sentinel kinds for chart errors.
var (
	ErrInvalidInput  = errors.New("invalid chart input")
	ErrTooManyPoints = errors.New("too many chart points")
)

// roundHalfUp rounds .5 toward positive infinity, matching browser Math.round.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
