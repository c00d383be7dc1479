// Package scoring turns an iteration's output into points.
package scoring

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// Goal curve: a Gaussian bump centred on the plan, sitting on a flat baseline.
const (
	goalAmplitude = 20.0
	goalSigma     = 4.0
	goalBaseline  = 100.0
)

// In-process curve: each unfinished ball is worth a little less than the last.
const (
	inProcessWeight = 50.0
	inProcessSigma  = 20.0
)

const precision = 3

// Score returns the points for an iteration. Non-positive ballsCollected
// earns nothing from the goal curve; goalTarget is not bounded.
func Score(ballsCollected, goalTarget, inProcessBalls int) float64 {
	return Round(GoalScore(ballsCollected, goalTarget) + InProcessScore(inProcessBalls))
}

// GoalScore is ballsCollected times a multiplier that peaks at 120 when the
// team hits the plan exactly and falls back towards 100 either side of it.
func GoalScore(ballsCollected, goalTarget int) float64 {
	if ballsCollected <= 0 {
		return 0
	}
	diff := float64(ballsCollected) - float64(goalTarget)
	exponent := -(diff * diff) / (2 * goalSigma * goalSigma)
	multiplier := Round(goalAmplitude*math.Exp(exponent) + goalBaseline)
	return Round(float64(ballsCollected) * multiplier)
}

// InProcessScore sums 50·exp(-x²/800) for x in 1..inProcessBalls.
func InProcessScore(inProcessBalls int) float64 {
	total := 0.0
	for x := 1; x <= inProcessBalls; x++ {
		fx := float64(x)
		total += inProcessWeight * math.Exp(-(fx*fx)/(2*inProcessSigma*inProcessSigma))
	}
	return Round(total)
}

// Round rounds v to three decimals, half to even on the exact binary value of
// v, which is what Python's round(v, 3) does.
func Round(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	exact := decimal.RequireFromString(strconv.FormatFloat(v, 'f', 100, 64))
	f, _ := exact.RoundBank(precision).Float64()
	return f
}
