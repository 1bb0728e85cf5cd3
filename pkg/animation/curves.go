package animation

import "math"

// CosineRamp eases t in [0, 1] along half a cosine period: 0 at t=0, 1 at
// t=1, with zero slope at both ends. Values outside [0, 1] keep following
// the cosine, so the result always stays within [0, 1].
//
// The progress wheel uses it for the growth oscillator that lengthens and
// shortens the spinning arc.
func CosineRamp(t float64) float64 {
	return math.Cos((t+1)*math.Pi)/2 + 0.5
}
