package motion

// Curve maps normalized elapsed time [0,1] to normalized progress [0,1].
type Curve func(t float64) float64

// Linear progresses uniformly.
func Linear(t float64) float64 { return t }

// EaseOutCubic decelerates toward the end of the transition.
func EaseOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}
