package board

import (
	"math"

	"golang.org/x/exp/constraints"
)

type number interface {
	constraints.Integer | constraints.Float
}

func cross[T number](ax, ay, bx, by T) T {
	return ax*by - ay*bx
}

func dot[T number](ax, ay, bx, by T) T {
	return ax*bx + ay*by
}

func length[T number](dx, dy T) float64 {
	return math.Hypot(float64(dx), float64(dy))
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	return max(lo, min(v, hi))
}

func sign[T constraints.Signed | constraints.Float](v T) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func round(v float64) int {
	return int(math.Round(v))
}

// buildAngleToRadians converts a Build angle (2048 units per turn).
func buildAngleToRadians[T constraints.Integer](a T) float64 {
	return float64(int(a)&2047) * math.Pi / 1024
}
