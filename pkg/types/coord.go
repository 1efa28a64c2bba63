package types

import (
	"math"
	"math/bits"
)

// NoValue marks an unset coordinate component or distance.
const NoValue = math.MinInt32

// Coord is a point on the integer plane.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NoCoord is returned when an affiliation has no stored coordinate.
var NoCoord = Coord{X: NoValue, Y: NoValue}

// NoDistance is returned when a distance cannot be computed.
const NoDistance = NoValue

// SquaredDistance returns x*x + y*y as a 128-bit value split into its high
// and low words. The result is exact for every pair of int components.
func (c Coord) SquaredDistance() (hi, lo uint64) {
	xh, xl := bits.Mul64(abs(c.X), abs(c.X))
	yh, yl := bits.Mul64(abs(c.Y), abs(c.Y))
	lo, carry := bits.Add64(xl, yl, 0)
	hi, _ = bits.Add64(xh, yh, carry)
	return hi, lo
}

// abs returns |v| as a uint64, which also holds |math.MinInt|.
func abs(v int) uint64 {
	if v < 0 {
		return uint64(-(v + 1)) + 1
	}
	return uint64(v)
}

// CloserToOrigin reports whether c sorts before o in distance order:
// smaller squared distance first, ties broken by smaller y.
func (c Coord) CloserToOrigin(o Coord) bool {
	ch, cl := c.SquaredDistance()
	oh, ol := o.SquaredDistance()
	if ch != oh {
		return ch < oh
	}
	if cl != ol {
		return cl < ol
	}
	return c.Y < o.Y
}
