package api

import "math"

// Position is a 2D coordinate for the browser renderer.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

const (
	layoutRadius  = 250.0
	layoutCenterX = 400.0
	layoutCenterY = 300.0
)

// circularPositions spreads nodes evenly on a circle, starting at the
// top and going clockwise.
func circularPositions(nodes []string) map[string]Position {
	positions := make(map[string]Position, len(nodes))
	n := float64(len(nodes))
	for i, node := range nodes {
		angle := (2*math.Pi*float64(i))/n - math.Pi/2
		positions[node] = Position{
			X: layoutCenterX + layoutRadius*math.Cos(angle),
			Y: layoutCenterY + layoutRadius*math.Sin(angle),
		}
	}
	return positions
}
