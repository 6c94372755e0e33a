// Package meadow samples the ground a colony is founded on.
// Ground is derived from layered simplex noise and is never stored: the same
// seed and coordinates always give the same terrain.
package meadow

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Terrain is the kind of ground at a meadow coordinate.
type Terrain uint8

const (
	TerrainPuddle Terrain = iota // Low and wet
	TerrainLoam                  // Soft soil, easy digging
	TerrainClover                // Open meadow
	TerrainSand                  // Dry, loose
	TerrainStone                 // High and hard
)

// layer is one noise field sampled at a base scale. Each extra detail pass
// doubles the scale and halves the weight.
type layer struct {
	noise  opensimplex.Noise
	scale  float64
	detail int
}

// sample returns the layer's value at (x, y) in [0, 1].
func (l layer) sample(x, y float64) float64 {
	var sum, weights float64
	scale, weight := l.scale, 1.0
	for i := 0; i < l.detail+1; i++ {
		sum += weight * l.noise.Eval2(x*scale, y*scale)
		weights += weight
		scale, weight = scale*2, weight/2
	}
	return min(max(sum/weights, 0), 1)
}

// Ground samples terrain from an elevation and a moisture layer.
type Ground struct {
	elev  layer
	moist layer
}

// NewGround creates a ground sampler for a seed.
func NewGround(seed int64) *Ground {
	return &Ground{
		elev:  layer{noise: opensimplex.NewNormalized(seed), scale: 0.07, detail: 2},
		moist: layer{noise: opensimplex.NewNormalized(seed + 1), scale: 0.05, detail: 1},
	}
}

// At returns the terrain at integer meadow coordinates.
func (g *Ground) At(x, y int) Terrain {
	fx, fy := float64(x), float64(y)
	return deriveTerrain(g.elev.sample(fx, fy), g.moist.sample(fx, fy))
}

// deriveTerrain thresholds elevation and moisture samples, both in [0, 1].
func deriveTerrain(elev, moist float64) Terrain {
	switch {
	case elev < 0.3 && moist > 0.5:
		return TerrainPuddle
	case elev > 0.7:
		return TerrainStone
	case moist < 0.35:
		return TerrainSand
	case moist > 0.6:
		return TerrainLoam
	default:
		return TerrainClover
	}
}

// String returns the lower-case terrain name used in spawn messages.
func (t Terrain) String() string {
	switch t {
	case TerrainPuddle:
		return "puddle"
	case TerrainLoam:
		return "loam"
	case TerrainClover:
		return "clover"
	case TerrainSand:
		return "sand"
	case TerrainStone:
		return "stone"
	default:
		return "unknown"
	}
}
