package engine

import (
	"math/rand"
	"time"

	"github.com/ojrac/opensimplex-go"
	"github.com/san-kum/attractor/internal/config"
	"github.com/san-kum/attractor/internal/dynamo"
)

// Origin is the point every line's seed is offset from.
var Origin = dynamo.State3{X: 0.1}

// noiseStep spaces consecutive lines along the noise field.
const noiseStep = 0.37

// Seeds returns n starting points around Origin with each component
// offset within ±spread/2. Random mode draws independent offsets;
// noise mode samples a simplex field so neighbouring lines start close
// together. A zero seed is replaced by the current time.
func Seeds(n int, mode string, spread float64, seed int64) []dynamo.State3 {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	out := make([]dynamo.State3, n)
	half := spread / 2

	if mode == config.SeedNoise {
		noise := opensimplex.New(seed)
		for i := range out {
			x := float64(i) * noiseStep
			out[i] = Origin.Add(dynamo.State3{
				X: noise.Eval2(x, 0) * half,
				Y: noise.Eval2(x, 100) * half,
				Z: noise.Eval2(x, 200) * half,
			})
		}
		return out
	}

	r := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = Origin.Add(dynamo.State3{
			X: (r.Float64()*2 - 1) * half,
			Y: (r.Float64()*2 - 1) * half,
			Z: (r.Float64()*2 - 1) * half,
		})
	}
	return out
}
