package conv

import (
	"golang.org/x/sys/cpu"

	"github.com/gogpu/convolve/internal/wide"
)

// Dot product implementation selected at init.
var (
	dotImpl  = dot8
	dotLanes = wide.Lanes
)

func init() {
	if cpu.X86.HasAVX512F {
		dotImpl = dot16
		dotLanes = 2 * wide.Lanes
	}
}

// Lanes returns the number of lanes the dot product accumulates per step on
// this CPU: 16 with AVX-512F, 8 otherwise.
func Lanes() int { return dotLanes }
