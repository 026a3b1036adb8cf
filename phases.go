package protrack

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// JumpStructure is a block view of the jump: the climb samples recorded
// before exit, the freefall segment, and the canopy ride after deployment.
type JumpStructure struct {
	Phases []Phase `json:"phases,omitempty"`
}

// Phase is one contiguous block of series samples. EndIndex is exclusive.
type Phase struct {
	Name             string  `json:"name"` // aircraft|freefall|canopy
	StartIndex       int     `json:"start_index"`
	EndIndex         int     `json:"end_index"`
	StartTimeSeconds float64 `json:"start_time_s"`
	EndTimeSeconds   float64 `json:"end_time_s"`
	DurationSeconds  float64 `json:"duration_s"`
	AvgSpeedMps      float64 `json:"avg_speed_ms"`
	MaxSpeedMps      float64 `json:"max_speed_ms"`
}

// BuildJumpStructure slices the series into phases around the exit index
// and the deployment crossing. A profile with no crossing yields no canopy
// phase; short profiles yield only the blocks they cover.
func BuildJumpStructure(s *AltitudeSeries, k *KinematicSeries) JumpStructure {
	n := s.Len()
	if n == 0 {
		return JumpStructure{}
	}

	freefallEnd := n
	if s.DeploymentIndex != NoDeployment {
		freefallEnd = s.DeploymentIndex
	}

	var phases []Phase
	if exit := min(IndexExit, n); exit > 0 {
		phases = append(phases, newPhase("aircraft", 0, exit, k))
	}
	if freefallEnd > IndexExit && IndexExit < n {
		phases = append(phases, newPhase("freefall", IndexExit, min(freefallEnd, n), k))
	}
	if s.DeploymentIndex != NoDeployment && s.DeploymentIndex < n {
		phases = append(phases, newPhase("canopy", s.DeploymentIndex, n, k))
	}
	return JumpStructure{Phases: phases}
}

func newPhase(name string, start, end int, k *KinematicSeries) Phase {
	p := Phase{
		Name:             name,
		StartIndex:       start,
		EndIndex:         end,
		StartTimeSeconds: IndexToTime(start),
		EndTimeSeconds:   IndexToTime(end),
		DurationSeconds:  float64(end-start) * TimeStep,
	}

	var speeds []float64
	for i := max(start, k.StartIndex); i < end && i-k.StartIndex < k.Len(); i++ {
		speeds = append(speeds, k.Speed[i-k.StartIndex])
	}
	if len(speeds) > 0 {
		p.AvgSpeedMps = stat.Mean(speeds, nil)
		p.MaxSpeedMps = floats.Max(speeds)
	}
	return p
}
