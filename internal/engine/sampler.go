package engine

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/piwi3910/CampusGrove/internal/model"
)

// Sampler produces candidate ground points inside the square
// [-halfExtent, halfExtent] on both axes. Implementations may be called
// indefinitely; the only side effect is consuming their randomness.
type Sampler interface {
	Sample(halfExtent float64) model.Point2D
}

// UniformSampler draws X and Z independently and uniformly from [-H, H).
type UniformSampler struct {
	src rand.Source
}

// NewUniformSampler wraps src. A nil source uses the global generator.
func NewUniformSampler(src rand.Source) *UniformSampler {
	return &UniformSampler{src: src}
}

// NewSeededSampler returns a reproducible sampler backed by a PCG source.
func NewSeededSampler(seed uint64) *UniformSampler {
	return NewUniformSampler(rand.NewPCG(seed, seed^pcgStream))
}

const pcgStream = 0x9e3779b97f4a7c15

func (s *UniformSampler) Sample(halfExtent float64) model.Point2D {
	d := distuv.Uniform{Min: -halfExtent, Max: halfExtent, Src: s.src}
	return model.Point2D{X: d.Rand(), Z: d.Rand()}
}

// SequenceSampler replays a fixed list of points and then repeats the last one.
// An empty sequence always yields the origin.
type SequenceSampler struct {
	points []model.Point2D
	next   int
}

func NewSequenceSampler(points ...model.Point2D) *SequenceSampler {
	cp := make([]model.Point2D, len(points))
	copy(cp, points)
	return &SequenceSampler{points: cp}
}

// Sample ignores halfExtent; the replayed points are returned verbatim.
func (s *SequenceSampler) Sample(float64) model.Point2D {
	if len(s.points) == 0 {
		return model.Point2D{}
	}
	if s.next >= len(s.points) {
		return s.points[len(s.points)-1]
	}
	p := s.points[s.next]
	s.next++
	return p
}

// Calls returns how many points have been replayed from the list so far.
func (s *SequenceSampler) Calls() int {
	return s.next
}
