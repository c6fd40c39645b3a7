package cloud

// Point is one recorded trail position.
type Point struct {
	X, Y float64
}

// Recorder samples a fixed subset of particles every Stride frames into
// bounded trails. Once a trail reaches MaxPoints the oldest point is
// evicted, so memory stays constant however long the run.
type Recorder struct {
	Indices   []int
	Stride    int
	MaxPoints int

	trails map[int][]Point
}

// NewRecorder tracks the given particle indices, sampling every stride
// frames with at most maxPoints retained per trail.
func NewRecorder(indices []int, stride, maxPoints int) *Recorder {
	if stride < 1 {
		stride = 1
	}
	if maxPoints < 1 {
		maxPoints = 1
	}
	return &Recorder{
		Indices:   indices,
		Stride:    stride,
		MaxPoints: maxPoints,
		trails:    make(map[int][]Point, len(indices)),
	}
}

// Record appends the tracked particles' positions if the cloud's frame
// counter lands on a sampling frame. Indices past the current particle
// count are skipped.
func (r *Recorder) Record(c *Cloud) {
	if c.Frame%r.Stride != 0 {
		return
	}

	for _, idx := range r.Indices {
		if idx < 0 || idx >= c.Len() {
			continue
		}
		trail := append(r.trails[idx], Point{X: c.X[idx], Y: c.Y[idx]})
		if len(trail) > r.MaxPoints {
			trail = trail[1:]
		}
		r.trails[idx] = trail
	}
}

// Trail returns the recorded points for a particle index, oldest first.
func (r *Recorder) Trail(idx int) []Point { return r.trails[idx] }

// Reset drops all recorded points.
func (r *Recorder) Reset() {
	r.trails = make(map[int][]Point, len(r.Indices))
}
