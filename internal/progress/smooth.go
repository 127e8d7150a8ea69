package progress

// DefaultSmoothFrames is how many frames a smooth scroll takes.
const DefaultSmoothFrames = 8

// Smooth animates a scroll offset toward a target along a curve.
// Retargeting mid-flight restarts from the current interpolated offset.
type Smooth struct {
	Frames int
	Curve  Curve

	from, to float64
	frame    int
	active   bool
}

// NewSmooth creates a scroller using EaseInOut.
func NewSmooth(frames int) *Smooth {
	if frames <= 0 {
		frames = DefaultSmoothFrames
	}
	return &Smooth{Frames: frames, Curve: EaseInOut}
}

// Start begins animating from current to target.
func (s *Smooth) Start(current, target float64) {
	s.from = current
	s.to = target
	s.frame = 0
	s.active = current != target
}

// Retarget moves the target by delta from wherever the animation currently is.
func (s *Smooth) Retarget(current, delta float64) {
	base := current
	if s.active {
		base = s.to
	}
	s.Start(current, base+delta)
}

// Target returns the offset the animation ends at.
func (s *Smooth) Target() float64 {
	return s.to
}

// Active reports whether frames remain.
func (s *Smooth) Active() bool {
	return s.active
}

// Step advances one frame and returns the new offset.
func (s *Smooth) Step() (offset float64, done bool) {
	if !s.active {
		return s.to, true
	}
	s.frame++
	t := Clamp01(float64(s.frame) / float64(s.Frames))
	offset = s.from + (s.to-s.from)*s.Curve.At(t)
	if s.frame >= s.Frames {
		s.active = false
		return s.to, true
	}
	return offset, false
}

// Stop cancels the animation.
func (s *Smooth) Stop() {
	s.active = false
}
