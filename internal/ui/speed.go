package ui

import (
	"time"

	"github.com/charmbracelet/harmonica"
)

const (
	minSpeed  = 0.25
	maxSpeed  = 8.0
	speedStep = 1.5
)

// speedControl eases the playback speed toward its target so frame pacing
// changes smoothly instead of jumping.
type speedControl struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
	target float64
}

func newSpeedControl(fps int) speedControl {
	return speedControl{
		spring: harmonica.NewSpring(harmonica.FPS(max(fps, 1)), 6.0, 1.0),
		pos:    1,
		target: 1,
	}
}

func (s *speedControl) faster() {
	s.target = min(s.target*speedStep, maxSpeed)
}

func (s *speedControl) slower() {
	s.target = max(s.target/speedStep, minSpeed)
}

// step advances the spring by one frame and returns the current speed.
func (s *speedControl) step() float64 {
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, s.target)
	if s.pos < minSpeed {
		s.pos = minSpeed
	}
	return s.pos
}

// interval scales the base frame interval by the current speed.
func (s *speedControl) interval(base time.Duration) time.Duration {
	speed := s.pos
	if speed < minSpeed {
		speed = minSpeed
	}
	return time.Duration(float64(base) / speed)
}
