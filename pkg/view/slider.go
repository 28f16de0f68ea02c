package view

import (
	"fmt"
	"time"
)

const (
	AutoplayInterval = 3 * time.Second
	SwipeThreshold   = 50
	MaxDots          = 8
)

// Slider is the image carousel of one product.
type Slider struct {
	Images  []string
	Current int
	Focused bool
}

func NewSlider(images []string) *Slider {
	return &Slider{Images: images}
}

// Active reports whether there is anything to slide between.
func (s *Slider) Active() bool {
	return len(s.Images) > 1
}

func (s *Slider) Next() {
	if s.Active() {
		s.Current = (s.Current + 1) % len(s.Images)
	}
}

func (s *Slider) Prev() {
	if s.Active() {
		s.Current = (s.Current - 1 + len(s.Images)) % len(s.Images)
	}
}

func (s *Slider) GoTo(i int) {
	if i >= 0 && i < len(s.Images) {
		s.Current = i
	}
}

// Swipe moves by one image when the gesture is long enough. A leftward
// swipe (start right of end) shows the next image.
func (s *Slider) Swipe(startX, endX float64) {
	diff := startX - endX
	switch {
	case diff > SwipeThreshold:
		s.Next()
	case diff < -SwipeThreshold:
		s.Prev()
	}
}

// Tick is the autoplay step, skipped while the slider has focus.
func (s *Slider) Tick() bool {
	if s.Focused || !s.Active() {
		return false
	}
	s.Next()
	return true
}

func (s *Slider) ShowDots() bool {
	return s.Active() && len(s.Images) <= MaxDots
}

func (s *Slider) Counter() string {
	return fmt.Sprintf("%d / %d", s.Current+1, len(s.Images))
}

func (s *Slider) Image() string {
	if len(s.Images) == 0 {
		return ""
	}
	return s.Images[s.Current]
}
