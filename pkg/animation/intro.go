package animation

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Intro eases a zoom factor from 0 to 1 when a model first appears.
type Intro struct {
	tween *gween.Tween
	value float64
	done  bool
}

// NewIntro creates an intro lasting d.
func NewIntro(d time.Duration) *Intro {
	if d <= 0 {
		return &Intro{value: 1, done: true}
	}
	return &Intro{tween: gween.New(0, 1, float32(d.Seconds()), ease.OutCubic)}
}

// Update advances the intro by dt and returns the current zoom factor.
func (i *Intro) Update(dt time.Duration) float64 {
	if i.done {
		return i.value
	}
	v, finished := i.tween.Update(float32(dt.Seconds()))
	i.value = float64(v)
	if finished {
		i.value, i.done = 1, true
	}
	return i.value
}

// Done reports whether the intro has finished.
func (i *Intro) Done() bool {
	return i.done
}
