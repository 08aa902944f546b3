package motion

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/HiddenStrawberry/anubis-discuss/internal/core/config"
)

// Timings holds the durations, curve assignments and thresholds of the two
// composite effects. These are part of the observable contract.
type Timings struct {
	ScrollDuration time.Duration
	ScrollSettle   time.Duration
	ExpandDuration time.Duration
	FadeDuration   time.Duration
	SettleDelay    time.Duration
	EdgeProximity  int
	RevealPoint    float64
}

// TimingsFromConfig maps the config motion section onto effect timings.
func TimingsFromConfig(m config.Motion) Timings {
	return Timings{
		ScrollDuration: m.ScrollDuration,
		ScrollSettle:   m.ScrollSettle,
		ExpandDuration: m.ExpandDuration,
		FadeDuration:   m.FadeDuration,
		SettleDelay:    m.SettleDelay,
		EdgeProximity:  m.EdgeProximity,
		RevealPoint:    m.RevealPoint,
	}
}

// Scroller is the scrollable view a reveal may reposition. Satisfied by
// bubbles' viewport.
type Scroller interface {
	YOffset() int
	VisibleLineCount() int
	SetYOffset(int)
}

type scrollTarget struct {
	s Scroller
}

func (t scrollTarget) SetMotion(p Property, v float64) {
	if p == PropScroll {
		t.s.SetYOffset(int(math.Round(v)))
	}
}

// Reveal builds the effect that makes an editor container visible:
//
//  1. if the container's top edge sits within EdgeProximity rows of the
//     viewport top or bottom, smooth-scroll so it lands at RevealPoint of
//     the viewport (ease-out cubic over ScrollDuration), then wait
//     ScrollSettle — shorter than the scroll, so the next stage starts while
//     the scroll finishes;
//  2. expand from hidden and collapsed to natural height over
//     ExpandDuration;
//  3. cross-fade opacity in over FadeDuration;
//  4. wait SettleDelay, then clear every override, leaving the container in
//     its natural visible state.
//
// top is the container's first line in view coordinates.
func Reveal(c *Container, view Scroller, top int, t Timings, engine Engine, done tea.Msg) *Sequence {
	var stages []Stage

	if view != nil {
		viewTop := view.YOffset()
		height := view.VisibleLineCount()
		rel := top - viewTop
		if rel < t.EdgeProximity || rel > height-t.EdgeProximity {
			target := top - int(math.Round(t.RevealPoint*float64(height)))
			if target < 0 {
				target = 0
			}
			stages = append(stages, Stage{
				Name: "scroll",
				Run: []Transition{
					{
						Target:   scrollTarget{view},
						Property: PropScroll,
						From:     float64(viewTop),
						To:       float64(target),
						Duration: t.ScrollDuration,
						Curve:    EaseOutCubic,
					},
					Wait(t.ScrollSettle),
				},
				Gate: 1,
			})
		}
	}

	stages = append(stages,
		Stage{
			Name:  "expand",
			Apply: c.BeginReveal,
			Run: []Transition{{
				Target:   c,
				Property: PropHeight,
				From:     0,
				To:       1,
				Duration: t.ExpandDuration,
				Curve:    Linear,
			}},
		},
		Stage{
			Name: "fade",
			Run: []Transition{{
				Target:   c,
				Property: PropOpacity,
				From:     0,
				To:       1,
				Duration: t.FadeDuration,
				Curve:    Linear,
			}},
		},
		Stage{
			Name: "settle",
			Run:  []Transition{Wait(t.SettleDelay)},
		},
		Stage{
			Name:  "clear",
			Apply: c.ClearOverrides,
		},
	)

	return NewSequence("reveal", stages, engine, done)
}

// Dismiss builds the effect that removes a cancelled editor container:
// freeze its current extent, fade out over FadeDuration, collapse over
// ExpandDuration with an ease-out cubic, then detach it.
func Dismiss(c *Container, t Timings, engine Engine, done tea.Msg) *Sequence {
	stages := []Stage{
		{
			Name:  "fade",
			Apply: c.Freeze,
			Run: []Transition{{
				Target:   c,
				Property: PropOpacity,
				From:     1,
				To:       0,
				Duration: t.FadeDuration,
				Curve:    Linear,
			}},
		},
		{
			Name: "collapse",
			Run: []Transition{{
				Target:   c,
				Property: PropHeight,
				From:     1,
				To:       0,
				Duration: t.ExpandDuration,
				Curve:    EaseOutCubic,
			}},
		},
		{
			Name:  "remove",
			Apply: c.Remove,
		},
	}

	return NewSequence("dismiss", stages, engine, done)
}
