package swipe

import (
	"math"
	"time"

	"mingl_server/models"
)

// Mode is the discrete interpretation of an in-flight drag gesture.
type Mode int

const (
	// ModeUndecided means movement has not left the dead zone yet.
	ModeUndecided Mode = iota
	// ModePhoto means horizontal drag scrubs through the card's photos.
	ModePhoto
	// ModeCard means drag translates the card toward a decision.
	ModeCard
)

// Sample is one gesture measurement: translation since gesture start.
// Negative DY is upward.
type Sample struct {
	DX float64
	DY float64
}

// Visual carries the live feedback derived from a sample: the card
// transform and indicator opacities the renderer applies. During a photo
// scrub the card itself does not move, so translations are zeroed.
type Visual struct {
	TranslateX  float64
	TranslateY  float64
	RotationDeg float64

	LikeOpacity  float64
	NopeOpacity  float64
	SuperOpacity float64

	PhotoIndex int
}

// Outcome is the classification of a gesture release. Decision is empty
// when nothing was committed; SpringBack asks the renderer to animate the
// card back to the origin.
type Outcome struct {
	Decision   models.DecisionKind
	SpringBack bool
}

// Interpreter classifies one drag gesture at a time. It is a pure state
// machine over samples; the animation-driver adapter around it owns thread
// hops and rendering.
type Interpreter struct {
	cfg   Config
	clock Clock

	active     bool
	mode       Mode
	startX     float64
	cardWidth  float64
	photoCount int
	photoIndex int
	scrubBase  float64
	lastEnd    time.Time
}

// NewInterpreter creates an interpreter with the given tuning.
func NewInterpreter(cfg Config, clock Clock) *Interpreter {
	if clock == nil {
		clock = RealClock{}
	}
	return &Interpreter{cfg: cfg, clock: clock}
}

// Begin starts a new gesture on the presented card. startX is the touch-down
// x-coordinate within the card of the given width; photoIndex is the photo
// currently shown.
func (it *Interpreter) Begin(startX, cardWidth float64, photoCount, photoIndex int) {
	it.active = true
	it.mode = ModeUndecided
	it.startX = startX
	it.cardWidth = cardWidth
	it.photoCount = photoCount
	it.photoIndex = photoIndex
	it.scrubBase = 0
}

// Mode returns the current interpretation of the gesture.
func (it *Interpreter) Mode() Mode {
	return it.mode
}

// PhotoIndex returns the photo currently shown, including scrub changes.
func (it *Interpreter) PhotoIndex() int {
	return it.photoIndex
}

// Move feeds one sample and returns the visual parameters for it.
func (it *Interpreter) Move(s Sample) Visual {
	if !it.active {
		return Visual{PhotoIndex: it.photoIndex}
	}

	if it.mode == ModeUndecided {
		if math.Abs(s.DX) > it.cfg.DeadZone || math.Abs(s.DY) > it.cfg.DeadZone {
			if math.Abs(s.DX) >= math.Abs(s.DY) && it.photoCount > 1 && it.inEdgeZone() {
				it.mode = ModePhoto
				it.scrubBase = s.DX
			} else {
				it.mode = ModeCard
			}
		}
	}

	switch it.mode {
	case ModePhoto:
		// A fast flick should decide the card, not burn through photos.
		if math.Abs(s.DX) > it.cfg.PromoteDistance() {
			it.mode = ModeCard
			return it.cardVisual(s)
		}
		delta := s.DX - it.scrubBase
		if delta <= -it.cfg.PhotoSwipeDistance {
			if it.photoIndex < it.photoCount-1 {
				it.photoIndex++
			}
			it.scrubBase = s.DX
		} else if delta >= it.cfg.PhotoSwipeDistance {
			if it.photoIndex > 0 {
				it.photoIndex--
			}
			it.scrubBase = s.DX
		}
		return Visual{PhotoIndex: it.photoIndex}
	case ModeCard:
		return it.cardVisual(s)
	default:
		return Visual{PhotoIndex: it.photoIndex}
	}
}

// End classifies the gesture release. Superlike is checked before anything
// else: a strong upward release commits regardless of mode or horizontal
// state. Duplicate end callbacks within the debounce window are ignored.
func (it *Interpreter) End(s Sample) Outcome {
	if !it.active {
		return Outcome{}
	}
	now := it.clock.Now()
	if !it.lastEnd.IsZero() && now.Sub(it.lastEnd) < it.cfg.EndDebounce {
		return Outcome{}
	}
	it.lastEnd = now
	it.active = false
	mode := it.mode
	it.mode = ModeUndecided

	if -s.DY >= it.cfg.SuperlikeThreshold {
		return Outcome{Decision: models.DecisionSuperlike}
	}
	if mode == ModeCard {
		soft := it.cfg.SoftThreshold()
		if s.DX >= soft {
			return Outcome{Decision: models.DecisionLike}
		}
		if s.DX <= -soft {
			return Outcome{Decision: models.DecisionPass}
		}
	}
	return Outcome{SpringBack: true}
}

func (it *Interpreter) inEdgeZone() bool {
	if it.cardWidth <= 0 {
		return false
	}
	edge := it.cardWidth * it.cfg.EdgeZoneFraction
	return it.startX <= edge || it.startX >= it.cardWidth-edge
}

func (it *Interpreter) cardVisual(s Sample) Visual {
	norm := s.DX / it.cfg.SwipeThreshold
	v := Visual{
		TranslateX:  s.DX,
		TranslateY:  s.DY,
		RotationDeg: clamp(norm, -1, 1) * it.cfg.MaxRotationDeg,
		PhotoIndex:  it.photoIndex,
	}
	if s.DX > 0 {
		v.LikeOpacity = clamp(norm, 0, 1)
	} else if s.DX < 0 {
		v.NopeOpacity = clamp(-norm, 0, 1)
	}
	if up := -s.DY; up > it.cfg.SuperIndicatorStart {
		span := it.cfg.SuperlikeThreshold - it.cfg.SuperIndicatorStart
		v.SuperOpacity = clamp((up-it.cfg.SuperIndicatorStart)/span, 0, 1)
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
