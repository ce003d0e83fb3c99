package playable

import (
	"math"
	"time"
)

// Timing constants of the resolution animations.
const (
	ReelBaseDuration    = 2000 * time.Millisecond
	ReelStagger         = 300 * time.Millisecond
	ReelSettle          = 500 * time.Millisecond
	WheelSpinDuration   = 3000 * time.Millisecond
	ScratchDuration     = 800 * time.Millisecond
	PickDuration        = 1000 * time.Millisecond
	MatchDuration       = 600 * time.Millisecond
	FallDuration        = 400 * time.Millisecond
	WinDisplayDuration  = 2500 * time.Millisecond
	QuizFeedbackDelay   = 1500 * time.Millisecond
	WheelMinRotationDeg = 1080.0
)

// milestone is an intermediate visual step of a resolution, fired at
// start+offset. It returns the event to emit, if any.
type milestone struct {
	offset time.Duration
	apply  func(s *Session) *Event
}

// mechanic varies only the visual side of a play: what begins, which
// intermediate steps fire, how long resolution lasts and what settles at the
// end. Play counting, win policy and end scheduling are shared.
type mechanic struct {
	begin      func(s *Session, target int, rng Rand)
	milestones func(s *Session) []milestone
	duration   func(s *Session) time.Duration
	settle     func(s *Session)
}

func mechanicFor(mode Mode) (mechanic, bool) {
	switch mode {
	case ModeSlots:
		return slotsMechanic, true
	case ModeWheel:
		return wheelMechanic, true
	case ModeScratch:
		return surfaceMechanic(ScratchDuration), true
	case ModePick:
		return surfaceMechanic(PickDuration), true
	case ModeMatch:
		return surfaceMechanic(MatchDuration), true
	case ModeFall:
		return surfaceMechanic(FallDuration), true
	}
	return mechanic{}, false
}

// ReelStopOffset is when column col stops, measured from the play start.
func ReelStopOffset(col int) time.Duration {
	return ReelBaseDuration + time.Duration(col)*ReelStagger
}

// SlotsResolveDuration is the total slots resolution time for cols reels.
func SlotsResolveDuration(cols int) time.Duration {
	if cols < 1 {
		cols = 1
	}
	return ReelStopOffset(cols-1) + ReelSettle
}

var slotsMechanic = mechanic{
	begin: func(s *Session, _ int, _ Rand) {
		s.reels = make([]bool, s.cfg.Grid.Cols)
		for i := range s.reels {
			s.reels[i] = true
		}
	},
	milestones: func(s *Session) []milestone {
		out := make([]milestone, len(s.reels))
		for i := range s.reels {
			col := i
			out[i] = milestone{
				offset: ReelStopOffset(col),
				apply: func(s *Session) *Event {
					if col >= len(s.reels) {
						return nil
					}
					s.reels[col] = false
					return &Event{Kind: EventReelStopped, Column: col}
				},
			}
		}
		return out
	},
	duration: func(s *Session) time.Duration {
		return SlotsResolveDuration(s.cfg.Grid.Cols)
	},
	settle: func(s *Session) {
		for i := range s.reels {
			s.reels[i] = false
		}
	},
}

// The wheel turns at least three full revolutions and comes to rest on a
// randomly chosen segment. The landed segment is display-only: the win
// message still comes from the play's win configuration.
var wheelMechanic = mechanic{
	begin: func(s *Session, _ int, rng Rand) {
		segs := len(s.cfg.JackpotTiers)
		if segs < 1 {
			segs = 1
		}
		landed := rng.Intn(segs)
		s.wheelRotation = wheelTarget(s.wheelRotation, landed, segs)
		s.pendingSegment = landed
	},
	milestones: func(*Session) []milestone { return nil },
	duration:   func(*Session) time.Duration { return WheelSpinDuration },
	settle: func(s *Session) {
		s.landedSegment = LandedSegment(s.wheelRotation, len(s.cfg.JackpotTiers))
		s.pendingSegment = -1
	},
}

// wheelTarget returns the absolute rotation, in degrees, that turns the
// wheel at least WheelMinRotationDeg from prev and leaves segment landed
// centred under the top pointer.
func wheelTarget(prev float64, landed, segs int) float64 {
	slice := 360.0 / float64(segs)
	base := prev - math.Mod(prev, 360) + WheelMinRotationDeg + 720
	return base - (float64(landed)*slice + slice/2)
}

// LandedSegment maps an absolute wheel rotation to the segment under the pointer.
func LandedSegment(rotation float64, segs int) int {
	if segs < 1 {
		return 0
	}
	slice := 360.0 / float64(segs)
	under := math.Mod(360-math.Mod(rotation, 360), 360)
	idx := int(under / slice)
	if idx >= segs {
		idx = segs - 1
	}
	return idx
}

// surfaceMechanic covers scratch, pick, match and fall: a tap on one cell of
// the rows×cols surface reveals it after a fixed delay.
func surfaceMechanic(d time.Duration) mechanic {
	return mechanic{
		begin: func(s *Session, target int, _ Rand) {
			s.revealed = append(s.revealed, pickTarget(s, target))
		},
		milestones: func(*Session) []milestone { return nil },
		duration:   func(*Session) time.Duration { return d },
		settle:     func(*Session) {},
	}
}

// SurfaceSize is the number of tappable cells in the non-slot mechanics.
func SurfaceSize(cfg *Configuration) int {
	return cfg.Grid.Rows * cfg.Grid.Cols
}

func pickTarget(s *Session, target int) int {
	size := SurfaceSize(&s.cfg)
	if target >= 0 && target < size && !s.isRevealed(target) {
		return target
	}
	for i := 0; i < size; i++ {
		if !s.isRevealed(i) {
			return i
		}
	}
	// Every cell is open; reuse the requested one for the animation.
	if target < 0 || target >= size {
		return 0
	}
	return target
}
