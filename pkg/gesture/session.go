package gesture

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/glidetype/inputengine/internal/geo"
	"github.com/glidetype/inputengine/internal/logger"
)

// SampleInterval is the nominal interval between accepted samples, matched
// to a 60 Hz touch sampling rate.
const SampleInterval = 1.0 / 60.0

// MinSampleDistance is the minimum normalised movement required for a
// sample to be accepted while capturing.
const MinSampleDistance = 0.005

// minSampleGap is the fraction of SampleInterval that must have elapsed
// before a sample is even considered.
const minSampleGap = 0.8 * SampleInterval

// ErrNotCapturing is returned by Continue and End when the session is idle.
var ErrNotCapturing = errors.New("gesture: session is not capturing")

// ErrOutOfOrder is returned when a sample's timestamp does not exceed the
// last accepted sample's timestamp.
var ErrOutOfOrder = errors.New("gesture: sample out of timestamp order")

type state int

const (
	stateIdle state = iota
	stateCapturing
)

// Session is the capture state machine of one swipe gesture: {idle,
// capturing}, driven entirely by explicit Begin/Continue/End calls rather
// than by any background goroutine.
type Session struct {
	ID  uuid.UUID
	log *log.Logger

	state state

	rawTimes []float64
	rawPos   []geo.Point

	lastSampleTime float64
	lastPos        geo.Point
}

// NewSession creates an idle capture session with a fresh id.
func NewSession() *Session {
	id := uuid.New()
	return &Session{
		ID:  id,
		log: logger.Session("gesture", id.String()),
	}
}

// Capturing reports whether the session is currently capturing.
func (s *Session) Capturing() bool {
	return s.state == stateCapturing
}

// Begin starts a new capture from any state, discarding any buffered
// points from a prior capture.
func (s *Session) Begin(p geo.Point, t float64) {
	s.rawTimes = s.rawTimes[:0]
	s.rawPos = s.rawPos[:0]

	s.rawTimes = append(s.rawTimes, t)
	s.rawPos = append(s.rawPos, p)
	s.lastSampleTime = t
	s.lastPos = p
	s.state = stateCapturing

	s.log.Debug("begin", "x", p.X, "y", p.Y, "t", t)
}

// Continue offers a new sample while capturing. The sample is accepted
// only if enough time and distance has passed since the last accepted
// sample; otherwise it is silently dropped. Returns ErrNotCapturing if
// called outside a capture, and ErrOutOfOrder if t does not exceed the
// last accepted sample's timestamp.
func (s *Session) Continue(p geo.Point, t float64) error {
	if s.state != stateCapturing {
		return ErrNotCapturing
	}
	if t <= s.lastSampleTime {
		s.log.Debug("drop out-of-order sample", "t", t, "last", s.lastSampleTime)
		return ErrOutOfOrder
	}

	if t-s.lastSampleTime < minSampleGap {
		return nil
	}
	if p.Dist(s.lastPos) < MinSampleDistance {
		return nil
	}

	s.rawTimes = append(s.rawTimes, t)
	s.rawPos = append(s.rawPos, p)
	s.lastSampleTime = t
	s.lastPos = p
	return nil
}

// End appends the final point unconditionally, transitions back to idle,
// and returns the completed gesture with per-point features computed.
func (s *Session) End(p geo.Point, t float64) (*Gesture, error) {
	if s.state != stateCapturing {
		return nil, ErrNotCapturing
	}

	s.rawTimes = append(s.rawTimes, t)
	s.rawPos = append(s.rawPos, p)
	s.state = stateIdle

	points := computeFeatures(s.rawPos, s.rawTimes)
	s.log.Debug("end", "samples", len(points))

	return &Gesture{ID: s.ID, Points: points}, nil
}

// Gesture is a completed capture: an ordered, feature-annotated point
// sequence.
type Gesture struct {
	ID     uuid.UUID
	Points []Point
}

// Path returns the gesture's raw positions, discarding timing and derived
// features, for callers that only need geometry.
func (g *Gesture) Path() []geo.Point {
	out := make([]geo.Point, len(g.Points))
	for i, p := range g.Points {
		out[i] = p.Pos
	}
	return out
}
