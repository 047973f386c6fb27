package controls

// Gesture identifies an exclusive pointer gesture
type Gesture int

const (
	GestureNone Gesture = iota
	GestureRotate
	GesturePan
	GestureAreaZoom
	GestureGizmo
)

// String returns the gesture name for diagnostics
func (g Gesture) String() string {
	switch g {
	case GestureRotate:
		return "rotate"
	case GesturePan:
		return "pan"
	case GestureAreaZoom:
		return "area-zoom"
	case GestureGizmo:
		return "gizmo"
	default:
		return "none"
	}
}

// priority decides which gestures may pre-empt which: a gizmo drag takes
// over from camera gestures, everything else is equal and refuses to start
// while another gesture runs
func (g Gesture) priority() int {
	if g == GestureGizmo {
		return 2
	}
	return 1
}

// GestureToken enforces that only one gesture is active at a time. Every
// controller acquires the token to start and releases it to end; a
// higher-priority acquire cancels the running gesture through the cancel
// callback it registered.
type GestureToken struct {
	active Gesture
	cancel func()
}

// Active returns the currently running gesture
func (t *GestureToken) Active() Gesture {
	return t.active
}

// Acquire claims the token for a gesture. cancel is invoked if a
// higher-priority gesture later takes the token over; it must put the
// owning controller through its normal release path.
func (t *GestureToken) Acquire(g Gesture, cancel func()) bool {
	if t.active != GestureNone {
		if g.priority() <= t.active.priority() {
			return false
		}
		// Pre-empt: the running gesture restores its state and
		// releases the token before we take it
		if t.cancel != nil {
			t.cancel()
		}
		if t.active != GestureNone {
			return false
		}
	}
	t.active = g
	t.cancel = cancel
	return true
}

// Release returns the token. Releasing a gesture that does not hold the
// token is a no-op, so cancellation and normal release can share one path.
func (t *GestureToken) Release(g Gesture) {
	if t.active == g {
		t.active = GestureNone
		t.cancel = nil
	}
}
