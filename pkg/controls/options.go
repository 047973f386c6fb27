package controls

import "time"

// Options holds the tunable parameters of the gesture controllers
type Options struct {
	// RotationSnapSteps is the number of azimuth snap positions per full
	// turn applied after a rotation gesture ends (8 = 45 degree steps)
	RotationSnapSteps int
	// RotationSnapPitchSteps is the number of inclination snap positions
	// over the half circle. Zero means "same as RotationSnapSteps".
	RotationSnapPitchSteps int
	// RotationAxisLockRatio is how dominant one drag axis must be before
	// the other axis is suppressed
	RotationAxisLockRatio float64
	// RotationAxisLockMinDelta is the accumulated drag distance in pixels
	// before the axis lock decision is made
	RotationAxisLockMinDelta float64
	// EnableRotationSnap toggles post-release angle snapping
	EnableRotationSnap bool

	// RotationSensitivity converts drag pixels to radians
	RotationSensitivity float64

	// ZoomStep is the per-wheel-notch distance (or ortho factor) change
	ZoomStep float64
	// ZoomDebounce is how long the transient "zooming" flag stays set
	// after the last wheel event
	ZoomDebounce time.Duration

	// SettleDelay is the pause after a rotation gesture before the pivot
	// is re-resolved under the active mode
	SettleDelay time.Duration

	// Gizmo drag sensitivities: world units, radians and scale factor
	// per pixel
	GizmoMoveSensitivity   float64
	GizmoRotateSensitivity float64
	GizmoScaleSensitivity  float64
}

// DefaultOptions returns the standard controller configuration
func DefaultOptions() Options {
	return Options{
		RotationSnapSteps:        8,
		RotationSnapPitchSteps:   0, // = RotationSnapSteps
		RotationAxisLockRatio:    1.4,
		RotationAxisLockMinDelta: 4,
		EnableRotationSnap:       true,
		RotationSensitivity:      0.005,
		ZoomStep:                 0.1,
		ZoomDebounce:             150 * time.Millisecond,
		SettleDelay:              300 * time.Millisecond,
		GizmoMoveSensitivity:     0.01,
		GizmoRotateSensitivity:   0.01,
		GizmoScaleSensitivity:    0.01,
	}
}

// pitchSteps resolves the default for RotationSnapPitchSteps
func (o Options) pitchSteps() int {
	if o.RotationSnapPitchSteps > 0 {
		return o.RotationSnapPitchSteps
	}
	return o.RotationSnapSteps
}
