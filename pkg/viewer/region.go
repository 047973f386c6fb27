package viewer

// Region describes the viewport rectangle a fit must frame into: the canvas
// size plus an NDC-space center offset and per-axis scale. Scale (0,1]
// shrinks the target rectangle; NDCX/NDCY move its center, so content can
// be framed into a sub-rectangle next to side panels.
type Region struct {
	CanvasWidth  float64
	CanvasHeight float64
	NDCX         float64
	NDCY         float64
	ScaleX       float64
	ScaleY       float64
}

// FullCanvas returns a region covering the whole canvas
func FullCanvas(width, height float64) Region {
	return Region{
		CanvasWidth:  width,
		CanvasHeight: height,
		ScaleX:       1,
		ScaleY:       1,
	}
}

// Valid reports whether the region has usable canvas dimensions
func (r Region) Valid() bool {
	return r.CanvasWidth > 0 && r.CanvasHeight > 0
}

// Aspect returns the canvas width/height ratio
func (r Region) Aspect() float64 {
	return r.CanvasWidth / r.CanvasHeight
}

// clampedScale returns the per-axis scales clamped into (0,1]
func (r Region) clampedScale() (sx, sy float64) {
	sx, sy = r.ScaleX, r.ScaleY
	if sx <= 0 {
		sx = 1e-3
	} else if sx > 1 {
		sx = 1
	}
	if sy <= 0 {
		sy = 1e-3
	} else if sy > 1 {
		sy = 1
	}
	return sx, sy
}
