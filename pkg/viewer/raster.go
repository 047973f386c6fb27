package viewer

import (
	"image"
	"image/color"
	"math"

	"github.com/philipparndt/modelview/pkg/scene"
)

// RenderOptions controls the software renderer
type RenderOptions struct {
	Background color.RGBA
	FillColor  color.RGBA
	Wireframe  bool
	WireColor  color.RGBA
}

// DefaultRenderOptions returns the dark viewer theme
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Background: color.RGBA{15, 18, 25, 255},
		FillColor:  color.RGBA{170, 180, 195, 255},
		WireColor:  color.RGBA{90, 160, 220, 255},
	}
}

// RenderImage draws the visible scene geometry into an RGBA image using the
// camera as-is. It is a minimal flat-shaded software rasterizer used by the
// fyne frontend and the offscreen capture path; it is not the interactive
// render service.
func RenderImage(roots []*scene.Node, cam *Camera, width, height int, opts RenderOptions) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = opts.Background.R
		img.Pix[i+1] = opts.Background.G
		img.Pix[i+2] = opts.Background.B
		img.Pix[i+3] = opts.Background.A
	}

	zbuf := make([]float64, width*height)
	for i := range zbuf {
		zbuf[i] = math.Inf(1)
	}

	w := float64(width)
	h := float64(height)
	_, _, forward := cam.Basis()

	for _, root := range roots {
		if root == nil {
			continue
		}
		root.Walk(func(n *scene.Node) bool {
			if !n.Visible {
				return false
			}
			if n.Mesh == nil {
				return true
			}
			m := n.WorldMatrix()
			for _, tri := range n.Mesh.Triangles {
				v1 := m.Mul4x1(tri.V1.Vec4(1)).Vec3()
				v2 := m.Mul4x1(tri.V2.Vec4(1)).Vec3()
				v3 := m.Mul4x1(tri.V3.Vec4(1)).Vec3()

				x1, y1, z1 := cam.Project(v1, w, h)
				x2, y2, z2 := cam.Project(v2, w, h)
				x3, y3, z3 := cam.Project(v3, w, h)
				if z1 <= 0 || z2 <= 0 || z3 <= 0 {
					continue
				}

				// Flat shading from the world-space face normal
				normal := v2.Sub(v1).Cross(v3.Sub(v1))
				if normal.Len() < 1e-12 {
					continue
				}
				normal = normal.Normalize()
				light := math.Abs(normal.Dot(forward))
				shade := func(c uint8) uint8 {
					return uint8(float64(c) * (0.35 + 0.65*light))
				}
				col := color.RGBA{shade(opts.FillColor.R), shade(opts.FillColor.G), shade(opts.FillColor.B), 255}

				fillTriangle(img, zbuf, [3][3]float64{{x1, y1, z1}, {x2, y2, z2}, {x3, y3, z3}}, col)
				if opts.Wireframe {
					drawLine(img, x1, y1, x2, y2, opts.WireColor)
					drawLine(img, x2, y2, x3, y3, opts.WireColor)
					drawLine(img, x3, y3, x1, y1, opts.WireColor)
				}
			}
			return true
		})
	}
	return img
}

// fillTriangle rasterizes one screen-space triangle with a depth test,
// using edge functions over the triangle's pixel bounding box
func fillTriangle(img *image.RGBA, zbuf []float64, v [3][3]float64, col color.RGBA) {
	b := img.Bounds()
	minX := int(math.Max(0, math.Floor(min3(v[0][0], v[1][0], v[2][0]))))
	maxX := int(math.Min(float64(b.Max.X-1), math.Ceil(max3(v[0][0], v[1][0], v[2][0]))))
	minY := int(math.Max(0, math.Floor(min3(v[0][1], v[1][1], v[2][1]))))
	maxY := int(math.Min(float64(b.Max.Y-1), math.Ceil(max3(v[0][1], v[1][1], v[2][1]))))
	if minX > maxX || minY > maxY {
		return
	}

	area := edge(v[0], v[1], v[2][0], v[2][1])
	if math.Abs(area) < 1e-12 {
		return
	}

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5
			py := float64(y) + 0.5
			w0 := edge(v[1], v[2], px, py) / area
			w1 := edge(v[2], v[0], px, py) / area
			w2 := edge(v[0], v[1], px, py) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			z := w0*v[0][2] + w1*v[1][2] + w2*v[2][2]
			idx := y*img.Bounds().Max.X + x
			if z >= zbuf[idx] {
				continue
			}
			zbuf[idx] = z
			img.SetRGBA(x, y, col)
		}
	}
}

// edge evaluates the signed area edge function for point (px, py)
func edge(a, b [3]float64, px, py float64) float64 {
	return (b[0]-a[0])*(py-a[1]) - (b[1]-a[1])*(px-a[0])
}

// drawLine draws a screen-space segment using integer Bresenham stepping
func drawLine(img *image.RGBA, x1, y1, x2, y2 float64, col color.RGBA) {
	b := img.Bounds()
	ix1, iy1 := int(x1), int(y1)
	ix2, iy2 := int(x2), int(y2)

	dx := abs(ix2 - ix1)
	dy := -abs(iy2 - iy1)
	sx := 1
	if ix1 > ix2 {
		sx = -1
	}
	sy := 1
	if iy1 > iy2 {
		sy = -1
	}
	err := dx + dy
	for {
		if ix1 >= 0 && ix1 < b.Max.X && iy1 >= 0 && iy1 < b.Max.Y {
			img.SetRGBA(ix1, iy1, col)
		}
		if ix1 == ix2 && iy1 == iy2 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			ix1 += sx
		}
		if e2 <= dx {
			err += dx
			iy1 += sy
		}
	}
}

func min3(a, b, c float64) float64 { return math.Min(a, math.Min(b, c)) }
func max3(a, b, c float64) float64 { return math.Max(a, math.Max(b, c)) }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
