package viewer

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/philipparndt/modelview/pkg/scene"
)

// Capture renders the scene offscreen at the requested resolution. The
// camera aspect and orthographic frustum are swapped to match the capture
// size for the duration of the render and restored afterwards, so an
// in-flight gesture never observes a modified camera.
func Capture(roots []*scene.Node, cam *Camera, width, height int, opts RenderOptions) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid capture size %dx%d", width, height)
	}

	snap := cam.Snapshot()
	defer cam.Restore(snap)

	aspect := float64(width) / float64(height)
	cam.Aspect = aspect
	if cam.Projection == Orthographic {
		// Keep the vertical extent, rescale the horizontal to the
		// capture aspect
		halfH := (cam.Top - cam.Bottom) / 2
		cam.Left, cam.Right = -halfH*aspect, halfH*aspect
	}

	return RenderImage(roots, cam, width, height, opts), nil
}

// CaptureToFile writes an offscreen capture to a PNG file
func CaptureToFile(path string, roots []*scene.Node, cam *Camera, width, height int, opts RenderOptions) error {
	img, err := Capture(roots, cam, width, height, opts)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}
