package main

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cobra"

	"github.com/philipparndt/modelview/pkg/scene"
	"github.com/philipparndt/modelview/pkg/stl"
	"github.com/philipparndt/modelview/pkg/viewer"
)

var (
	renderOut    string
	renderWidth  int
	renderHeight int
	renderView   string
	renderOrtho  bool
	renderWire   bool
)

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Render a model to a PNG image without opening a window",
	Args:  cobra.ExactArgs(1),
	Run:   runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "out.png", "output PNG path")
	renderCmd.Flags().IntVar(&renderWidth, "width", 1280, "image width in pixels")
	renderCmd.Flags().IntVar(&renderHeight, "height", 800, "image height in pixels")
	renderCmd.Flags().StringVar(&renderView, "view", "home", "view direction: home, top, bottom, front, back, left, right")
	renderCmd.Flags().BoolVar(&renderOrtho, "ortho", false, "use an orthographic projection")
	renderCmd.Flags().BoolVar(&renderWire, "wireframe", false, "draw edges on top of the shading")
	rootCmd.AddCommand(renderCmd)
}

// viewDirection maps a preset name to its view direction
func viewDirection(name string) (mgl64.Vec3, bool) {
	switch name {
	case "home":
		return mgl64.Vec3{-1, -0.8, -1}.Normalize(), true
	case "top":
		return mgl64.Vec3{0, -1, 0}, true
	case "bottom":
		return mgl64.Vec3{0, 1, 0}, true
	case "front":
		return mgl64.Vec3{0, 0, -1}, true
	case "back":
		return mgl64.Vec3{0, 0, 1}, true
	case "left":
		return mgl64.Vec3{1, 0, 0}, true
	case "right":
		return mgl64.Vec3{-1, 0, 0}, true
	}
	return mgl64.Vec3{}, false
}

func runRender(cmd *cobra.Command, args []string) {
	model, err := stl.Parse(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing STL file: %v\n", err)
		os.Exit(1)
	}

	dir, ok := viewDirection(renderView)
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown view %q\n", renderView)
		os.Exit(1)
	}

	root := model.Node()
	roots := []*scene.Node{root}
	bounds, ok := scene.ComputeBounds(roots, true)
	if !ok {
		fmt.Fprintln(os.Stderr, "Model contains no geometry")
		os.Exit(1)
	}

	cam := viewer.NewCamera()
	if renderOrtho {
		cam.Projection = viewer.Orthographic
	}
	region := viewer.FullCanvas(float64(renderWidth), float64(renderHeight))
	cam.FrameBounds(bounds, region, viewer.FitOptions{
		ViewDir: dir,
		Up:      mgl64.Vec3{0, 1, 0},
	})

	opts := viewer.DefaultRenderOptions()
	opts.Wireframe = renderWire
	if err := viewer.CaptureToFile(renderOut, roots, cam, renderWidth, renderHeight, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Render failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Rendered %s to %s (%dx%d)\n", args[0], renderOut, renderWidth, renderHeight)
}
