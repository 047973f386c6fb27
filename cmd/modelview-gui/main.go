package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/philipparndt/modelview/internal/gui"
	"github.com/philipparndt/modelview/pkg/controls"
	"github.com/philipparndt/modelview/pkg/scene"
	"github.com/philipparndt/modelview/pkg/stl"
	"github.com/philipparndt/modelview/pkg/viewer"
)

type App struct {
	window fyne.Window
	model  *stl.Model
	viewer *gui.ModelViewer
}

func main() {
	a := fyneapp.New()
	w := a.NewWindow("modelview")

	appInstance := &App{window: w}

	if len(os.Args) > 1 {
		appInstance.loadFile(os.Args[1])
	} else {
		appInstance.showWelcomeScreen()
	}

	w.Resize(fyne.NewSize(1200, 800))
	w.ShowAndRun()
}

func (a *App) showWelcomeScreen() {
	welcomeLabel := widget.NewLabel("modelview")
	welcomeLabel.TextStyle = fyne.TextStyle{Bold: true}

	instructionLabel := widget.NewLabel("Click 'Open STL File' to load a 3D model")

	openButton := widget.NewButton("Open STL File", func() {
		a.showFileDialog()
	})

	content := container.NewVBox(
		layout.NewSpacer(),
		container.NewCenter(welcomeLabel),
		container.NewCenter(instructionLabel),
		layout.NewSpacer(),
		container.NewCenter(openButton),
		layout.NewSpacer(),
	)

	a.window.SetContent(content)
}

func (a *App) showFileDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		a.loadFile(reader.URI().Path())
	}, a.window)
}

func (a *App) loadFile(filename string) {
	model, err := stl.Parse(filename)
	if err != nil {
		dialog.ShowError(fmt.Errorf("failed to load STL file: %w", err), a.window)
		return
	}

	a.model = model
	a.setupMainUI()
}

func (a *App) setupMainUI() {
	root := a.model.Node()
	roots := []*scene.Node{root}

	cam := viewer.NewCamera()
	a.viewer = gui.NewModelViewer(roots, cam, controls.DefaultOptions())

	selectedLabel := widget.NewLabel("Selection: none")
	a.viewer.SetOnSelect(func(n *scene.Node) {
		if n == nil {
			selectedLabel.SetText("Selection: none")
		} else {
			selectedLabel.SetText(fmt.Sprintf("Selection: %s", n.Name))
		}
	})

	// Per-solid visibility toggles
	solidChecks := container.NewVBox()
	for _, child := range root.Children() {
		node := child
		check := widget.NewCheck(node.Name, func(checked bool) {
			node.Visible = checked
			a.viewer.Render()
		})
		check.SetChecked(true)
		solidChecks.Add(check)
	}

	wireframeCheck := widget.NewCheck("Wireframe", func(checked bool) {
		a.viewer.SetWireframe(checked)
	})

	fitButton := widget.NewButton("Fit View", func() {
		a.viewer.FrameAll(mgl64.Vec3{})
	})
	topButton := widget.NewButton("Top", func() {
		a.viewer.FrameAll(mgl64.Vec3{0, -1, 0})
	})
	frontButton := widget.NewButton("Front", func() {
		a.viewer.FrameAll(mgl64.Vec3{0, 0, -1})
	})
	rightButton := widget.NewButton("Right", func() {
		a.viewer.FrameAll(mgl64.Vec3{-1, 0, 0})
	})

	openButton := widget.NewButton("Open File", func() {
		a.showFileDialog()
	})

	box, _ := a.model.BoundingBox()
	size := box.Size()
	modelInfo := widget.NewLabel(fmt.Sprintf(
		"Model: %s\nSolids: %d\nTriangles: %d\nSize: %.2f x %.2f x %.2f",
		a.model.Name, len(a.model.Solids), a.model.TriangleCount(),
		size.X(), size.Y(), size.Z(),
	))

	instructions := widget.NewLabel(
		"Instructions:\n" +
			"• Drag to orbit the view\n" +
			"• Scroll to zoom at the cursor\n" +
			"• Tap a part to select it",
	)
	instructions.Wrapping = fyne.TextWrapWord

	infoPanel := container.NewVBox(
		widget.NewLabel("Model Information:"),
		widget.NewSeparator(),
		modelInfo,
		widget.NewSeparator(),
		widget.NewLabel("Solids:"),
		solidChecks,
		widget.NewSeparator(),
		selectedLabel,
		widget.NewSeparator(),
		widget.NewLabel("View:"),
		fitButton,
		topButton,
		frontButton,
		rightButton,
		wireframeCheck,
		widget.NewSeparator(),
		instructions,
		widget.NewSeparator(),
		openButton,
	)

	infoScroll := container.NewVScroll(infoPanel)
	infoScroll.SetMinSize(fyne.NewSize(280, 0))

	content := container.NewBorder(
		nil,        // top
		nil,        // bottom
		nil,        // left
		infoScroll, // right
		a.viewer,   // center
	)

	a.window.SetContent(content)
	a.viewer.FrameAll(mgl64.Vec3{-1, -0.8, -1}.Normalize())
}
