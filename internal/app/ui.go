package app

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/modelview/pkg/controls"
	"github.com/philipparndt/modelview/pkg/scene"
	"github.com/philipparndt/modelview/pkg/viewer"
	"github.com/philipparndt/modelview/version"
)

// drawSidebar renders the right-hand panel: the solid list with visibility
// toggles, model stats and the shortcut help
func (app *App) drawSidebar() {
	if !app.UI.sidebarVisible {
		return
	}

	screenWidth := float32(rl.GetScreenWidth())
	screenHeight := float32(rl.GetScreenHeight())
	panelX := screenWidth - sidebarWidth

	rl.DrawRectangle(int32(panelX), 0, sidebarWidth, int32(screenHeight), rl.NewColor(24, 28, 38, 235))
	rl.DrawLine(int32(panelX), 0, int32(panelX), int32(screenHeight), rl.NewColor(50, 56, 70, 255))

	y := float32(12)
	lineHeight := float32(22)
	textX := int32(panelX + 12)

	title := "modelview"
	if app.Model.model != nil {
		title = app.Model.model.Name
	}
	rl.DrawText(title, textX, int32(y), 18, rl.RayWhite)
	y += lineHeight + 6

	if app.Model.model != nil {
		stats := fmt.Sprintf("%d solid(s)  %d triangles",
			len(app.Model.model.Solids), app.Model.model.TriangleCount())
		rl.DrawText(stats, textX, int32(y), 12, rl.Gray)
		y += lineHeight
	}
	if app.FileWatch.isLoading {
		rl.DrawText("Reloading...", textX, int32(y), 12, rl.Orange)
		y += lineHeight
	}
	y += 4

	// Solid list with visibility toggles
	app.UI.itemBounds = app.UI.itemBounds[:0]
	if app.Model.root != nil {
		for i, child := range app.Model.root.Children() {
			bounds := rl.NewRectangle(panelX+8, y-2, sidebarWidth-16, lineHeight)
			app.UI.itemBounds = append(app.UI.itemBounds, bounds)

			if i == app.UI.hoveredItem {
				rl.DrawRectangleRec(bounds, rl.NewColor(45, 52, 66, 255))
			}
			if app.isSelected(child) {
				rl.DrawRectangleLinesEx(bounds, 1, rl.NewColor(255, 180, 60, 255))
			}

			mark := "[x]"
			color := rl.RayWhite
			if !child.Visible {
				mark = "[ ]"
				color = rl.Gray
			}
			rl.DrawText(fmt.Sprintf("%s %s", mark, child.Name), textX, int32(y), 14, color)
			y += lineHeight
		}
	}
	y += 8

	// Status block
	cam := app.Camera.engine
	proj := "perspective"
	if cam.Projection == viewer.Orthographic {
		proj = fmt.Sprintf("orthographic %.2fx", cam.OrthoZoom)
	}
	rl.DrawText(fmt.Sprintf("view: %s", proj), textX, int32(y), 12, rl.Gray)
	y += lineHeight
	rl.DrawText(fmt.Sprintf("gizmo: %s", gizmoModeName(app.Camera.gizmo.Mode())), textX, int32(y), 12, rl.Gray)
	y += lineHeight

	// Shortcut help at the bottom
	help := []string{
		"drag rotate  shift+drag pan",
		"ctrl+drag area zoom  wheel zoom",
		"home/t/b/1-4 views  space frame",
		"g/r/s gizmo  o ortho  w/f display",
		"p screenshot  tab sidebar",
	}
	hy := screenHeight - float32(len(help))*16 - 28
	for _, line := range help {
		rl.DrawText(line, textX, int32(hy), 10, rl.DarkGray)
		hy += 16
	}
	rl.DrawText(version.Version, textX, int32(screenHeight-20), 10, rl.DarkGray)
}

// gizmoModeName returns the display name of a gizmo mode
func gizmoModeName(mode controls.GizmoMode) string {
	switch mode {
	case controls.GizmoRotate:
		return "rotate"
	case controls.GizmoScale:
		return "scale"
	default:
		return "move"
	}
}

// isSelected reports whether the node is part of the current selection
func (app *App) isSelected(n *scene.Node) bool {
	for _, s := range app.Selection.nodes {
		if s == n {
			return true
		}
	}
	return false
}

// updateSidebarHover tracks which solid list entry is under the pointer
func (app *App) updateSidebarHover(pos rl.Vector2) {
	app.UI.hoveredItem = -1
	if !app.UI.sidebarVisible {
		return
	}
	for i, bounds := range app.UI.itemBounds {
		if rl.CheckCollisionPointRec(pos, bounds) {
			app.UI.hoveredItem = i
			return
		}
	}
}

// clickSidebar handles a click on the panel: toggle the visibility of the
// clicked solid
func (app *App) clickSidebar(pos rl.Vector2) {
	if !app.UI.sidebarVisible || app.Model.root == nil {
		return
	}
	children := app.Model.root.Children()
	for i, bounds := range app.UI.itemBounds {
		if i < len(children) && rl.CheckCollisionPointRec(pos, bounds) {
			children[i].Visible = !children[i].Visible
			return
		}
	}
}
