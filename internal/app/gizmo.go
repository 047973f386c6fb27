package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/modelview/pkg/controls"
)

// axisColor returns the usual axis coloring, brightened when the handle is
// hovered or dragged
func axisColor(axis controls.Axis, highlighted bool) rl.Color {
	if highlighted {
		return rl.NewColor(255, 230, 80, 255)
	}
	switch axis {
	case controls.AxisX:
		return rl.NewColor(230, 70, 70, 255)
	case controls.AxisY:
		return rl.NewColor(80, 200, 90, 255)
	default:
		return rl.NewColor(80, 130, 240, 255)
	}
}

// drawGizmo renders the transform handles of the attached node
func (app *App) drawGizmo() {
	handles := app.Camera.gizmo.Handles()
	size := float32(0)
	for _, h := range handles {
		if float32(h.Length) > size {
			size = float32(h.Length)
		}
	}
	shaftRadius := size * 0.01

	for _, h := range handles {
		color := axisColor(h.Axis, h.Highlighted)
		origin := toRlVector3(h.Origin)
		dir := toRlVector3(h.Axis.Vec())

		if h.Mode == controls.GizmoRotate {
			// Rings lie in the plane perpendicular to the axis. Raylib
			// draws circles in the XY plane, rotate accordingly.
			radius := float32(h.Length)
			switch h.Axis {
			case controls.AxisX:
				rl.DrawCircle3D(origin, radius, rl.Vector3{Y: 1}, 90, color)
			case controls.AxisY:
				rl.DrawCircle3D(origin, radius, rl.Vector3{X: 1}, 90, color)
			default:
				rl.DrawCircle3D(origin, radius, rl.Vector3{Z: 1}, 0, color)
			}
			continue
		}

		// Arrow shaft
		tip := rl.Vector3{
			X: origin.X + dir.X*float32(h.Length),
			Y: origin.Y + dir.Y*float32(h.Length),
			Z: origin.Z + dir.Z*float32(h.Length),
		}
		shaftEnd := rl.Vector3{
			X: origin.X + dir.X*float32(h.Length)*0.85,
			Y: origin.Y + dir.Y*float32(h.Length)*0.85,
			Z: origin.Z + dir.Z*float32(h.Length)*0.85,
		}
		rl.DrawCylinderEx(origin, shaftEnd, shaftRadius, shaftRadius, 8, color)

		if h.Mode == controls.GizmoScale {
			// Scale handles end in a cube
			side := float32(h.Length) * 0.08
			rl.DrawCube(tip, side, side, side, color)
		} else {
			// Move handles end in a cone
			rl.DrawCylinderEx(shaftEnd, tip, shaftRadius*4, 0, 12, color)
		}
	}
}
