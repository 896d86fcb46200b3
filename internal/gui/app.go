package gui

import (
	"context"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-logr/logr"
	"github.com/san-kum/powerpendulum/internal/panel"
	"github.com/san-kum/powerpendulum/internal/scene"
	"github.com/san-kum/powerpendulum/internal/sim"
)

const zoomStep = 5.0

var (
	ColText    = rl.NewColor(180, 180, 180, 255)
	ColTextDim = rl.NewColor(90, 90, 90, 255)
)

type App struct {
	Sim    *sim.Simulator
	Log    logr.Logger
	Camera rl.Camera3D
	Paused bool
}

func initWindow(fps int) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(scene.DefaultWidth, scene.DefaultHeight, "powerpendulum")
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

func NewApp(s *sim.Simulator, log logr.Logger) *App {
	cam := s.Scene().Camera
	return &App{
		Sim: s,
		Log: log,
		Camera: rl.NewCamera3D(
			toVector3(cam.Position),
			toVector3(cam.Target),
			toVector3(cam.Up),
			float32(cam.Fov),
			rl.CameraPerspective,
		),
	}
}

// Run opens the window and drives the simulation one tick per frame
// until the window closes, ctx is done or the state goes non-finite.
// It must be called from the main goroutine.
func Run(ctx context.Context, s *sim.Simulator, fps int, log logr.Logger) error {
	initWindow(fps)
	defer rl.CloseWindow()

	app := NewApp(s, log)
	app.Sim.Resize(rl.GetScreenWidth(), rl.GetScreenHeight())
	return app.RunLoop(ctx)
}

func (a *App) RunLoop(ctx context.Context) error {
	for !rl.WindowShouldClose() {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		if rl.IsKeyPressed(rl.KeyQ) {
			return nil
		}

		if err := a.Update(); err != nil {
			return err
		}
		a.Draw()
	}
	return nil
}

func (a *App) Update() error {
	if rl.IsWindowResized() {
		a.Sim.Resize(rl.GetScreenWidth(), rl.GetScreenHeight())
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		a.Paused = !a.Paused
	}
	if rl.IsKeyPressed(rl.KeyF) {
		follow := a.Sim.Settings().CameraFollow
		a.Sim.Queue().Push(panel.Change{Name: panel.CameraFollow, Value: !follow})
	}

	if !a.Paused {
		if err := a.Sim.Tick(); err != nil {
			return err
		}
	}

	a.handleOrbit()
	a.syncCamera()
	return nil
}

// handleOrbit drags the camera around its target with the left mouse
// button and zooms with the wheel.
func (a *App) handleOrbit() {
	cam := a.Sim.Scene().Camera
	var yaw, pitch, zoom float64

	if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		delta := rl.GetMouseDelta()
		yaw = -orbitAngle(delta.X, cam.Height, scene.DefaultRotateSpeed)
		pitch = -orbitAngle(delta.Y, cam.Height, scene.DefaultRotateSpeed)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		zoom = float64(wheel) * zoomStep
	}
	if yaw != 0 || pitch != 0 || zoom != 0 {
		cam.Orbit(yaw, pitch, zoom)
	}
}

func (a *App) syncCamera() {
	cam := a.Sim.Scene().Camera
	a.Camera.Position = toVector3(cam.Position)
	a.Camera.Target = toVector3(cam.Target)
	a.Camera.Up = toVector3(cam.Up)
	a.Camera.Fovy = float32(cam.Fov)
}

func (a *App) Draw() {
	sc := a.Sim.Scene()

	rl.BeginDrawing()
	rl.ClearBackground(toColor(sc.Background))

	rl.BeginMode3D(a.Camera)
	a.drawScene(sc)
	rl.EndMode3D()

	a.DrawHUD()
	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	f := a.Sim.Frame()
	settings := a.Sim.Settings()

	rl.DrawFPS(10, 10)

	lines := []string{
		fmt.Sprintf("t %.2fs  tick %d", f.Time, f.Tick),
		fmt.Sprintf("trail %d/%d  hue %d", f.TrailLen, settings.TrailLength, f.Hue),
		fmt.Sprintf("resets %d", a.Sim.Resets()),
	}
	if settings.CameraFollow {
		lines = append(lines, "following pendulum 2")
	}
	if a.Paused {
		lines = append(lines, "PAUSED")
	}
	for i, line := range lines {
		rl.DrawText(line, 10, int32(36+i*18), 16, ColText)
	}

	help := "drag: orbit  wheel: zoom  space: pause  f: follow  q: quit"
	rl.DrawText(help, 10, int32(rl.GetScreenHeight()-24), 14, ColTextDim)
}
