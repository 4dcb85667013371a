package gui

import (
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/partsim/internal/config"
	"github.com/san-kum/partsim/internal/metrics"
	"github.com/san-kum/partsim/internal/sim"
)

const (
	screenW  = 1280
	screenH  = 720
	fontPath = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColWall    = rl.NewColor(45, 45, 45, 255)
)

type App struct {
	Cfg      *config.Config
	Title    string
	Engine   *sim.Engine
	Recorder *metrics.Recorder
	Log      sim.Logger
	Camera   rl.Camera2D
	Running  bool
	Font     rl.Font
	Err      error
	Last     sim.TickStats
}

func initWindow(title string) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(screenW, screenH, title)
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// loadFont falls back to raylib's built-in font when Liberation Mono is not
// installed.
func loadFont() rl.Font {
	if _, err := os.Stat(fontPath); err != nil {
		return rl.GetFontDefault()
	}
	font := rl.LoadFontEx(fontPath, 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func NewApp(cfg *config.Config, title string, log sim.Logger) (*App, error) {
	a := &App{
		Cfg:     cfg,
		Title:   title,
		Log:     log,
		Running: true,
		Font:    loadFont(),
	}
	if err := a.reset(); err != nil {
		return nil, err
	}
	return a, nil
}

// reset rebuilds the engine from the config, replaying the same seed.
func (a *App) reset() error {
	rec := metrics.NewRecorder(400, metrics.Default(a.Cfg.Engine().Bounds, a.Cfg.Spawn.MaxSpeed)...)
	e, err := a.Cfg.NewEngine(sim.WithLogger(a.Log), sim.WithObserver(rec))
	if err != nil {
		return err
	}
	a.Engine, a.Recorder, a.Err, a.Last = e, rec, nil, sim.TickStats{}
	return nil
}

// Run opens a window on cfg and blocks until it is closed.
func Run(cfg *config.Config, title string, log sim.Logger) error {
	initWindow("partsim :: " + title)
	defer rl.CloseWindow()

	app, err := NewApp(cfg, title, log)
	if err != nil {
		return err
	}
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) {
			return
		}
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		a.Running = !a.Running
	case rl.IsKeyPressed(rl.KeyR):
		if err := a.reset(); err != nil {
			a.Err = err
		}
	case rl.IsKeyPressed(rl.KeyS) && !a.Running:
		a.step(1.0 / 60)
	}

	a.Camera = fitCamera(a.Cfg.Engine().Bounds.Width(), a.Cfg.Engine().Bounds.Height())

	if a.Running && a.Err == nil {
		a.step(float64(rl.GetFrameTime()))
	}
}

func (a *App) step(dt float64) {
	st, err := a.Engine.Step(dt)
	if err != nil {
		a.Err = err
		a.Running = false
		return
	}
	a.Last = st
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	rl.BeginMode2D(a.Camera)
	a.drawBounds()
	a.drawParticles(a.Engine.Snapshot())
	rl.EndMode2D()

	a.DrawHUD()
	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	a.drawText("partsim", 30, 30, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: %s", a.Title), 150, 34, 16, ColText)

	status, col := "RUNNING", ColSelect
	switch {
	case a.Err != nil:
		status, col = "HALTED", rl.Red
	case a.Engine.Phase() == sim.Bootstrapping:
		status = fmt.Sprintf("BOOTSTRAPPING %d/%d", a.Engine.Len(), a.Cfg.Count)
	case !a.Running:
		status, col = "PAUSED", ColTextDim
	}
	w := rl.GetScreenWidth()
	a.drawText(status, w-260, 30, 16, col)

	a.drawText(fmt.Sprintf("tick %d  t %.2fs  particles %d  contacts %d  cost %v",
		a.Last.Tick, a.Last.Time, a.Engine.Len(), a.Last.Collisions, a.Last.Elapsed), 30, 64, 14, ColText)
	if a.Err != nil {
		a.drawText(a.Err.Error(), 30, 90, 14, rl.Red)
	}

	a.DrawTelemetry()

	h := rl.GetScreenHeight()
	a.drawText("[SPACE] PAUSE  [S] STEP  [R] RESET  [Q] QUIT", w-480, h-40, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 30, h-40, 14, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}
