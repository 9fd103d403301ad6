package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/bloeys/glsltri/buffers"
	"github.com/bloeys/glsltri/config"
	"github.com/bloeys/glsltri/engine"
	"github.com/bloeys/glsltri/gpu"
	"github.com/bloeys/glsltri/gpu/glgpu"
	"github.com/bloeys/glsltri/input"
	"github.com/bloeys/glsltri/logging"
	"github.com/bloeys/glsltri/renderer/rend3dgl"
	"github.com/bloeys/glsltri/scene"
	"github.com/bloeys/glsltri/shaders"
	"github.com/bloeys/glsltri/timing"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	// How often shader files are checked for changes, in seconds
	reloadCheckIntervalSec = 0.5

	titleUpdateIntervalSec = 1
)

var (
	// Positions followed by colors, one row per vertex
	triangleVerts = []float32{
		-0.6, -0.4, 0, 1, 0, 0,
		0.6, -0.4, 0, 0, 1, 0,
		0, 0.6, 0, 0, 0, 1,
	}
)

type Game struct {
	Win  *engine.Window
	Rend *rend3dgl.Rend3DGL
	Cfg  config.Config

	Drv      gpu.Driver
	Prog     *shaders.ShaderProgram
	Reloader *shaders.Reloader

	Vao         buffers.VertexArray
	VertexCount int32

	Scene *scene.Scene

	lastReloadCheck float32
	lastTitleUpdate float32
}

func main() {

	err := run(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}

	if err != nil {
		logging.ErrLog.Errorw("glsltri stopped", "err", err)
		logging.Sync()
		os.Exit(1)
	}

	logging.Sync()
}

// run owns every resource it creates, so its deferred cleanups run on error
// paths too. Usage errors come back before SDL is touched.
func run(args []string) error {

	cfg, err := config.Load(args, os.Stderr)
	if err != nil {
		return err
	}

	logging.Init(cfg.Debug)
	cfg.ApplyFeatures()

	//Init engine
	err = engine.Init()
	if err != nil {
		return fmt.Errorf("failed to init engine: %w", err)
	}
	defer engine.DeInit()

	//Create window
	rend := rend3dgl.NewRend3DGL()
	window, err := engine.CreateOpenGLWindowCentered(cfg.Title, int32(cfg.Width), int32(cfg.Height), engine.WindowFlags_RESIZABLE|engine.WindowFlags_ALLOW_HIGHDPI, rend)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer window.Destroy()

	engine.SetVSync(cfg.VSync)

	game, err := newGame(window, rend, glgpu.New(), cfg)
	if err != nil {
		return fmt.Errorf("failed to set up scene: %w", err)
	}

	window.EventCallbacks = append(window.EventCallbacks, game.handleWindowEvents)
	engine.Run(game, window)
	return nil
}

func newGame(win *engine.Window, rend *rend3dgl.Rend3DGL, drv gpu.Driver, cfg config.Config) (*Game, error) {

	g := &Game{
		Win:  win,
		Rend: rend,
		Cfg:  cfg,
		Drv:  drv,
	}

	if err := g.loadProgram(); err != nil {
		return nil, err
	}

	if err := g.uploadTriangle(); err != nil {
		g.program().Delete()
		return nil, err
	}

	// A minimized window can report a zero height, SetAspectRatio ignores that
	g.Scene = scene.New(scene.DefaultAspectRatio)
	g.Scene.SetAspectRatio(win.Size())
	return g, nil
}

// loadProgram builds the shader program from the configured files. With the
// hot reload feature on, a Reloader owns the program and rebuilds it on changes.
func (g *Game) loadProgram() error {

	prog, r, err := shaders.LoadProgram(g.Drv, config.HotReloadFeature, g.Cfg.VertPath, g.Cfg.FragPath)
	if err != nil {
		return err
	}

	if r != nil {
		g.Reloader = r
		logging.InfoLog.Infow("Watching shader files", "vert", g.Cfg.VertPath, "frag", g.Cfg.FragPath)
		return nil
	}

	g.Prog = prog
	return nil
}

func (g *Game) program() *shaders.ShaderProgram {

	if g.Reloader != nil {
		return g.Reloader.Program()
	}

	return g.Prog
}

func (g *Game) uploadTriangle() error {

	vao, err := buffers.NewVertexArray()
	if err != nil {
		return err
	}

	vbo, err := buffers.NewVertexBuffer(
		buffers.Element{ElementType: buffers.DataTypeVec3},
		buffers.Element{ElementType: buffers.DataTypeVec3},
	)
	if err != nil {
		vao.Delete()
		return err
	}

	vbo.SetData(triangleVerts, buffers.BufUsage_Static_Draw)
	vao.AddVertexBuffer(vbo)
	vao.UnBind()

	g.Vao = vao
	g.VertexCount = vbo.VertexCount(len(triangleVerts))
	return nil
}

func (g *Game) handleWindowEvents(e sdl.Event) {

	switch e := e.(type) {
	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			g.Scene.SetAspectRatio(g.Win.Size())
		}
	}
}

func (g *Game) Init() {
	g.program().PrintActiveUniforms()
}

func (g *Game) Update() {

	if input.IsQuitClicked() || input.KeyClicked(sdl.K_ESCAPE) {
		engine.Quit()
	}

	if input.MouseMoved() {
		_, y := input.GetMousePos()
		g.Scene.OnCursorMove(float32(y), input.MouseDown(sdl.BUTTON_LEFT))
	}

	g.Scene.Update(timing.ElapsedTime())
	g.reloadShaders()
}

func (g *Game) reloadShaders() {

	if g.Reloader == nil {
		return
	}

	now := timing.ElapsedTime()
	if now-g.lastReloadCheck < reloadCheckIntervalSec {
		return
	}
	g.lastReloadCheck = now

	// On failure the previous program keeps rendering until the files are fixed
	reloaded, err := g.Reloader.Reload()
	if err != nil {
		logging.ErrLog.Errorw("Shader reload failed, keeping previous program", "programId", g.Reloader.Program().Id, "err", err)
		return
	}

	if reloaded {
		g.Reloader.Program().PrintActiveUniforms()
	}
}

func (g *Game) Render() {

	prog := g.program()
	g.Scene.Apply(prog)
	g.Rend.DrawVertexArray(prog, g.Vao, 0, g.VertexCount)
}

func (g *Game) FrameEnd() {

	now := timing.ElapsedTime()
	if now-g.lastTitleUpdate < titleUpdateIntervalSec {
		return
	}
	g.lastTitleUpdate = now

	g.Win.SDLWin.SetTitle(titleWithFPS(g.Cfg.Title, timing.GetAvgFPS()))
}

// titleWithFPS appends the frame rate to title once one was measured
func titleWithFPS(title string, fps float32) string {

	if fps <= 0 {
		return title
	}

	return fmt.Sprintf("%s | %.0f FPS", title, fps)
}

func (g *Game) DeInit() {

	if g.Reloader != nil {
		g.Reloader.Delete()
	} else {
		g.Prog.Delete()
	}

	g.Vao.Delete()
}
