package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/1siamBot/mapfog/engine/config"
	"github.com/1siamBot/mapfog/engine/core"
	"github.com/1siamBot/mapfog/engine/input"
	"github.com/1siamBot/mapfog/engine/logger"
	"github.com/1siamBot/mapfog/engine/maplib"
	"github.com/1siamBot/mapfog/engine/render"
	"github.com/1siamBot/mapfog/engine/savedata"
	"github.com/1siamBot/mapfog/engine/script"
	"github.com/1siamBot/mapfog/engine/systems"
	"github.com/1siamBot/mapfog/engine/ui"
	"github.com/1siamBot/mapfog/engine/weather"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/sirupsen/logrus"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 720
	MapSize      = 64
)

var log = logger.For("fogdemo")

// demoScript fades fog in, holds, thickens it, then clears it
const demoScript = `
yield AddFog(0.6, 90, true, "lightsteelblue");
yield 120;
yield SetFog(1.2, 60, true);
RemoveFog(120, false);
`

// Game implements ebiten.Game interface
type Game struct {
	cfg      config.Config
	savePath string

	loop     *core.FrameLoop
	renderer *render.MapRenderer
	input    *input.InputState
	hud      *ui.HUD

	fog     *weather.Controller
	cmds    *script.Commands
	scripts *script.Interpreter
	weather *systems.WeatherSystem

	maps   []*maplib.TileMap
	mapIdx int

	showGrid bool
	status   string
}

func NewGame(cfg config.Config, maps []*maplib.TileMap, savePath string) (*Game, error) {
	g := &Game{
		cfg:      cfg,
		savePath: savePath,
		loop:     core.NewFrameLoop(),
		renderer: render.NewMapRenderer(ScreenWidth, ScreenHeight),
		input:    input.NewInputState(ScreenWidth, ScreenHeight),
		maps:     maps,
	}

	g.fog = weather.NewController(
		weather.WithPipeline(g.renderer.Filters, nil),
		weather.WithEvents(g.loop),
		weather.WithTimeStep(cfg.FogSpeed, cfg.TicksPerSecond),
	)
	filter, err := render.NewFogFilter(render.ShaderConfig{
		Octaves: cfg.FogQuality,
		ScaleX:  cfg.XScale,
		ScaleY:  cfg.YScale,
	}, g.fog)
	if err != nil {
		return nil, err
	}
	g.fog.SetFilter(filter)

	g.hud = ui.NewHUD(ScreenWidth, ScreenHeight, g.fog)
	g.cmds = script.NewCommands(g.fog)
	g.scripts = script.NewInterpreter(g.cmds)
	g.weather = systems.NewWeatherSystem(g.loop, g.fog, g.renderer.Camera, g.scripts)
	g.loop.AddSystem(g.weather)

	g.loop.Events.On(core.EvtFogAttached, func(e core.Event) {
		log.WithField("frame", e.Frame).Debug("fog visible")
	})
	g.loop.Events.On(core.EvtFogDetached, func(e core.Event) {
		log.WithField("frame", e.Frame).Debug("fog gone")
	})
	g.loop.Events.On(core.EvtSaved, func(core.Event) { g.status = "saved" })
	g.loop.Events.On(core.EvtLoaded, func(core.Event) { g.status = "loaded" })
	g.loop.Events.On(core.EvtTitle, func(core.Event) { g.status = "" })

	return g, nil
}

func (g *Game) Update() error {
	g.input.Update()

	if g.loop.State == core.StateTitle {
		if ebiten.IsKeyPressed(ebiten.KeyEnter) {
			g.startNewGame()
		}
		g.loop.Update()
		return nil
	}

	for _, a := range g.input.Actions() {
		g.handleAction(a)
	}
	if g.input.LeftJustPressed {
		if a, ok := g.hud.HandleClick(g.input.MouseX, g.input.MouseY); ok {
			g.handleAction(a)
		}
	}

	if g.loop.State == core.StateMap {
		g.renderer.Camera.Scroll(g.input.ScrollDir())
	}
	g.loop.Update()
	return nil
}

func (g *Game) startNewGame() {
	g.mapIdx = 0
	g.loop.EnterMap()
	g.weather.Transfer(g.maps[0], MapSize/2, MapSize/2)
}

func (g *Game) handleAction(a input.Action) {
	switch a {
	case input.ActAddFog:
		g.cmds.AddFog(script.DefaultIntensity, script.DefaultFadeFrames, false, "")
	case input.ActAddRedFog:
		g.cmds.Dispatch(script.CmdAddFog, map[string]string{
			script.ArgIntensity: "0.5",
			script.ArgFade:      "120",
			script.ArgColor:     "rgb(255, 80, 80)",
		})
	case input.ActRemoveFog:
		g.cmds.RemoveFog(script.DefaultFadeFrames, false)
	case input.ActSetFog:
		g.cmds.SetFog(1, 30, false)
	case input.ActRunScript:
		if g.scripts.Waiting("demo") {
			return
		}
		if err := g.scripts.Run("demo", demoScript); err != nil {
			log.WithError(err).Error("demo script")
		}
	case input.ActNextMap:
		g.mapIdx = (g.mapIdx + 1) % len(g.maps)
		next := g.maps[g.mapIdx]
		g.weather.Transfer(next, float64(next.Width)/2, float64(next.Height)/2)
	case input.ActSave:
		g.save()
	case input.ActLoad:
		g.load()
	case input.ActTitle:
		g.loop.ReturnToTitle()
	case input.ActPause:
		if g.loop.State == core.StatePaused {
			g.loop.EnterMap()
		} else {
			g.loop.Pause()
		}
	case input.ActGrid:
		g.showGrid = !g.showGrid
	}
}

func (g *Game) save() {
	cur := g.maps[g.mapIdx]
	f := savedata.New(cur.ID, g.fog.Snapshot())
	f.CameraX, f.CameraY = g.renderer.Camera.X, g.renderer.Camera.Y
	f.Frame = g.loop.Frame
	if err := savedata.Write(g.savePath, f); err != nil {
		log.WithError(err).Error("save failed")
		g.status = "save failed"
		return
	}
	g.loop.Emit(core.Event{Type: core.EvtSaved, Payload: g.savePath})
}

func (g *Game) load() {
	f, err := savedata.Read(g.savePath)
	if err != nil {
		log.WithError(err).Error("load failed")
		g.status = "load failed"
		return
	}
	idx := -1
	for i, m := range g.maps {
		if m.ID == f.MapID {
			idx = i
			break
		}
	}
	if idx < 0 {
		log.WithField("map", f.MapID).Error("save refers to an unknown map")
		g.status = "load failed"
		return
	}

	g.scripts.Stop()
	g.mapIdx = idx
	g.weather.Transfer(g.maps[idx], 0, 0)
	g.renderer.Camera.X, g.renderer.Camera.Y = f.CameraX, f.CameraY
	g.fog.Restore(f.Fog)
	g.loop.EnterMap()
	g.loop.Emit(core.Event{Type: core.EvtLoaded, Payload: g.savePath})
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.loop.State == core.StateTitle {
		screen.Fill(color.RGBA{10, 10, 20, 255})
		ebitenutil.DebugPrintAt(screen, "Map Fog Demo\n\n[Enter] Start", ScreenWidth/2-60, ScreenHeight/2-20)
		return
	}

	cur := g.maps[g.mapIdx]
	g.renderer.Draw(screen, cur)
	if g.showGrid {
		g.renderer.DrawGrid(screen, cur)
	}
	g.hud.Draw(screen, ui.Status{
		MapName: cur.Name,
		MapID:   cur.ID,
		Frame:   g.loop.Frame,
		Scene:   g.loop.State.String(),
		Message: g.status,
		Hover:   g.hoverLabel(cur),
	})
}

// hoverLabel describes the tile under the cursor
func (g *Game) hoverLabel(tm *maplib.TileMap) string {
	if g.hud.IsInSidebar(g.input.MouseX, g.input.MouseY) {
		return ""
	}
	tx, ty := g.renderer.Camera.TileAt(g.input.MouseX, g.input.MouseY)
	tile := tm.At(tx, ty)
	if tile == nil {
		return ""
	}
	return fmt.Sprintf("Tile (%d, %d) %s", tx, ty, tile.Terrain)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// generateDemoMaps creates three maps: plain, always foggy and never foggy
func generateDemoMaps() []*maplib.TileMap {
	meadow := maplib.NewTileMap(1, "Meadow", MapSize, MapSize)
	for x := 0; x < MapSize; x++ {
		y := MapSize/2 + int(3*math.Sin(float64(x)*0.15))
		meadow.SetTerrain(x, y-1, x, y+1, maplib.TerrainWater)
	}
	meadow.SetTerrain(5, 5, 12, 10, maplib.TerrainForest)
	meadow.SetTerrain(0, MapSize/4, MapSize-1, MapSize/4, maplib.TerrainRoad)

	marsh := maplib.NewTileMap(2, "Misty Marsh", MapSize, MapSize)
	marsh.SetTerrain(0, 0, MapSize-1, MapSize-1, maplib.TerrainSwamp)
	marsh.SetTerrain(20, 20, 40, 40, maplib.TerrainWater)
	marsh.Note = "<fog: 0.4 lightsteelblue>"

	canyon := maplib.NewTileMap(3, "Dry Canyon", MapSize, MapSize)
	canyon.SetTerrain(0, 0, MapSize-1, MapSize-1, maplib.TerrainSand)
	canyon.SetTerrain(10, 0, 14, MapSize-1, maplib.TerrainRock)
	canyon.Note = "<nofog>"

	return []*maplib.TileMap{meadow, marsh, canyon}
}

// loadMaps reads every *.json map in dir
func loadMaps(dir string) ([]*maplib.TileMap, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	var maps []*maplib.TileMap
	for _, p := range paths {
		tm, err := maplib.LoadJSON(p)
		if err != nil {
			return nil, err
		}
		maps = append(maps, tm)
	}
	if len(maps) == 0 {
		return nil, errors.New("no maps in " + dir)
	}
	return maps, nil
}

func main() {
	configPath := flag.String("config", "", "fog parameter file (JSON)")
	mapDir := flag.String("maps", "", "directory of map JSON files (default: built-in demo maps)")
	savePath := flag.String("save", filepath.Join("saves", "slot1.sav"), "save file")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	if *verbose {
		logger.Log.SetLevel(logrus.DebugLevel)
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadFile(*configPath); err != nil {
			log.WithError(err).Warn("using default fog parameters")
		}
	}

	maps := generateDemoMaps()
	if *mapDir != "" {
		loaded, err := loadMaps(*mapDir)
		if err != nil {
			log.WithError(err).Fatal("load maps")
		}
		maps = loaded
	}

	game, err := NewGame(cfg, maps, *savePath)
	if err != nil {
		log.WithError(err).Fatal("init")
	}

	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle("Map Fog Demo")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(true)
	ebiten.SetTPS(cfg.TicksPerSecond)

	if err := ebiten.RunGame(game); err != nil {
		log.WithError(err).Error("game exited")
		os.Exit(1)
	}
}
