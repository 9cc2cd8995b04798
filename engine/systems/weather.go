package systems

import (
	"github.com/1siamBot/mapfog/engine/core"
	"github.com/1siamBot/mapfog/engine/logger"
	"github.com/1siamBot/mapfog/engine/maplib"
	"github.com/1siamBot/mapfog/engine/render"
	"github.com/1siamBot/mapfog/engine/script"
	"github.com/1siamBot/mapfog/engine/weather"
	"github.com/sirupsen/logrus"
)

var log = logger.For("systems")

// WeatherSystem feeds the camera and the current map into the fog
// controller once per frame, then advances event scripts.
type WeatherSystem struct {
	Fog     *weather.Controller
	Camera  *render.Camera
	Map     *maplib.TileMap // nil until a map is loaded
	Scripts *script.Interpreter

	loop *core.FrameLoop
}

// NewWeatherSystem wires the system to loop's events. The fog is cleared
// when the loop returns to the title scene.
func NewWeatherSystem(loop *core.FrameLoop, fog *weather.Controller, cam *render.Camera, scripts *script.Interpreter) *WeatherSystem {
	s := &WeatherSystem{
		Fog:     fog,
		Camera:  cam,
		Scripts: scripts,
		loop:    loop,
	}
	loop.Events.On(core.EvtTitle, func(core.Event) {
		s.Fog.Clear()
		if s.Scripts != nil {
			s.Scripts.Stop()
		}
		s.Map = nil
		log.Debug("weather cleared for title")
	})
	return s
}

func (s *WeatherSystem) Priority() int { return 0 }

func (s *WeatherSystem) Update(_ uint64) {
	if s.Map == nil || s.Camera == nil {
		// map not ready: nothing to track
		s.Fog.Update(nil, nil)
	} else {
		s.Fog.Update(s.Camera, s.Map)
	}
	if s.Scripts != nil {
		s.Scripts.Update()
	}
}

// Transfer switches to tm and centres the camera on tile (tx, ty). The
// jump is a teleport; the fog origin only moves by one frame of travel.
func (s *WeatherSystem) Transfer(tm *maplib.TileMap, tx, ty float64) {
	s.Map = tm
	if tm != nil && s.Camera != nil {
		s.Camera.SetMapBounds(tm.Width, tm.Height, tm.TileWidth, tm.TileHeight)
		s.Camera.CenterOn(tx, ty)
	}
	var id int
	if tm != nil {
		id = tm.ID
		log.WithFields(logrus.Fields{"map": tm.Name, "id": tm.ID, "x": tx, "y": ty}).Info("map transfer")
	}
	s.loop.Emit(core.Event{Type: core.EvtMapChanged, Payload: id})
}
