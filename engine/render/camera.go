package render

import (
	"math"

	"github.com/1siamBot/mapfog/engine/weather"
)

// DistancePerFrame returns tiles scrolled per frame for a move speed level
// (1 slowest .. 6 fastest, 4 normal)
func DistancePerFrame(moveSpeed int) float64 {
	return math.Pow(2, float64(moveSpeed)) / 256
}

// Camera is the scrolling viewport over an orthogonal map
type Camera struct {
	X, Y    float64 // display origin (tile coords, fractional)
	ScreenW int     // viewport width in pixels
	ScreenH int     // viewport height in pixels

	// MoveSpeed is the scroll speed level, see DistancePerFrame
	MoveSpeed int

	// Map bounds for clamping
	MapWidth   int
	MapHeight  int
	TileWidth  int
	TileHeight int
}

// NewCamera creates a camera with default settings
func NewCamera(screenW, screenH int) *Camera {
	return &Camera{
		ScreenW:    screenW,
		ScreenH:    screenH,
		MoveSpeed:  4,
		TileWidth:  48,
		TileHeight: 48,
	}
}

// SetMapBounds sets the map size for camera clamping
func (c *Camera) SetMapBounds(w, h, tw, th int) {
	c.MapWidth = w
	c.MapHeight = h
	if tw > 0 {
		c.TileWidth = tw
	}
	if th > 0 {
		c.TileHeight = th
	}
	c.clamp()
}

// Origin implements weather.Viewport
func (c *Camera) Origin() weather.Vec2 {
	return weather.Vec2{
		X: c.X * float64(c.TileWidth),
		Y: c.Y * float64(c.TileHeight),
	}
}

// MaxTravelPerFrame implements weather.Viewport
func (c *Camera) MaxTravelPerFrame() weather.Vec2 {
	d := DistancePerFrame(c.MoveSpeed)
	return weather.Vec2{
		X: d * float64(c.TileWidth),
		Y: d * float64(c.TileHeight),
	}
}

// Scroll moves the camera toward a direction by at most one frame of travel
func (c *Camera) Scroll(dirX, dirY float64) {
	d := DistancePerFrame(c.MoveSpeed)
	c.X += math.Max(-1, math.Min(1, dirX)) * d
	c.Y += math.Max(-1, math.Min(1, dirY)) * d
	c.clamp()
}

// CenterOn places a tile at the middle of the screen, without easing.
// Used on map transfers.
func (c *Camera) CenterOn(tx, ty float64) {
	c.X = tx - c.tilesWide()/2
	c.Y = ty - c.tilesHigh()/2
	c.clamp()
}

// ScreenToWorld converts screen pixel to world tile coords
func (c *Camera) ScreenToWorld(sx, sy int) (float64, float64) {
	return c.X + float64(sx)/float64(c.TileWidth), c.Y + float64(sy)/float64(c.TileHeight)
}

// TileAt returns the tile under screen pixel (sx, sy)
func (c *Camera) TileAt(sx, sy int) (int, int) {
	wx, wy := c.ScreenToWorld(sx, sy)
	return int(math.Floor(wx)), int(math.Floor(wy))
}

// WorldToScreen converts world tile coords to screen pixel position
func (c *Camera) WorldToScreen(wx, wy float64) (float64, float64) {
	return (wx - c.X) * float64(c.TileWidth), (wy - c.Y) * float64(c.TileHeight)
}

// VisibleTileRange returns the range of tiles visible on screen
func (c *Camera) VisibleTileRange(mapW, mapH int) (minX, minY, maxX, maxY int) {
	minX = int(math.Floor(c.X))
	minY = int(math.Floor(c.Y))
	maxX = int(math.Ceil(c.X + c.tilesWide()))
	maxY = int(math.Ceil(c.Y + c.tilesHigh()))

	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX >= mapW {
		maxX = mapW - 1
	}
	if maxY >= mapH {
		maxY = mapH - 1
	}
	return
}

func (c *Camera) tilesWide() float64 { return float64(c.ScreenW) / float64(c.TileWidth) }
func (c *Camera) tilesHigh() float64 { return float64(c.ScreenH) / float64(c.TileHeight) }

func (c *Camera) clamp() {
	if c.MapWidth <= 0 || c.MapHeight <= 0 {
		return
	}
	c.X = math.Max(0, math.Min(c.X, float64(c.MapWidth)-c.tilesWide()))
	c.Y = math.Max(0, math.Min(c.Y, float64(c.MapHeight)-c.tilesHigh()))
}
