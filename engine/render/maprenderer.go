package render

import (
	"image/color"

	"github.com/1siamBot/mapfog/engine/maplib"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// TerrainColors maps terrain types to colors (placeholder until real sprites)
var TerrainColors = map[maplib.TerrainType]color.RGBA{
	maplib.TerrainGrass:  {34, 139, 34, 255},   // forest green
	maplib.TerrainDirt:   {139, 119, 101, 255}, // brown
	maplib.TerrainSand:   {238, 214, 175, 255}, // sandy
	maplib.TerrainWater:  {30, 144, 255, 255},  // blue
	maplib.TerrainRock:   {128, 128, 128, 255}, // gray
	maplib.TerrainRoad:   {169, 169, 169, 255}, // light gray
	maplib.TerrainForest: {0, 100, 0, 255},     // dark green
	maplib.TerrainSnow:   {245, 245, 255, 255}, // white
	maplib.TerrainSwamp:  {85, 107, 47, 255},   // olive
}

// MapRenderer draws the tile layer and hands the frame to the filter chain
type MapRenderer struct {
	Camera  *Camera
	Filters *FilterChain

	scene *ebiten.Image
}

// NewMapRenderer creates a renderer with an empty filter chain
func NewMapRenderer(screenW, screenH int) *MapRenderer {
	return &MapRenderer{
		Camera:  NewCamera(screenW, screenH),
		Filters: &FilterChain{},
	}
}

// Draw renders the visible tiles, then runs the post-processing filters
func (r *MapRenderer) Draw(screen *ebiten.Image, tm *maplib.TileMap) {
	b := screen.Bounds()
	if r.scene == nil || r.scene.Bounds().Dx() != b.Dx() || r.scene.Bounds().Dy() != b.Dy() {
		if r.scene != nil {
			r.scene.Deallocate()
		}
		r.scene = ebiten.NewImage(b.Dx(), b.Dy())
	}
	r.scene.Fill(color.RGBA{20, 20, 30, 255})
	r.drawTiles(r.scene, tm)
	r.Filters.Draw(screen, r.scene)
}

func (r *MapRenderer) drawTiles(dst *ebiten.Image, tm *maplib.TileMap) {
	if tm == nil {
		return
	}
	tw := float32(tm.TileWidth)
	th := float32(tm.TileHeight)
	minX, minY, maxX, maxY := r.Camera.VisibleTileRange(tm.Width, tm.Height)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			tile := tm.At(x, y)
			if tile == nil {
				continue
			}
			clr, ok := TerrainColors[tile.Terrain]
			if !ok {
				clr = color.RGBA{255, 0, 255, 255}
			}
			// variants shade the base colour a little
			shade := uint8(tile.TileVariant%3) * 8
			clr.R -= min(clr.R, shade)
			clr.G -= min(clr.G, shade)
			clr.B -= min(clr.B, shade)

			sx, sy := r.Camera.WorldToScreen(float64(x), float64(y))
			vector.DrawFilledRect(dst, float32(sx), float32(sy), tw, th, clr, false)
		}
	}
}

// DrawGrid draws tile outlines over the visible area
func (r *MapRenderer) DrawGrid(screen *ebiten.Image, tm *maplib.TileMap) {
	gridColor := color.RGBA{255, 255, 255, 40}
	minX, minY, maxX, maxY := r.Camera.VisibleTileRange(tm.Width, tm.Height)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			sx, sy := r.Camera.WorldToScreen(float64(x), float64(y))
			vector.StrokeRect(screen, float32(sx), float32(sy), float32(tm.TileWidth), float32(tm.TileHeight), 1, gridColor, false)
		}
	}
}
