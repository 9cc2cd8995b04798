package maplib

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/1siamBot/mapfog/engine/weather"
)

// TerrainType defines the terrain of a tile
type TerrainType uint8

const (
	TerrainGrass TerrainType = iota
	TerrainDirt
	TerrainSand
	TerrainWater
	TerrainRock
	TerrainRoad
	TerrainForest
	TerrainSnow
	TerrainSwamp
)

var terrainNames = map[TerrainType]string{
	TerrainGrass:  "Grass",
	TerrainDirt:   "Dirt",
	TerrainSand:   "Sand",
	TerrainWater:  "Water",
	TerrainRock:   "Rock",
	TerrainRoad:   "Road",
	TerrainForest: "Forest",
	TerrainSnow:   "Snow",
	TerrainSwamp:  "Swamp",
}

func (t TerrainType) String() string {
	if name, ok := terrainNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Tile represents a single map tile
type Tile struct {
	Terrain     TerrainType `json:"terrain"`
	TileVariant uint8       `json:"variant"` // visual variant index
}

// TileMap is an orthogonal map with its metadata note
type TileMap struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Tiles  []Tile `json:"tiles"`

	// Note carries per-map tags such as <fog:0.3 red> or <nofog>
	Note string `json:"note"`

	TileWidth  int `json:"tile_width"`  // pixel width of a tile (default 48)
	TileHeight int `json:"tile_height"` // pixel height of a tile (default 48)

	tags     Tags
	tagsNote string
	parsed   bool
}

// NewTileMap creates a new map filled with grass
func NewTileMap(id int, name string, width, height int) *TileMap {
	tm := &TileMap{
		ID:         id,
		Name:       name,
		Width:      width,
		Height:     height,
		Tiles:      make([]Tile, width*height),
		TileWidth:  48,
		TileHeight: 48,
	}
	for i := range tm.Tiles {
		tm.Tiles[i] = Tile{Terrain: TerrainGrass}
	}
	return tm
}

// At returns a pointer to the tile at (x, y)
func (tm *TileMap) At(x, y int) *Tile {
	if x < 0 || y < 0 || x >= tm.Width || y >= tm.Height {
		return nil
	}
	return &tm.Tiles[y*tm.Width+x]
}

// InBounds checks if coordinates are within map bounds
func (tm *TileMap) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < tm.Width && y < tm.Height
}

// PixelSize returns the map size in pixels
func (tm *TileMap) PixelSize() (w, h int) {
	return tm.Width * tm.TileWidth, tm.Height * tm.TileHeight
}

// SetTerrain sets terrain for a rectangular region
func (tm *TileMap) SetTerrain(x1, y1, x2, y2 int, terrain TerrainType) {
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			if t := tm.At(x, y); t != nil {
				t.Terrain = terrain
			}
		}
	}
}

// Tags returns the parsed note tags. The parse is cached until Note changes.
func (tm *TileMap) Tags() Tags {
	if !tm.parsed || tm.tagsNote != tm.Note {
		tm.tags = ParseTags(tm.Note)
		tm.tagsNote = tm.Note
		tm.parsed = true
	}
	return tm.tags
}

// FogOverride implements weather.MapMeta
func (tm *TileMap) FogOverride() weather.Override {
	return tm.Tags().Override()
}

// SaveJSON saves the map to a JSON file
func (tm *TileMap) SaveJSON(path string) error {
	data, err := json.MarshalIndent(tm, "", "  ")
	if err != nil {
		return fmt.Errorf("encode map %q: %w", tm.Name, err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadJSON loads a map from a JSON file
func LoadJSON(path string) (*TileMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read map: %w", err)
	}
	var tm TileMap
	if err := json.Unmarshal(data, &tm); err != nil {
		return nil, fmt.Errorf("decode map %s: %w", path, err)
	}
	if tm.TileWidth <= 0 {
		tm.TileWidth = 48
	}
	if tm.TileHeight <= 0 {
		tm.TileHeight = 48
	}
	if len(tm.Tiles) != tm.Width*tm.Height {
		return nil, fmt.Errorf("decode map %s: %d tiles for %dx%d", path, len(tm.Tiles), tm.Width, tm.Height)
	}
	return &tm, nil
}
