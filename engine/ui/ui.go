package ui

import (
	"fmt"
	"image/color"
	"math"

	"github.com/1siamBot/mapfog/engine/input"
	"github.com/1siamBot/mapfog/engine/weather"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// MaxBarIntensity is the intensity drawn as a full bar
const MaxBarIntensity = 1.5

// Button is a sidebar button bound to a demo action
type Button struct {
	Label  string
	Action input.Action
}

// DefaultButtons mirror the keyboard bindings
var DefaultButtons = []Button{
	{"[1] Add fog", input.ActAddFog},
	{"[2] Red fog", input.ActAddRedFog},
	{"[3] Remove fog", input.ActRemoveFog},
	{"[4] Set fog 1.0", input.ActSetFog},
	{"[E] Run script", input.ActRunScript},
	{"[Tab] Next map", input.ActNextMap},
	{"[F5] Save", input.ActSave},
	{"[F9] Load", input.ActLoad},
}

// Status is the per-frame information shown on the HUD
type Status struct {
	MapName string
	MapID   int
	Frame   uint64
	Scene   string
	Message string

	// Hover is the tile under the cursor, empty when off the map
	Hover string
}

// HUD is the main heads-up display
type HUD struct {
	ScreenW, ScreenH int
	SidebarWidth     int
	TopBarHeight     int
	Buttons          []Button

	Fog *weather.Controller
}

func NewHUD(sw, sh int, fog *weather.Controller) *HUD {
	return &HUD{
		ScreenW:      sw,
		ScreenH:      sh,
		SidebarWidth: 200,
		TopBarHeight: 30,
		Buttons:      DefaultButtons,
		Fog:          fog,
	}
}

// Draw renders the entire HUD
func (h *HUD) Draw(screen *ebiten.Image, st Status) {
	h.drawTopBar(screen, st)
	h.drawSidebar(screen)
}

func (h *HUD) drawTopBar(screen *ebiten.Image, st Status) {
	vector.DrawFilledRect(screen, 0, 0, float32(h.ScreenW), float32(h.TopBarHeight), color.RGBA{0, 0, 0, 180}, false)
	info := fmt.Sprintf("%s (%d) | Frame %d | %s | FPS %.0f", st.MapName, st.MapID, st.Frame, st.Scene, ebiten.ActualFPS())
	if st.Hover != "" {
		info += " | " + st.Hover
	}
	if st.Message != "" {
		info += " | " + st.Message
	}
	ebitenutil.DebugPrintAt(screen, info, 10, 8)
}

func (h *HUD) drawSidebar(screen *ebiten.Image) {
	sx := float32(h.ScreenW - h.SidebarWidth)
	vector.DrawFilledRect(screen, sx, float32(h.TopBarHeight), float32(h.SidebarWidth), float32(h.ScreenH-h.TopBarHeight), color.RGBA{20, 20, 40, 220}, false)

	y := h.TopBarHeight + 10
	ebitenutil.DebugPrintAt(screen, "=== FOG ===", int(sx)+10, y)
	y += 20

	cur := h.Fog.Current()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  a=%.3f", h.Fog.State(), cur.A), int(sx)+10, y)
	y += 18

	// intensity bar with the fog colour
	barW := float32(h.SidebarWidth - 20)
	vector.DrawFilledRect(screen, sx+10, float32(y), barW, 10, color.RGBA{40, 40, 40, 255}, false)
	vector.DrawFilledRect(screen, sx+10, float32(y), barW*BarFraction(cur.A), 10, Swatch(cur), false)
	vector.StrokeRect(screen, sx+10, float32(y), barW, 10, 1, color.RGBA{100, 100, 160, 255}, false)
	y += 18

	tgt := h.Fog.Target()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("target a=%.2f  left %d", tgt.A, h.Fog.Remaining()), int(sx)+10, y)
	y += 16
	ebitenutil.DebugPrintAt(screen, "override: "+OverrideLabel(h.Fog.Override()), int(sx)+10, y)
	y += 16
	o := h.Fog.ScrollOrigin()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("origin %.0f,%.0f", o.X, o.Y), int(sx)+10, y)
	y += 24

	ebitenutil.DebugPrintAt(screen, "=== COMMANDS ===", int(sx)+10, y)
	y += 20
	for _, b := range h.Buttons {
		btnColor := color.RGBA{60, 60, 100, 255}
		vector.DrawFilledRect(screen, sx+10, float32(y), float32(h.SidebarWidth-20), 24, btnColor, false)
		vector.StrokeRect(screen, sx+10, float32(y), float32(h.SidebarWidth-20), 24, 1, color.RGBA{100, 100, 160, 255}, false)
		ebitenutil.DebugPrintAt(screen, b.Label, int(sx)+15, y+5)
		y += 28
	}
}

// buttonsTop is the y of the first command button
func (h *HUD) buttonsTop() int {
	return h.TopBarHeight + 10 + 20 + 18 + 18 + 16 + 16 + 24 + 20
}

// HandleClick returns the action of the sidebar button under (mx, my)
func (h *HUD) HandleClick(mx, my int) (input.Action, bool) {
	if !h.IsInSidebar(mx, my) {
		return input.ActNone, false
	}
	sx := h.ScreenW - h.SidebarWidth
	if mx < sx+10 || mx >= sx+h.SidebarWidth-10 {
		return input.ActNone, false
	}
	rel := my - h.buttonsTop()
	if rel < 0 || rel%28 >= 24 {
		return input.ActNone, false
	}
	i := rel / 28
	if i >= len(h.Buttons) {
		return input.ActNone, false
	}
	return h.Buttons[i].Action, true
}

// IsInSidebar returns true if the point is over the sidebar
func (h *HUD) IsInSidebar(mx, my int) bool {
	return mx >= h.ScreenW-h.SidebarWidth && my >= h.TopBarHeight
}

// BarFraction maps an intensity to the filled share of the bar
func BarFraction(a float64) float32 {
	if math.IsNaN(a) || a <= 0 {
		return 0
	}
	return float32(math.Min(1, a/MaxBarIntensity))
}

// Swatch is the fog colour as an opaque display colour
func Swatch(c weather.Color) color.RGBA {
	ch := func(v float64) uint8 { return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255)) }
	return color.RGBA{ch(c.R), ch(c.G), ch(c.B), 255}
}

// OverrideLabel names a map override for display
func OverrideLabel(o weather.Override) string {
	switch o.Kind {
	case weather.OverrideAlways:
		return fmt.Sprintf("always %.2f", o.Color.A)
	case weather.OverrideNever:
		return "never"
	}
	return "none"
}
