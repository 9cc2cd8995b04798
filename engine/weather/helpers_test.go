package weather

import (
	"math"

	"github.com/1siamBot/mapfog/engine/core"
)

type fakeView struct {
	origin Vec2
	travel Vec2
}

func (v *fakeView) Origin() Vec2            { return v.origin }
func (v *fakeView) MaxTravelPerFrame() Vec2 { return v.travel }

func newView() *fakeView {
	return &fakeView{travel: Vec2{X: 8, Y: 8}}
}

type fakeMeta struct {
	ov Override
}

func (m *fakeMeta) FogOverride() Override { return m.ov }

type pipelineCall struct {
	attach bool
	update int
}

type fakePipeline struct {
	calls   []pipelineCall
	updates int
}

func (p *fakePipeline) Attach(Filter) { p.calls = append(p.calls, pipelineCall{true, p.updates}) }
func (p *fakePipeline) Detach(Filter) { p.calls = append(p.calls, pipelineCall{false, p.updates}) }

type eventLog struct {
	events []core.Event
}

func (l *eventLog) Emit(e core.Event) { l.events = append(l.events, e) }

func (l *eventLog) count(t core.EventType) int {
	n := 0
	for _, e := range l.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func nearColor(a, b Color) bool {
	return near(a.R, b.R) && near(a.G, b.G) && near(a.B, b.B) && near(a.A, b.A)
}
