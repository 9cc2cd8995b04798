package script

import (
	"errors"
	"fmt"
	"time"

	"github.com/dop251/goja"
	"github.com/sirupsen/logrus"
)

// StepBudget bounds the wall time of one script resume
const StepBudget = 250 * time.Millisecond

// event is one running script
type event struct {
	name string
	gen  *goja.Object
	next goja.Callable
	wait int
	done bool
}

// Interpreter runs event scripts cooperatively, one resume per frame at
// most. Each script body runs as a generator: `yield n` suspends it for n
// frames, a bare `yield` waits for the longest fade it requested since the
// last resume, and finishing also waits for that fade.
type Interpreter struct {
	vm     *goja.Runtime
	cmds   *Commands
	events []*event
	budget time.Duration

	// longest wait requested by commands during the current resume
	requested int
}

// NewInterpreter creates a VM with the fog commands bound
func NewInterpreter(cmds *Commands) *Interpreter {
	in := &Interpreter{vm: goja.New(), cmds: cmds, budget: StepBudget}

	in.vm.Set("AddFog", in.jsAddFog)
	in.vm.Set("RemoveFog", in.jsRemoveFog)
	in.vm.Set("SetFog", in.jsSetFog)
	in.vm.Set("pluginCommand", in.jsPluginCommand)
	in.vm.Set("log", func(msg string) {
		log.WithField("script", "js").Info(msg)
	})
	return in
}

// Run starts a script and executes it up to its first wait. Compile
// errors are returned; runtime errors are logged and end the script.
func (in *Interpreter) Run(name, src string) error {
	v, err := in.vm.RunScript(name, "(function*() {\n"+src+"\n})")
	if err != nil {
		return fmt.Errorf("compile script %s: %w", name, err)
	}
	fn, ok := goja.AssertFunction(v)
	if !ok {
		return fmt.Errorf("compile script %s: not a function", name)
	}
	gen, err := fn(goja.Undefined())
	if err != nil {
		return fmt.Errorf("start script %s: %w", name, err)
	}
	genObj := gen.ToObject(in.vm)
	next, ok := goja.AssertFunction(genObj.Get("next"))
	if !ok {
		return fmt.Errorf("start script %s: not a generator", name)
	}

	ev := &event{name: name, gen: genObj, next: next}
	in.resume(ev)
	if !ev.done || ev.wait > 0 {
		in.events = append(in.events, ev)
	}
	return nil
}

// Update advances every running script by one frame
func (in *Interpreter) Update() {
	kept := in.events[:0]
	for _, ev := range in.events {
		if ev.wait > 0 {
			ev.wait--
		}
		if ev.wait == 0 && !ev.done {
			in.resume(ev)
		}
		if !ev.done || ev.wait > 0 {
			kept = append(kept, ev)
		}
	}
	for i := len(kept); i < len(in.events); i++ {
		in.events[i] = nil
	}
	in.events = kept
}

// Running is the number of scripts still executing or waiting
func (in *Interpreter) Running() int { return len(in.events) }

// Waiting reports whether the named script is still holding its event
func (in *Interpreter) Waiting(name string) bool {
	for _, ev := range in.events {
		if ev.name == name {
			return true
		}
	}
	return false
}

// Stop abandons every running script
func (in *Interpreter) Stop() {
	in.events = nil
}

func (in *Interpreter) resume(ev *event) {
	in.requested = 0
	fired := make(chan struct{})
	timer := time.AfterFunc(in.budget, func() {
		in.vm.Interrupt("step budget exceeded")
		close(fired)
	})
	res, err := ev.next(ev.gen)
	if !timer.Stop() {
		// the interrupt may land after next returned; let it finish first
		<-fired
	}
	in.vm.ClearInterrupt()

	if err != nil {
		fields := logrus.Fields{"script": ev.name}
		var ie *goja.InterruptedError
		if errors.As(err, &ie) {
			fields["reason"] = ie.Value()
		}
		log.WithFields(fields).WithError(err).Error("event script failed")
		ev.done, ev.wait = true, 0
		return
	}

	obj := res.ToObject(in.vm)
	ev.done = obj.Get("done").ToBoolean()
	value := obj.Get("value")
	switch {
	case ev.done || goja.IsUndefined(value) || goja.IsNull(value):
		ev.wait = in.requested
	default:
		ev.wait = int(value.ToInteger())
	}
	if ev.wait < 0 {
		ev.wait = 0
	}
}

func (in *Interpreter) request(frames int) int {
	if frames > in.requested {
		in.requested = frames
	}
	return frames
}

func argFloat(call goja.FunctionCall, i int, def float64) float64 {
	a := call.Argument(i)
	if goja.IsUndefined(a) || goja.IsNull(a) {
		return def
	}
	return a.ToFloat()
}

func argInt(call goja.FunctionCall, i int, def int) int {
	a := call.Argument(i)
	if goja.IsUndefined(a) || goja.IsNull(a) {
		return def
	}
	return int(a.ToInteger())
}

func argBool(call goja.FunctionCall, i int, def bool) bool {
	a := call.Argument(i)
	if goja.IsUndefined(a) || goja.IsNull(a) {
		return def
	}
	return a.ToBoolean()
}

func argString(call goja.FunctionCall, i int) string {
	a := call.Argument(i)
	if goja.IsUndefined(a) || goja.IsNull(a) {
		return ""
	}
	return a.String()
}

// AddFog(intensity, fadeFrames, wait, color)
func (in *Interpreter) jsAddFog(call goja.FunctionCall) goja.Value {
	n := in.cmds.AddFog(
		argFloat(call, 0, DefaultIntensity),
		argInt(call, 1, DefaultFadeFrames),
		argBool(call, 2, true),
		argString(call, 3),
	)
	return in.vm.ToValue(in.request(n))
}

// RemoveFog(fadeFrames, wait)
func (in *Interpreter) jsRemoveFog(call goja.FunctionCall) goja.Value {
	n := in.cmds.RemoveFog(argInt(call, 0, DefaultFadeFrames), argBool(call, 1, true))
	return in.vm.ToValue(in.request(n))
}

// SetFog(intensity, fadeFrames, wait)
func (in *Interpreter) jsSetFog(call goja.FunctionCall) goja.Value {
	n := in.cmds.SetFog(
		argFloat(call, 0, DefaultIntensity),
		argInt(call, 1, DefaultFadeFrames),
		argBool(call, 2, true),
	)
	return in.vm.ToValue(in.request(n))
}

// pluginCommand(name, {intensity: "0.5", ...}) takes string arguments
func (in *Interpreter) jsPluginCommand(call goja.FunctionCall) goja.Value {
	name := argString(call, 0)
	args := map[string]string{}
	if obj, ok := call.Argument(1).(*goja.Object); ok {
		for _, k := range obj.Keys() {
			args[k] = obj.Get(k).String()
		}
	}
	return in.vm.ToValue(in.request(in.cmds.Dispatch(name, args)))
}
