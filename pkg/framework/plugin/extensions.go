package plugin

import (
	"github.com/justyntemme/parambridge/pkg/event"
	"github.com/justyntemme/parambridge/pkg/framework/config"
	"github.com/justyntemme/parambridge/pkg/framework/param"
)

// ParamsExtension is what a host queries to enumerate, read and convert
// parameters, and to flush parameter events while audio is stopped.
type ParamsExtension interface {
	Count() uint32
	Info(index uint32) (param.Parameter, bool)
	Value(id uint32) (float64, bool)
	ValueToText(id uint32, value float64) (string, bool)
	TextToValue(id uint32, text string) (float64, bool)
	Flush(in event.InputEvents, out event.OutputEvents)
}

// GUIExtension negotiates the windowing system of the editor.
type GUIExtension interface {
	IsAPISupported(api config.WindowAPI, floating bool) bool
	PreferredAPI() (api config.WindowAPI, floating bool, ok bool)
}

// Params returns the parameter extension of the instance.
func (i *Instance) Params() ParamsExtension { return paramsExtension{i} }

// GUI returns the editor extension of the instance.
func (i *Instance) GUI() GUIExtension {
	return GUIConfig{API: i.cfg.WindowAPI, Floating: i.cfg.FloatingWindows}
}

type paramsExtension struct{ i *Instance }

func (p paramsExtension) Count() uint32 { return uint32(p.i.params.Count()) }

func (p paramsExtension) Info(index uint32) (param.Parameter, bool) {
	return p.i.params.Info(int(index))
}

func (p paramsExtension) Value(id uint32) (float64, bool) { return p.i.params.Value(id) }

func (p paramsExtension) ValueToText(id uint32, value float64) (string, bool) {
	return p.i.params.ValueToText(id, value)
}

func (p paramsExtension) TextToValue(id uint32, text string) (float64, bool) {
	return p.i.params.TextToValue(id, text)
}

// Flush is called by the host instead of Process when audio is stopped.
func (p paramsExtension) Flush(in event.InputEvents, out event.OutputEvents) {
	p.i.Process(in, out)
}

// GUIConfig answers editor negotiation for a single embedded window API.
type GUIConfig struct {
	API      config.WindowAPI
	Floating bool // accept host-managed floating windows
}

// IsAPISupported reports whether the editor can open with api.
func (g GUIConfig) IsAPISupported(api config.WindowAPI, floating bool) bool {
	if floating && !g.Floating {
		return false
	}
	return api.Valid() && api == g.API
}

// PreferredAPI returns the window API to use. Embedded windows are always
// preferred over floating ones.
func (g GUIConfig) PreferredAPI() (config.WindowAPI, bool, bool) {
	if !g.API.Valid() {
		return "", false, false
	}
	return g.API, false, true
}
