package game

import "github.com/Faultbox/ubiengine/internal/engine/input"

// listenerHost is implemented by surfaces that capture device events.
type listenerHost interface {
	AddListener(l input.Listener)
}

func registerBuiltinInputs(r *Registry) {
	r.RegisterInput("keyboard", func(ctx *Context) (input.Source, error) {
		kb := input.NewKeyboard()
		attach(ctx, kb)
		return kb, nil
	})
	r.RegisterInput("mouse", func(ctx *Context) (input.Source, error) {
		m := input.NewMouse()
		attach(ctx, m)
		return m, nil
	})
}

// attach subscribes l to the surface's event stream when there is one.
func attach(ctx *Context, l input.Listener) {
	if host, ok := ctx.Surface.(listenerHost); ok {
		host.AddListener(l)
	}
}
