package observability

import "github.com/aretw0/waypoint/pkg/model"

// Combine returns hooks that call every non-nil hook of hs, in order.
func Combine(hs ...model.Hooks) model.Hooks {
	pick := func(get func(model.Hooks) func(model.ChangeEvent)) func(model.ChangeEvent) {
		var fns []func(model.ChangeEvent)
		for _, h := range hs {
			if fn := get(h); fn != nil {
				fns = append(fns, fn)
			}
		}
		if len(fns) == 0 {
			return nil
		}
		return func(ev model.ChangeEvent) {
			for _, fn := range fns {
				fn(ev)
			}
		}
	}
	return model.Hooks{
		OnRowsAboutToBeInserted: pick(func(h model.Hooks) func(model.ChangeEvent) { return h.OnRowsAboutToBeInserted }),
		OnRowsInserted:          pick(func(h model.Hooks) func(model.ChangeEvent) { return h.OnRowsInserted }),
		OnRowsAboutToBeRemoved:  pick(func(h model.Hooks) func(model.ChangeEvent) { return h.OnRowsAboutToBeRemoved }),
		OnRowsRemoved:           pick(func(h model.Hooks) func(model.ChangeEvent) { return h.OnRowsRemoved }),
		OnDataChanged:           pick(func(h model.Hooks) func(model.ChangeEvent) { return h.OnDataChanged }),
		OnModelReset:            pick(func(h model.Hooks) func(model.ChangeEvent) { return h.OnModelReset }),
	}
}
