//go:build !windows

package hotkey

// Dispatcher consumes messages the pump receives.
type Dispatcher interface {
	Dispatch(msg uint32, wParam uintptr) bool
}

// Pump is unavailable outside Windows.
type Pump struct{}

// StartPump always fails on this platform; nothing is set up or torn down.
func StartPump(Dispatcher, func() error, func()) (*Pump, error) {
	return nil, ErrUnsupported
}

func (p *Pump) Stop() error { return nil }

func (p *Pump) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
