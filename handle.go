package asyncmap

// handle is the pending result of one dispatched item. The producer enqueues
// it into the ordering channel at dispatch time, before the transform
// completes, so the channel position fixes delivery order while completion
// order stays free.
type handle[R any] struct {
	done chan struct{}
	val  R
	err  error
}

func newHandle[R any]() *handle[R] {
	return &handle[R]{done: make(chan struct{})}
}

// resolve publishes the outcome and wakes a waiting consumer.
// It must be called exactly once per handle.
func (h *handle[R]) resolve(val R, err error) {
	h.val = val
	h.err = err
	close(h.done)
}
