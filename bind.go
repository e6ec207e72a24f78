package tether

// Bind forwards every value of s to sink until the returned Subscription is
// disposed. Values are forwarded synchronously, in emission order. Disposing
// stops further forwarding; sink writes that already happened are kept.
func Bind[T any](s Stream[T], sink Sink[T]) *Subscription {
	binding := NewSubscription(nil)
	upstream := s.Subscribe(func(v T) {
		if binding.IsDisposed() {
			return
		}
		sink(v)
	})
	binding.AddSubscription(upstream)
	return binding
}
