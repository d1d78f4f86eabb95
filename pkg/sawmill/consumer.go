package sawmill

import "errors"

// ErrSkip signals that a consumer dropped the event. The chain stops
// and no error surfaces to the logging call site.
var ErrSkip = errors.New("sawmill: event skipped")

// Consumer receives an event and returns the event the next stage
// should see, possibly after a side effect. Returning ErrSkip drops
// the event; any other error aborts the chain and propagates to the
// caller of the logging operation.
type Consumer func(Event) (Event, error)

// Then returns a consumer that runs c and feeds its result to next.
// Composition is associative: a.Then(b).Then(c) and a.Then(b.Then(c))
// produce the same observable behavior.
func (c Consumer) Then(next Consumer) Consumer {
	return func(e Event) (Event, error) {
		out, err := c(e)
		if err != nil {
			return out, err
		}
		return next(out)
	}
}

// Tap returns a consumer that runs c, invokes next on the result for
// its side effect, and passes c's result on unchanged. The event next
// returns is discarded, as is ErrSkip; genuine errors from next still
// abort the chain.
func (c Consumer) Tap(next Consumer) Consumer {
	return func(e Event) (Event, error) {
		out, err := c(e)
		if err != nil {
			return out, err
		}
		if _, err := next(out); err != nil && !errors.Is(err, ErrSkip) {
			return out, err
		}
		return out, nil
	}
}

// Compose folds the consumers into a single chain running left to
// right. With no consumers it returns the identity chain.
func Compose(consumers ...Consumer) Consumer {
	return func(e Event) (Event, error) {
		var err error
		for _, c := range consumers {
			e, err = c(e)
			if err != nil {
				return e, err
			}
		}
		return e, nil
	}
}

// Filter returns a consumer that passes the event through when keep
// reports true and drops it otherwise.
func Filter(keep func(Event) bool) Consumer {
	return func(e Event) (Event, error) {
		if !keep(e) {
			return e, ErrSkip
		}
		return e, nil
	}
}

// Map returns a consumer that applies a pure transform to the event.
func Map(transform func(Event) Event) Consumer {
	return func(e Event) (Event, error) {
		return transform(e), nil
	}
}
