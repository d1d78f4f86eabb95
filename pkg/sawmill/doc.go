// Package sawmill is a thin convenience layer over log/slog built
// around composable consumer chains. A logging call constructs an
// Event (logger name, level, format, args, fields) and passes it
// through a chain of consumers; each consumer may transform the event
// or perform a side effect before the terminal sink writes it to the
// backend.
//
// Basic logging through the default chain (sink only):
//
//	sawmill.Info("started worker %d", 3)
//
// Transforming events before the sink:
//
//	l := sawmill.New("ingest",
//	    sawmill.Map(func(e sawmill.Event) sawmill.Event {
//	        return e.WithFormat("mapped " + e.Format)
//	    }),
//	    sawmill.Sink(),
//	)
//	l.Info("msg") // backend sees "mapped msg"
//
// Filtering:
//
//	l := sawmill.New("ingest",
//	    sawmill.Filter(func(e sawmill.Event) bool {
//	        return strings.Contains(e.Format, "target")
//	    }),
//	    sawmill.Sink(),
//	)
//	l.Info("msg")        // dropped
//	l.Info("msg target") // written
//
// Chains compose with Then (sequential) and Tap (side effect only);
// both are associative, so chains of arbitrary length can be built
// incrementally. Consumer errors are never suppressed: they surface
// at the call site wrapped in *PutError.
package sawmill
