package motion

// Sink receives the marker position once per frame.
type Sink interface {
	SetPosition(x, y float64)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(x, y float64)

// SetPosition calls the function.
func (fn SinkFunc) SetPosition(x, y float64) {
	fn(x, y)
}

// NopSink discards positions.
type NopSink struct{}

// SetPosition does nothing.
func (NopSink) SetPosition(float64, float64) {}
