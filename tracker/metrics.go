package tracker

// NoopMetrics is a Metrics implementation that does nothing; it is the
// default when Options.Metrics is nil.
type NoopMetrics struct{}

// Progressed ignores the call.
func (NoopMetrics) Progressed(float64) {}

// Promoted ignores the call.
func (NoopMetrics) Promoted() {}

// Demoted ignores the call.
func (NoopMetrics) Demoted() {}

// Size ignores the call.
func (NoopMetrics) Size(int, int) {}
