package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncRegistration is a no-op.
func (n *NoopRecorder) IncRegistration() {}

// IncLogin is a no-op.
func (n *NoopRecorder) IncLogin(success bool) {}

// IncPostCreated is a no-op.
func (n *NoopRecorder) IncPostCreated() {}

// IncPostEdited is a no-op.
func (n *NoopRecorder) IncPostEdited() {}

// IncLikeToggled is a no-op.
func (n *NoopRecorder) IncLikeToggled(liked bool) {}

// IncProfileCacheHit is a no-op.
func (n *NoopRecorder) IncProfileCacheHit() {}

// IncProfileCacheMiss is a no-op.
func (n *NoopRecorder) IncProfileCacheMiss() {}
