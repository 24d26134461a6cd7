package metrics

import "sync"

// InMemoryRecorder implements Recorder with in-process counters.
// Used in tests and exposed for ad-hoc inspection.
type InMemoryRecorder struct {
	mu   sync.Mutex
	snap Snapshot
}

// NewInMemory returns a Recorder backed by in-process counters.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// IncRegistration increments the registration counter.
func (m *InMemoryRecorder) IncRegistration() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap.Registrations++
}

// IncLogin increments the matching login counter.
func (m *InMemoryRecorder) IncLogin(success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if success {
		m.snap.LoginSuccesses++
	} else {
		m.snap.LoginFailures++
	}
}

// IncPostCreated increments the post creation counter.
func (m *InMemoryRecorder) IncPostCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap.PostsCreated++
}

// IncPostEdited increments the post edit counter.
func (m *InMemoryRecorder) IncPostEdited() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap.PostsEdited++
}

// IncLikeToggled increments the like or unlike counter.
func (m *InMemoryRecorder) IncLikeToggled(liked bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if liked {
		m.snap.Likes++
	} else {
		m.snap.Unlikes++
	}
}

// IncProfileCacheHit increments the cache hit counter.
func (m *InMemoryRecorder) IncProfileCacheHit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap.ProfileCacheHits++
}

// IncProfileCacheMiss increments the cache miss counter.
func (m *InMemoryRecorder) IncProfileCacheMiss() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap.ProfileCacheMisses++
}

// Snapshot returns a copy of the current counter values.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap
}
