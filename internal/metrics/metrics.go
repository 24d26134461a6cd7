// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	IncRegistration()
	// IncLogin records a login attempt; success distinguishes
	// accepted credentials from rejected ones.
	IncLogin(success bool)
	IncPostCreated()
	IncPostEdited()
	// IncLikeToggled records a toggle; liked reports the resulting state.
	IncLikeToggled(liked bool)
	IncProfileCacheHit()
	IncProfileCacheMiss()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}

// Snapshot holds point-in-time counter values.
type Snapshot struct {
	Registrations      int64 `json:"registrations"`
	LoginSuccesses     int64 `json:"login_successes"`
	LoginFailures      int64 `json:"login_failures"`
	PostsCreated       int64 `json:"posts_created"`
	PostsEdited        int64 `json:"posts_edited"`
	Likes              int64 `json:"likes"`
	Unlikes            int64 `json:"unlikes"`
	ProfileCacheHits   int64 `json:"profile_cache_hits"`
	ProfileCacheMisses int64 `json:"profile_cache_misses"`
}
