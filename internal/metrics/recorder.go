// Package metrics provides observability hooks for builds and the dev
// server. Components take a Recorder through injection and default to
// NoopRecorder, so metrics stay optional and tests can assert against a
// fake.
package metrics

import "time"

// Recorder defines the observability hooks. Implementations may forward to
// Prometheus or anything else; all methods must be cheap and non-blocking.
type Recorder interface {
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome string) // outcome: success|failed
	SetPostsPublished(n int)
	IncRebuild()
	SetLiveReloadClients(n int)
	IncLiveReloadBroadcast()
	IncLiveReloadDropped()
}

// NoopRecorder is the default Recorder; it does nothing.
type NoopRecorder struct{}

func (NoopRecorder) ObserveBuildDuration(time.Duration) {}
func (NoopRecorder) IncBuildOutcome(string)             {}
func (NoopRecorder) SetPostsPublished(int)              {}
func (NoopRecorder) IncRebuild()                        {}
func (NoopRecorder) SetLiveReloadClients(int)           {}
func (NoopRecorder) IncLiveReloadBroadcast()            {}
func (NoopRecorder) IncLiveReloadDropped()              {}
