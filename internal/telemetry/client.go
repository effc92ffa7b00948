package telemetry

import (
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/posthog/posthog-go"
)

// Client records usage events. The app layer tracks every dispatched command.
type Client interface {
	Track(event string, properties Properties)
	// Close flushes pending events.
	Close() error
}

// Properties are event properties. They never carry task titles or other user content.
type Properties = map[string]any

// enqueuer is the part of the PostHog SDK client in use.
type enqueuer interface {
	io.Closer
	Enqueue(msg posthog.Message) error
}

// PostHogClient sends anonymous events through PostHog.
type PostHogClient struct {
	enq        enqueuer
	distinctID string
	common     Properties

	closeOnce sync.Once
	closeErr  error
}

func newPostHogClient(enq enqueuer, anonymousID, version string) *PostHogClient {
	return &PostHogClient{
		enq:        enq,
		distinctID: anonymousID,
		common: Properties{
			"app_version": version,
			"os":          runtime.GOOS,
			"arch":        runtime.GOARCH,
			// Events stay anonymous: no person profile is created.
			"$process_person_profile": false,
		},
	}
}

// Track enqueues an event and returns immediately.
func (c *PostHogClient) Track(event string, properties Properties) {
	props := posthog.NewProperties()
	for k, v := range c.common {
		props.Set(k, v)
	}
	for k, v := range properties {
		props.Set(k, v)
	}
	_ = c.enq.Enqueue(posthog.Capture{DistinctId: c.distinctID, Event: event, Properties: props})
}

// Close flushes the queue. Later calls return the first result.
func (c *PostHogClient) Close() error {
	c.closeOnce.Do(func() { c.closeErr = c.enq.Close() })
	return c.closeErr
}

// NoopClient drops every event.
type NoopClient struct{}

func (NoopClient) Track(string, Properties) {}
func (NoopClient) Close() error             { return nil }

// NewNoopClient returns a client that does nothing.
func NewNoopClient() *NoopClient { return &NoopClient{} }

// Settings mirror the telemetry.* config keys.
type Settings struct {
	Enabled  bool
	APIKey   string
	Endpoint string
	Version  string
}

// Open returns a PostHog client only when settings enable telemetry with an API key
// and the user has opted in (`config telemetry enable`). Anything else, including
// errors, yields a NoopClient.
func Open(s Settings) Client {
	if !s.Enabled || s.APIKey == "" {
		return NewNoopClient()
	}
	state, err := Load()
	if err != nil || !state.IsEnabled() {
		return NewNoopClient()
	}
	ph, err := posthog.NewWithConfig(s.APIKey, posthog.Config{
		Endpoint:  s.Endpoint,
		BatchSize: 10,
		Interval:  time.Second,
		Logger:    silentLogger{},
	})
	if err != nil {
		return NewNoopClient()
	}
	return newPostHogClient(ph, state.AnonymousID, s.Version)
}

// silentLogger keeps transport warnings out of command output.
type silentLogger struct{}

func (silentLogger) Debugf(string, ...any) {}
func (silentLogger) Logf(string, ...any)   {}
func (silentLogger) Warnf(string, ...any)  {}
func (silentLogger) Errorf(string, ...any) {}
