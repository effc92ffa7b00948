package telemetry

// Event names. Properties never carry task titles or other user content.
const (
	EventCommandDispatched = "command_dispatched"
	EventCommandError      = "command_error"
	EventSessionStart      = "session_start"
)
