package transport

// LogEvent is one element of a PushLog stream. Timestamp is an ISO-8601
// string, produced by the emitting service.
type LogEvent struct {
	ServiceName string `json:"service_name"`
	Level       string `json:"level"`
	Message     string `json:"message"`
	Timestamp   string `json:"timestamp"`
}

// PushLogStatus is the single aggregate response to a PushLog stream.
// Success reflects stream processing only; delivery failures are observed
// through the producer callback, never here.
type PushLogStatus struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
}
