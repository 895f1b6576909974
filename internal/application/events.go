package application

// Domain event names reported to an EventRecorder.
const (
	EventRegistration = "registration"
	EventLogin        = "login"
	EventCourse       = "course_created"
	EventEnrollment   = "enrollment"
	EventProgress     = "progress_updated"
	EventMessage      = "message_sent"
	EventSession      = "session_scheduled"
	EventSessionState = "session_status_changed"
	EventDoubleBooked = "session_double_booked"
)

// EventRecorder counts domain events by outcome ("success" or an error kind).
type EventRecorder interface {
	RecordEvent(event, outcome string)
}

type discardEvents struct{}

func (discardEvents) RecordEvent(string, string) {}

func defaultEvents(events EventRecorder) EventRecorder {
	if events == nil {
		return discardEvents{}
	}
	return events
}
