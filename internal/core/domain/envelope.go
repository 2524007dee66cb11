package domain

// EventName tags a real-time envelope so dashboard clients can dispatch it.
// The set is open-ended: clients ignore tags they do not recognize.
type EventName string

const (
	// EventConnected is unicast to a client right after registration as a
	// handshake acknowledgment. It is never broadcast.
	EventConnected EventName = "connected"

	EventIncident                EventName = "incident"
	EventIncidentUpdate          EventName = "event_update"
	EventIncidentAssignment      EventName = "event_assignment"
	EventAlertGenerated          EventName = "alert_generated"
	EventNewNotification         EventName = "new_notification"
	EventNotificationAcknowledged EventName = "notification_acknowledged"
	EventNewHelpRequest          EventName = "new_help_request"
	EventHelpRequestUpdate       EventName = "help_request_update"
	EventNewMessage              EventName = "new_message"
)

// Envelope is the unit of transmission on the push channel. It is created
// once per broadcast call, serialized once, and never persisted. The Data
// payload shape is defined per event name by the producer; the hub treats
// it as opaque.
type Envelope struct {
	Event EventName `json:"event"`
	Data  any       `json:"data"`
}
