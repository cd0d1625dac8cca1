// Package notify defines counselor notifications raised by the alerting
// pipeline.
package notify

// Kind classifies a notification.
type Kind string

// Notification kinds.
const (
	// KindHighRiskAlert marks a dropout-risk threshold crossing.
	KindHighRiskAlert Kind = "high_risk_alert"
)

// Notification is one alert addressed to one counselor. Creation is
// append-only; read tracking is the only mutation downstream performs.
type Notification struct {
	id          string
	studentID   string
	counselorID string
	message     string
	kind        Kind
	read        bool
	createdAt   int64 // unix millis
}

// New creates an unread Notification.
func New(id, studentID, counselorID, message string, kind Kind, nowMillis int64) Notification {
	return Notification{
		id:          id,
		studentID:   studentID,
		counselorID: counselorID,
		message:     message,
		kind:        kind,
		createdAt:   nowMillis,
	}
}

// Reconstruct rebuilds a Notification from storage.
func Reconstruct(id, studentID, counselorID, message string, kind Kind, read bool, createdAt int64) Notification {
	return Notification{
		id:          id,
		studentID:   studentID,
		counselorID: counselorID,
		message:     message,
		kind:        kind,
		read:        read,
		createdAt:   createdAt,
	}
}

// ID returns the notification identifier.
func (n Notification) ID() string { return n.id }

// StudentID returns the referenced student identifier.
func (n Notification) StudentID() string { return n.studentID }

// CounselorID returns the addressed counselor identifier.
func (n Notification) CounselorID() string { return n.counselorID }

// Message returns the templated alert text.
func (n Notification) Message() string { return n.message }

// NotificationKind returns the kind.
func (n Notification) NotificationKind() Kind { return n.kind }

// Read reports whether the counselor has seen the notification.
func (n Notification) Read() bool { return n.read }

// CreatedAt returns the unix-millis creation timestamp.
func (n Notification) CreatedAt() int64 { return n.createdAt }
