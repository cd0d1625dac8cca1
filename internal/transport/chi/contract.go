package chi

import (
	"context"

	"github.com/23f2000400/student-dropout-prediction/internal/domain/notify"
	domstudent "github.com/23f2000400/student-dropout-prediction/internal/domain/student"
)

// StudentReader serves the listing, detail, and export handlers.
type StudentReader interface {
	List(ctx context.Context) ([]domstudent.Student, error)
	Get(ctx context.Context, id string) (domstudent.Student, error)
}

// NotificationReader serves the counselor notification feed.
type NotificationReader interface {
	ListUnread(ctx context.Context, counselorID string, limit int) ([]notify.Notification, error)
}
