package alert

import (
	"context"

	domaccount "github.com/23f2000400/student-dropout-prediction/internal/domain/account"
	"github.com/23f2000400/student-dropout-prediction/internal/domain/notify"
)

// CounselorFinder lists the accounts that receive high-risk alerts.
type CounselorFinder interface {
	FindCounselors(ctx context.Context) ([]domaccount.Account, error)
}

// NotificationWriter persists created notifications.
type NotificationWriter interface {
	Add(ctx context.Context, n notify.Notification) error
}
