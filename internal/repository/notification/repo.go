// Package notification persists counselor alerts. Records are append-only
// hashes indexed per counselor plus a global index for analytics counts.
package notification

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/23f2000400/student-dropout-prediction/internal/domain"
	"github.com/23f2000400/student-dropout-prediction/internal/domain/notify"
)

// store is the consumer interface for notification persistence (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	SAdd(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
}

// Repo implements the notification storage contracts.
type Repo struct {
	store store
}

// New creates a notification repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Add persists a notification and registers it in both indexes.
func (r *Repo) Add(ctx context.Context, n notify.Notification) error {
	if err := r.store.HSet(ctx, notificationKey(n.ID()), notificationToHash(n)); err != nil {
		return fmt.Errorf("hset %s: %w", notificationKey(n.ID()), err)
	}
	if err := r.store.SAdd(ctx, counselorIndexKey(n.CounselorID()), n.ID()); err != nil {
		return fmt.Errorf("sadd counselor index: %w", err)
	}
	if err := r.store.SAdd(ctx, indexKey(), n.ID()); err != nil {
		return fmt.Errorf("sadd %s: %w", indexKey(), err)
	}
	return nil
}

// ListUnread returns the counselor's unread notifications, newest first,
// capped at limit.
func (r *Repo) ListUnread(ctx context.Context, counselorID string, limit int) ([]notify.Notification, error) {
	all, err := r.listByIndex(ctx, counselorIndexKey(counselorID))
	if err != nil {
		return nil, err
	}

	out := make([]notify.Notification, 0, len(all))
	for _, n := range all {
		if !n.Read() {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt() > out[j].CreatedAt() })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// CountSince returns how many notifications were created at or after the
// given unix-millis cutoff, across all counselors.
func (r *Repo) CountSince(ctx context.Context, cutoffMillis int64) (int, error) {
	all, err := r.listByIndex(ctx, indexKey())
	if err != nil {
		return 0, err
	}

	count := 0
	for _, n := range all {
		if n.CreatedAt() >= cutoffMillis {
			count++
		}
	}
	return count, nil
}

func (r *Repo) listByIndex(ctx context.Context, index string) ([]notify.Notification, error) {
	ids, err := r.store.SMembers(ctx, index)
	if err != nil {
		return nil, fmt.Errorf("smembers %s: %w", index, err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = notificationKey(id)
	}

	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi: %w", err)
	}

	out := make([]notify.Notification, 0, len(hashes))
	for _, m := range hashes {
		if len(m) == 0 {
			continue
		}
		out = append(out, notificationFromHash(m))
	}
	return out, nil
}

func notificationToHash(n notify.Notification) map[string]string {
	return map[string]string{
		"notification_id": n.ID(),
		"student_id":      n.StudentID(),
		"counselor_id":    n.CounselorID(),
		"message":         n.Message(),
		"kind":            string(n.NotificationKind()),
		"read":            strconv.FormatBool(n.Read()),
		"created_at":      strconv.FormatInt(n.CreatedAt(), 10),
	}
}

func notificationFromHash(m map[string]string) notify.Notification {
	read, _ := strconv.ParseBool(m["read"])
	createdAt, _ := strconv.ParseInt(m["created_at"], 10, 64)
	return notify.Reconstruct(
		m["notification_id"],
		m["student_id"],
		m["counselor_id"],
		m["message"],
		notify.Kind(m["kind"]),
		read,
		createdAt,
	)
}

func notificationKey(id string) string {
	return fmt.Sprintf("%snotification:%s", domain.KeyPrefix, id)
}

func counselorIndexKey(counselorID string) string {
	return fmt.Sprintf("%snotifications:%s", domain.KeyPrefix, counselorID)
}

func indexKey() string {
	return domain.KeyPrefix + "notifications"
}
