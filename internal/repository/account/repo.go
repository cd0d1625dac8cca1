// Package account persists staff accounts. The counselor listing feeds the
// alert fan-out.
package account

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/23f2000400/student-dropout-prediction/internal/domain"
	domaccount "github.com/23f2000400/student-dropout-prediction/internal/domain/account"
)

// Default accounts seeded on first start.
var defaults = []struct {
	email string
	role  domaccount.Role
}{
	{"admin@university.edu", domaccount.RoleAdmin},
	{"counselor@university.edu", domaccount.RoleCounselor},
}

// store is the consumer interface for account persistence (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	SAdd(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
	SCard(ctx context.Context, key string) (int, error)
}

// Repo implements the account storage contracts.
type Repo struct {
	store store
}

// New creates an account repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// EnsureDefaults seeds the admin and counselor accounts when the account
// index is empty. Idempotent across restarts.
func (r *Repo) EnsureDefaults(ctx context.Context) error {
	n, err := r.store.SCard(ctx, indexKey())
	if err != nil {
		return fmt.Errorf("scard %s: %w", indexKey(), err)
	}
	if n > 0 {
		return nil
	}

	now := time.Now().UnixMilli()
	for _, d := range defaults {
		acc := domaccount.New(uuid.NewString(), d.email, d.role, now)
		if err := r.add(ctx, acc); err != nil {
			return err
		}
	}
	return nil
}

// FindCounselors returns all counselor-role accounts ordered by email.
func (r *Repo) FindCounselors(ctx context.Context) ([]domaccount.Account, error) {
	all, err := r.list(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domaccount.Account, 0, len(all))
	for _, acc := range all {
		if acc.AccountRole() == domaccount.RoleCounselor {
			out = append(out, acc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email() < out[j].Email() })
	return out, nil
}

func (r *Repo) add(ctx context.Context, acc domaccount.Account) error {
	if err := r.store.HSet(ctx, accountKey(acc.ID()), accountToHash(acc)); err != nil {
		return fmt.Errorf("hset %s: %w", accountKey(acc.ID()), err)
	}
	if err := r.store.SAdd(ctx, indexKey(), acc.ID()); err != nil {
		return fmt.Errorf("sadd %s: %w", indexKey(), err)
	}
	return nil
}

func (r *Repo) list(ctx context.Context) ([]domaccount.Account, error) {
	ids, err := r.store.SMembers(ctx, indexKey())
	if err != nil {
		return nil, fmt.Errorf("smembers %s: %w", indexKey(), err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = accountKey(id)
	}

	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi: %w", err)
	}

	out := make([]domaccount.Account, 0, len(hashes))
	for _, m := range hashes {
		if len(m) == 0 {
			continue
		}
		out = append(out, accountFromHash(m))
	}
	return out, nil
}

func accountToHash(acc domaccount.Account) map[string]string {
	return map[string]string{
		"account_id": acc.ID(),
		"email":      acc.Email(),
		"role":       string(acc.AccountRole()),
		"created_at": strconv.FormatInt(acc.CreatedAt(), 10),
	}
}

func accountFromHash(m map[string]string) domaccount.Account {
	createdAt, _ := strconv.ParseInt(m["created_at"], 10, 64)
	return domaccount.Reconstruct(m["account_id"], m["email"], domaccount.Role(m["role"]), createdAt)
}

func accountKey(id string) string {
	return fmt.Sprintf("%saccount:%s", domain.KeyPrefix, id)
}

func indexKey() string {
	return domain.KeyPrefix + "accounts"
}
