package redis

import (
	"context"
	"fmt"

	"github.com/redis/rueidis"

	"github.com/23f2000400/student-dropout-prediction/internal/db"
)

// TxDel deletes all keys inside a single MULTI/EXEC block. Readers observe
// either none or all of the deletions.
func (s *Store) TxDel(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	return s.transact(ctx, func(b rueidis.Builder) []rueidis.Completed {
		return []rueidis.Completed{b.Del().Key(keys...).Build()}
	})
}

// TxHSetMulti writes all hashes and set additions inside a single
// MULTI/EXEC block.
func (s *Store) TxHSetMulti(ctx context.Context, items []db.HashSetItem, sets []db.SetAddItem) error {
	if len(items) == 0 && len(sets) == 0 {
		return nil
	}

	return s.transact(ctx, func(b rueidis.Builder) []rueidis.Completed {
		cmds := make([]rueidis.Completed, 0, len(items)+len(sets))
		for _, item := range items {
			cmd := b.Hset().Key(item.Key).FieldValue()
			for k, v := range item.Fields {
				cmd = cmd.FieldValue(k, v)
			}
			cmds = append(cmds, cmd.Build())
		}
		for _, set := range sets {
			if len(set.Members) == 0 {
				continue
			}
			cmds = append(cmds, b.Sadd().Key(set.Key).Member(set.Members...).Build())
		}
		return cmds
	})
}

// transact runs the built commands between MULTI and EXEC on a dedicated
// connection, as rueidis requires for transactions.
func (s *Store) transact(ctx context.Context, build func(rueidis.Builder) []rueidis.Completed) error {
	return s.client.Dedicated(func(c rueidis.DedicatedClient) error {
		body := build(c.B())
		cmds := make([]rueidis.Completed, 0, len(body)+2)
		cmds = append(cmds, c.B().Multi().Build())
		cmds = append(cmds, body...)
		cmds = append(cmds, c.B().Exec().Build())

		results := c.DoMulti(ctx, cmds...)
		for i, res := range results {
			if err := res.Error(); err != nil {
				op := db.OpMulti
				if i == len(results)-1 {
					op = db.OpExec
				}
				return &db.Error{Op: op, Err: fmt.Errorf("command %d of %d: %w", i+1, len(results), err)}
			}
		}
		return nil
	})
}
