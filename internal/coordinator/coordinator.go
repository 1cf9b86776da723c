// Package coordinator executes the cross-entity effects of a committed
// mutation: cascaded store deletes first, cache invalidation second, audit
// append last. The ordering is the consistency guarantee: cascaded deletes
// must be acknowledged before any cache key is touched, so a crash between
// the steps leaves the store, not the cache, as the durable source of truth.
// A stale cache entry self-heals on the next read miss.
package coordinator

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"scholarhub/internal/audit"
	"scholarhub/internal/cache"
	"scholarhub/internal/store"
	"scholarhub/pkg/domerrors"
)

var mutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "scholarhub_mutations_total",
	Help: "Committed entity mutations by kind and action",
}, []string{"kind", "action"})

// Kind names an entity type in the cascade table.
type Kind string

const (
	KindAccount     Kind = "account"
	KindProject     Kind = "project"
	KindUpdate      Kind = "update"
	KindApplication Kind = "application"
)

// Action names a mutation type.
type Action string

const (
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionRemove Action = "remove"
)

// effect is one row of the cascade table. New entity kinds extend the table
// rather than adding per-mutation code.
type effect struct {
	listKey    string
	perIDKey   func(id string) string
	cascade    func(ctx context.Context, c *Coordinator, id primitive.ObjectID) error
	removeAlso []string // extra list keys invalidated on remove
}

var table = map[Kind]effect{
	KindAccount: {
		listKey:  cache.KeyAllAccounts,
		perIDKey: cache.AccountKey,
		cascade: func(ctx context.Context, c *Coordinator, id primitive.ObjectID) error {
			n, err := c.applications.DeleteByApplicant(ctx, id)
			if err != nil {
				return err
			}
			c.log.Info().Str("accountId", id.Hex()).Int64("applications", n).
				Msg("cascade removed applications for account")
			return nil
		},
		removeAlso: []string{cache.KeyAllApplications},
	},
	KindProject: {
		listKey:  cache.KeyAllProjects,
		perIDKey: cache.ProjectKey,
		cascade: func(ctx context.Context, c *Coordinator, id primitive.ObjectID) error {
			nu, err := c.updates.DeleteByProject(ctx, id)
			if err != nil {
				return err
			}
			na, err := c.applications.DeleteByProject(ctx, id)
			if err != nil {
				return err
			}
			c.log.Info().Str("projectId", id.Hex()).Int64("updates", nu).Int64("applications", na).
				Msg("cascade removed updates and applications for project")
			return nil
		},
		removeAlso: []string{cache.KeyAllUpdates, cache.KeyAllApplications},
	},
	KindUpdate: {
		listKey:  cache.KeyAllUpdates,
		perIDKey: cache.UpdateKey,
	},
	KindApplication: {
		listKey:  cache.KeyAllApplications,
		perIDKey: cache.ApplicationKey,
	},
}

// Coordinator owns the cascade table. Services call Committed after their
// primary store write has been acknowledged.
type Coordinator struct {
	updates      store.UpdateStore
	applications store.ApplicationStore
	cache        cache.Cache
	auditor      *audit.Publisher
	log          zerolog.Logger
}

func New(updates store.UpdateStore, applications store.ApplicationStore, c cache.Cache, auditor *audit.Publisher, log zerolog.Logger) *Coordinator {
	return &Coordinator{
		updates:      updates,
		applications: applications,
		cache:        c,
		auditor:      auditor,
		log:          log,
	}
}

// Committed runs the table row for a mutation whose primary write has already
// committed. A non-nil payload refreshes the per-id cache entry (no
// expiration); a nil payload deletes it. extraInvalidate names additional
// keys made stale by this particular mutation (e.g. the old applicant's
// account entry when an application moves between accounts).
//
// A cache failure here is reported as CACHE_SYNC_FAILURE but the mutation
// stays committed; the caller must not treat it as a rollback. A cascade
// failure aborts before any cache key is touched.
func (c *Coordinator) Committed(ctx context.Context, kind Kind, action Action, id primitive.ObjectID, payload []byte, extraInvalidate ...string) error {
	row, ok := table[kind]
	if !ok {
		return domerrors.Newf(domerrors.CodeInternal, "no cascade table row for kind %q", kind)
	}

	if action == ActionRemove && row.cascade != nil {
		if err := row.cascade(ctx, c, id); err != nil {
			return domerrors.Wrap(err, domerrors.CodeInternal, "cascade delete failed")
		}
	}

	if err := c.syncCache(ctx, row, action, id, payload, extraInvalidate); err != nil {
		// The store write is committed; surface the cache failure distinctly
		// and let the next read miss repopulate.
		c.log.Warn().Err(err).Str("kind", string(kind)).Str("action", string(action)).
			Str("id", id.Hex()).Msg("cache invalidation failed after commit")
		return domerrors.Wrap(err, domerrors.CodeCacheSync, "cache out of sync after committed write")
	}

	mutationsTotal.WithLabelValues(string(kind), string(action)).Inc()
	c.emitAudit(ctx, kind, action, id)
	return nil
}

func (c *Coordinator) syncCache(ctx context.Context, row effect, action Action, id primitive.ObjectID, payload []byte, extra []string) error {
	stale := []string{row.listKey}
	if action == ActionRemove {
		stale = append(stale, row.removeAlso...)
	}
	stale = append(stale, extra...)

	if payload != nil && action != ActionRemove {
		if err := c.cache.Set(ctx, row.perIDKey(id.Hex()), payload, 0); err != nil {
			return err
		}
	} else {
		stale = append(stale, row.perIDKey(id.Hex()))
	}
	return c.cache.Delete(ctx, stale...)
}

func (c *Coordinator) emitAudit(ctx context.Context, kind Kind, action Action, id primitive.ObjectID) {
	if c.auditor == nil {
		return
	}
	event := audit.Event{
		Kind:     string(kind),
		Action:   string(action),
		EntityID: id.Hex(),
	}
	if err := c.auditor.Emit(ctx, event); err != nil {
		// Audit is observability, never a correctness dependency.
		c.log.Warn().Err(err).Str("kind", string(kind)).Msg("audit append failed")
	}
}
