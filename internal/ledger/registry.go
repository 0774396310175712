package ledger

import (
	"fmt"

	"billing/internal/models"
)

// Registry holds the fixed roster of users. The roster is immutable after
// construction; only balances change, and only through emission and
// transfer. Iteration order is always load order.
type Registry struct {
	users  []*models.User
	byName map[string]*models.User
}

// NewRegistry builds a registry from roster entries. Names are the join key
// of the whole system, so a duplicate name is a construction error rather
// than something to deduplicate silently.
func NewRegistry(entries []models.RosterEntry) (*Registry, error) {
	r := &Registry{
		byName: make(map[string]*models.User, len(entries)),
	}
	for i, e := range entries {
		if _, exists := r.byName[e.Name]; exists {
			return nil, fmt.Errorf("duplicate user name %q in roster", e.Name)
		}
		u := &models.User{
			ID:     i,
			Name:   e.Name,
			Rating: e.Rating,
		}
		r.users = append(r.users, u)
		r.byName[e.Name] = u
	}
	return r, nil
}

// Users returns the roster in load order. Callers must not reorder the slice.
func (r *Registry) Users() []*models.User {
	return r.users
}

// FindByName resolves a user by name.
func (r *Registry) FindByName(name string) (*models.User, bool) {
	u, ok := r.byName[name]
	return u, ok
}

// Count reports the roster size.
func (r *Registry) Count() int {
	return len(r.users)
}
