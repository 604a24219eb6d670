package detail

import (
	"time"

	"hootline/internal/utils"
)

// Registry keeps mounted views per visitor and hoot so that mutations act on the
// copy the visitor is looking at.
type Registry struct {
	views *utils.Cache[*View]
	ttl   time.Duration
}

func NewRegistry(size int, ttl time.Duration) *Registry {
	return &Registry{
		views: utils.NewCache[*View](size),
		ttl:   ttl,
	}
}

func registryKey(visitor, hootID string) string {
	return visitor + "|" + hootID
}

// Get returns the view visitor mounted for hootID, if it is still around.
func (r *Registry) Get(visitor, hootID string) (*View, bool) {
	return r.views.Get(registryKey(visitor, hootID))
}

// Put registers v, refreshing its TTL.
func (r *Registry) Put(visitor string, v *View) {
	r.views.Set(registryKey(visitor, v.HootID()), v, r.ttl)
}

// Forget drops every visitor's view of hootID.
func (r *Registry) Forget(hootID string) int {
	return r.views.DeleteSuffix("|" + hootID)
}
