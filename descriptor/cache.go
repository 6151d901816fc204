package descriptor

import (
	"reflect"
	"sync"
)

type lookupKey struct {
	t    reflect.Type
	name string
}

type lookupResult struct {
	field Field
	found bool
}

// Cache memoizes the descriptors of a wrapped Provider per type and per lookup.
// It is safe for concurrent use and returns exactly what the wrapped provider would.
type Cache struct {
	next    Provider
	fields  sync.Map // reflect.Type -> []Field
	lookups sync.Map // lookupKey -> lookupResult
}

// NewCache wraps next with memoization.
func NewCache(next Provider) *Cache {
	if next == nil {
		panic("cached descriptor provider cannot be nil")
	}

	return &Cache{next: next}
}

// Fields implements Provider.
func (c *Cache) Fields(t reflect.Type) []Field {
	if cached, ok := c.fields.Load(t); ok {
		return cached.([]Field)
	}

	fields, _ := c.fields.LoadOrStore(t, c.next.Fields(t))

	return fields.([]Field)
}

// Lookup implements Provider.
func (c *Cache) Lookup(t reflect.Type, name string) (Field, bool) {
	key := lookupKey{t: t, name: name}
	if cached, ok := c.lookups.Load(key); ok {
		res := cached.(lookupResult)
		return res.field, res.found
	}

	field, found := c.next.Lookup(t, name)
	c.lookups.Store(key, lookupResult{field: field, found: found})

	return field, found
}
