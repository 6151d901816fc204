package descriptor

import (
	"reflect"

	"struct-mapper/internal/common"
)

// Reflect is a Provider backed by the reflect package. It recomputes descriptors
// on every call; wrap it with NewCache to memoize them.
type Reflect struct {
	tagKey string
}

// NewReflect creates a reflect based provider reading access rules from tagKey.
// An empty tagKey selects DefaultTagKey.
func NewReflect(tagKey string) *Reflect {
	if tagKey == "" {
		tagKey = DefaultTagKey
	}

	return &Reflect{tagKey: tagKey}
}

// TagKey returns the struct tag key consulted for access rules.
func (r *Reflect) TagKey() string {
	return r.tagKey
}

// Fields implements Provider.
func (r *Reflect) Fields(t reflect.Type) []Field {
	_, t = Base(t)
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}

	var fields []Field

	for _, sf := range reflect.VisibleFields(t) {
		if !sf.IsExported() {
			continue
		}

		// embedded structs are flattened, their promoted fields follow them
		if _, base := Base(sf.Type); sf.Anonymous && base.Kind() == reflect.Struct {
			continue
		}

		access := ParseAccess(sf.Tag, r.tagKey)
		fields = append(fields, Field{
			Name:     sf.Name,
			Type:     sf.Type,
			Index:    sf.Index,
			Readable: access.Readable(),
			Writable: access.Writable(),
		})
	}

	return fields
}

// Lookup implements Provider.
func (r *Reflect) Lookup(t reflect.Type, name string) (Field, bool) {
	return lookup(r.Fields(t), name)
}

// lookup prefers writable fields, then an exact name over a case-insensitive one.
func lookup(fields []Field, name string) (Field, bool) {
	return common.MatchName(fields, name,
		func(f Field) string { return f.Name },
		func(f Field) bool { return f.Writable })
}
