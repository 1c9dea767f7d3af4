// Package cache memoizes solids that many keys share, such as caps and
// slots of the same size.
package cache

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/soypat/keycad"
)

// delimiter joins the parts of a cache key.
const delimiter = "-"

// ObjectCache maps a kind and its shape parameters to a computed solid.
// It is not safe for concurrent use.
type ObjectCache struct {
	enabled bool
	objects map[string]*keycad.Solid
	hits    int
	misses  int
}

// New returns an ObjectCache. A disabled cache always misses and
// discards stores.
func New(enabled bool) *ObjectCache {
	return &ObjectCache{
		enabled: enabled,
		objects: make(map[string]*keycad.Solid),
	}
}

// Key returns the cache key of kind and params, each parenthesized and
// joined by a dash: "(cap)-(17)-(17)". Floats are rounded
// to micrometers so equal dimensions computed differently share a key.
func Key(kind string, params ...interface{}) string {
	var sb strings.Builder
	sb.WriteString("(" + kind + ")")
	for _, p := range params {
		sb.WriteString(delimiter + "(")
		switch v := p.(type) {
		case float64:
			v = math.Round(v*1e6) / 1e6
			if v == 0 {
				v = 0 // no negative zero.
			}
			sb.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
		case int:
			sb.WriteString(strconv.Itoa(v))
		case bool:
			sb.WriteString(strconv.FormatBool(v))
		case string:
			sb.WriteString(v)
		case fmt.Stringer:
			sb.WriteString(v.String())
		default:
			panic(fmt.Sprintf("unsupported cache parameter type %T", p))
		}
		sb.WriteByte(')')
	}
	return sb.String()
}

// Get returns the solid stored under kind and params.
func (c *ObjectCache) Get(kind string, params ...interface{}) (*keycad.Solid, bool) {
	if c == nil || !c.enabled {
		if c != nil {
			c.misses++
		}
		return nil, false
	}
	s, ok := c.objects[Key(kind, params...)]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return s, ok
}

// Store saves s under kind and params. Storing twice under the same key
// is a programming error and panics.
func (c *ObjectCache) Store(s *keycad.Solid, kind string, params ...interface{}) {
	if c == nil || !c.enabled {
		return
	}
	k := Key(kind, params...)
	if _, ok := c.objects[k]; ok {
		panic("duplicate object cache key " + strconv.Quote(k))
	}
	c.objects[k] = s
}

// Enabled reports whether the cache stores objects.
func (c *ObjectCache) Enabled() bool { return c != nil && c.enabled }

// Len returns the number of stored objects.
func (c *ObjectCache) Len() int {
	if c == nil {
		return 0
	}
	return len(c.objects)
}

// Stats returns the number of hits and misses so far.
func (c *ObjectCache) Stats() (hits, misses int) {
	if c == nil {
		return 0, 0
	}
	return c.hits, c.misses
}
