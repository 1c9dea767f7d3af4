// Package layout turns a key catalog into a placed, computed and connected
// key matrix.
//
// A Catalog lists the keys of each row for a board size and names which
// slot faces and corners are seamed. The Builder places every row flush
// against the one in front of it, applies offsets, computes every key and
// hands the connection maps to a connect.Synthesizer.
package layout

import (
	"errors"
	"fmt"
	"sort"

	"github.com/soypat/keycad/config"
	"github.com/soypat/keycad/connect"
	"github.com/soypat/keycad/key"
)

var (
	// ErrUnsupportedSize is returned by catalogs that have no rows for a
	// keyboard size.
	ErrUnsupportedSize = errors.New("keyboard size not supported by catalog")
	// ErrUnknownCatalog is returned by Lookup for unregistered names.
	ErrUnknownCatalog = errors.New("unknown catalog")
)

// Entry is one key of a catalog row.
type Entry struct {
	Archetype key.Archetype
	Hand      key.Hand
	Block     key.Block
}

// Catalog describes a keyboard model.
type Catalog interface {
	// Name identifies the catalog on the command line.
	Name() string
	// Rows returns the keys of every row, front row first.
	Rows(size config.KeyboardSize) ([][]Entry, error)
	// Connections returns the face and corner maps of computed rows.
	Connections(rows [][]*key.Key, size config.KeyboardSize) ([]connect.FaceConnection, []connect.CornerConnection)
}

var catalogs = map[string]Catalog{}

// Register makes c available to Lookup. Registering two catalogs under
// one name panics.
func Register(c Catalog) {
	name := c.Name()
	if _, dup := catalogs[name]; dup {
		panic("layout: catalog registered twice: " + name)
	}
	catalogs[name] = c
}

// Lookup returns the catalog registered under name.
func Lookup(name string) (Catalog, error) {
	c, ok := catalogs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCatalog, name)
	}
	return c, nil
}

// Catalogs returns the registered catalog names in order.
func Catalogs() []string {
	names := make([]string, 0, len(catalogs))
	for name := range catalogs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Section appends archetypes to a row, the first split of them on the
// left hand and the rest on the right.
func Section(row []Entry, block key.Block, split int, archetypes ...key.Archetype) []Entry {
	for i, a := range archetypes {
		hand := key.RightHand
		if i < split {
			hand = key.LeftHand
		}
		row = append(row, Entry{Archetype: a, Hand: hand, Block: block})
	}
	return row
}

// Names returns the archetypes of names.
func Names(names ...string) []key.Archetype {
	out := make([]key.Archetype, len(names))
	for i, n := range names {
		out[i] = key.Lookup(n)
	}
	return out
}
