package layout

import (
	"fmt"
	"sort"

	"github.com/soypat/keycad/config"
	"github.com/soypat/keycad/key"
	"gonum.org/v1/gonum/spatial/r3"
)

// Strategy produces position and rotation deltas for the keys of a
// matrix before placement.
type Strategy struct {
	Name        string
	Description string
	// Offsets returns the deltas for rows. A nil func applies none.
	Offsets func(rows [][]Entry) []config.Offset
}

var strategies = map[string]Strategy{
	"planar": {
		Name:        "planar",
		Description: "every key on the base plane",
	},
	"sloped": {
		Name:        "sloped",
		Description: "number and function rows lifted and tilted toward the typist",
		Offsets:     sloped,
	},
}

// LookupStrategy returns the strategy named name.
func LookupStrategy(name string) (Strategy, error) {
	s, ok := strategies[name]
	if !ok {
		return Strategy{}, fmt.Errorf("%w: unknown offset strategy %q", config.ErrInvalid, name)
	}
	return s, nil
}

// Strategies returns the names of all strategies in order.
func Strategies() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sloped(rows [][]Entry) []config.Offset {
	var offs []config.Offset
	n := len(rows)
	if n >= 2 {
		offs = append(offs, config.Offset{Row: n - 2, Col: -1, Position: r3.Vec{Z: 1.5}, Rotation: r3.Vec{X: 6}})
	}
	if n >= 1 {
		offs = append(offs, config.Offset{Row: n - 1, Col: -1, Position: r3.Vec{Z: 4}, Rotation: r3.Vec{X: 12}})
	}
	return offs
}

// applyOffsets adds every offset to the keys it addresses. Col -1
// addresses a whole row.
func applyOffsets(keys [][]*key.Key, offs []config.Offset) error {
	for i, o := range offs {
		if o.Row < 0 || o.Row >= len(keys) {
			return fmt.Errorf("%w: offset %d addresses row %d of %d", config.ErrInvalid, i, o.Row, len(keys))
		}
		row := keys[o.Row]
		if o.Col == -1 {
			for _, k := range row {
				k.ApplyOffset(o.Position, o.Rotation)
			}
			continue
		}
		if o.Col < 0 || o.Col >= len(row) {
			return fmt.Errorf("%w: offset %d addresses col %d of %d in row %d", config.ErrInvalid, i, o.Col, len(row), o.Row)
		}
		row[o.Col].ApplyOffset(o.Position, o.Rotation)
	}
	return nil
}
