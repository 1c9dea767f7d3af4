package layout

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/soypat/keycad/cache"
	"github.com/soypat/keycad/config"
	"github.com/soypat/keycad/connect"
	"github.com/soypat/keycad/frame"
	"github.com/soypat/keycad/key"
)

// Matrix is a built keyboard.
type Matrix struct {
	Catalog string
	Size    config.KeyboardSize
	// Rows holds the keys, front row first.
	Rows    [][]*key.Key
	Faces   []connect.FaceConnection
	Corners []connect.CornerConnection
	Stats   connect.Stats
}

// Len returns the number of keys in m.
func (m *Matrix) Len() (n int) {
	for _, row := range m.Rows {
		n += len(row)
	}
	return n
}

// Builder runs the layout pipeline: size every key, apply offsets, place
// and compute the keys row by row, then connect them.
type Builder struct {
	Config   *config.Config
	Catalog  Catalog
	Strategy Strategy
	// Cache shares shapes between keys. A nil Cache is created from the
	// configuration.
	Cache *cache.ObjectCache
	Log   zerolog.Logger
}

// Build returns the placed, computed and connected matrix.
func (b *Builder) Build() (*Matrix, error) {
	m, err := b.Place()
	if err != nil {
		return nil, err
	}
	if err := b.Connect(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Place returns the matrix with every key computed and no connectors.
func (b *Builder) Place() (*Matrix, error) {
	if b.Config == nil || b.Catalog == nil {
		return nil, errors.New("layout: builder needs a configuration and a catalog")
	}
	cfg := b.Config
	if b.Cache == nil {
		b.Cache = cache.New(!cfg.Debug.DisableObjectCache)
	}
	size := cfg.Layout.Size
	start := time.Now()
	entries, err := b.Catalog.Rows(size)
	if err != nil {
		return nil, err
	}
	m := &Matrix{Catalog: b.Catalog.Name(), Size: size, Rows: make([][]*key.Key, len(entries))}
	for i, row := range entries {
		m.Rows[i] = make([]*key.Key, len(row))
		for j, e := range row {
			k := key.New(e.Archetype, cfg)
			k.Hand, k.Block = e.Hand, e.Block
			k.Update()
			m.Rows[i][j] = k
		}
	}
	b.Log.Info().Str("catalog", m.Catalog).Stringer("size", size).Int("rows", len(m.Rows)).
		Int("keys", m.Len()).Dur("elapsed", time.Since(start)).Msg("key matrix built")

	var offs []config.Offset
	if b.Strategy.Offsets != nil {
		offs = b.Strategy.Offsets(entries)
	}
	offs = append(offs, cfg.Layout.Offsets...)
	if err := applyOffsets(m.Rows, offs); err != nil {
		return nil, err
	}
	if len(offs) > 0 {
		b.Log.Info().Str("strategy", b.Strategy.Name).Int("offsets", len(offs)).Msg("offsets applied")
	}

	start = time.Now()
	for i, row := range m.Rows {
		for j, k := range row {
			switch {
			case j > 0:
				k.PlaceRelativeTo(row[j-1], frame.Right)
			case i > 0:
				k.PlaceRelativeTo(m.Rows[i-1][0], frame.Top)
				k.AlignTo(0, frame.Left)
			default:
				k.AlignTo(0, frame.Left)
			}
			if err := k.Compute(b.Cache, cfg.Debug); err != nil {
				return nil, fmt.Errorf("computing row %d: %w", i, err)
			}
			b.logKey(i, j, k)
		}
	}
	hits, misses := b.Cache.Stats()
	b.Log.Info().Int("cached", b.Cache.Len()).Int("hits", hits).Int("misses", misses).
		Dur("elapsed", time.Since(start)).Msg("keys placed and computed")
	return m, nil
}

// Connect seams the keys of m with the catalog's connection maps.
func (b *Builder) Connect(m *Matrix) error {
	m.Faces, m.Corners = b.Catalog.Connections(m.Rows, m.Size)
	syn := connect.Synthesizer{Log: b.Log}
	st, err := syn.Connect(m.Rows, m.Faces, m.Corners)
	m.Stats = st
	if err != nil {
		return fmt.Errorf("connecting %s %v: %w", m.Catalog, m.Size, err)
	}
	return nil
}

func (b *Builder) logKey(row, col int, k *key.Key) {
	p := k.Base.Position
	b.Log.Debug().
		Int("row", row).Int("col", col).Str("key", k.Name).
		Float64("x", p.X).Float64("y", p.Y).Float64("z", p.Z).
		Float64("unit", k.Base.UnitWidth).
		Float64("clr_top", k.Base.ClearanceTop).Float64("clr_right", k.Base.ClearanceRight).
		Float64("clr_bottom", k.Base.ClearanceBottom).Float64("clr_left", k.Base.ClearanceLeft).
		Float64("cap_w", k.Cap.Width).Float64("cap_d", k.Cap.Depth).Float64("cap_t", k.Cap.Thickness).
		Bool("visible", k.Base.Visible).
		Msg("key placed")
}
