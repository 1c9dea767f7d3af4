package connect

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/soypat/keycad/cache"
	"github.com/soypat/keycad/config"
	"github.com/soypat/keycad/frame"
	"github.com/soypat/keycad/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// grid places rows of 1u keys named by names, row 0 in front, applying
// rot to the key at (rotRow, rotCol) when rot is non zero.
func grid(t *testing.T, names [][]string, rotRow, rotCol int, rot r3.Vec) [][]*key.Key {
	t.Helper()
	cfg := config.Default()
	c := cache.New(true)
	var rows [][]*key.Key
	for i, row := range names {
		var keys []*key.Key
		for j, name := range row {
			k := key.New(key.Lookup(name), &cfg)
			k.Update()
			switch {
			case j > 0:
				k.PlaceRelativeTo(keys[j-1], frame.Right)
			case i > 0:
				k.PlaceRelativeTo(rows[i-1][0], frame.Top)
				k.AlignTo(0, frame.Left)
			default:
				k.AlignTo(0, frame.Left)
			}
			if i == rotRow && j == rotCol && rot != (r3.Vec{}) {
				k.ApplyOffset(r3.Vec{Z: 1}, rot)
			}
			require.NoError(t, k.Compute(c, cfg.Debug))
			keys = append(keys, k)
		}
		rows = append(rows, keys)
	}
	return rows
}

func TestPlanarFaceLoft(t *testing.T) {
	rows := grid(t, [][]string{{"a", "b", "c"}}, -1, -1, r3.Vec{})
	s := Synthesizer{Log: zerolog.Nop()}
	st, err := s.Connect(rows, Neighbours(0, 1, 3), nil)
	require.NoError(t, err)
	assert.Equal(t, Stats{Lofts: 2}, st)

	for _, k := range rows[0][:2] {
		conn := k.Connectors.Get(frame.Right)
		require.NotNil(t, conn, k.Name)
		assert.True(t, conn.Closed(), k.Name)
		// 2mm gap between 17mm slots, 4mm thick.
		assert.InDelta(t, 2*17*4, conn.Volume(), 1e-6, k.Name)
		assert.Equal(t, key.Connected, k.State())
	}
	assert.Nil(t, rows[0][2].Connectors.Get(frame.Right))
	assert.Equal(t, key.Computed, rows[0][2].State())
}

func TestRotatedNeighbourUsesHull(t *testing.T) {
	rows := grid(t, [][]string{{"a", "b"}}, 0, 1, r3.Vec{Y: 8})
	s := Synthesizer{Log: zerolog.Nop()}
	st, err := s.Connect(rows, Neighbours(0, 1, 2), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Hulls)
	assert.Zero(t, st.Lofts)
	conn := rows[0][0].Connectors.Get(frame.Right)
	require.NotNil(t, conn)
	assert.True(t, conn.Closed())
	assert.Greater(t, conn.Volume(), 0.0)
}

func TestDisconnectedSkipped(t *testing.T) {
	rows := grid(t, [][]string{{"a", "s100", "b"}}, -1, -1, r3.Vec{})
	s := Synthesizer{Log: zerolog.Nop()}
	st, err := s.Connect(rows, Neighbours(0, 1, 3), nil)
	require.NoError(t, err)
	assert.Equal(t, Stats{Skipped: 2}, st)
	assert.Zero(t, rows[0][0].Connectors.Len())
	assert.Zero(t, rows[0][1].Connectors.Len())
}

func TestCornerStrip(t *testing.T) {
	rows := grid(t, [][]string{{"a", "b"}, {"q", "w"}}, -1, -1, r3.Vec{})
	var ring Ring
	for _, k := range rows[0] {
		ring.Add(k, k.SlotCornerEdge(frame.Left, frame.Back), k.SlotCornerEdge(frame.Right, frame.Back))
	}
	for i := len(rows[1]) - 1; i >= 0; i-- {
		k := rows[1][i]
		ring.Add(k, k.SlotCornerEdge(frame.Right, frame.Front), k.SlotCornerEdge(frame.Left, frame.Front))
	}
	require.Equal(t, 8, ring.Len())
	strip := ring.Connection(1, 0, frame.Front)
	assert.False(t, strip.Polyhedron)

	s := Synthesizer{Log: zerolog.Nop()}
	st, err := s.Connect(rows, nil, []CornerConnection{strip})
	require.NoError(t, err)
	assert.Equal(t, Stats{Lofts: 1}, st)
	conn := rows[1][0].Connectors.Get(frame.Front)
	require.NotNil(t, conn)
	assert.True(t, conn.Closed())
	// Strip spans both slots and the gap between them, 2mm deep.
	assert.InDelta(t, 36*2*4, conn.Volume(), 1e-6)

	// Hull mode spans the same convex region here.
	hull := strip
	hull.Polyhedron = true
	rows = grid(t, [][]string{{"a", "b"}, {"q", "w"}}, -1, -1, r3.Vec{})
	st, err = s.Connect(rows, nil, []CornerConnection{hull})
	require.NoError(t, err)
	assert.Equal(t, Stats{Hulls: 1}, st)
	assert.InDelta(t, 36*2*4, rows[1][0].Connectors.Get(frame.Front).Volume(), 1e-6)
}

func TestRingPolyhedronOnRotation(t *testing.T) {
	rows := grid(t, [][]string{{"a", "b"}, {"q", "w"}}, 1, 1, r3.Vec{X: 5})
	var ring Ring
	ring.Add(rows[0][1], rows[0][1].SlotCornerEdge(frame.Right, frame.Back))
	assert.False(t, ring.Connection(1, 0, frame.Front).Polyhedron)
	ring.Add(rows[1][1], rows[1][1].SlotCornerEdge(frame.Right, frame.Front))
	assert.True(t, ring.Connection(1, 0, frame.Front).Polyhedron)
}

func TestBadConnection(t *testing.T) {
	rows := grid(t, [][]string{{"a"}}, -1, -1, r3.Vec{})
	s := Synthesizer{Log: zerolog.Nop()}
	_, err := s.Connect(rows, Neighbours(0, 1, 2), nil)
	assert.ErrorIs(t, err, ErrNoKey)

	_, err = s.Connect(rows, nil, []CornerConnection{{Row: 0, Col: 0, Dir: frame.Front}})
	assert.Error(t, err)
}
