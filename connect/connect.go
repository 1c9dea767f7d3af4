// Package connect fills the gaps between key slots with lofts or convex
// hulls and attaches the fillers to the keys that own them.
//
// Two maps describe what to fill. A FaceConnection seams one slot face
// of a key to a slot face of its neighbour. A CornerConnection closes a
// ring of vertical slot edges collected from several keys, such as the
// strip between two rows or the wedge next to an ISO Enter.
package connect

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/soypat/keycad"
	"github.com/soypat/keycad/frame"
	"github.com/soypat/keycad/key"
	"gonum.org/v1/gonum/spatial/r3"
)

// orientTol is the largest axis difference at which two key frames are
// treated as sharing an orientation.
const orientTol = 1e-6

// ErrNoKey is returned for connections that address a missing key.
var ErrNoKey = errors.New("connection addresses no key")

// FaceConnection seams face DirA of key (RowA, ColA) to face DirB of key
// (RowB, ColB). The filler is owned by key A on side DirA.
type FaceConnection struct {
	RowA, ColA int
	DirA       frame.Direction
	RowB, ColB int
	DirB       frame.Direction
	// Polyhedron forces a convex hull instead of a loft.
	Polyhedron bool
}

func (c FaceConnection) String() string {
	return fmt.Sprintf("(%d,%d,%v)-(%d,%d,%v)", c.RowA, c.ColA, c.DirA, c.RowB, c.ColB, c.DirB)
}

// Neighbours returns the face connections between every key and its right
// hand neighbour in row, for key pairs (k-1, k) with from <= k < to.
func Neighbours(row, from, to int) []FaceConnection {
	var conns []FaceConnection
	for k := from; k < to; k++ {
		conns = append(conns, FaceConnection{
			RowA: row, ColA: k - 1, DirA: frame.Right,
			RowB: row, ColB: k, DirB: frame.Left,
		})
	}
	return conns
}

// CornerConnection closes the ring of vertical edges Edges into one
// filler owned by key (Row, Col) on side Dir. Edges run from bottom to
// top and must be listed in ring order; the last edge joins the first.
type CornerConnection struct {
	Row, Col   int
	Dir        frame.Direction
	Edges      []keycad.Edge
	Polyhedron bool
}

func (c CornerConnection) String() string {
	return fmt.Sprintf("(%d,%d,%v)x%d", c.Row, c.Col, c.Dir, len(c.Edges))
}

// Ring collects the edges of a corner connection. It switches the
// connection to polyhedron mode as soon as two of the keys it took edges
// from differ in orientation.
type Ring struct {
	edges      []keycad.Edge
	frame      frame.Frame
	hasFrame   bool
	polyhedron bool
}

// Add appends the edges of k to the ring.
func (r *Ring) Add(k *key.Key, edges ...keycad.Edge) {
	f := k.Frame()
	if !r.hasFrame {
		r.frame, r.hasFrame = f, true
	} else if !r.frame.SameOrientation(f, orientTol) {
		r.polyhedron = true
	}
	r.edges = append(r.edges, edges...)
}

// Len returns the number of collected edges.
func (r *Ring) Len() int { return len(r.edges) }

// Connection returns the corner connection over the collected edges
// owned by key (row, col) on side dir.
func (r *Ring) Connection(row, col int, dir frame.Direction) CornerConnection {
	return CornerConnection{
		Row:        row,
		Col:        col,
		Dir:        dir,
		Edges:      append([]keycad.Edge(nil), r.edges...),
		Polyhedron: r.polyhedron,
	}
}

// Stats counts what a Synthesizer built.
type Stats struct {
	Lofts   int
	Hulls   int
	Skipped int
	// Fallbacks counts lofts that failed and were built as hulls.
	Fallbacks int
}

// Synthesizer realizes connection maps against a computed key matrix.
// The zero value is ready to use and logs nothing.
type Synthesizer struct {
	Log zerolog.Logger
	// Polyhedron builds every filler as a convex hull.
	Polyhedron bool
}

// Connect builds and attaches the fillers of faces and then corners.
// Every key in rows must be computed. A filler that can neither be
// lofted nor hulled aborts the run with an error naming the connection.
func (s *Synthesizer) Connect(rows [][]*key.Key, faces []FaceConnection, corners []CornerConnection) (Stats, error) {
	var st Stats
	start := time.Now()
	for _, c := range faces {
		if err := s.connectFaces(rows, c, &st); err != nil {
			return st, err
		}
	}
	s.Log.Info().Int("connections", len(faces)).Dur("elapsed", time.Since(start)).Msg("face connectors done")

	start = time.Now()
	for _, c := range corners {
		if err := s.connectCorner(rows, c, &st); err != nil {
			return st, err
		}
	}
	s.Log.Info().Int("connections", len(corners)).Int("lofts", st.Lofts).Int("hulls", st.Hulls).
		Int("skipped", st.Skipped).Int("fallbacks", st.Fallbacks).Dur("elapsed", time.Since(start)).
		Msg("corner connectors done")
	return st, nil
}

func lookup(rows [][]*key.Key, row, col int) (*key.Key, error) {
	if row < 0 || row >= len(rows) || col < 0 || col >= len(rows[row]) {
		return nil, fmt.Errorf("%w: row %d col %d", ErrNoKey, row, col)
	}
	return rows[row][col], nil
}

func (s *Synthesizer) connectFaces(rows [][]*key.Key, c FaceConnection, st *Stats) error {
	a, err := lookup(rows, c.RowA, c.ColA)
	if err != nil {
		return fmt.Errorf("face connection %v: %w", c, err)
	}
	b, err := lookup(rows, c.RowB, c.ColB)
	if err != nil {
		return fmt.Errorf("face connection %v: %w", c, err)
	}
	if !a.Base.Connected(c.DirA) || !b.Base.Connected(c.DirB) {
		st.Skipped++
		s.Log.Debug().Str("a", a.Name).Str("b", b.Name).Stringer("connection", c).Msg("skip disconnected")
		return nil
	}
	fa, fb := a.SlotFace(c.DirA), b.SlotFace(c.DirB)
	poly := c.Polyhedron || s.Polyhedron || !a.Frame().SameOrientation(b.Frame(), orientTol)
	var filler *keycad.Solid
	if !poly {
		filler, err = keycad.LoftFaces(fa, fb)
		if err == nil {
			st.Lofts++
		} else {
			s.Log.Warn().Err(err).Str("a", a.Name).Str("b", b.Name).Msg("face loft failed, using hull")
			st.Fallbacks++
			poly = true
		}
	}
	if poly {
		pts := make([]r3.Vec, 0, len(fa.V)+len(fb.V))
		pts = append(pts, fa.V...)
		pts = append(pts, fb.V...)
		filler, err = keycad.ConvexHull(pts)
		if err != nil {
			return fmt.Errorf("connecting %s %v to %s %v: %w", a.Name, c.DirA, b.Name, c.DirB, err)
		}
		st.Hulls++
	}
	a.Attach(c.DirA, filler)
	return nil
}

func (s *Synthesizer) connectCorner(rows [][]*key.Key, c CornerConnection, st *Stats) error {
	owner, err := lookup(rows, c.Row, c.Col)
	if err != nil {
		return fmt.Errorf("corner connection %v: %w", c, err)
	}
	filler, lofted, err := s.cornerFiller(c)
	if err != nil {
		return fmt.Errorf("corner connection %v of %s: %w", c, owner.Name, err)
	}
	if lofted {
		st.Lofts++
	} else {
		st.Hulls++
		if !c.Polyhedron && !s.Polyhedron {
			st.Fallbacks++
		}
	}
	owner.Attach(c.Dir, filler)
	return nil
}

// cornerFiller lofts the bottom ring to the top ring, or hulls all edge
// end points in polyhedron mode or when the loft fails.
func (s *Synthesizer) cornerFiller(c CornerConnection) (filler *keycad.Solid, lofted bool, err error) {
	if len(c.Edges) < 2 {
		return nil, false, fmt.Errorf("%w: %d edges", keycad.ErrDegenerate, len(c.Edges))
	}
	if !c.Polyhedron && !s.Polyhedron {
		bottom := make([]r3.Vec, len(c.Edges))
		top := make([]r3.Vec, len(c.Edges))
		for i, e := range c.Edges {
			bottom[i], top[i] = e.A, e.B
		}
		filler, err = keycad.Loft(bottom, top)
		if err == nil {
			return filler, true, nil
		}
		s.Log.Warn().Err(err).Stringer("connection", c).Msg("corner loft failed, using hull")
	}
	pts := make([]r3.Vec, 0, 2*len(c.Edges))
	for _, e := range c.Edges {
		pts = append(pts, e.A, e.B)
	}
	filler, err = keycad.ConvexHull(pts)
	return filler, false, err
}
