package layout

import (
	"fmt"

	"github.com/soypat/keycad/config"
	"github.com/soypat/keycad/connect"
	"github.com/soypat/keycad/frame"
	"github.com/soypat/keycad/key"
)

func init() { Register(ISO{}) }

// ISO is the German ISO layout with a two row Enter. It supports the
// full size board and the tenkeyless board without numpad.
type ISO struct{}

func (ISO) Name() string { return "iso" }

// Row indices of the ISO catalog, front row first.
const (
	rowSpace = iota
	rowShift
	rowHome
	rowTop
	rowNumber
	rowFunction
)

// Column of the ISO Enter in the top letter row and of the spacer below
// it in the home row.
const (
	colEnter  = 13
	colSpacer = 13
)

func (ISO) Rows(size config.KeyboardSize) ([][]Entry, error) {
	if !size.AtLeast(config.S80) {
		return nil, fmt.Errorf("%w: iso %v", ErrUnsupportedSize, size)
	}
	numpad := size.AtLeast(config.S100)
	rows := make([][]Entry, 6)
	main := func(row int, split int, names ...string) {
		rows[row] = Section(rows[row], key.MainBlock, split, Names(names...)...)
	}
	arrow := func(row int, names ...string) {
		rows[row] = Section(rows[row], key.ArrowBlock, 0, Names(names...)...)
	}
	pad := func(row int, names ...string) {
		if numpad {
			rows[row] = Section(rows[row], key.NumpadBlock, 0, Names(names...)...)
		}
	}

	main(rowSpace, 4, "LCTR", "LOS", "LALT", "SPC", "RALT", "FN", "MENU", "RCTL")
	arrow(rowSpace, "LAR", "DAR", "RAR")
	pad(rowSpace, "NINS", "NDEL", "sc100")

	main(rowShift, 7, "LSFT", "|", "y", "x", "c", "v", "b", "n", "m", ",", ".", "-", "RSFT")
	arrow(rowShift, "sa100", "UAR", "sf100")
	pad(rowShift, "sn100", "2", "3", "NENT")

	main(rowHome, 6, "CSFT", "a", "s", "d", "f", "g", "h", "j", "k", "l", "ö", "ä", "#")
	// The spacer below the Enter step only seams to the key on its left.
	rows[rowHome] = Section(rows[rowHome], key.MainBlock, 0, key.Lookup("s125").Connect(key.SideLeft))
	arrow(rowHome, "sa100", "sf100", "sf100")
	pad(rowHome, "sn100", "5", "6", "sc100")

	main(rowTop, 6, "TAB", "q", "w", "e", "r", "t", "z", "u", "i", "o", "p", "ü", "+", "ENT")
	arrow(rowTop, "DEL", "END", "PDN")
	pad(rowTop, "sn100", "8", "9", "NPLU")

	main(rowNumber, 7, "^", "1", "2", "3", "4", "5", "6", "7", "8", "9", "0", "ß", "´", "BSP")
	arrow(rowNumber, "INS", "HOM", "PUP")
	pad(rowNumber, "sn100", "/", "*", "-")

	main(rowFunction, 5, "ESC", "F1", "F2", "F3", "F4", "F5", "F6", "F7", "F8", "F9", "F10", "F11", "F12")
	arrow(rowFunction, "PRT", "SRL", "PAU")
	pad(rowFunction, "sfn100", "sf100", "sf100", "sf100")
	return rows, nil
}

func (ISO) Connections(rows [][]*key.Key, size config.KeyboardSize) ([]connect.FaceConnection, []connect.CornerConnection) {
	numpad := size.AtLeast(config.S100)
	// end excludes the last key of a row when the numpad puts a two unit
	// key or a spacer there.
	end := func(row int) int {
		if numpad {
			return len(rows[row]) - 1
		}
		return len(rows[row])
	}

	var faces []connect.FaceConnection
	faces = append(faces, connect.Neighbours(rowSpace, 1, end(rowSpace))...)
	faces = append(faces, connect.Neighbours(rowShift, 1, end(rowShift))...)
	for _, r := range []int{rowHome, rowTop} {
		faces = append(faces, connect.Neighbours(r, 1, colEnter+1)...)
		faces = append(faces, connect.Neighbours(r, colEnter+2, end(r))...)
	}
	faces = append(faces, connect.Neighbours(rowNumber, 1, len(rows[rowNumber]))...)
	faces = append(faces, connect.Neighbours(rowFunction, 1, len(rows[rowFunction]))...)

	var corners []connect.CornerConnection
	corners = append(corners,
		strip(rows, rowSpace, span(0, len(rows[rowSpace])), span(0, end(rowShift)), false).
			Connection(rowShift, 0, frame.Front),
		// The home row spacers are seamed over so the strip has no notch.
		strip(rows, rowShift, span(0, len(rows[rowShift])), span(0, len(rows[rowHome])), true).
			Connection(rowHome, 0, frame.Front),
		strip(rows, rowHome, span(0, colEnter), span(0, colEnter), false).
			Connection(rowTop, 0, frame.Front),
		strip(rows, rowHome, span(colEnter+1, end(rowHome)), span(colEnter+1, end(rowTop)), false).
			Connection(rowTop, colEnter+1, frame.Front),
		strip(rows, rowTop, span(0, len(rows[rowTop])), span(0, len(rows[rowNumber])), false).
			Connection(rowNumber, 0, frame.Front),
		strip(rows, rowNumber, span(0, len(rows[rowNumber])), span(0, len(rows[rowFunction])), false).
			Connection(rowFunction, 0, frame.Front),
	)
	corners = append(corners, enterWedge(rows), enterRight(rows))
	if numpad {
		corners = append(corners,
			tallRight(rows, rowHome, rowTop).Connection(rowTop, len(rows[rowTop])-2, frame.Right),
			tallRight(rows, rowSpace, rowShift).Connection(rowShift, len(rows[rowShift])-2, frame.Right),
		)
	}
	return faces, corners
}

// span returns the column indices from..to-1.
func span(from, to int) []int {
	var cols []int
	for c := from; c < to; c++ {
		cols = append(cols, c)
	}
	return cols
}

// strip collects the ring bridging the row in front (lower) and the row
// behind it (upper): the back edges of lower from left to right, then
// the front edges of upper from right to left. Invisible keys take part
// only when withHidden is set.
func strip(rows [][]*key.Key, lower int, lowerCols, upperCols []int, withHidden bool) *connect.Ring {
	var r connect.Ring
	for _, c := range lowerCols {
		k := rows[lower][c]
		if k.Base.Visible || withHidden {
			r.Add(k, k.SlotCornerEdge(frame.Left, frame.Back), k.SlotCornerEdge(frame.Right, frame.Back))
		}
	}
	upper := lower + 1
	for i := len(upperCols) - 1; i >= 0; i-- {
		k := rows[upper][upperCols[i]]
		if k.Base.Visible || withHidden {
			r.Add(k, k.SlotCornerEdge(frame.Right, frame.Front), k.SlotCornerEdge(frame.Left, frame.Front))
		}
	}
	return &r
}

// enterWedge fills the notch left of the Enter step, between the Enter,
// the key left of it and the home row keys in front.
func enterWedge(rows [][]*key.Key) connect.CornerConnection {
	enter := rows[rowTop][colEnter]
	left := rows[rowTop][colEnter-1]
	spacer := rows[rowHome][colSpacer]
	homeLeft := rows[rowHome][colSpacer-1]

	var r connect.Ring
	outer, inner := enter.SlotStepEdges()
	r.Add(enter, outer, inner)
	r.Add(spacer, spacer.SlotCornerEdge(frame.Left, frame.Back))
	r.Add(homeLeft, homeLeft.SlotCornerEdge(frame.Right, frame.Back))
	r.Add(left, left.SlotCornerEdge(frame.Right, frame.Front))
	return r.Connection(rowTop, colEnter-1, frame.Front)
}

// enterRight fills the gap between the Enter and the navigation keys on
// both rows it spans.
func enterRight(rows [][]*key.Key) connect.CornerConnection {
	enter := rows[rowTop][colEnter]
	topRight := rows[rowTop][colEnter+1]
	homeRight := rows[rowHome][colSpacer+1]

	var r connect.Ring
	r.Add(enter, enter.SlotCornerEdge(frame.Right, frame.Front), enter.SlotCornerEdge(frame.Right, frame.Back))
	r.Add(topRight, topRight.SlotCornerEdge(frame.Left, frame.Back), topRight.SlotCornerEdge(frame.Left, frame.Front))
	r.Add(homeRight, homeRight.SlotCornerEdge(frame.Left, frame.Back), homeRight.SlotCornerEdge(frame.Left, frame.Front))
	return r.Connection(rowTop, colEnter, frame.Right)
}

// tallRight fills the gap left of a two row key at the end of row upper,
// hanging down into row lower.
func tallRight(rows [][]*key.Key, lower, upper int) *connect.Ring {
	tall := rows[upper][len(rows[upper])-1]
	topLeft := rows[upper][len(rows[upper])-2]
	bottomLeft := rows[lower][len(rows[lower])-2]

	var r connect.Ring
	r.Add(topLeft, topLeft.SlotCornerEdge(frame.Right, frame.Back), topLeft.SlotCornerEdge(frame.Right, frame.Front))
	r.Add(bottomLeft, bottomLeft.SlotCornerEdge(frame.Right, frame.Back), bottomLeft.SlotCornerEdge(frame.Right, frame.Front))
	r.Add(tall, tall.SlotCornerEdge(frame.Left, frame.Front), tall.SlotCornerEdge(frame.Left, frame.Back))
	return &r
}
