package world

// DefaultViewRange is the sight radius given to new sighted entities
const DefaultViewRange = 8

// fraction is a slope kept as an exact ratio; den is always positive
type fraction struct {
	num, den int
}

func (f fraction) mulInt(n int) fraction {
	return fraction{num: f.num * n, den: f.den}
}

// roundTiesUp computes floor(f + 1/2)
func (f fraction) roundTiesUp() int {
	return floorDiv(2*f.num+f.den, 2*f.den)
}

// roundTiesDown computes ceil(f - 1/2)
func (f fraction) roundTiesDown() int {
	return -floorDiv(-(2*f.num - f.den), 2*f.den)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// quadrant maps (depth, col) offsets in one of the four cardinal wedges onto the map
type quadrant struct {
	cardinal Direction
	ox, oy   int
}

func (q quadrant) transform(depth, col int) (int, int) {
	switch q.cardinal {
	case North:
		return q.ox + col, q.oy - depth
	case South:
		return q.ox + col, q.oy + depth
	case East:
		return q.ox + depth, q.oy + col
	default:
		return q.ox - depth, q.oy + col
	}
}

type scanRow struct {
	depth      int
	startSlope fraction
	endSlope   fraction
}

func (r scanRow) next() scanRow {
	return scanRow{depth: r.depth + 1, startSlope: r.startSlope, endSlope: r.endSlope}
}

// isSymmetric reports whether a floor tile at col sits inside the row's slope
// interval, which keeps the result symmetric between viewer and target
func (r scanRow) isSymmetric(col int) bool {
	return col*r.startSlope.den >= r.depth*r.startSlope.num &&
		col*r.endSlope.den <= r.depth*r.endSlope.num
}

func slope(depth, col int) fraction {
	return fraction{num: 2*col - 1, den: 2 * depth}
}

// ComputeFOV runs symmetric shadowcasting from origin on a single deck and
// returns the visible points, origin included. Tiles beyond radius (Euclidean)
// and off-map tiles are never returned; off-map tiles block sight.
func ComputeFOV(level *Map, origin Position, radius int) []Position {
	if level == nil || !level.InBounds(origin.X, origin.Y) {
		return nil
	}
	seen := make(map[Position]struct{})
	visible := []Position{origin}
	seen[origin] = struct{}{}

	mark := func(x, y int) {
		if !level.InBounds(x, y) {
			return
		}
		dx, dy := x-origin.X, y-origin.Y
		if dx*dx+dy*dy > radius*radius {
			return
		}
		p := Position{X: x, Y: y, Z: origin.Z}
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		visible = append(visible, p)
	}

	for _, cardinal := range []Direction{North, East, South, West} {
		q := quadrant{cardinal: cardinal, ox: origin.X, oy: origin.Y}
		opaque := func(depth, col int) bool {
			x, y := q.transform(depth, col)
			return level.IsOpaque(x, y)
		}
		var scan func(row scanRow)
		scan = func(row scanRow) {
			if row.depth > radius {
				return
			}
			minCol := row.startSlope.mulInt(row.depth).roundTiesUp()
			maxCol := row.endSlope.mulInt(row.depth).roundTiesDown()
			prevKnown, prevWall := false, false
			for col := minCol; col <= maxCol; col++ {
				wall := opaque(row.depth, col)
				if wall || row.isSymmetric(col) {
					mark(q.transform(row.depth, col))
				}
				if prevKnown && prevWall && !wall {
					row.startSlope = slope(row.depth, col)
				}
				if prevKnown && !prevWall && wall {
					nextRow := row.next()
					nextRow.endSlope = slope(row.depth, col)
					scan(nextRow)
				}
				prevKnown, prevWall = true, wall
			}
			if prevKnown && !prevWall {
				scan(row.next())
			}
		}
		scan(scanRow{depth: 1, startSlope: fraction{-1, 1}, endSlope: fraction{1, 1}})
	}
	return visible
}

// HasLineOfSight reports whether target appears in the viewer's shadowcast
func HasLineOfSight(level *Map, from, to Position, radius int) bool {
	if from.Z != to.Z {
		return false
	}
	for _, p := range ComputeFOV(level, from, radius) {
		if p == to {
			return true
		}
	}
	return false
}
