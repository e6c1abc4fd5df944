package world

// Line returns the Bresenham line from a to b inclusive, on a's deck
func Line(a, b Position) []Position {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy

	points := make([]Position, 0, max(dx, -dy)+1)
	x, y := a.X, a.Y
	for {
		points = append(points, Position{X: x, Y: y, Z: a.Z})
		if x == b.X && y == b.Y {
			return points
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}
