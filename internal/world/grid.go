package world

import "math"

// Grid is a uniform cell grid over the world rectangle providing O(1)
// insertion and cell-pruned radius queries for point entities. Items are
// compared by identity; each live item occupies exactly one cell. Items
// stored here are immobile, so there is no re-bucketing path — if a
// mobile entity type is ever indexed, its cell must be updated whenever
// its position changes.
type Grid[T comparable] struct {
	cellSize float64
	cols     int
	rows     int
	cells    [][]T
	pos      map[T]Point
}

// NewGrid creates a grid covering width × height with the given cell size.
func NewGrid[T comparable](width, height, cellSize float64) *Grid[T] {
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1
	return &Grid[T]{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    make([][]T, cols*rows),
		pos:      make(map[T]Point),
	}
}

// Add inserts an item at the given position. Positions outside the world
// rectangle land in the nearest edge cell; the stored position is kept
// exact for distance checks.
func (g *Grid[T]) Add(item T, p Point) {
	idx := g.cellIndex(p.X, p.Y)
	g.cells[idx] = append(g.cells[idx], item)
	g.pos[item] = p
}

// Remove deletes an item by identity. Removing an absent item is a no-op.
func (g *Grid[T]) Remove(item T) {
	p, ok := g.pos[item]
	if !ok {
		return
	}
	delete(g.pos, item)
	idx := g.cellIndex(p.X, p.Y)
	cell := g.cells[idx]
	for i, it := range cell {
		if it == item {
			cell[i] = cell[len(cell)-1]
			g.cells[idx] = cell[:len(cell)-1]
			return
		}
	}
}

// Contains reports whether the item is currently indexed.
func (g *Grid[T]) Contains(item T) bool {
	_, ok := g.pos[item]
	return ok
}

// Len returns the number of indexed items.
func (g *Grid[T]) Len() int {
	return len(g.pos)
}

// ForEachInRange visits every item with SqDist(center, item) strictly
// less than radiusSq. Only the cells intersecting the query circle are
// scanned. The visit function returns false to stop early; visit order
// within the scanned cells is unspecified.
func (g *Grid[T]) ForEachInRange(center Point, radiusSq float64, visit func(item T, p Point) bool) {
	radius := math.Sqrt(radiusSq)
	minCol := g.clampCol(int(math.Floor((center.X - radius) / g.cellSize)))
	maxCol := g.clampCol(int(math.Floor((center.X + radius) / g.cellSize)))
	minRow := g.clampRow(int(math.Floor((center.Y - radius) / g.cellSize)))
	maxRow := g.clampRow(int(math.Floor((center.Y + radius) / g.cellSize)))

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			for _, item := range g.cells[row*g.cols+col] {
				p := g.pos[item]
				if SqDist(center, p) < radiusSq {
					if !visit(item, p) {
						return
					}
				}
			}
		}
	}
}

// ForEach visits every indexed item. Mutating the grid during iteration
// is not allowed; collect items first and remove after.
func (g *Grid[T]) ForEach(visit func(item T, p Point)) {
	for item, p := range g.pos {
		visit(item, p)
	}
}

func (g *Grid[T]) cellIndex(x, y float64) int {
	col := g.clampCol(int(math.Floor(x / g.cellSize)))
	row := g.clampRow(int(math.Floor(y / g.cellSize)))
	return row*g.cols + col
}

func (g *Grid[T]) clampCol(col int) int {
	if col < 0 {
		return 0
	}
	if col >= g.cols {
		return g.cols - 1
	}
	return col
}

func (g *Grid[T]) clampRow(row int) int {
	if row < 0 {
		return 0
	}
	if row >= g.rows {
		return g.rows - 1
	}
	return row
}
