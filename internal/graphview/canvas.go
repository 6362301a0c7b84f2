package graphview

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Box drawing pieces for node rendering.
const (
	boxHorizontal  = '─'
	boxVertical    = '│'
	boxTopLeft     = '┌'
	boxTopRight    = '┐'
	boxBottomLeft  = '└'
	boxBottomRight = '┘'
	edgeDot        = '·'
)

const maxLabelWidth = 18

// Render draws the layout onto a width×height cell grid: edges as dotted
// straight lines between node centers, nodes as labeled boxes on top. This
// is a mini-map, not a precise layout — boxes may overlap and nobody routes
// around anything.
func Render(l Layout, width, height int) string {
	if len(l.Nodes) == 0 {
		return ""
	}
	if width < 20 {
		width = 20
	}
	if height < 6 {
		height = 6
	}

	c := newCanvas(width, height)
	centers := c.project(l.Nodes)

	for _, e := range l.Edges {
		from, okF := centers[e.From]
		to, okT := centers[e.To]
		if okF && okT {
			c.line(from, to)
		}
	}
	for _, n := range l.Nodes {
		c.box(centers[n.Name], n.Name)
	}
	return c.String()
}

type point struct{ x, y int }

type canvas struct {
	w, h  int
	cells [][]rune
}

func newCanvas(w, h int) *canvas {
	cells := make([][]rune, h)
	for i := range cells {
		cells[i] = make([]rune, w)
		for j := range cells[i] {
			cells[i][j] = ' '
		}
	}
	return &canvas{w: w, h: h, cells: cells}
}

// project maps draw coordinates onto the cell grid, with a margin so boxes
// stay inside the frame. Degenerate extents (all nodes on one line) still
// produce valid cells.
func (c *canvas) project(nodes []Node) map[string]point {
	minX, maxX := nodes[0].X, nodes[0].X
	minY, maxY := nodes[0].Y, nodes[0].Y
	for _, n := range nodes[1:] {
		minX, maxX = min(minX, n.X), max(maxX, n.X)
		minY, maxY = min(minY, n.Y), max(maxY, n.Y)
	}

	marginX, marginY := maxLabelWidth/2+2, 2
	spanX := float64(c.w - 2*marginX - 1)
	spanY := float64(c.h - 2*marginY - 1)
	if spanX < 1 {
		spanX = 1
	}
	if spanY < 1 {
		spanY = 1
	}

	centers := make(map[string]point, len(nodes))
	for _, n := range nodes {
		fx, fy := 0.5, 0.5
		if maxX > minX {
			fx = (n.X - minX) / (maxX - minX)
		}
		if maxY > minY {
			fy = (n.Y - minY) / (maxY - minY)
		}
		centers[n.Name] = point{
			x: marginX + int(fx*spanX+0.5),
			y: marginY + int(fy*spanY+0.5),
		}
	}
	return centers
}

func (c *canvas) set(x, y int, r rune) {
	if x < 0 || x >= c.w || y < 0 || y >= c.h {
		return
	}
	c.cells[y][x] = r
}

// line draws a dotted straight segment between two cells (Bresenham).
func (c *canvas) line(a, b point) {
	dx, dy := abs(b.x-a.x), -abs(b.y-a.y)
	sx, sy := 1, 1
	if a.x > b.x {
		sx = -1
	}
	if a.y > b.y {
		sy = -1
	}
	err := dx + dy
	x, y := a.x, a.y
	for {
		c.set(x, y, edgeDot)
		if x == b.x && y == b.y {
			return
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

// box draws a bordered label centered on p, overwriting whatever is under
// it. Labels wider than maxLabelWidth are truncated by display width.
func (c *canvas) box(p point, label string) {
	label = runewidth.Truncate(label, maxLabelWidth, "…")
	inner := runewidth.StringWidth(label)
	left := p.x - (inner+2)/2
	top := p.y - 1

	c.set(left, top, boxTopLeft)
	c.set(left, top+1, boxVertical)
	c.set(left, top+2, boxBottomLeft)
	for i := 0; i < inner; i++ {
		c.set(left+1+i, top, boxHorizontal)
		c.set(left+1+i, top+2, boxHorizontal)
	}
	col := left + 1
	for _, r := range label {
		c.set(col, top+1, r)
		col += runewidth.RuneWidth(r)
	}
	c.set(left+inner+1, top, boxTopRight)
	c.set(left+inner+1, top+1, boxVertical)
	c.set(left+inner+1, top+2, boxBottomRight)
}

func (c *canvas) String() string {
	lines := make([]string, c.h)
	for i, row := range c.cells {
		lines[i] = strings.TrimRight(string(row), " ")
	}
	return strings.Join(lines, "\n")
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
