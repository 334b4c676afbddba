package particles

import (
	"math"
)

// ConnectionLineWidth is the stroke width of every connection line.
const ConnectionLineWidth = 1.0

type gridKey struct {
	x, y int
}

// ConnectionRenderer draws the fading lines between close particles and from
// particles to the anchor circle. It keeps a spatial grid between frames so
// the pair search does not allocate once warmed up.
type ConnectionRenderer struct {
	// Map gridKey -> indices of the particles in that cell
	grid     map[gridKey][]int
	cellSize float64
}

// NewConnectionRenderer creates a renderer with an empty grid.
func NewConnectionRenderer() *ConnectionRenderer {
	return &ConnectionRenderer{grid: make(map[gridKey][]int)}
}

// ConnectionOpacity fades base linearly from full at distance 0 to nothing at
// threshold and beyond.
func ConnectionOpacity(base, distance, threshold float64) float64 {
	if threshold <= 0 || distance >= threshold {
		return 0
	}
	return base * (1 - distance/threshold)
}

// Draw strokes a line for every pair of particles closer than threshold, then
// a line from every particle just outside the anchor circle to the nearest
// point of its circumference.
func (r *ConnectionRenderer) Draw(s Surface, ps []*Particle, anchor *Circle, threshold float64, base Color) {
	if threshold <= 0 {
		return
	}
	r.EachPair(ps, threshold, func(i, j int, dist float64) {
		a, b := ps[i].Pos, ps[j].Pos
		s.StrokeLine(a.X, a.Y, b.X, b.Y, ConnectionLineWidth, base.WithAlpha(ConnectionOpacity(base.A, dist, threshold)))
	})

	if anchor == nil {
		return
	}
	for _, p := range ps {
		dist := p.Pos.DistanceTo(anchor.Center)
		fromEdge := math.Abs(dist - anchor.Radius)
		if fromEdge >= threshold || dist <= anchor.Radius {
			continue
		}
		edge := anchor.NearestEdgePoint(p.Pos)
		s.StrokeLine(p.Pos.X, p.Pos.Y, edge.X, edge.Y, ConnectionLineWidth, base.WithAlpha(ConnectionOpacity(base.A, fromEdge, threshold)))
	}
}

// EachPair calls visit once for every unordered pair (i < j) of particles whose
// distance is below threshold. The grid cell size equals threshold, so every
// such pair sits in the same or an adjacent cell.
func (r *ConnectionRenderer) EachPair(ps []*Particle, threshold float64, visit func(i, j int, dist float64)) {
	r.rebuildGrid(ps, threshold)
	thresholdSq := threshold * threshold

	for i, p := range ps {
		gx, gy := r.cellOf(p.Pos.X, p.Pos.Y)
		for cx := gx - 1; cx <= gx+1; cx++ {
			for cy := gy - 1; cy <= gy+1; cy++ {
				for _, j := range r.grid[gridKey{x: cx, y: cy}] {
					if j <= i {
						continue
					}
					distSq := p.Pos.DistanceSquaredTo(ps[j].Pos)
					if distSq < thresholdSq {
						visit(i, j, math.Sqrt(distSq))
					}
				}
			}
		}
	}
}

func (r *ConnectionRenderer) rebuildGrid(ps []*Particle, cellSize float64) {
	if cellSize != r.cellSize {
		clear(r.grid)
		r.cellSize = cellSize
	}
	// keep the backing arrays, only reset lengths
	for k := range r.grid {
		r.grid[k] = r.grid[k][:0]
	}
	for i, p := range ps {
		gx, gy := r.cellOf(p.Pos.X, p.Pos.Y)
		key := gridKey{x: gx, y: gy}
		r.grid[key] = append(r.grid[key], i)
	}
}

func (r *ConnectionRenderer) cellOf(x, y float64) (int, int) {
	return int(math.Floor(x / r.cellSize)), int(math.Floor(y / r.cellSize))
}
