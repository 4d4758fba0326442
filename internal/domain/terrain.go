package domain

// TerrainType - тип тайла
type TerrainType uint8

const (
	TerrainFloor TerrainType = iota
	TerrainWall
)

// GameMap - прямоугольная сетка тайлов. Плоский слайс вместо [][]Tile,
// индекс: Y * Width + X.
type GameMap struct {
	Width  int
	Height int

	tiles []TerrainType
}

// NewBorderedMap создает карту: пол внутри, стены по периметру
func NewBorderedMap(width, height int) *GameMap {
	m := &GameMap{
		Width:  width,
		Height: height,
		tiles:  make([]TerrainType, width*height),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x == 0 || y == 0 || x == width-1 || y == height-1 {
				m.tiles[y*width+x] = TerrainWall
			}
		}
	}
	return m
}

func (m *GameMap) InBounds(p Position) bool {
	return p.X >= 0 && p.X < m.Width && p.Y >= 0 && p.Y < m.Height
}

// TerrainAt возвращает тип тайла. За границами карты - стена.
func (m *GameMap) TerrainAt(p Position) TerrainType {
	if !m.InBounds(p) {
		return TerrainWall
	}
	return m.tiles[p.Y*m.Width+p.X]
}

func (m *GameMap) SetTerrain(p Position, t TerrainType) {
	if m.InBounds(p) {
		m.tiles[p.Y*m.Width+p.X] = t
	}
}

// IsPassable - можно ли встать на клетку (без учета занятости акторами)
func (m *GameMap) IsPassable(p Position) bool {
	return m.InBounds(p) && m.TerrainAt(p) != TerrainWall
}
