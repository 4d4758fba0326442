package systems

import (
	"math/rand"

	"rogue-server/internal/domain"
)

// FindFreeTile выбирает случайную проходимую и незанятую клетку.
// Возвращает false, если свободных клеток не осталось.
func FindFreeTile(m *domain.GameMap, occ *domain.OccupancyMap, rng *rand.Rand) (domain.Position, bool) {
	var free []domain.Position
	for y := 1; y < m.Height-1; y++ {
		for x := 1; x < m.Width-1; x++ {
			p := domain.Position{X: x, Y: y}
			if !m.IsPassable(p) {
				continue
			}
			if _, taken := occ.GetOccupant(p); taken {
				continue
			}
			free = append(free, p)
		}
	}
	if len(free) == 0 {
		return domain.Position{}, false
	}
	return free[rng.Intn(len(free))], true
}
