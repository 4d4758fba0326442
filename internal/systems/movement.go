package systems

import "rogue-server/internal/domain"

// MoveOutcome - результат вычисления движения
type MoveOutcome struct {
	To        domain.Position
	Moved     bool
	BlockedBy domain.ActorID // Если уперлись в другого актора
	HitWall   bool           // Если уперлись в стену или границу карты
}

// CalculateMove вычисляет исход шага. Не меняет состояние мира!
// Применяет результат только шаг движения движка.
func CalculateMove(from domain.Position, dir domain.Direction, m *domain.GameMap, occ *domain.OccupancyMap) MoveOutcome {
	dx, dy := dir.Delta()
	target := from.Shift(dx, dy)

	res := MoveOutcome{To: target}

	// 1. Границы и стены
	if !m.IsPassable(target) {
		res.HitWall = true
		return res
	}

	// 2. Занятость клетки
	if other, ok := occ.GetOccupant(target); ok {
		res.BlockedBy = other
		return res
	}

	res.Moved = true
	return res
}
