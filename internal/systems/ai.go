package systems

import "rogue-server/internal/domain"

// AggroRadius - с какого расстояния NPC замечает противника
const AggroRadius = 10

// RoleFinder отдает роль актора. Реализуется реестром движка.
type RoleFinder interface {
	Role(id domain.ActorID) (domain.Role, error)
}

// ChaseDecider - источник решений для NPC: идти к ближайшему игроку
// или ждать. Решение всегда готово синхронно, в пределах того же шага.
type ChaseDecider struct {
	Map       *domain.GameMap
	Occupancy *domain.OccupancyMap
	Roles     RoleFinder
}

func NewChaseDecider(m *domain.GameMap, occ *domain.OccupancyMap, roles RoleFinder) *ChaseDecider {
	return &ChaseDecider{Map: m, Occupancy: occ, Roles: roles}
}

// NextAction возвращает действие для NPC, чей ход настал
func (c *ChaseDecider) NextAction(actor domain.ActorID) (domain.Action, bool) {
	pos, ok := c.Occupancy.PositionOf(actor)
	if !ok {
		return domain.WaitAction(), true
	}

	target, found := c.nearestPlayer(pos)
	if !found || pos.DistanceSquaredTo(target) > AggroRadius*AggroRadius {
		// Цели нет или слишком далеко: стоим и ждем
		return domain.WaitAction(), true
	}

	if dir, ok := c.stepToward(pos, target); ok {
		return domain.MoveAction(dir), true
	}

	// Зажат со всех сторон
	return domain.WaitAction(), true
}

// nearestPlayer ищет ближайшего актора с ролью Player
func (c *ChaseDecider) nearestPlayer(from domain.Position) (domain.Position, bool) {
	var best domain.Position
	bestDist := -1

	for y := 0; y < c.Map.Height; y++ {
		for x := 0; x < c.Map.Width; x++ {
			p := domain.Position{X: x, Y: y}
			id, ok := c.Occupancy.GetOccupant(p)
			if !ok {
				continue
			}
			role, err := c.Roles.Role(id)
			if err != nil || role != domain.RolePlayer {
				continue
			}
			d := from.DistanceSquaredTo(p)
			if bestDist < 0 || d < bestDist {
				bestDist = d
				best = p
			}
		}
	}

	return best, bestDist >= 0
}

// stepToward выбирает шаг к цели: сначала по оси с большей разницей,
// при блокировке пробуем вторую ось (скольжение вдоль препятствий).
func (c *ChaseDecider) stepToward(from, to domain.Position) (domain.Direction, bool) {
	dx := to.X - from.X
	dy := to.Y - from.Y

	var primary, secondary domain.Direction
	if abs(dx) >= abs(dy) {
		primary = horizontalDir(dx)
		secondary = verticalDir(dy)
	} else {
		primary = verticalDir(dy)
		secondary = horizontalDir(dx)
	}

	for _, dir := range [2]domain.Direction{primary, secondary} {
		if dir == domain.DirNone {
			continue
		}
		if out := CalculateMove(from, dir, c.Map, c.Occupancy); out.Moved {
			return dir, true
		}
	}
	return domain.DirNone, false
}

func horizontalDir(dx int) domain.Direction {
	switch {
	case dx > 0:
		return domain.DirEast
	case dx < 0:
		return domain.DirWest
	default:
		return domain.DirNone
	}
}

func verticalDir(dy int) domain.Direction {
	switch {
	case dy > 0:
		return domain.DirSouth
	case dy < 0:
		return domain.DirNorth
	default:
		return domain.DirNone
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
