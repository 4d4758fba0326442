package engine

import "rogue-server/internal/domain"

// CostPolicy - правила стоимости действий в тиках. Это игровые данные,
// а не структурный инвариант, поэтому делитель ожидания настраивается
// конфигом, а не зашит константой.
type CostPolicy struct {
	// WaitDivisor: Wait стоит speed / WaitDivisor (целочисленно).
	// Ожидание восстанавливает очередь хода быстрее обычного действия.
	WaitDivisor int
}

// DefaultCostPolicy - исторический баланс: ожидание вдвое дешевле шага
func DefaultCostPolicy() CostPolicy {
	return CostPolicy{WaitDivisor: 2}
}

// Cost возвращает стоимость действия для актора с данной скоростью.
// Неизвестные виды действий стоят speed - это документированный
// дефолт, а не ошибка.
func (p CostPolicy) Cost(kind domain.ActionKind, speed int) uint64 {
	if speed < 0 {
		speed = 0
	}
	switch kind {
	case domain.ActionWait:
		div := p.WaitDivisor
		if div < 1 {
			div = 1
		}
		return uint64(speed / div)
	default:
		// Move и все остальные виды
		return uint64(speed)
	}
}
