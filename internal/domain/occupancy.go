package domain

import "fmt"

// OccupancyMap - двусторонняя связь "позиция <-> актор".
// Пишет сюда только шаг движения движка; остальные коллабораторы
// (валидация хода, AI) только читают.
type OccupancyMap struct {
	byPos   map[Position]ActorID
	byActor map[ActorID]Position
}

func NewOccupancyMap() *OccupancyMap {
	return &OccupancyMap{
		byPos:   make(map[Position]ActorID),
		byActor: make(map[ActorID]Position),
	}
}

// GetOccupant возвращает актора, стоящего в клетке
func (o *OccupancyMap) GetOccupant(p Position) (ActorID, bool) {
	id, ok := o.byPos[p]
	return id, ok
}

// PositionOf возвращает позицию актора
func (o *OccupancyMap) PositionOf(id ActorID) (Position, bool) {
	p, ok := o.byActor[id]
	return p, ok
}

// Place ставит актора в клетку при спавне
func (o *OccupancyMap) Place(id ActorID, p Position) error {
	if _, ok := o.byActor[id]; ok {
		return fmt.Errorf("place %s: %w", id, ErrDuplicateActor)
	}
	if other, ok := o.byPos[p]; ok {
		return fmt.Errorf("place %s at (%d,%d): taken by %s: %w", id, p.X, p.Y, other, ErrOccupied)
	}
	o.byPos[p] = id
	o.byActor[id] = p
	return nil
}

// Move переставляет актора в новую клетку.
// Старая клетка очищается и новая занимается одной операцией.
func (o *OccupancyMap) Move(id ActorID, to Position) error {
	from, ok := o.byActor[id]
	if !ok {
		return fmt.Errorf("move %s: %w", id, ErrUnknownActor)
	}
	if other, taken := o.byPos[to]; taken && other != id {
		return fmt.Errorf("move %s to (%d,%d): taken by %s: %w", id, to.X, to.Y, other, ErrOccupied)
	}
	delete(o.byPos, from)
	o.byPos[to] = id
	o.byActor[id] = to
	return nil
}

// Remove убирает актора с карты (смерть, уход с уровня)
func (o *OccupancyMap) Remove(id ActorID) error {
	p, ok := o.byActor[id]
	if !ok {
		return fmt.Errorf("remove %s: %w", id, ErrUnknownActor)
	}
	delete(o.byPos, p)
	delete(o.byActor, id)
	return nil
}

// Len возвращает количество размещенных акторов
func (o *OccupancyMap) Len() int {
	return len(o.byActor)
}
