package domain

import "errors"

var (
	// ErrUnknownActor - операция ссылается на актора, которого нет в реестре.
	// На пути разрешения хода это фатально: значит очередь и реестр разошлись.
	ErrUnknownActor = errors.New("unknown actor")

	// ErrDuplicateActor - попытка повторной регистрации живого актора
	ErrDuplicateActor = errors.New("actor already registered")

	// ErrOccupied - клетка уже занята другим актором
	ErrOccupied = errors.New("position occupied")

	// ErrActionPending - у актора уже есть неразрешенное действие на этот ход
	ErrActionPending = errors.New("action already pending")
)
