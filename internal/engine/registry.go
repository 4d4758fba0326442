package engine

import (
	"fmt"

	"rogue-server/internal/domain"
	"rogue-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// actorSlot - одна ячейка арены. После Deregister слот не удаляется,
// а помечается мертвым и его поколение растет: устаревшие ActorID
// перестают резолвиться вместо того, чтобы указать на нового жильца.
type actorSlot struct {
	generation uint32
	live       bool

	name  string
	role  domain.Role
	speed int

	nextTurnTime    uint64
	waitingForInput bool
	pending         *domain.Action
}

// ActorRegistry - авторитетное хранилище тайминга акторов (speed,
// next_turn_time, гейт ввода, отложенное действие) и глобальных часов.
type ActorRegistry struct {
	slots []actorSlot
	free  []uint64 // индексы мертвых слотов для переиспользования

	clock uint64 // глобальное время симуляции (тики)
}

func NewActorRegistry() *ActorRegistry {
	return &ActorRegistry{}
}

// Register создает запись и возвращает свежий ActorID.
// Повторная регистрация того же актора невозможна по построению:
// ID выдает только реестр, и каждый вызов дает новый.
func (r *ActorRegistry) Register(name string, role domain.Role, speed int, at uint64) domain.ActorID {
	var idx uint64
	if n := len(r.free); n > 0 {
		idx = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		r.slots = append(r.slots, actorSlot{})
		idx = uint64(len(r.slots) - 1)
	}

	slot := &r.slots[idx]
	slot.generation++ // у живого слота поколение всегда >= 1
	slot.live = true
	slot.name = name
	slot.role = role
	slot.speed = speed
	slot.nextTurnTime = at
	slot.waitingForInput = false
	slot.pending = nil

	id := domain.PackActorID(slot.generation, idx)

	logger.Log.WithFields(logrus.Fields{
		"actor": id,
		"name":  name,
		"role":  role,
		"speed": speed,
	}).Debug("Actor registered")

	return id
}

// Deregister удаляет запись. Удаление неизвестного актора - ошибка,
// а не no-op: это всегда баг вызывающей стороны.
func (r *ActorRegistry) Deregister(id domain.ActorID) error {
	slot, err := r.lookup(id)
	if err != nil {
		return fmt.Errorf("deregister: %w", err)
	}
	slot.live = false
	slot.generation++
	slot.pending = nil
	slot.waitingForInput = false
	r.free = append(r.free, id.Index())
	return nil
}

// lookup возвращает слот живого актора или ErrUnknownActor
func (r *ActorRegistry) lookup(id domain.ActorID) (*actorSlot, error) {
	idx := id.Index()
	if idx >= uint64(len(r.slots)) {
		return nil, fmt.Errorf("%s: %w", id, domain.ErrUnknownActor)
	}
	slot := &r.slots[idx]
	if !slot.live || slot.generation != id.Generation() {
		return nil, fmt.Errorf("%s: %w", id, domain.ErrUnknownActor)
	}
	return slot, nil
}

// Contains сообщает, жив ли актор
func (r *ActorRegistry) Contains(id domain.ActorID) bool {
	_, err := r.lookup(id)
	return err == nil
}

// CurrentTime - глобальные часы симуляции (только чтение для коллабораторов)
func (r *ActorRegistry) CurrentTime() uint64 {
	return r.clock
}

// AdvanceClock двигает часы вперед. Назад время не ходит.
func (r *ActorRegistry) AdvanceClock(t uint64) {
	if t > r.clock {
		r.clock = t
	}
}

func (r *ActorRegistry) Name(id domain.ActorID) (string, error) {
	slot, err := r.lookup(id)
	if err != nil {
		return "", err
	}
	return slot.name, nil
}

func (r *ActorRegistry) Role(id domain.ActorID) (domain.Role, error) {
	slot, err := r.lookup(id)
	if err != nil {
		return 0, err
	}
	return slot.role, nil
}

func (r *ActorRegistry) Speed(id domain.ActorID) (int, error) {
	slot, err := r.lookup(id)
	if err != nil {
		return 0, err
	}
	return slot.speed, nil
}

func (r *ActorRegistry) NextTurnTime(id domain.ActorID) (uint64, error) {
	slot, err := r.lookup(id)
	if err != nil {
		return 0, err
	}
	return slot.nextTurnTime, nil
}

// SetNextTurnTime используется только движком после применения стоимости хода
func (r *ActorRegistry) SetNextTurnTime(id domain.ActorID, t uint64) error {
	slot, err := r.lookup(id)
	if err != nil {
		return err
	}
	slot.nextTurnTime = t
	return nil
}

// IsWaitingForInput - стоит ли на акторе гейт ожидания ввода
func (r *ActorRegistry) IsWaitingForInput(id domain.ActorID) (bool, error) {
	slot, err := r.lookup(id)
	if err != nil {
		return false, err
	}
	return slot.waitingForInput, nil
}

func (r *ActorRegistry) setWaitingForInput(id domain.ActorID, waiting bool) error {
	slot, err := r.lookup(id)
	if err != nil {
		return err
	}
	slot.waitingForInput = waiting
	return nil
}

// AttachAction прикрепляет разрешенное действие на текущий ход.
// Действие производится ровно один раз за ход: второе прикрепление - ошибка.
func (r *ActorRegistry) AttachAction(id domain.ActorID, act domain.Action) error {
	slot, err := r.lookup(id)
	if err != nil {
		return fmt.Errorf("attach action: %w", err)
	}
	if slot.pending != nil {
		return fmt.Errorf("attach action to %s: %w", id, domain.ErrActionPending)
	}
	slot.pending = &act
	return nil
}

// PendingAction возвращает прикрепленное действие, не потребляя его
func (r *ActorRegistry) PendingAction(id domain.ActorID) (*domain.Action, error) {
	slot, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	return slot.pending, nil
}

// consumeAction отцепляет действие от актора (вызывается при разрешении хода)
func (r *ActorRegistry) consumeAction(id domain.ActorID) {
	if slot, err := r.lookup(id); err == nil {
		slot.pending = nil
	}
}

// Live возвращает ID всех живых акторов в порядке индексов слотов
func (r *ActorRegistry) Live() []domain.ActorID {
	ids := make([]domain.ActorID, 0, len(r.slots))
	for idx := range r.slots {
		slot := &r.slots[idx]
		if slot.live {
			ids = append(ids, domain.PackActorID(slot.generation, uint64(idx)))
		}
	}
	return ids
}

// Len возвращает количество живых акторов
func (r *ActorRegistry) Len() int {
	return len(r.slots) - len(r.free)
}
