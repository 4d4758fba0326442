package engine

import (
	"fmt"

	"rogue-server/internal/domain"
	"rogue-server/internal/systems"
	"rogue-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// StepStatus - исход одного вызова Step
type StepStatus uint8

const (
	// StepIdle - очередь пуста, миру нечего делать
	StepIdle StepStatus = iota
	// StepAwaitingInput - в голове очереди игрок без действия. Гейт поднят,
	// часы и очередь не тронуты. Цикл возобновится, когда ввод придет извне.
	StepAwaitingInput
	// StepAwaitingDecision - в голове NPC, но AI-коллаборатор еще не выдал
	// решение. Та же приостановка, что и для игрока, только без гейта.
	StepAwaitingDecision
	// StepTurnResolved - ход разрешен и актор перепланирован
	StepTurnResolved
)

func (s StepStatus) String() string {
	switch s {
	case StepIdle:
		return "IDLE"
	case StepAwaitingInput:
		return "AWAITING_INPUT"
	case StepAwaitingDecision:
		return "AWAITING_DECISION"
	case StepTurnResolved:
		return "TURN_RESOLVED"
	default:
		return "UNKNOWN"
	}
}

// StepResult - что произошло за один вызов Step. По нему хост-цикл
// решает, перерисовывать ли экран и ждать ли ввода.
type StepResult struct {
	Status StepStatus
	Actor  domain.ActorID // голова очереди (кроме StepIdle)
	Action domain.Action  // заполнено при StepTurnResolved
	Time   uint64         // тик, на котором разрешился ход
	Moved  bool           // для Move: состоялось ли перемещение
}

// DecisionSource поставляет действия для NPC, когда их ход настал.
// Возврат (_, false) означает "решение еще не готово" - движок
// приостанавливается, это не ошибка.
type DecisionSource interface {
	NextAction(actor domain.ActorID) (domain.Action, bool)
}

// TurnRecorder получает каждый разрешенный ход (для реплеев)
type TurnRecorder interface {
	RecordTurn(tick uint64, actor domain.ActorID, action domain.Action)
}

// Предохранитель от бесконечного цикла при осушении ходов NPC
const maxTurnsPerDrain = 1000

// Engine - цикл разрешения ходов. Однопоточный и кооперативный:
// хост зовет Step/RunUntilInput синхронно, параллельных ходов нет.
type Engine struct {
	Map       *domain.GameMap
	Occupancy *domain.OccupancyMap
	Registry  *ActorRegistry

	scheduler *TurnScheduler
	policy    CostPolicy
	decisions DecisionSource
	recorder  TurnRecorder
}

func NewEngine(m *domain.GameMap, policy CostPolicy) *Engine {
	return &Engine{
		Map:       m,
		Occupancy: domain.NewOccupancyMap(),
		Registry:  NewActorRegistry(),
		scheduler: NewTurnScheduler(),
		policy:    policy,
	}
}

// SetDecisionSource подключает AI-коллаборатора для NPC
func (e *Engine) SetDecisionSource(src DecisionSource) {
	e.decisions = src
}

// SetRecorder подключает запись реплея
func (e *Engine) SetRecorder(rec TurnRecorder) {
	e.recorder = rec
}

// CurrentTime - глобальные часы симуляции
func (e *Engine) CurrentTime() uint64 {
	return e.Registry.CurrentTime()
}

// QueueLen возвращает число акторов в очереди ходов
func (e *Engine) QueueLen() int {
	return e.scheduler.Len()
}

// NextActor возвращает голову очереди, не трогая ее (для снапшотов)
func (e *Engine) NextActor() (domain.ActorID, uint64, bool) {
	return e.scheduler.PeekNext()
}

// Spawn регистрирует актора в реестре, ставит его на карту и планирует
// первый ход на текущее время часов: новые акторы ходят сразу,
// как только до них дойдет очередь.
func (e *Engine) Spawn(name string, role domain.Role, speed int, pos domain.Position) (domain.ActorID, error) {
	if !e.Map.IsPassable(pos) {
		return domain.ActorNone, fmt.Errorf("spawn %q at (%d,%d): cell impassable", name, pos.X, pos.Y)
	}

	now := e.Registry.CurrentTime()
	id := e.Registry.Register(name, role, speed, now)

	if err := e.Occupancy.Place(id, pos); err != nil {
		// Откатываем регистрацию, иначе реестр и карта разойдутся
		if derr := e.Registry.Deregister(id); derr != nil {
			logger.Log.WithError(derr).Error("Spawn rollback failed")
		}
		return domain.ActorNone, fmt.Errorf("spawn %q: %w", name, err)
	}

	e.scheduler.Schedule(id, now)

	logger.Log.WithFields(logrus.Fields{
		"actor": id,
		"name":  name,
		"role":  role,
		"pos":   fmt.Sprintf("(%d,%d)", pos.X, pos.Y),
		"tick":  now,
	}).Info("Actor spawned")

	return id, nil
}

// Despawn удаляет актора из очереди, карты и реестра одним вызовом.
// Частичное удаление (реестр без очереди и наоборот) - нарушение
// инварианта, поэтому все три структуры чистятся вместе, включая гейт.
func (e *Engine) Despawn(id domain.ActorID) error {
	if !e.Registry.Contains(id) {
		return fmt.Errorf("despawn: %s: %w", id, domain.ErrUnknownActor)
	}

	if !e.scheduler.Remove(id) {
		// Живой актор обязан быть в очереди
		logger.Log.WithField("actor", id).Error("Despawn: actor missing from turn queue")
	}
	if err := e.Occupancy.Remove(id); err != nil {
		logger.Log.WithError(err).WithField("actor", id).Error("Despawn: actor missing from occupancy map")
	}
	if err := e.Registry.Deregister(id); err != nil {
		return fmt.Errorf("despawn: %w", err)
	}

	logger.Log.WithField("actor", id).Info("Actor despawned")
	return nil
}

// AttachAction прикрепляет внешне разрешенное действие к актору.
// Для игрока это снимает приостановку на следующем Step.
func (e *Engine) AttachAction(id domain.ActorID, act domain.Action) error {
	if err := e.Registry.AttachAction(id, act); err != nil {
		return err
	}
	logger.Log.WithFields(logrus.Fields{
		"actor":  id,
		"action": act.Kind,
		"dir":    act.Dir,
	}).Debug("Action attached")
	return nil
}

// Step выполняет одну итерацию цикла разрешения ходов.
//
// Возвращаемая ошибка означает рассинхронизацию очереди и реестра -
// это баг, а не игровая ситуация, текущий шаг прерывается.
func (e *Engine) Step() (StepResult, error) {
	headID, headTime, ok := e.scheduler.PeekNext()
	if !ok {
		return StepResult{Status: StepIdle}, nil
	}

	if !e.Registry.Contains(headID) {
		return StepResult{}, fmt.Errorf("turn queue head %s: %w (queue/registry desync)", headID, domain.ErrUnknownActor)
	}

	role, _ := e.Registry.Role(headID)
	pending, _ := e.Registry.PendingAction(headID)

	if pending == nil {
		if role == domain.RolePlayer {
			// Точка приостановки: не попаем из очереди, часы стоят
			waiting, _ := e.Registry.IsWaitingForInput(headID)
			if !waiting {
				if err := e.Registry.setWaitingForInput(headID, true); err != nil {
					return StepResult{}, err
				}
				logger.Log.WithField("actor", headID).Debug("Waiting for player input")
			}
			return StepResult{Status: StepAwaitingInput, Actor: headID, Time: headTime}, nil
		}

		// NPC: спрашиваем коллаборатора. Если источника нет или решение
		// не готово - приостанавливаемся без гейта.
		if e.decisions != nil {
			if act, ready := e.decisions.NextAction(headID); ready {
				if err := e.Registry.AttachAction(headID, act); err != nil {
					return StepResult{}, err
				}
				pending = &act
			}
		}
		if pending == nil {
			return StepResult{Status: StepAwaitingDecision, Actor: headID, Time: headTime}, nil
		}
	}

	// Действие есть: ход разрешается
	e.scheduler.AdvanceToNext()
	e.Registry.AdvanceClock(headTime)

	speed, err := e.Registry.Speed(headID)
	if err != nil {
		return StepResult{}, err
	}

	moved := false
	if pending.Kind == domain.ActionMove {
		moved = e.applyMove(headID, pending.Dir)
	}

	// Отклоненный ход все равно стоит полную цену шага:
	// проверять клетки бесплатно нельзя.
	cost := e.policy.Cost(pending.Kind, speed)
	next := e.Registry.CurrentTime() + cost

	if err := e.Registry.SetNextTurnTime(headID, next); err != nil {
		return StepResult{}, err
	}
	if err := e.Registry.setWaitingForInput(headID, false); err != nil {
		return StepResult{}, err
	}
	e.Registry.consumeAction(headID)
	e.scheduler.Schedule(headID, next)

	if e.recorder != nil {
		e.recorder.RecordTurn(headTime, headID, *pending)
	}

	logger.Log.WithFields(logrus.Fields{
		"actor":  headID,
		"action": pending.Kind,
		"tick":   headTime,
		"next":   next,
	}).Debug("Turn resolved")

	return StepResult{
		Status: StepTurnResolved,
		Actor:  headID,
		Action: *pending,
		Time:   headTime,
		Moved:  moved,
	}, nil
}

// applyMove двигает актора, если клетка проходима и свободна.
// Отклоненный ход деградирует в no-op: позиция и занятость не меняются.
func (e *Engine) applyMove(id domain.ActorID, dir domain.Direction) bool {
	from, ok := e.Occupancy.PositionOf(id)
	if !ok {
		logger.Log.WithField("actor", id).Error("Move: actor missing from occupancy map")
		return false
	}

	outcome := systems.CalculateMove(from, dir, e.Map, e.Occupancy)
	if !outcome.Moved {
		logger.Log.WithFields(logrus.Fields{
			"actor":   id,
			"dir":     dir,
			"wall":    outcome.HitWall,
			"blocked": outcome.BlockedBy,
		}).Debug("Move rejected")
		return false
	}

	if err := e.Occupancy.Move(id, outcome.To); err != nil {
		logger.Log.WithError(err).WithField("actor", id).Error("Move application failed")
		return false
	}
	return true
}

// RunUntilInput осушает ходы NPC, пока в голове очереди не окажется
// игрок без действия (или очередь не опустеет / решение не задержится).
// Возвращает разрешенные за вызов ходы в порядке разрешения.
func (e *Engine) RunUntilInput() ([]StepResult, error) {
	var resolved []StepResult

	for i := 0; i < maxTurnsPerDrain; i++ {
		res, err := e.Step()
		if err != nil {
			return resolved, err
		}
		if res.Status != StepTurnResolved {
			return resolved, nil
		}
		resolved = append(resolved, res)
	}

	logger.Log.Warn("Turn drain fuse triggered")
	return resolved, nil
}
