package engine

import (
	"testing"

	"rogue-server/internal/domain"
)

// stubDecisions - источник решений, всегда отдающий одно действие
type stubDecisions struct {
	act   domain.Action
	ready bool
}

func (s stubDecisions) NextAction(domain.ActorID) (domain.Action, bool) {
	return s.act, s.ready
}

// setupEngineTest: пустая комната 10x10, игрок (speed=100) и враг (speed=120).
// Игрок регистрируется первым - при равном времени его ход раньше.
func setupEngineTest(t *testing.T) (*Engine, domain.ActorID, domain.ActorID) {
	t.Helper()

	e := NewEngine(domain.NewBorderedMap(10, 10), DefaultCostPolicy())

	player, err := e.Spawn("hero", domain.RolePlayer, 100, domain.Position{X: 2, Y: 2})
	if err != nil {
		t.Fatalf("spawn player: %v", err)
	}
	npc, err := e.Spawn("enemy", domain.RoleNonPlayerActor, 120, domain.Position{X: 5, Y: 5})
	if err != nil {
		t.Fatalf("spawn npc: %v", err)
	}
	return e, player, npc
}

func mustStep(t *testing.T, e *Engine) StepResult {
	t.Helper()
	res, err := e.Step()
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	return res
}

func TestEngine_IdleWhenEmpty(t *testing.T) {
	e := NewEngine(domain.NewBorderedMap(5, 5), DefaultCostPolicy())
	res := mustStep(t, e)
	if res.Status != StepIdle {
		t.Errorf("empty engine Step = %v, want StepIdle", res.Status)
	}
}

func TestEngine_PlayerGatesUntilInput(t *testing.T) {
	e, player, _ := setupEngineTest(t)

	// Игрок в голове очереди без действия: движок стоит,
	// повторные вызовы ничего не меняют
	for i := 0; i < 3; i++ {
		res := mustStep(t, e)
		if res.Status != StepAwaitingInput || res.Actor != player {
			t.Fatalf("step %d: got %v/%s, want AwaitingInput/%s", i, res.Status, res.Actor, player)
		}
	}

	if e.CurrentTime() != 0 {
		t.Errorf("clock moved while gated: %d", e.CurrentTime())
	}
	if e.QueueLen() != 2 {
		t.Errorf("queue mutated while gated: len=%d", e.QueueLen())
	}
	waiting, _ := e.Registry.IsWaitingForInput(player)
	if !waiting {
		t.Error("gate flag should be set on the gated player")
	}
}

func TestEngine_NPCWithoutDecisionSuspends(t *testing.T) {
	e := NewEngine(domain.NewBorderedMap(10, 10), DefaultCostPolicy())
	npc, err := e.Spawn("enemy", domain.RoleNonPlayerActor, 120, domain.Position{X: 5, Y: 5})
	if err != nil {
		t.Fatal(err)
	}

	// Источника решений нет: приостановка без гейта
	res := mustStep(t, e)
	if res.Status != StepAwaitingDecision || res.Actor != npc {
		t.Fatalf("got %v/%s, want AwaitingDecision/%s", res.Status, res.Actor, npc)
	}
	waiting, _ := e.Registry.IsWaitingForInput(npc)
	if waiting {
		t.Error("NPC suspension must not raise the input gate")
	}

	// Решение появилось - ход разрешается
	e.SetDecisionSource(stubDecisions{act: domain.WaitAction(), ready: true})
	res = mustStep(t, e)
	if res.Status != StepTurnResolved || res.Actor != npc {
		t.Fatalf("got %v/%s, want TurnResolved/%s", res.Status, res.Actor, npc)
	}
}

// Сценарий из игрового баланса: hero speed=100, enemy speed=120, оба на тике 0.
// Игрок зарегистрирован первым и ходит первым. Wait стоит speed/2.
func TestEngine_WaitAndMoveCosts(t *testing.T) {
	e, player, npc := setupEngineTest(t)

	// Ход игрока: Wait -> 0 + 100/2 = 50
	if err := e.AttachAction(player, domain.WaitAction()); err != nil {
		t.Fatal(err)
	}
	res := mustStep(t, e)
	if res.Status != StepTurnResolved || res.Actor != player || res.Time != 0 {
		t.Fatalf("player turn: got %v/%s@%d", res.Status, res.Actor, res.Time)
	}
	next, _ := e.Registry.NextTurnTime(player)
	if next != 50 {
		t.Errorf("player next_turn_time = %d, want 50", next)
	}

	// Враг все еще на тике 0 - ходит следующим
	res = mustStep(t, e)
	if res.Status != StepAwaitingDecision || res.Actor != npc {
		t.Fatalf("expected npc head, got %v/%s", res.Status, res.Actor)
	}
	if err := e.AttachAction(npc, domain.MoveAction(domain.DirEast)); err != nil {
		t.Fatal(err)
	}
	res = mustStep(t, e)
	if res.Status != StepTurnResolved || res.Actor != npc || res.Time != 0 {
		t.Fatalf("npc turn: got %v/%s@%d", res.Status, res.Actor, res.Time)
	}
	next, _ = e.Registry.NextTurnTime(npc)
	if next != 120 {
		t.Errorf("npc next_turn_time = %d, want 120", next)
	}
	if pos, _ := e.Occupancy.PositionOf(npc); pos != (domain.Position{X: 6, Y: 5}) {
		t.Errorf("npc pos = %v, want (6,5)", pos)
	}

	// Часы догоняют того, кто ходит: следующий в голове - игрок на 50
	if e.CurrentTime() != 0 {
		t.Errorf("clock = %d before next resolution, want 0", e.CurrentTime())
	}
	if err := e.AttachAction(player, domain.WaitAction()); err != nil {
		t.Fatal(err)
	}
	res = mustStep(t, e)
	if res.Time != 50 || e.CurrentTime() != 50 {
		t.Errorf("clock should catch up to 50, got turn@%d clock=%d", res.Time, e.CurrentTime())
	}
}

func TestEngine_GateClearedOnResolution(t *testing.T) {
	e, player, _ := setupEngineTest(t)

	mustStep(t, e) // поднимает гейт
	waiting, _ := e.Registry.IsWaitingForInput(player)
	if !waiting {
		t.Fatal("gate should be set")
	}

	if err := e.AttachAction(player, domain.MoveAction(domain.DirNorth)); err != nil {
		t.Fatal(err)
	}
	res := mustStep(t, e)
	if res.Status != StepTurnResolved || !res.Moved {
		t.Fatalf("expected resolved move, got %v moved=%v", res.Status, res.Moved)
	}

	// Гейт снят, действие потреблено, актор перепланирован ровно на speed
	waiting, _ = e.Registry.IsWaitingForInput(player)
	if waiting {
		t.Error("gate should be cleared after resolution")
	}
	if pending, _ := e.Registry.PendingAction(player); pending != nil {
		t.Error("action should be consumed after resolution")
	}
	next, _ := e.Registry.NextTurnTime(player)
	if next != 100 {
		t.Errorf("next_turn_time = %d, want 100 (exactly speed)", next)
	}
	if pos, _ := e.Occupancy.PositionOf(player); pos != (domain.Position{X: 2, Y: 1}) {
		t.Errorf("player pos = %v, want (2,1)", pos)
	}
}

func TestEngine_RejectedMoveChargesFullCost(t *testing.T) {
	e := NewEngine(domain.NewBorderedMap(10, 10), DefaultCostPolicy())

	player, _ := e.Spawn("hero", domain.RolePlayer, 100, domain.Position{X: 2, Y: 2})
	blocker, _ := e.Spawn("enemy", domain.RoleNonPlayerActor, 120, domain.Position{X: 3, Y: 2})

	if err := e.AttachAction(player, domain.MoveAction(domain.DirEast)); err != nil {
		t.Fatal(err)
	}
	res := mustStep(t, e)
	if res.Status != StepTurnResolved {
		t.Fatalf("got %v, want TurnResolved", res.Status)
	}
	if res.Moved {
		t.Error("move into occupied cell must be rejected")
	}

	// Позиции не изменились, но полная стоимость шага списана
	if pos, _ := e.Occupancy.PositionOf(player); pos != (domain.Position{X: 2, Y: 2}) {
		t.Errorf("player pos changed: %v", pos)
	}
	if id, ok := e.Occupancy.GetOccupant(domain.Position{X: 3, Y: 2}); !ok || id != blocker {
		t.Error("destination occupancy must be unchanged")
	}
	next, _ := e.Registry.NextTurnTime(player)
	if next != 100 {
		t.Errorf("rejected move cost: next_turn_time = %d, want 100", next)
	}
}

func TestEngine_DespawnGatedHead(t *testing.T) {
	e, player, npc := setupEngineTest(t)

	mustStep(t, e) // игрок в голове, гейт поднят

	if err := e.Despawn(player); err != nil {
		t.Fatalf("Despawn failed: %v", err)
	}

	// Актор удален из всех структур разом
	if e.Registry.Contains(player) {
		t.Error("registry entry should be gone")
	}
	if _, ok := e.Occupancy.PositionOf(player); ok {
		t.Error("occupancy entry should be gone")
	}
	res := mustStep(t, e)
	if res.Actor != npc {
		t.Errorf("head after despawn = %s, want %s", res.Actor, npc)
	}

	if err := e.Despawn(player); err == nil {
		t.Error("despawn of a dead actor should fail")
	}
}

func TestEngine_EqualTimesResolveInRegistrationOrder(t *testing.T) {
	e := NewEngine(domain.NewBorderedMap(10, 10), DefaultCostPolicy())
	e.SetDecisionSource(stubDecisions{act: domain.WaitAction(), ready: true})

	// Три NPC на тике 0: порядок регистрации = порядок ходов
	var ids []domain.ActorID
	for i := 0; i < 3; i++ {
		id, err := e.Spawn("npc", domain.RoleNonPlayerActor, 100, domain.Position{X: 2 + i, Y: 2})
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, id)
	}

	for i, want := range ids {
		res := mustStep(t, e)
		if res.Status != StepTurnResolved || res.Actor != want {
			t.Errorf("turn %d: got %v/%s, want %s", i, res.Status, res.Actor, want)
		}
	}
}

func TestEngine_RunUntilInputDrainsNPCTurns(t *testing.T) {
	e := NewEngine(domain.NewBorderedMap(10, 10), DefaultCostPolicy())
	e.SetDecisionSource(stubDecisions{act: domain.WaitAction(), ready: true})

	player, _ := e.Spawn("hero", domain.RolePlayer, 100, domain.Position{X: 2, Y: 2})
	npc, _ := e.Spawn("enemy", domain.RoleNonPlayerActor, 30, domain.Position{X: 7, Y: 7})

	// Ход игрока: Move -> его время уходит на 100
	if err := e.AttachAction(player, domain.MoveAction(domain.DirSouth)); err != nil {
		t.Fatal(err)
	}
	resolved, err := e.RunUntilInput()
	if err != nil {
		t.Fatalf("RunUntilInput failed: %v", err)
	}

	// Быстрый NPC (Wait стоит 15) ходит, пока не перегонит игрока:
	// тики 0,15,...,90 - восемь ходов NPC плюс ход игрока
	if len(resolved) != 8 {
		t.Fatalf("resolved %d turns, want 8", len(resolved))
	}
	if resolved[0].Actor != player {
		t.Errorf("first resolved turn should be the player")
	}
	for _, r := range resolved[1:] {
		if r.Actor != npc {
			t.Errorf("drained turn by %s, want %s", r.Actor, npc)
		}
	}

	npcNext, _ := e.Registry.NextTurnTime(npc)
	if npcNext != 105 {
		t.Errorf("npc next_turn_time = %d, want 105", npcNext)
	}

	// Теперь голова - игрок: осушение остановилось на гейте
	res := mustStep(t, e)
	if res.Status != StepAwaitingInput || res.Actor != player {
		t.Errorf("after drain: got %v/%s, want AwaitingInput/player", res.Status, res.Actor)
	}
}
