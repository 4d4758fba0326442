package systems

import (
	"testing"

	"rogue-server/internal/domain"
)

// roleTable - заглушка реестра для тестов AI
type roleTable map[domain.ActorID]domain.Role

func (rt roleTable) Role(id domain.ActorID) (domain.Role, error) {
	role, ok := rt[id]
	if !ok {
		return 0, domain.ErrUnknownActor
	}
	return role, nil
}

func setupChaseTest(t *testing.T) (*ChaseDecider, *domain.OccupancyMap, roleTable) {
	t.Helper()
	m := domain.NewBorderedMap(20, 20)
	occ := domain.NewOccupancyMap()
	roles := roleTable{}
	return NewChaseDecider(m, occ, roles), occ, roles
}

func TestChaseDecider_MovesTowardPlayer(t *testing.T) {
	decider, occ, roles := setupChaseTest(t)

	player := domain.PackActorID(1, 0)
	npc := domain.PackActorID(1, 1)
	roles[player] = domain.RolePlayer
	roles[npc] = domain.RoleNonPlayerActor

	// Игрок правее NPC на одной строке
	if err := occ.Place(player, domain.Position{X: 10, Y: 5}); err != nil {
		t.Fatal(err)
	}
	if err := occ.Place(npc, domain.Position{X: 5, Y: 5}); err != nil {
		t.Fatal(err)
	}

	act, ready := decider.NextAction(npc)
	if !ready {
		t.Fatal("decision should be ready synchronously")
	}
	if act.Kind != domain.ActionMove || act.Dir != domain.DirEast {
		t.Errorf("expected Move(EAST), got %v(%v)", act.Kind, act.Dir)
	}
}

func TestChaseDecider_SlidesAroundWall(t *testing.T) {
	decider, occ, roles := setupChaseTest(t)

	player := domain.PackActorID(1, 0)
	npc := domain.PackActorID(1, 1)
	roles[player] = domain.RolePlayer
	roles[npc] = domain.RoleNonPlayerActor

	// Игрок восточнее и чуть южнее: основная ось - восток
	if err := occ.Place(player, domain.Position{X: 10, Y: 6}); err != nil {
		t.Fatal(err)
	}
	if err := occ.Place(npc, domain.Position{X: 5, Y: 5}); err != nil {
		t.Fatal(err)
	}
	// Прямой путь на восток перегорожен
	decider.Map.SetTerrain(domain.Position{X: 6, Y: 5}, domain.TerrainWall)

	act, _ := decider.NextAction(npc)
	if act.Kind != domain.ActionMove || act.Dir != domain.DirSouth {
		t.Errorf("expected slide Move(SOUTH), got %v(%v)", act.Kind, act.Dir)
	}
}

func TestChaseDecider_WaitsWithoutTarget(t *testing.T) {
	decider, occ, roles := setupChaseTest(t)

	npc := domain.PackActorID(1, 1)
	roles[npc] = domain.RoleNonPlayerActor
	if err := occ.Place(npc, domain.Position{X: 5, Y: 5}); err != nil {
		t.Fatal(err)
	}

	act, ready := decider.NextAction(npc)
	if !ready {
		t.Fatal("decision should be ready synchronously")
	}
	if act.Kind != domain.ActionWait {
		t.Errorf("expected Wait, got %v", act.Kind)
	}
}

func TestChaseDecider_IgnoresFarPlayer(t *testing.T) {
	decider, occ, roles := setupChaseTest(t)

	player := domain.PackActorID(1, 0)
	npc := domain.PackActorID(1, 1)
	roles[player] = domain.RolePlayer
	roles[npc] = domain.RoleNonPlayerActor

	// Дистанция 17 > AggroRadius
	if err := occ.Place(player, domain.Position{X: 18, Y: 18}); err != nil {
		t.Fatal(err)
	}
	if err := occ.Place(npc, domain.Position{X: 1, Y: 1}); err != nil {
		t.Fatal(err)
	}

	act, _ := decider.NextAction(npc)
	if act.Kind != domain.ActionWait {
		t.Errorf("expected Wait outside aggro radius, got %v", act.Kind)
	}
}
