package storage

import (
	"os"
	"testing"

	"rogue-server/internal/domain"
)

func TestReplayService_SaveLoad(t *testing.T) {
	svc := NewReplayService(t.TempDir())

	log := &domain.ReplayLog{
		Seed:      12345,
		Timestamp: 1700000000,
	}
	hero := domain.PackActorID(1, 0)
	goblin := domain.PackActorID(1, 1)

	log.RecordTurn(0, hero, domain.MoveAction(domain.DirNorth))
	log.RecordTurn(0, goblin, domain.WaitAction())
	log.RecordTurn(100, hero, domain.Action{Kind: domain.ActionPickup})

	path, err := svc.Save(log)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := svc.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Seed != log.Seed || loaded.Timestamp != log.Timestamp {
		t.Errorf("header mismatch: %+v", loaded)
	}
	if len(loaded.Records) != 3 {
		t.Fatalf("got %d records, want 3", len(loaded.Records))
	}

	first := loaded.Records[0]
	if first.Tick != 0 || first.Actor != hero || first.Action != domain.ActionMove || first.Dir != domain.DirNorth {
		t.Errorf("record 0 mismatch: %+v", first)
	}
	last := loaded.Records[2]
	if last.Tick != 100 || last.Action != domain.ActionPickup {
		t.Errorf("record 2 mismatch: %+v", last)
	}
}

func TestReplayService_RejectsBadMagic(t *testing.T) {
	dir := t.TempDir()
	svc := NewReplayService(dir)

	log := &domain.ReplayLog{Seed: 1, Timestamp: 2}
	path, err := svc.Save(log)
	if err != nil {
		t.Fatal(err)
	}

	// Портим магию
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	data[0] = 'X'
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Load(path); err == nil {
		t.Error("expected error for corrupted magic")
	}
}
