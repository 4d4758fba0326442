package storage

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"rogue-server/internal/domain"
)

func (s *ReplayService) Load(path string) (*domain.ReplayLog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readBinary(f)
}

func readBinary(r io.Reader) (*domain.ReplayLog, error) {
	// 1. Читаем заголовок целиком
	var header ReplayFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// Валидация
	if string(header.Magic[:]) != MagicHeader {
		return nil, fmt.Errorf("invalid magic")
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("unsupported version: %d (expected %d)", header.Version, Version1)
	}

	log := &domain.ReplayLog{
		Seed:      header.Seed,
		Timestamp: header.Timestamp,
		Records:   make([]domain.TurnRecord, header.RecordCount),
	}

	// 2. Читаем записи ходов
	for i := 0; i < int(header.RecordCount); i++ {
		var wire turnRecordWire
		if err := binary.Read(r, binary.LittleEndian, &wire); err != nil {
			return nil, err
		}
		log.Records[i] = domain.TurnRecord{
			Tick:   wire.Tick,
			Actor:  domain.ActorID(wire.Actor),
			Action: domain.ActionKind(wire.Action),
			Dir:    domain.Direction(wire.Dir),
		}
	}

	return log, nil
}
