package storage

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"rogue-server/internal/domain"
)

const (
	MagicHeader string = `RGRP` // 4 байта
	Version1    uint32 = 1
)

// ReplayFileHeader — это точное представление заголовка файла в памяти.
// binary.Write умеет писать это целиком, так как тут нет слайсов и строк, только массивы и числа.
type ReplayFileHeader struct {
	Magic       [4]byte // 4 байта
	Version     uint32  // 4 байта
	Seed        int64   // 8 байт
	Timestamp   int64   // 8 байт
	RecordCount int32   // 4 байта
}

// turnRecordWire — запись одного хода на диске. Все поля фиксированного
// размера, поэтому и заголовок, и записи пишутся одним binary.Write.
type turnRecordWire struct {
	Tick   uint64 // 8
	Actor  uint64 // 8
	Action uint8  // 1
	Dir    uint8  // 1
}

type ReplayService struct {
	SaveDir string
}

func NewReplayService(dir string) *ReplayService {
	// Создаем папку если нет
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		_ = os.MkdirAll(dir, 0755)
	}
	return &ReplayService{SaveDir: dir}
}

func (s *ReplayService) Save(log *domain.ReplayLog) (string, error) {
	filename := fmt.Sprintf("replay_%d_%d.rgrp", log.Seed, log.Timestamp)
	path := filepath.Join(s.SaveDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := writeBinary(f, log); err != nil {
		return "", err
	}
	return path, nil
}

func writeBinary(w io.Writer, log *domain.ReplayLog) error {
	header := ReplayFileHeader{
		Version:     Version1,
		Seed:        log.Seed,
		Timestamp:   log.Timestamp,
		RecordCount: int32(len(log.Records)),
	}
	copy(header.Magic[:], MagicHeader)

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, rec := range log.Records {
		wire := turnRecordWire{
			Tick:   rec.Tick,
			Actor:  uint64(rec.Actor),
			Action: uint8(rec.Action),
			Dir:    uint8(rec.Dir),
		}
		if err := binary.Write(w, binary.LittleEndian, &wire); err != nil {
			return err
		}
	}

	return nil
}
