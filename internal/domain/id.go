package domain

import (
	"fmt"
	"strconv"
)

// ActorID - упакованный генерационный идентификатор (Generation + Index).
// Слоты реестра переиспользуются, но при удалении актора поколение слота
// увеличивается, поэтому устаревший ID никогда не укажет на нового актора.
type ActorID uint64

// ActorNone - нулевой ID. Реестр его никогда не выдает (поколение живого слота >= 1).
const ActorNone ActorID = 0

// Конфигурация битов
const (
	bitsIndex = 40
	bitsGen   = 24

	shiftGen = bitsIndex

	maskIndex = (1 << bitsIndex) - 1 // 0x000000FFFFFFFFFF
	maskGen   = (1 << bitsGen) - 1   // 0xFFFFFF
)

// PackActorID создает ID из компонентов
func PackActorID(generation uint32, index uint64) ActorID {
	id := index & maskIndex
	id |= (uint64(generation) & maskGen) << shiftGen
	return ActorID(id)
}

func (id ActorID) Generation() uint32 {
	return uint32((uint64(id) >> shiftGen) & maskGen)
}

func (id ActorID) Index() uint64 {
	return uint64(id) & maskIndex
}

// MarshalJSON сериализует ID в строку, так как JS теряет точность для больших int64
func (id ActorID) MarshalJSON() ([]byte, error) {
	s := strconv.FormatUint(uint64(id), 10)
	return []byte(`"` + s + `"`), nil
}

// UnmarshalJSON парсит строку или число из JSON
func (id *ActorID) UnmarshalJSON(data []byte) error {
	if len(data) > 1 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}
	val, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return err
	}
	*id = ActorID(val)
	return nil
}

// String для логов: [Gen:Idx]
func (id ActorID) String() string {
	return fmt.Sprintf("[%d:%d]", id.Generation(), id.Index())
}
