package domain

// Direction - направление шага по сетке. Север - это вверх экрана, то есть -Y.
type Direction uint8

const (
	DirNone Direction = iota
	DirNorth
	DirSouth
	DirWest
	DirEast
)

var dirDeltas = map[Direction][2]int{
	DirNorth: {0, -1},
	DirSouth: {0, 1},
	DirWest:  {-1, 0},
	DirEast:  {1, 0},
}

var dirNames = map[Direction]string{
	DirNone:  "NONE",
	DirNorth: "NORTH",
	DirSouth: "SOUTH",
	DirWest:  "WEST",
	DirEast:  "EAST",
}

// Delta возвращает смещение (dx, dy) для направления.
// Для DirNone возвращает (0, 0).
func (d Direction) Delta() (int, int) {
	delta, ok := dirDeltas[d]
	if !ok {
		return 0, 0
	}
	return delta[0], delta[1]
}

// DirectionFromDelta конвертирует смещение от клиента в направление.
// Диагонали и нулевое смещение дают DirNone.
func DirectionFromDelta(dx, dy int) Direction {
	for dir, delta := range dirDeltas {
		if delta[0] == dx && delta[1] == dy {
			return dir
		}
	}
	return DirNone
}

// String реализует интерфейс Stringer (для fmt.Printf и логов)
func (d Direction) String() string {
	if name, ok := dirNames[d]; ok {
		return name
	}
	return "UNKNOWN"
}
