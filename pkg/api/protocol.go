package api

import "encoding/json"

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// Полный "снимок" мира; отправляется после каждого разрешенного пакета ходов.
type ServerResponse struct {
	// Type тип сообщения. На данный момент всегда "UPDATE".
	Type string `json:"type"`

	// Tick текущее глобальное время симуляции.
	Tick uint64 `json:"tick"`

	// ActiveActorID ID актора, чей ход сейчас (голова очереди).
	// КЛИЕНТ ДОЛЖЕН СРАВНИВАТЬ ЭТО ПОЛЕ СО СВОИМ ID: если совпадает,
	// можно принимать ввод от игрока.
	ActiveActorID string `json:"activeActorId,omitempty"`

	// MyActorID ID актора, которым управляет данный клиент.
	MyActorID string `json:"myActorId,omitempty"`

	// AwaitingInput true, если движок приостановлен и ждет действие
	// именно этого клиента.
	AwaitingInput bool `json:"awaitingInput"`

	// Grid метаданные о размере всей карты.
	Grid *GridMeta `json:"grid,omitempty"`

	// Map срез тайлов карты.
	Map []TileView `json:"map,omitempty"`

	// Actors срез всех акторов в симуляции.
	Actors []ActorView `json:"actors,omitempty"`

	// Logs срез новых сообщений с прошлого снимка.
	Logs []LogEntry `json:"logs,omitempty"`
}

// GridMeta содержит общие размеры карты, чтобы клиент знал,
// какую сетку для рендеринга нужно подготовить.
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// TileView это DTO для одного тайла карты.
type TileView struct {
	X int `json:"x"`
	Y int `json:"y"`

	// Symbol - визуальное представление тайла ("#" для стены, "." для пола).
	Symbol string `json:"symbol"`

	// IsWall true, если тайл является непроходимым препятствием.
	IsWall bool `json:"isWall"`
}

// ActorView это DTO для участника симуляции.
type ActorView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"` // PLAYER, NPC

	Pos struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"pos"`

	Symbol string `json:"symbol"`

	// NextTurnTick - тик, на котором актор снова получит ход.
	NextTurnTick uint64 `json:"nextTurnTick"`
}

// LogEntry представляет одну запись в игровом логе.
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`      // INFO, ERROR
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Token сессионный токен. Обязателен только для первого сообщения "LOGIN".
	Token string `json:"token,omitempty"`

	// Action название действия: LOGIN, MOVE, WAIT, PICKUP.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Структура зависит от Action.
	Payload json.RawMessage `json:"payload"`
}

// DirectionPayload используется для действий, связанных с направлением (e.g. MOVE).
type DirectionPayload struct {
	Dx int `json:"dx"` // Смещение по X (-1, 0, 1)
	Dy int `json:"dy"` // Смещение по Y (-1, 0, 1)
}
