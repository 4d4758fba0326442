package domain

// TurnRecord - запись одного разрешенного хода
type TurnRecord struct {
	Tick   uint64     `json:"tick"`
	Actor  ActorID    `json:"actor"`
	Action ActionKind `json:"action"`
	Dir    Direction  `json:"dir,omitempty"`
}

// ReplayLog - полная лента ходов одной партии. Вместе с сидом мира
// и детерминированным тай-брейком очереди этого достаточно для
// точной ре-симуляции.
type ReplayLog struct {
	Seed      int64        `json:"seed"`
	Timestamp int64        `json:"timestamp"`
	Records   []TurnRecord `json:"records"`
}

// RecordTurn реализует интерфейс рекордера движка
func (l *ReplayLog) RecordTurn(tick uint64, actor ActorID, action Action) {
	l.Records = append(l.Records, TurnRecord{
		Tick:   tick,
		Actor:  actor,
		Action: action.Kind,
		Dir:    action.Dir,
	})
}
