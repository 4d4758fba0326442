package server

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"rogue-server/internal/config"
	"rogue-server/internal/domain"
	"rogue-server/internal/engine"
	"rogue-server/internal/systems"
	"rogue-server/pkg/api"
	"rogue-server/pkg/logger"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"
)

// Session - один подключенный клиент и его актор в мире
type Session struct {
	Token string
	Actor domain.ActorID
	Send  chan api.ServerResponse
}

// Host владеет движком и сериализует доступ к нему: движок однопоточный,
// поэтому все команды клиентов проходят через один мьютекс.
type Host struct {
	mu       sync.Mutex
	engine   *engine.Engine
	cfg      *config.Config
	sessions map[string]*Session
	rng      *rand.Rand

	logs []api.LogEntry // накопленные сообщения до следующего снимка
}

func NewHost(eng *engine.Engine, cfg *config.Config, rng *rand.Rand) *Host {
	return &Host{
		engine:   eng,
		cfg:      cfg,
		sessions: make(map[string]*Session),
		rng:      rng,
	}
}

// Connect спавнит игрока на свободной клетке и создает сессию
func (h *Host) Connect() (*Session, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	pos, ok := systems.FindFreeTile(h.engine.Map, h.engine.Occupancy, h.rng)
	if !ok {
		return nil, fmt.Errorf("no free tile to spawn player")
	}

	token := xid.New().String()
	actor, err := h.engine.Spawn("hero-"+token[len(token)-4:], domain.RolePlayer, h.cfg.Game.PlayerSpeed, pos)
	if err != nil {
		return nil, fmt.Errorf("spawn player: %w", err)
	}

	s := &Session{
		Token: token,
		Actor: actor,
		Send:  make(chan api.ServerResponse, 64),
	}
	h.sessions[token] = s

	logger.Log.WithFields(logrus.Fields{
		"token": token,
		"actor": actor,
	}).Info("Client session opened")

	name, _ := h.engine.Registry.Name(actor)
	h.addLog(fmt.Sprintf("%s входит в подземелье.", name), "INFO")

	h.drainAndBroadcast()
	return s, nil
}

// Disconnect убирает актора из мира и закрывает сессию.
// Гейт и запись в очереди уходят вместе с записью реестра.
func (h *Host) Disconnect(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.sessions[s.Token]; !ok {
		return
	}
	delete(h.sessions, s.Token)
	close(s.Send)

	name, _ := h.engine.Registry.Name(s.Actor)
	if err := h.engine.Despawn(s.Actor); err != nil {
		logger.Log.WithError(err).WithField("actor", s.Actor).Warn("Despawn on disconnect failed")
	} else {
		h.addLog(fmt.Sprintf("%s покидает подземелье.", name), "INFO")
	}

	logger.Log.WithField("token", s.Token).Info("Client session closed")
	h.drainAndBroadcast()
}

// HandleCommand превращает команду клиента в действие его актора
func (h *Host) HandleCommand(s *Session, cmd api.ClientCommand) {
	act, ok := parseAction(cmd)
	if !ok {
		logger.Log.WithField("action", cmd.Action).Debug("Ignoring unknown command")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.engine.AttachAction(s.Actor, act); err != nil {
		// Повторный ввод до разрешения хода просто игнорируем
		logger.Log.WithError(err).WithField("actor", s.Actor).Debug("Action rejected")
		return
	}

	h.drainAndBroadcast()
}

// parseAction конвертирует JSON-команду во внутреннее действие
func parseAction(cmd api.ClientCommand) (domain.Action, bool) {
	switch domain.ParseActionKind(cmd.Action) {
	case domain.ActionMove:
		var p api.DirectionPayload
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			return domain.Action{}, false
		}
		dir := domain.DirectionFromDelta(p.Dx, p.Dy)
		if dir == domain.DirNone {
			return domain.Action{}, false
		}
		return domain.MoveAction(dir), true
	case domain.ActionWait:
		return domain.WaitAction(), true
	case domain.ActionPickup:
		return domain.Action{Kind: domain.ActionPickup}, true
	default:
		return domain.Action{}, false
	}
}

// addLog добавляет сообщение в буфер до следующего снимка. Вызывается под h.mu.
func (h *Host) addLog(text, logType string) {
	h.logs = append(h.logs, api.LogEntry{
		ID:        xid.New().String(),
		Text:      text,
		Type:      logType,
		Timestamp: time.Now().UnixMilli(),
	})
}

// drainAndBroadcast осушает ходы NPC и рассылает свежий снимок.
// Вызывается под h.mu.
func (h *Host) drainAndBroadcast() {
	if _, err := h.engine.RunUntilInput(); err != nil {
		logger.Log.WithError(err).Error("Turn resolution aborted")
	}

	for _, s := range h.sessions {
		snap := h.buildSnapshot(s)
		snap.Logs = h.logs
		select {
		case s.Send <- snap:
		default:
			// Канал полон: клиент не успевает, снимок не критичен
		}
	}
	h.logs = nil
}

// buildSnapshot собирает полный снимок мира для одного клиента
func (h *Host) buildSnapshot(viewer *Session) api.ServerResponse {
	eng := h.engine

	resp := api.ServerResponse{
		Type:      "UPDATE",
		Tick:      eng.CurrentTime(),
		MyActorID: viewer.Actor.String(),
		Grid:      &api.GridMeta{Width: eng.Map.Width, Height: eng.Map.Height},
	}

	if head, _, ok := eng.NextActor(); ok {
		resp.ActiveActorID = head.String()
	}
	if waiting, err := eng.Registry.IsWaitingForInput(viewer.Actor); err == nil {
		resp.AwaitingInput = waiting
	}

	for y := 0; y < eng.Map.Height; y++ {
		for x := 0; x < eng.Map.Width; x++ {
			p := domain.Position{X: x, Y: y}
			tile := api.TileView{X: x, Y: y, Symbol: "."}
			if eng.Map.TerrainAt(p) == domain.TerrainWall {
				tile.Symbol = "#"
				tile.IsWall = true
			}
			resp.Map = append(resp.Map, tile)
		}
	}

	for _, id := range eng.Registry.Live() {
		view := api.ActorView{ID: id.String()}
		view.Name, _ = eng.Registry.Name(id)
		role, _ := eng.Registry.Role(id)
		view.Role = role.String()
		if role == domain.RolePlayer {
			view.Symbol = "@"
		} else {
			view.Symbol = "E"
		}
		if pos, ok := eng.Occupancy.PositionOf(id); ok {
			view.Pos.X = pos.X
			view.Pos.Y = pos.Y
		}
		view.NextTurnTick, _ = eng.Registry.NextTurnTime(id)
		resp.Actors = append(resp.Actors, view)
	}

	return resp
}
