package engine

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"deepfall-server/internal/domain"
	"deepfall-server/internal/network"
	"deepfall-server/internal/systems"
	"deepfall-server/pkg/api"
	"deepfall-server/pkg/logger"
)

// PlayerID - известный ID героя для удобства отладки.
const PlayerID = "hero_1"

// SimService - ядро симуляции. Все состояние принадлежит
// единственной горутине цикла: внешний мир общается с ней
// исключительно через CommandChan и Hub.
type SimService struct {
	Cfg Config

	// Floors - кэш сгенерированных этажей по глубине.
	// Этаж живет, пока его явно не сбросили.
	Floors map[int]*Floor
	Depth  int

	Player *domain.Entity

	Logs []api.LogEntry
	Tick int

	CommandChan chan domain.InternalCommand
	Hub         *network.Broadcaster

	// Encounter - приемник начала боя. Сам бой сервер не считает.
	Encounter EncounterStarter

	// graceTimer > 0 - столкновения временно не засчитываются.
	graceTimer float64

	// visionDirty - поле зрения пересчитывается только после
	// перемещения игрока, не каждый кадр.
	visionDirty bool

	// revealAll - отладочная политика "показать весь этаж".
	revealAll bool

	// dirty - на этом тике что-то изменилось, нужен снапшот.
	dirty bool

	handlers map[domain.ActionType]handlerFunc

	stopChan chan struct{}
}

// NewService генерирует нулевой этаж, создает героя в стартовой
// комнате и собирает сервис. Цикл НЕ запускается - см. Start.
func NewService(cfg Config) *SimService {
	s := &SimService{
		Cfg:         cfg,
		Floors:      make(map[int]*Floor),
		Logs:        []api.LogEntry{},
		CommandChan: make(chan domain.InternalCommand, 100),
		Hub:         network.NewBroadcaster(),
		visionDirty: true,
		dirty:       true,
		stopChan:    make(chan struct{}),
	}
	s.Encounter = &logEncounterSink{svc: s}
	s.registerHandlers()

	floor := s.floorAt(0)

	s.Player = &domain.Entity{
		ID:             PlayerID,
		Type:           domain.EntityTypePlayer,
		Name:           "Герой",
		Size:           domain.Vec2{X: 0.8, Y: 0.8},
		Speed:          3.0,
		BlocksMovement: true,
		Render:         &domain.RenderComponent{Symbol: "@", Color: "#22D3EE"},
		Stats:          &domain.StatsComponent{HP: 100, MaxHP: 100},
	}
	s.placePlayerAt(startTile(floor.Layout))

	logger.Log.WithFields(logrus.Fields{
		"seed":  cfg.Seed,
		"depth": 0,
	}).Info("Simulation initialized")

	return s
}

// Start запускает игровой цикл в отдельной горутине.
func (s *SimService) Start() {
	go s.runLoop()
}

// Stop останавливает цикл. Повторный вызов паникует - это ошибка
// вызывающего.
func (s *SimService) Stop() {
	close(s.stopChan)
}

// ProcessCommand принимает команду от внешнего мира (WebSocket, бот).
func (s *SimService) ProcessCommand(externalCmd api.ClientCommand) {
	actionType := domain.ParseAction(externalCmd.Action)
	if actionType == domain.ActionUnknown {
		logger.Log.WithField("action", externalCmd.Action).Warn("Unknown action")
		return
	}

	s.CommandChan <- domain.InternalCommand{
		Action:  actionType,
		Token:   externalCmd.Token,
		Payload: externalCmd.Payload,
	}
}

// --- GAME LOOP ---

func (s *SimService) runLoop() {
	logger.Log.WithField("tick_interval", s.Cfg.TickInterval).Info("Simulation loop started")

	ticker := time.NewTicker(s.Cfg.TickInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-s.stopChan:
			logger.Log.Info("Simulation loop stopped")
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			s.step(dt)
		}
	}
}

// step - один тик симуляции: команды, таймеры, зрение, враги,
// снапшот. Вынесен из runLoop, чтобы тесты гоняли тики руками.
func (s *SimService) step(dt float64) {
	s.Tick++

	s.drainCommands()

	if s.graceTimer > 0 {
		s.graceTimer -= dt
	}

	if s.visionDirty {
		s.recomputeVision()
		s.visionDirty = false
		s.dirty = true
	}

	s.stepEnemies(dt)

	if s.dirty && s.Hub.SubscriberCount() > 0 {
		s.publishUpdate()
	}
	s.dirty = false
}

func (s *SimService) drainCommands() {
	for {
		select {
		case cmd := <-s.CommandChan:
			s.handleCommand(cmd)
		default:
			return
		}
	}
}

// stepEnemies прокручивает восприятие и движение врагов текущего
// этажа. Итерация идет по локальному срезу: бой может убрать врага
// прямо во время обхода, убранные пропускаются.
func (s *SimService) stepEnemies(dt float64) {
	floor := s.currentFloor()

	snapshot := append([]*domain.Entity(nil), floor.Enemies...)
	for _, npc := range snapshot {
		if !floor.hasEnemy(npc.ID) {
			continue // убран боем на этом же тике
		}

		prevMode := npc.EnsurePerception().Mode
		upd := systems.UpdatePerception(npc, s.Player, floor.Layout, dt, floor.Rng, s.Cfg.Perception)

		if upd.Alert != nil {
			raised := systems.PropagateAlert(floor.Enemies, *upd.Alert, s.Cfg.Perception)
			s.AddLog(fmt.Sprintf("%s заметил вас!", npc.Name), "ALERT")
			if raised > 0 {
				s.AddLog(fmt.Sprintf("Тревога: врагов поднято - %d", raised), "ALERT")
			}
			s.dirty = true
		}

		if upd.Intent.Dx != 0 || upd.Intent.Dy != 0 {
			res := systems.TryMove(floor.Layout, npc, upd.Intent.Dx, upd.Intent.Dy, s.blockersFor(npc, floor))
			if res.Moved {
				s.dirty = true
			}
		}
		if npc.Perception.Mode != prevMode {
			s.dirty = true
		}

		// Столкновение с игроком = начало боя. Патруль и пауза
		// после прошлого боя столкновением не считаются.
		if !upd.Intent.SuppressEncounter && s.graceTimer <= 0 &&
			npc.Bounds().Intersects(s.Player.Bounds()) {
			s.Encounter.StartEncounter(npc)
			s.dirty = true
		}
	}
}

// switchFloor переставляет игрока на этаж depth. Спустились - стоим
// на верхней лестнице нового этажа, поднялись - на нижней.
func (s *SimService) switchFloor(depth int) {
	down := depth > s.Depth
	s.Depth = depth
	floor := s.floorAt(depth)

	if down {
		s.placePlayerAt(floor.Layout.UpStairs)
	} else {
		s.placePlayerAt(floor.Layout.DownStairs)
	}

	// Передышка на осмотреться: враг у лестницы не начинает бой
	// в кадр прибытия.
	s.graceTimer = s.Cfg.EncounterGrace
	s.visionDirty = true
	s.dirty = true

	logger.Log.WithFields(logrus.Fields{
		"depth":   depth,
		"enemies": len(floor.Enemies),
	}).Info("Floor switched")
}

// resetFloor выбрасывает текущий этаж из кэша и генерирует заново
// (тот же сид - та же карта, но враги и туман войны свежие).
func (s *SimService) resetFloor() {
	delete(s.Floors, s.Depth)
	floor := s.floorAt(s.Depth)
	s.placePlayerAt(startTile(floor.Layout))

	s.graceTimer = s.Cfg.EncounterGrace
	s.visionDirty = true
	s.dirty = true
	s.AddLog("Этаж сброшен.", "INFO")
}

// floorAt возвращает этаж из кэша, при необходимости генерируя.
func (s *SimService) floorAt(depth int) *Floor {
	if f, ok := s.Floors[depth]; ok {
		return f
	}
	f := buildFloor(depth, s.Cfg.Seed, s.Cfg.Gen)
	s.Floors[depth] = f
	return f
}

func (s *SimService) currentFloor() *Floor {
	return s.floorAt(s.Depth)
}

// placePlayerAt центрирует хитбокс игрока в клетке.
func (s *SimService) placePlayerAt(tile domain.Position) {
	s.Player.Pos = domain.Vec2{
		X: float64(tile.X) + (1-s.Player.Size.X)/2,
		Y: float64(tile.Y) + (1-s.Player.Size.Y)/2,
	}
	s.Player.Depth = s.Depth
}

func (s *SimService) recomputeVision() {
	floor := s.currentFloor()
	policy := systems.PolicyNormal
	if s.revealAll {
		policy = systems.PolicyRevealAll
	} else {
		// Выключенный тумблер возвращает туман: explored остается,
		// но "вижу сейчас" снова считается честно.
		floor.Layout.Visibility.Revealed = false
	}
	systems.ComputeVisibility(floor.Layout, floor.Layout.Visibility,
		s.Player.TilePos(), s.Cfg.VisionRadius, policy)
}

// SetRevealAll включает/выключает отладочную политику зрения.
// Вызывается из debug-ручек; применится на следующем тике.
func (s *SimService) SetRevealAll(on bool) {
	s.revealAll = on
	s.visionDirty = true
}

// blockersFor - остальные враги этажа. Игрок в список НЕ входит:
// догоняющий должен иметь право наложиться на игрока, иначе
// столкновение (и начало боя) физически недостижимо.
func (s *SimService) blockersFor(npc *domain.Entity, floor *Floor) []*domain.Entity {
	blockers := make([]*domain.Entity, 0, len(floor.Enemies))
	for _, e := range floor.Enemies {
		if e.ID != npc.ID {
			blockers = append(blockers, e)
		}
	}
	return blockers
}

func (s *SimService) AddLog(text, logType string) {
	s.Logs = append(s.Logs, api.LogEntry{
		ID:        fmt.Sprintf("%d", time.Now().UnixNano()),
		Text:      text,
		Type:      logType,
		Timestamp: time.Now().UnixMilli(),
	})
	s.dirty = true
}

// publishUpdate рассылает снапшот всем подписчикам и очищает логи.
func (s *SimService) publishUpdate() {
	state := s.BuildState()
	s.Hub.Broadcast(*state)
	s.Logs = []api.LogEntry{}
}

// --- helpers ---

func (f *Floor) hasEnemy(id string) bool {
	for _, e := range f.Enemies {
		if e.ID == id {
			return true
		}
	}
	return false
}

// removeEnemy убирает врага из этажа. Отсутствующий ID - no-op.
func (f *Floor) removeEnemy(id string) {
	for i, e := range f.Enemies {
		if e.ID == id {
			f.Enemies = append(f.Enemies[:i], f.Enemies[i+1:]...)
			return
		}
	}
}

// startTile - клетка появления игрока: центр стартовой комнаты,
// для вырожденной раскладки - верхняя лестница.
func startTile(layout *domain.LevelLayout) domain.Position {
	if sr := layout.StartRoom(); sr != nil {
		return sr.Center()
	}
	return layout.UpStairs
}

func clampDir(d int) int {
	if d > 1 {
		return 1
	}
	if d < -1 {
		return -1
	}
	return d
}
