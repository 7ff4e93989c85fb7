package agent

import (
	"encoding/json"
	"math"
	"math/rand"
	"time"

	"deepfall-server/internal/domain"
	"deepfall-server/internal/engine"
	"deepfall-server/pkg/api"
	"deepfall-server/pkg/logger"
)

// Bot - headless-агент для прогонов без клиента (soak-тесты).
// Подключается к движку так же, как живой игрок через WebSocket:
// подписывается в хабе, получает снапшоты и шлет обычные команды.
// Никакого доступа к внутренностям симуляции у него нет - бот
// видит ровно то, что видел бы браузер.
//
// Поведение нарочно примитивное: случайная прогулка по известным
// проходимым клеткам, на лестнице вниз - иногда спуск. Этого
// достаточно, чтобы за ночь прогона облазить десяток этажей.
type Bot struct {
	ClientID string
	Sim      *engine.SimService
	Inbox    chan api.ServerResponse

	rng *rand.Rand

	// Последний снапшот: по нему выбирается следующий шаг.
	lastState *api.ServerResponse
}

func NewBot(clientID string, sim *engine.SimService) *Bot {
	logger.Log.WithField("client_id", clientID).Info("Creating headless agent")
	return &Bot{
		ClientID: clientID,
		Sim:      sim,
		Inbox:    sim.Hub.Register(clientID),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run запускает цикл жизни бота. Должен быть запущен в горутине.
// Выход - по закрытию Inbox (Unregister на стороне хаба).
func (b *Bot) Run() {
	defer b.Sim.Hub.Unregister(b.ClientID)

	// Снапшоты приходят только на тиках с изменениями, поэтому
	// у бота собственный ритм: думает он по таймеру, а не по инбоксу.
	think := time.NewTicker(300 * time.Millisecond)
	defer think.Stop()

	b.sendCommand("INIT", nil)

	for {
		select {
		case state, ok := <-b.Inbox:
			if !ok {
				logger.Log.WithField("client_id", b.ClientID).Info("Agent shut down")
				return
			}
			b.lastState = &state

		case <-think.C:
			b.makeMove()
		}
	}
}

// makeMove - мозг бота: один шаг по последнему известному состоянию.
func (b *Bot) makeMove() {
	state := b.lastState
	if state == nil {
		return
	}

	me := b.findSelf(state)
	if me == nil {
		return
	}

	// Стоим на лестнице - иногда спускаемся глубже.
	if b.standsOn(state, me, "stairs") && b.rng.Float64() < 0.3 {
		b.sendCommand("DESCEND", nil)
		return
	}

	// Случайная прогулка: предпочитаем направления, про которые
	// знаем, что там проходимо. Неизвестность тоже иногда пробуем -
	// так открывается новая карта.
	dirs := [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	b.rng.Shuffle(len(dirs), func(i, j int) { dirs[i], dirs[j] = dirs[j], dirs[i] })

	mx := int(math.Floor(me.Pos.X + 0.4))
	my := int(math.Floor(me.Pos.Y + 0.4))

	for _, d := range dirs {
		if b.knownWalkable(state, mx+d[0], my+d[1]) {
			b.sendMove(d[0], d[1])
			return
		}
	}
	// Вокруг сплошная неизвестность - шагаем наугад.
	b.sendMove(dirs[0][0], dirs[0][1])
}

// findSelf ищет сущность игрока в снапшоте.
func (b *Bot) findSelf(state *api.ServerResponse) *api.EntityView {
	for i := range state.Entities {
		if state.Entities[i].ID == state.MyEntityID {
			return &state.Entities[i]
		}
	}
	return nil
}

// standsOn - стоит ли игрок на тайле данного вида.
func (b *Bot) standsOn(state *api.ServerResponse, me *api.EntityView, kind string) bool {
	mx := int(math.Floor(me.Pos.X + 0.4))
	my := int(math.Floor(me.Pos.Y + 0.4))
	for _, tv := range state.Map {
		if tv.X == mx && tv.Y == my {
			return tv.Kind == kind
		}
	}
	return false
}

// knownWalkable - известна ли клетка как проходимая.
// Неисследованные клетки в снапшот не попадают, для них false.
func (b *Bot) knownWalkable(state *api.ServerResponse, x, y int) bool {
	for _, tv := range state.Map {
		if tv.X == x && tv.Y == y {
			return tv.IsWalkable
		}
	}
	return false
}

// --- Хелперы для отправки команд ---

func (b *Bot) sendCommand(action string, payload interface{}) {
	cmd := api.ClientCommand{
		Action: action,
		Token:  b.ClientID,
	}
	if payload != nil {
		payloadBytes, err := json.Marshal(payload)
		if err != nil {
			logger.Log.WithError(err).Warn("Agent payload marshal failed")
			return
		}
		cmd.Payload = payloadBytes
	}
	b.Sim.ProcessCommand(cmd)
}

func (b *Bot) sendMove(dx, dy int) {
	b.sendCommand(domain.ActionMove.String(), api.DirectionPayload{Dx: dx, Dy: dy})
}
