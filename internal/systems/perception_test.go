package systems

import (
	"math"
	"math/rand"
	"testing"

	"deepfall-server/internal/domain"
)

func baseCfg() domain.PerceptionConfig {
	return domain.PerceptionConfig{}.Normalize()
}

func TestPerception_SpotEntersChase(t *testing.T) {
	// Сценарий из ТЗ: дистанция 5, радиус обнаружения 9,
	// чистый коридор. Один тик - и враг в погоне.
	l := createTestLayout(20, 8)
	player := testPlayer(12, 4)
	npc := testEnemy("e1", 7, 4)
	rng := rand.New(rand.NewSource(1))

	upd := UpdatePerception(npc, player, l, 0.1, rng, baseCfg())

	if npc.Perception.Mode != domain.ModeChase {
		t.Fatalf("mode = %s, want CHASE", npc.Perception.Mode)
	}
	if upd.Alert == nil {
		t.Fatal("spotting must emit an alert event")
	}
	if upd.Alert.SpotterID != "e1" {
		t.Errorf("alert spotter = %s", upd.Alert.SpotterID)
	}
	if upd.Alert.PlayerPos != player.Center() {
		t.Errorf("alert player pos = %+v, want %+v", upd.Alert.PlayerPos, player.Center())
	}
	if npc.Perception.LastSeenPlayerPos == nil || *npc.Perception.LastSeenPlayerPos != player.Center() {
		t.Error("last seen position must be the player's current position")
	}
	if npc.Perception.SearchTimer != baseCfg().SearchDuration {
		t.Errorf("search timer = %f, want max", npc.Perception.SearchTimer)
	}
	// Погоня начинается сразу: шаг в сторону игрока.
	if upd.Intent.Dx <= 0 {
		t.Errorf("chase step should head toward the player, dx=%f", upd.Intent.Dx)
	}
}

func TestPerception_NoSpotWithoutLOS(t *testing.T) {
	l := createTestLayout(20, 8)
	// Стена между врагом и игроком.
	for y := 1; y < 7; y++ {
		setRock(l, 10, y)
	}
	player := testPlayer(13, 4)
	npc := testEnemy("e1", 7, 4)
	rng := rand.New(rand.NewSource(1))

	UpdatePerception(npc, player, l, 0.1, rng, baseCfg())

	if npc.Perception.Mode != domain.ModeIdle {
		t.Errorf("mode = %s, want IDLE (no line of sight)", npc.Perception.Mode)
	}
}

func TestPerception_NoSpotOutOfRange(t *testing.T) {
	l := createTestLayout(40, 8)
	player := testPlayer(30, 4)
	npc := testEnemy("e1", 5, 4) // дистанция 25 > радиус 9
	rng := rand.New(rand.NewSource(1))

	UpdatePerception(npc, player, l, 0.1, rng, baseCfg())

	if npc.Perception.Mode != domain.ModeIdle {
		t.Errorf("mode = %s, want IDLE (player too far)", npc.Perception.Mode)
	}
}

func TestPerception_ChaseToSearchToIdle(t *testing.T) {
	l := createTestLayout(20, 8)
	player := testPlayer(12, 4)
	npc := testEnemy("e1", 7, 4)
	rng := rand.New(rand.NewSource(1))
	cfg := baseCfg()

	// 1. Замечаем.
	UpdatePerception(npc, player, l, 0.1, rng, cfg)
	if npc.Perception.Mode != domain.ModeChase {
		t.Fatal("setup failed: expected CHASE")
	}

	// 2. Игрок скрывается за стеной: следующий тик - SEARCH,
	// таймер на максимуме, последняя точка сохранена.
	for y := 1; y < 7; y++ {
		setRock(l, 10, y)
	}
	lastSeen := *npc.Perception.LastSeenPlayerPos
	UpdatePerception(npc, player, l, 0.1, rng, cfg)

	if npc.Perception.Mode != domain.ModeSearch {
		t.Fatalf("mode = %s, want SEARCH after losing sight", npc.Perception.Mode)
	}
	if npc.Perception.SearchTimer != cfg.SearchDuration {
		t.Errorf("search timer = %f, want configured maximum %f",
			npc.Perception.SearchTimer, cfg.SearchDuration)
	}
	if npc.Perception.LastSeenPlayerPos == nil || *npc.Perception.LastSeenPlayerPos != lastSeen {
		t.Error("last seen position must survive the transition")
	}

	// 3. Таймер истекает без переобнаружения - IDLE, память очищена.
	// Врага не двигаем, поэтому радиус "сдаться" не сработает раньше.
	for i := 0; i < 100; i++ {
		UpdatePerception(npc, player, l, 0.1, rng, cfg)
	}
	if npc.Perception.Mode != domain.ModeIdle {
		t.Fatalf("mode = %s, want IDLE after search timer decay", npc.Perception.Mode)
	}
	if npc.Perception.LastSeenPlayerPos != nil {
		t.Error("last seen position must be cleared on giving up")
	}
}

func TestPerception_SearchReacquire(t *testing.T) {
	l := createTestLayout(20, 8)
	player := testPlayer(12, 4)
	npc := testEnemy("e1", 7, 4)
	rng := rand.New(rand.NewSource(1))

	p := npc.EnsurePerception()
	p.Mode = domain.ModeSearch
	seen := domain.Vec2{X: 9, Y: 4}
	p.LastSeenPlayerPos = &seen
	p.SearchTimer = 3

	upd := UpdatePerception(npc, player, l, 0.1, rng, baseCfg())

	if p.Mode != domain.ModeChase {
		t.Fatalf("mode = %s, want CHASE on reacquire", p.Mode)
	}
	if upd.Alert == nil {
		t.Error("reacquire must broadcast an alert just like the first spot")
	}
}

func TestPerception_SearchGiveUpRadius(t *testing.T) {
	l := createTestLayout(30, 8)
	player := testPlayer(25, 4) // вне радиуса обнаружения
	npc := testEnemy("e1", 5, 4)
	rng := rand.New(rand.NewSource(1))

	p := npc.EnsurePerception()
	p.Mode = domain.ModeSearch
	// Последняя известная точка прямо под ногами.
	seen := npc.Center()
	p.LastSeenPlayerPos = &seen
	p.SearchTimer = 100 // таймер не при чем

	UpdatePerception(npc, player, l, 0.1, rng, baseCfg())

	if p.Mode != domain.ModeIdle {
		t.Errorf("mode = %s, want IDLE via give-up radius", p.Mode)
	}
	if p.LastSeenPlayerPos != nil {
		t.Error("give-up must clear last seen position")
	}
}

func TestPerception_PatrolStaysNearHome(t *testing.T) {
	l := createTestLayout(60, 60)
	player := testPlayer(55, 55) // далеко, не мешает
	npc := testEnemy("e1", 30, 30)
	rng := rand.New(rand.NewSource(7))
	cfg := baseCfg()

	home := npc.Perception.HomePos
	limitSq := (cfg.PatrolRadius + 1.0) * (cfg.PatrolRadius + 1.0)

	// Долгий прогон патруля: враг не должен уходить от дома
	// дальше радиуса (плюс небольшой допуск).
	for i := 0; i < 2000; i++ {
		upd := UpdatePerception(npc, player, l, 0.1, rng, cfg)
		TryMove(l, npc, upd.Intent.Dx, upd.Intent.Dy, nil)

		if d := npc.Center().DistanceSquaredTo(home); d > limitSq {
			t.Fatalf("tick %d: enemy strayed %.2f tiles from home",
				i, math.Sqrt(d))
		}
		if npc.Perception.Mode != domain.ModeIdle {
			t.Fatalf("tick %d: patrol must stay IDLE, got %s", i, npc.Perception.Mode)
		}
		// Патрульный шаг никогда не начинает бой.
		if (upd.Intent.Dx != 0 || upd.Intent.Dy != 0) && !upd.Intent.SuppressEncounter {
			t.Fatal("patrol movement must suppress encounters")
		}
	}
}

func TestPerception_DeadEnemySkipped(t *testing.T) {
	l := createTestLayout(20, 8)
	player := testPlayer(8, 4)
	npc := testEnemy("e1", 7, 4)
	npc.Stats.IsDead = true

	upd := UpdatePerception(npc, player, l, 0.1, rand.New(rand.NewSource(1)), baseCfg())

	if upd.Intent.Dx != 0 || upd.Intent.Dy != 0 || upd.Alert != nil {
		t.Error("dead enemies must produce no update at all")
	}
	if npc.Perception.Mode != domain.ModeIdle {
		t.Error("dead enemy state must not change")
	}
}

func TestPerception_LazyReinit(t *testing.T) {
	l := createTestLayout(40, 8)
	player := testPlayer(35, 4)
	npc := testEnemy("e1", 5, 4)
	npc.Perception = nil // "битый сейв"

	UpdatePerception(npc, player, l, 0.1, rand.New(rand.NewSource(1)), baseCfg())

	if npc.Perception == nil {
		t.Fatal("perception state must be lazily rebuilt")
	}
	if npc.Perception.Mode != domain.ModeIdle {
		t.Errorf("rebuilt state mode = %s, want IDLE", npc.Perception.Mode)
	}
	if npc.Perception.HomePos != npc.Center() {
		t.Error("rebuilt home must be the current position")
	}
}

func TestPropagateAlert(t *testing.T) {
	spotterPos := domain.Vec2{X: 10, Y: 10}
	playerPos := domain.Vec2{X: 12, Y: 10}
	event := domain.AlertEvent{
		SpotterID:  "spotter",
		SpotterPos: spotterPos,
		PlayerPos:  playerPos,
	}
	cfg := baseCfg() // AlertRadius = 7

	near := testEnemy("near", 13, 10)       // в радиусе от заметившего
	far := testEnemy("far", 30, 30)         // вне радиуса
	chasing := testEnemy("chasing", 12, 12) // уже в погоне
	chasing.Perception.Mode = domain.ModeChase
	dead := testEnemy("dead", 11, 11)
	dead.Stats.IsDead = true

	raised := PropagateAlert([]*domain.Entity{near, far, chasing, dead}, event, cfg)

	if raised != 1 {
		t.Errorf("raised = %d, want 1", raised)
	}
	if near.Perception.Mode != domain.ModeSearch {
		t.Errorf("near enemy mode = %s, want SEARCH", near.Perception.Mode)
	}
	if near.Perception.LastSeenPlayerPos == nil || *near.Perception.LastSeenPlayerPos != playerPos {
		t.Error("alerted enemy must inherit the spotted player position")
	}
	if near.Perception.SearchTimer != cfg.SearchDuration {
		t.Error("alerted enemy search timer must be reset to maximum")
	}
	if far.Perception.Mode != domain.ModeIdle {
		t.Error("enemy outside alert radius must stay IDLE")
	}
	if chasing.Perception.Mode != domain.ModeChase {
		t.Error("chasing enemy must not be downgraded to SEARCH")
	}
	if dead.Perception.Mode != domain.ModeIdle {
		t.Error("dead enemy must be skipped")
	}
}

// Радиус тревоги меряется от заметившего, не от игрока.
func TestPropagateAlert_SpotterCentered(t *testing.T) {
	event := domain.AlertEvent{
		SpotterID:  "spotter",
		SpotterPos: domain.Vec2{X: 10, Y: 10},
		PlayerPos:  domain.Vec2{X: 40, Y: 40},
	}

	// Рядом с ИГРОКОМ, далеко от заметившего.
	nearPlayer := testEnemy("near_player", 41, 41)
	// Рядом с ЗАМЕТИВШИМ, далеко от игрока.
	nearSpotter := testEnemy("near_spotter", 12, 10)

	PropagateAlert([]*domain.Entity{nearPlayer, nearSpotter}, event, baseCfg())

	if nearPlayer.Perception.Mode != domain.ModeIdle {
		t.Error("enemy near the player (but far from spotter) must NOT be alerted")
	}
	if nearSpotter.Perception.Mode != domain.ModeSearch {
		t.Error("enemy near the spotter must be alerted")
	}
}
