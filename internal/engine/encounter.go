package engine

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"deepfall-server/internal/domain"
	"deepfall-server/pkg/logger"
)

// EncounterStarter - граница между симуляцией и боевой подсистемой.
// Симуляция только сообщает, КТО дотронулся до игрока; чем кончится
// бой, решает внешняя реализация.
type EncounterStarter interface {
	StartEncounter(triggering *domain.Entity)
}

// logEncounterSink - реализация по умолчанию: пишет в журнал,
// снимает врага с этажа (его "съел" бой) и взводит паузу, чтобы
// толпа не начала десять боев за один тик.
type logEncounterSink struct {
	svc *SimService
}

func (e *logEncounterSink) StartEncounter(triggering *domain.Entity) {
	s := e.svc

	if triggering.Stats != nil {
		triggering.Stats.IsDead = true
	}
	s.currentFloor().removeEnemy(triggering.ID)
	s.graceTimer = s.Cfg.EncounterGrace

	s.AddLog(fmt.Sprintf("%s настиг вас! Бой начинается.", triggering.Name), "ENCOUNTER")

	logger.Log.WithFields(logrus.Fields{
		"enemy_id": triggering.ID,
		"depth":    s.Depth,
	}).Info("Encounter started")
}
