package sim

import (
	"github.com/charmbracelet/log"
)

// LogListener writes events to a structured logger. Entity churn goes to
// debug, level transitions to info.
type LogListener struct {
	logger *log.Logger
}

// NewLogListener returns a listener logging to logger.
func NewLogListener(logger *log.Logger) *LogListener {
	return &LogListener{logger: logger}
}

func (l *LogListener) OnEvent(ev Event) {
	switch e := ev.(type) {
	case LevelStarted:
		l.logger.Info("level started", "level", e.Level, "title", e.View.Title)
	case EntitySpawned:
		l.logger.Debug("spawned", "kind", e.Kind, "id", e.ID, "x", e.Bounds.X, "y", e.Bounds.Y)
	case EntityRemoved:
		l.logger.Debug("removed", "kind", e.Kind, "id", e.ID)
	case HealthChanged:
		l.logger.Debug("health changed", "health", e.Health)
	case KillsChanged:
		l.logger.Debug("kills changed", "kills", e.Kills)
	case ShieldChanged:
		l.logger.Debug("shield changed", "shielded", e.Shielded)
	case AdvanceToLevel:
		l.logger.Info("level complete", "level", e.From, "next", e.Next)
	case LevelWon:
		l.logger.Info("campaign won", "level", e.Level)
	case LevelLost:
		l.logger.Info("campaign lost", "level", e.Level)
	}
}
