// Package haccp contiene la lógica pura de clasificación de lotes por
// proximidad de caducidad. No depende de infraestructura.
package haccp

import (
	"time"

	"github.com/tu-usuario/haccp-pro/internal/domain/entity"
)

// Thresholds umbrales de clasificación en días naturales.
// Invariante: 0 <= CriticalDays <= WarningDays.
type Thresholds struct {
	CriticalDays int
	WarningDays  int
}

// DefaultThresholds umbrales por defecto: crítico a 3 días, aviso a 7.
func DefaultThresholds() Thresholds {
	return Thresholds{CriticalDays: 3, WarningDays: 7}
}

// Classifier clasifica lotes según su fecha de caducidad.
type Classifier struct {
	thresholds Thresholds
}

// NewClassifier crea un clasificador. Umbrales inválidos caen a los valores por defecto.
func NewClassifier(t Thresholds) *Classifier {
	if t.CriticalDays < 0 || t.WarningDays < t.CriticalDays {
		t = DefaultThresholds()
	}
	return &Classifier{thresholds: t}
}

// Thresholds devuelve los umbrales en uso.
func (c *Classifier) Thresholds() Thresholds {
	return c.thresholds
}

// DaysUntil devuelve los días naturales entre now y expiry (ambos truncados
// a medianoche local). Negativo si expiry ya pasó; 0 si caduca hoy.
func DaysUntil(now, expiry time.Time) int {
	nowDay := truncateToDay(now)
	expDay := truncateToDay(expiry)
	return int(expDay.Sub(nowDay).Hours() / 24)
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Classify devuelve el estado de un lote dada su fecha de caducidad.
// Sin fecha de caducidad el lote es "ok" (producto no perecedero).
// La clasificación es idempotente: depende solo de expiry y now.
func (c *Classifier) Classify(expiry *time.Time, now time.Time) entity.BatchStatus {
	if expiry == nil {
		return entity.BatchOK
	}
	days := DaysUntil(now, *expiry)
	switch {
	case days < 0:
		return entity.BatchExpired
	case days <= c.thresholds.CriticalDays:
		return entity.BatchCritical
	case days <= c.thresholds.WarningDays:
		return entity.BatchWarning
	default:
		return entity.BatchOK
	}
}

// Apply recalcula y asigna el estado del lote. Devuelve true si cambió.
func (c *Classifier) Apply(b *entity.Batch, now time.Time) bool {
	status := c.Classify(b.ExpiryDate, now)
	if b.Status == status {
		return false
	}
	b.Status = status
	return true
}
