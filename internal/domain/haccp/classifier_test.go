package haccp

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/haccp-pro/internal/domain/entity"
)

func fecha(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestClassify_EstadosSegunDiasRestantes(t *testing.T) {
	c := NewClassifier(DefaultThresholds())
	now := *fecha("2025-06-10")

	tests := []struct {
		name   string
		expiry *time.Time
		want   entity.BatchStatus
	}{
		{"sin fecha de caducidad es ok", nil, entity.BatchOK},
		{"caducado ayer", fecha("2025-06-09"), entity.BatchExpired},
		{"caduca hoy es critical", fecha("2025-06-10"), entity.BatchCritical},
		{"caduca en 1 dia es critical", fecha("2025-06-11"), entity.BatchCritical},
		{"caduca en 3 dias es critical (limite)", fecha("2025-06-13"), entity.BatchCritical},
		{"caduca en 4 dias es warning", fecha("2025-06-14"), entity.BatchWarning},
		{"caduca en 7 dias es warning (limite)", fecha("2025-06-17"), entity.BatchWarning},
		{"caduca en 8 dias es ok", fecha("2025-06-18"), entity.BatchOK},
		{"caduca en un mes es ok", fecha("2025-07-10"), entity.BatchOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.expiry, now))
		})
	}
}

func TestClassify_UmbralesPersonalizados(t *testing.T) {
	c := NewClassifier(Thresholds{CriticalDays: 1, WarningDays: 2})
	now := *fecha("2025-06-10")

	assert.Equal(t, entity.BatchCritical, c.Classify(fecha("2025-06-11"), now))
	assert.Equal(t, entity.BatchWarning, c.Classify(fecha("2025-06-12"), now))
	assert.Equal(t, entity.BatchOK, c.Classify(fecha("2025-06-13"), now))
}

func TestNewClassifier_UmbralesInvalidosCaenAlDefault(t *testing.T) {
	c := NewClassifier(Thresholds{CriticalDays: 10, WarningDays: 2})
	assert.Equal(t, DefaultThresholds(), c.Thresholds())

	c = NewClassifier(Thresholds{CriticalDays: -1, WarningDays: 7})
	assert.Equal(t, DefaultThresholds(), c.Thresholds())
}

func TestDaysUntil_TruncaADiasNaturales(t *testing.T) {
	// 23:59 de hoy a 00:01 de mañana sigue siendo 1 día natural
	now := time.Date(2025, 6, 10, 23, 59, 0, 0, time.UTC)
	expiry := time.Date(2025, 6, 11, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 1, DaysUntil(now, expiry))

	// mismo día a cualquier hora son 0 días
	expiry = time.Date(2025, 6, 10, 0, 0, 1, 0, time.UTC)
	assert.Equal(t, 0, DaysUntil(now, expiry))
}

func TestApply_EsIdempotente(t *testing.T) {
	c := NewClassifier(DefaultThresholds())
	now := *fecha("2025-06-10")

	b := &entity.Batch{
		Quantity:          decimal.NewFromInt(10),
		RemainingQuantity: decimal.NewFromInt(10),
		ExpiryDate:        fecha("2025-06-12"),
		Status:            entity.BatchOK,
	}

	changed := c.Apply(b, now)
	assert.True(t, changed)
	assert.Equal(t, entity.BatchCritical, b.Status)

	// segunda pasada sobre el mismo estado no cambia nada
	changed = c.Apply(b, now)
	assert.False(t, changed)
	assert.Equal(t, entity.BatchCritical, b.Status)
}

func TestApply_EditarCaducidadReclasifica(t *testing.T) {
	c := NewClassifier(DefaultThresholds())
	now := *fecha("2025-06-10")

	b := &entity.Batch{ExpiryDate: fecha("2025-06-11"), Status: entity.BatchOK}
	c.Apply(b, now)
	assert.Equal(t, entity.BatchCritical, b.Status)

	// corregir la fecha a un mes vista devuelve el lote a ok
	b.ExpiryDate = fecha("2025-07-11")
	c.Apply(b, now)
	assert.Equal(t, entity.BatchOK, b.Status)
}
