package inventory_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/haccp-pro/internal/application/dto"
	"github.com/tu-usuario/haccp-pro/internal/application/inventory"
	"github.com/tu-usuario/haccp-pro/internal/domain"
	"github.com/tu-usuario/haccp-pro/internal/domain/entity"
	"github.com/tu-usuario/haccp-pro/internal/domain/haccp"
	"github.com/tu-usuario/haccp-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeBatchRepo struct {
	batches map[string]*entity.Batch
}

func newFakeBatchRepo() *fakeBatchRepo {
	return &fakeBatchRepo{batches: map[string]*entity.Batch{}}
}

func (f *fakeBatchRepo) Create(_ context.Context, b *entity.Batch) error {
	cp := *b
	f.batches[b.ID] = &cp
	return nil
}

func (f *fakeBatchRepo) GetByID(_ context.Context, id string) (*entity.Batch, error) {
	b, ok := f.batches[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBatchRepo) GetForUpdate(ctx context.Context, id string) (*entity.Batch, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeBatchRepo) ListByLocation(_ context.Context, locationID string, filter repository.BatchFilter) ([]entity.Batch, error) {
	var out []entity.Batch
	for _, b := range f.batches {
		if b.LocationID != locationID {
			continue
		}
		if filter.OnlyWithStock && !b.HasStock() {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		if filter.ProductID != nil && b.ProductID != *filter.ProductID {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeBatchRepo) ListAlerts(_ context.Context, locationID string) ([]entity.Batch, error) {
	var out []entity.Batch
	for _, b := range f.batches {
		if b.LocationID == locationID && b.HasStock() && b.Status != entity.BatchOK {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBatchRepo) Update(_ context.Context, b *entity.Batch) error {
	cp := *b
	f.batches[b.ID] = &cp
	return nil
}

func (f *fakeBatchRepo) Delete(_ context.Context, id string) error {
	delete(f.batches, id)
	return nil
}

func (f *fakeBatchRepo) CountByStatus(_ context.Context, locationID string) ([]repository.StatusCount, error) {
	counts := map[entity.BatchStatus]int{}
	for _, b := range f.batches {
		if b.LocationID == locationID && b.HasStock() {
			counts[b.Status]++
		}
	}
	var out []repository.StatusCount
	for s, n := range counts {
		out = append(out, repository.StatusCount{Status: s, Count: n})
	}
	return out, nil
}

func (f *fakeBatchRepo) CountCreatedBetween(_ context.Context, _ string, _, _ time.Time) (int, error) {
	return 0, nil
}

func (f *fakeBatchRepo) CountAlertsBetween(_ context.Context, _ string, _, _ time.Time) ([]repository.StatusCount, error) {
	return nil, nil
}

func (f *fakeBatchRepo) RefreshStatuses(_ context.Context, locationID string, now time.Time, criticalDays, warningDays int) (int64, error) {
	cls := haccp.NewClassifier(haccp.Thresholds{CriticalDays: criticalDays, WarningDays: warningDays})
	var changed int64
	for _, b := range f.batches {
		if b.LocationID == locationID && cls.Apply(b, now) {
			changed++
		}
	}
	return changed, nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*entity.Product{}}
}

func (f *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) GetByName(_ context.Context, businessID, name string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.BusinessID == businessID && strings.EqualFold(p.Name, name) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) ListByBusiness(_ context.Context, businessID string) ([]entity.Product, error) {
	var out []entity.Product
	for _, p := range f.products {
		if p.BusinessID == businessID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id string) error {
	delete(f.products, id)
	return nil
}

type fakeLocationRepo struct {
	locations map[string]*entity.Location
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{locations: map[string]*entity.Location{}}
}

func (f *fakeLocationRepo) Create(_ context.Context, l *entity.Location) error {
	cp := *l
	f.locations[l.ID] = &cp
	return nil
}

func (f *fakeLocationRepo) GetByID(_ context.Context, id string) (*entity.Location, error) {
	l, ok := f.locations[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (f *fakeLocationRepo) ListByBusiness(_ context.Context, businessID string) ([]entity.Location, error) {
	var out []entity.Location
	for _, l := range f.locations {
		if l.BusinessID == businessID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeLocationRepo) ListAccessible(context.Context, string) ([]entity.Location, error) {
	return nil, nil
}

func (f *fakeLocationRepo) Update(context.Context, *entity.Location) error { return nil }
func (f *fakeLocationRepo) Delete(context.Context, string) error           { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Escenario común
// ──────────────────────────────────────────────────────────────────────────────

const (
	locCocina  = "loc-cocina"
	bizCocina  = "biz-cocina"
	prodMerluz = "prod-merluza"
)

func setup(t *testing.T) (*inventory.UseCase, *fakeBatchRepo, *fakeProductRepo, *fakeLocationRepo) {
	t.Helper()
	batchRepo := newFakeBatchRepo()
	productRepo := newFakeProductRepo()
	locationRepo := newFakeLocationRepo()
	now := time.Now()
	locationRepo.locations[locCocina] = &entity.Location{
		ID:         locCocina,
		BusinessID: bizCocina,
		Name:       "Cocina central",
		Type:       entity.LocationRestaurant,
		IsActive:   true,
	}
	productRepo.products[prodMerluz] = &entity.Product{
		ID:          prodMerluz,
		BusinessID:  bizCocina,
		Name:        "Merluza fresca",
		Unit:        "kg",
		StorageType: entity.StorageRefrigerated,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	uc := inventory.NewUseCase(batchRepo, productRepo, locationRepo, haccp.NewClassifier(haccp.DefaultThresholds()))
	return uc, batchRepo, productRepo, locationRepo
}

func dateStr(d time.Time) *string {
	s := d.Format("2006-01-02")
	return &s
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateBatch_ClasificaAlAlta(t *testing.T) {
	uc, _, _, _ := setup(t)

	// Caduca en 2 días: entra directamente en critical.
	lote := "L-2026-014"
	out, err := uc.CreateBatch(context.Background(), locCocina, dto.CreateBatchRequest{
		ProductID:   prodMerluz,
		Quantity:    decimal.NewFromInt(5),
		BatchNumber: &lote,
		ExpiryDate:  dateStr(time.Now().AddDate(0, 0, 2)),
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, "critical", out.Status)
	assert.True(t, decimal.NewFromInt(5).Equal(out.RemainingQuantity),
		"la cantidad restante inicial debe igualar la cantidad de alta")
	require.NotNil(t, out.DaysToExpiry)
	assert.Equal(t, 2, *out.DaysToExpiry)

	// el lote hereda unidad y conservación del producto
	assert.Equal(t, "kg", out.Unit)
	assert.Equal(t, "refrigerated", out.StorageType)
	require.NotNil(t, out.BatchNumber)
	assert.Equal(t, lote, *out.BatchNumber)
}

func TestCreateBatch_SinFechaQuedaOK(t *testing.T) {
	uc, _, _, _ := setup(t)

	out, err := uc.CreateBatch(context.Background(), locCocina, dto.CreateBatchRequest{
		ProductID: prodMerluz,
		Quantity:  decimal.NewFromInt(3),
	})
	require.NoError(t, err)

	assert.Equal(t, "ok", out.Status, "sin fecha de caducidad no hay alerta")
	assert.Nil(t, out.DaysToExpiry)
}

func TestCreateBatch_ProductoDeOtroNegocio(t *testing.T) {
	uc, _, productRepo, _ := setup(t)
	productRepo.products["prod-ajeno"] = &entity.Product{
		ID: "prod-ajeno", BusinessID: "biz-otro", Name: "Atún", Unit: "kg",
	}

	_, err := uc.CreateBatch(context.Background(), locCocina, dto.CreateBatchRequest{
		ProductID: "prod-ajeno",
		Quantity:  decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateBatch_ProductoCompartidoEntreLocalesDelNegocio(t *testing.T) {
	uc, _, _, locationRepo := setup(t)
	locationRepo.locations["loc-terraza"] = &entity.Location{
		ID: "loc-terraza", BusinessID: bizCocina, Name: "Terraza", Type: entity.LocationBar, IsActive: true,
	}

	// el catálogo es del negocio: otro local hermano puede dar de alta
	// lotes del mismo producto
	out, err := uc.CreateBatch(context.Background(), "loc-terraza", dto.CreateBatchRequest{
		ProductID: prodMerluz,
		Quantity:  decimal.NewFromInt(2),
	})
	require.NoError(t, err)
	assert.Equal(t, "loc-terraza", out.LocationID)
	assert.Equal(t, prodMerluz, out.ProductID)
}

func TestCreateBatch_CantidadNoPositiva(t *testing.T) {
	uc, _, _, _ := setup(t)

	_, err := uc.CreateBatch(context.Background(), locCocina, dto.CreateBatchRequest{
		ProductID: prodMerluz,
		Quantity:  decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConsume_DescuentaYNoBajaDeCero(t *testing.T) {
	uc, _, _, _ := setup(t)
	created, err := uc.CreateBatch(context.Background(), locCocina, dto.CreateBatchRequest{
		ProductID: prodMerluz,
		Quantity:  decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	out, err := uc.Consume(context.Background(), locCocina, created.ID, dto.ConsumeBatchRequest{
		Quantity: decimal.NewFromInt(4),
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(6).Equal(out.RemainingQuantity))

	// Consumir más de lo que queda deja el lote a cero, no en negativo.
	out, err = uc.Consume(context.Background(), locCocina, created.ID, dto.ConsumeBatchRequest{
		Quantity: decimal.NewFromInt(50),
	})
	require.NoError(t, err)
	assert.True(t, out.RemainingQuantity.IsZero(),
		"la cantidad restante nunca baja de cero")

	// Un lote sin stock ya no admite consumo.
	_, err = uc.Consume(context.Background(), locCocina, created.ID, dto.ConsumeBatchRequest{
		Quantity: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestUpdateExpiry_Reclasifica(t *testing.T) {
	uc, _, _, _ := setup(t)
	created, err := uc.CreateBatch(context.Background(), locCocina, dto.CreateBatchRequest{
		ProductID:  prodMerluz,
		Quantity:   decimal.NewFromInt(2),
		ExpiryDate: dateStr(time.Now().AddDate(0, 0, 30)),
	})
	require.NoError(t, err)
	require.Equal(t, "ok", created.Status)

	// Corregir a una fecha ya pasada: el lote pasa a expired.
	out, err := uc.UpdateExpiry(context.Background(), locCocina, created.ID, dto.UpdateBatchExpiryRequest{
		ExpiryDate: dateStr(time.Now().AddDate(0, 0, -1)),
	})
	require.NoError(t, err)
	assert.Equal(t, "expired", out.Status)

	// Quitar la fecha devuelve el lote a ok.
	out, err = uc.UpdateExpiry(context.Background(), locCocina, created.ID, dto.UpdateBatchExpiryRequest{})
	require.NoError(t, err)
	assert.Equal(t, "ok", out.Status)
	assert.Nil(t, out.ExpiryDate)
}

func TestUpdateExpiry_FechaInvalida(t *testing.T) {
	uc, _, _, _ := setup(t)
	created, err := uc.CreateBatch(context.Background(), locCocina, dto.CreateBatchRequest{
		ProductID: prodMerluz,
		Quantity:  decimal.NewFromInt(1),
	})
	require.NoError(t, err)

	bad := "31/12/2026"
	_, err = uc.UpdateExpiry(context.Background(), locCocina, created.ID, dto.UpdateBatchExpiryRequest{
		ExpiryDate: &bad,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAcknowledge_AcumulaNotasConFecha(t *testing.T) {
	uc, _, _, _ := setup(t)
	created, err := uc.CreateBatch(context.Background(), locCocina, dto.CreateBatchRequest{
		ProductID:  prodMerluz,
		Quantity:   decimal.NewFromInt(1),
		ExpiryDate: dateStr(time.Now().AddDate(0, 0, -2)),
	})
	require.NoError(t, err)

	out, err := uc.Acknowledge(context.Background(), locCocina, created.ID, "user-1", dto.AcknowledgeBatchRequest{
		Note: "retirado del servicio",
	})
	require.NoError(t, err)
	require.NotNil(t, out.Notes)
	assert.Contains(t, *out.Notes, "retirado del servicio")

	out, err = uc.Acknowledge(context.Background(), locCocina, created.ID, "user-1", dto.AcknowledgeBatchRequest{
		Note: "desechado",
	})
	require.NoError(t, err)
	require.NotNil(t, out.Notes)
	assert.Contains(t, *out.Notes, "retirado del servicio", "las notas previas se conservan")
	assert.Contains(t, *out.Notes, "desechado")

	_, err = uc.Acknowledge(context.Background(), locCocina, created.ID, "user-1", dto.AcknowledgeBatchRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "la nota es obligatoria")
}

func TestListAlerts_SoloLotesConStockEnAlerta(t *testing.T) {
	uc, _, _, _ := setup(t)

	// ok, critical y expired; el expired se consume a cero.
	_, err := uc.CreateBatch(context.Background(), locCocina, dto.CreateBatchRequest{
		ProductID: prodMerluz, Quantity: decimal.NewFromInt(1),
	})
	require.NoError(t, err)
	_, err = uc.CreateBatch(context.Background(), locCocina, dto.CreateBatchRequest{
		ProductID: prodMerluz, Quantity: decimal.NewFromInt(1),
		ExpiryDate: dateStr(time.Now().AddDate(0, 0, 1)),
	})
	require.NoError(t, err)
	expired, err := uc.CreateBatch(context.Background(), locCocina, dto.CreateBatchRequest{
		ProductID: prodMerluz, Quantity: decimal.NewFromInt(1),
		ExpiryDate: dateStr(time.Now().AddDate(0, 0, -5)),
	})
	require.NoError(t, err)
	_, err = uc.Consume(context.Background(), locCocina, expired.ID, dto.ConsumeBatchRequest{
		Quantity: decimal.NewFromInt(1),
	})
	require.NoError(t, err)

	out, err := uc.ListAlerts(context.Background(), locCocina)
	require.NoError(t, err)
	require.Len(t, out.Items, 1, "solo el critical con stock cuenta como alerta")
	assert.Equal(t, "critical", out.Items[0].Status)
}

func TestListAlerts_ReclasificaEstadosDesfasados(t *testing.T) {
	uc, batchRepo, _, _ := setup(t)

	// lote guardado como ok cuya fecha ya pasó: el estado persistido quedó
	// desfasado y debe recalcularse al consultar las alertas
	exp := time.Now().AddDate(0, 0, -2)
	batchRepo.batches["batch-desfasado"] = &entity.Batch{
		ID:                "batch-desfasado",
		LocationID:        locCocina,
		ProductID:         prodMerluz,
		Quantity:          decimal.NewFromInt(2),
		RemainingQuantity: decimal.NewFromInt(2),
		ExpiryDate:        &exp,
		Status:            entity.BatchOK,
	}

	out, err := uc.ListAlerts(context.Background(), locCocina)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "expired", out.Items[0].Status)
}

func TestSummary_ReclasificaAntesDeAgrupar(t *testing.T) {
	uc, batchRepo, _, _ := setup(t)

	exp := time.Now().AddDate(0, 0, 1)
	batchRepo.batches["batch-desfasado"] = &entity.Batch{
		ID:                "batch-desfasado",
		LocationID:        locCocina,
		ProductID:         prodMerluz,
		Quantity:          decimal.NewFromInt(1),
		RemainingQuantity: decimal.NewFromInt(1),
		ExpiryDate:        &exp,
		Status:            entity.BatchOK, // desfasado: caduca mañana
	}

	out, err := uc.Summary(context.Background(), locCocina)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Total)
	assert.Equal(t, 1, out.ByStatus["critical"])
	assert.Zero(t, out.ByStatus["ok"])
}

func TestSummary_AgrupaPorEstado(t *testing.T) {
	uc, _, _, _ := setup(t)
	for i := 0; i < 2; i++ {
		_, err := uc.CreateBatch(context.Background(), locCocina, dto.CreateBatchRequest{
			ProductID: prodMerluz, Quantity: decimal.NewFromInt(1),
		})
		require.NoError(t, err)
	}
	_, err := uc.CreateBatch(context.Background(), locCocina, dto.CreateBatchRequest{
		ProductID: prodMerluz, Quantity: decimal.NewFromInt(1),
		ExpiryDate: dateStr(time.Now().AddDate(0, 0, 5)),
	})
	require.NoError(t, err)

	out, err := uc.Summary(context.Background(), locCocina)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Total)
	assert.Equal(t, 2, out.ByStatus["ok"])
	assert.Equal(t, 1, out.ByStatus["warning"])
}
