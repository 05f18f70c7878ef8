package transfer_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/haccp-pro/internal/application/dto"
	"github.com/tu-usuario/haccp-pro/internal/application/transfer"
	"github.com/tu-usuario/haccp-pro/internal/domain"
	"github.com/tu-usuario/haccp-pro/internal/domain/entity"
	"github.com/tu-usuario/haccp-pro/internal/domain/repository"
)

// Fakes en memoria de los puertos de persistencia.

type fakeTransferRepo struct {
	transfers map[string]*entity.InternalTransfer
}

func newFakeTransferRepo() *fakeTransferRepo {
	return &fakeTransferRepo{transfers: map[string]*entity.InternalTransfer{}}
}

func (r *fakeTransferRepo) Create(_ context.Context, t *entity.InternalTransfer) error {
	cp := *t
	r.transfers[t.ID] = &cp
	return nil
}

func (r *fakeTransferRepo) GetByID(_ context.Context, id string) (*entity.InternalTransfer, error) {
	t, ok := r.transfers[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTransferRepo) GetForUpdate(ctx context.Context, id string) (*entity.InternalTransfer, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeTransferRepo) ListByLocation(_ context.Context, locationID string, f repository.TransferFilter) ([]entity.InternalTransfer, error) {
	var out []entity.InternalTransfer
	for _, t := range r.transfers {
		if t.FromLocationID != locationID && t.ToLocationID != locationID {
			continue
		}
		if f.Status != nil && t.Status != *f.Status {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (r *fakeTransferRepo) Update(_ context.Context, t *entity.InternalTransfer) error {
	cp := *t
	r.transfers[t.ID] = &cp
	return nil
}

type fakeBatchRepo struct {
	batches map[string]*entity.Batch
}

func newFakeBatchRepo() *fakeBatchRepo {
	return &fakeBatchRepo{batches: map[string]*entity.Batch{}}
}

func (r *fakeBatchRepo) Create(_ context.Context, b *entity.Batch) error {
	cp := *b
	r.batches[b.ID] = &cp
	return nil
}

func (r *fakeBatchRepo) GetByID(_ context.Context, id string) (*entity.Batch, error) {
	b, ok := r.batches[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBatchRepo) GetForUpdate(ctx context.Context, id string) (*entity.Batch, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeBatchRepo) ListByLocation(_ context.Context, locationID string, f repository.BatchFilter) ([]entity.Batch, error) {
	var out []entity.Batch
	for _, b := range r.batches {
		if b.LocationID != locationID {
			continue
		}
		if f.OnlyWithStock && !b.HasStock() {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeBatchRepo) ListAlerts(context.Context, string) ([]entity.Batch, error) { return nil, nil }

func (r *fakeBatchRepo) Update(_ context.Context, b *entity.Batch) error {
	cp := *b
	r.batches[b.ID] = &cp
	return nil
}

func (r *fakeBatchRepo) Delete(_ context.Context, id string) error {
	delete(r.batches, id)
	return nil
}

func (r *fakeBatchRepo) CountByStatus(context.Context, string) ([]repository.StatusCount, error) {
	return nil, nil
}

func (r *fakeBatchRepo) CountCreatedBetween(context.Context, string, time.Time, time.Time) (int, error) {
	return 0, nil
}

func (r *fakeBatchRepo) CountAlertsBetween(context.Context, string, time.Time, time.Time) ([]repository.StatusCount, error) {
	return nil, nil
}

func (r *fakeBatchRepo) RefreshStatuses(context.Context, string, time.Time, int, int) (int64, error) {
	return 0, nil
}

type fakeLocationRepo struct {
	locations map[string]*entity.Location
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{locations: map[string]*entity.Location{}}
}

func (r *fakeLocationRepo) Create(_ context.Context, l *entity.Location) error {
	cp := *l
	r.locations[l.ID] = &cp
	return nil
}

func (r *fakeLocationRepo) GetByID(_ context.Context, id string) (*entity.Location, error) {
	l, ok := r.locations[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *fakeLocationRepo) ListByBusiness(_ context.Context, businessID string) ([]entity.Location, error) {
	var out []entity.Location
	for _, l := range r.locations {
		if l.BusinessID == businessID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *fakeLocationRepo) ListAccessible(context.Context, string) ([]entity.Location, error) {
	return nil, nil
}

func (r *fakeLocationRepo) Update(_ context.Context, l *entity.Location) error { return nil }
func (r *fakeLocationRepo) Delete(_ context.Context, id string) error          { return nil }

// fakeAccessRepo concede acceso y gestión según dos listas de pares user/location.
type fakeAccessRepo struct {
	access   map[string]bool // "user|location"
	managers map[string]bool
}

func newFakeAccessRepo() *fakeAccessRepo {
	return &fakeAccessRepo{access: map[string]bool{}, managers: map[string]bool{}}
}

func (r *fakeAccessRepo) grant(userID, locationID string, manager bool) {
	r.access[userID+"|"+locationID] = true
	if manager {
		r.managers[userID+"|"+locationID] = true
	}
}

func (r *fakeAccessRepo) HasLocationAccess(_ context.Context, userID, locationID string) (bool, error) {
	return r.access[userID+"|"+locationID], nil
}

func (r *fakeAccessRepo) IsLocationManager(_ context.Context, userID, locationID string) (bool, error) {
	return r.managers[userID+"|"+locationID], nil
}

func (r *fakeAccessRepo) IsBusinessOwner(context.Context, string, string) (bool, error) {
	return false, nil
}

func (r *fakeAccessRepo) AssignRole(context.Context, *entity.LocationRole) error { return nil }
func (r *fakeAccessRepo) RemoveRole(context.Context, string, string) error       { return nil }
func (r *fakeAccessRepo) ListRolesByLocation(context.Context, string) ([]entity.LocationRole, error) {
	return nil, nil
}

// fakeTxRunner ejecuta el callback directamente sobre los fakes compartidos.
type fakeTxRunner struct {
	transferRepo *fakeTransferRepo
	batchRepo    *fakeBatchRepo
}

func (r *fakeTxRunner) RunTransfer(ctx context.Context, fn func(
	transferRepo repository.TransferRepository,
	batchRepo repository.BatchRepository,
) error) error {
	return fn(r.transferRepo, r.batchRepo)
}

// setup monta el escenario base: dos locales del mismo negocio, un lote con
// 10 unidades en el origen, un gestor del origen y un empleado del destino.
func setup(t *testing.T) (*transfer.UseCase, *fakeBatchRepo, *fakeTransferRepo, *fakeAccessRepo) {
	t.Helper()
	transferRepo := newFakeTransferRepo()
	batchRepo := newFakeBatchRepo()
	locationRepo := newFakeLocationRepo()
	accessRepo := newFakeAccessRepo()
	txRunner := &fakeTxRunner{transferRepo: transferRepo, batchRepo: batchRepo}

	ctx := context.Background()
	require.NoError(t, locationRepo.Create(ctx, &entity.Location{ID: "loc-origen", BusinessID: "biz-1", Name: "Central", Type: entity.LocationRestaurant, IsActive: true}))
	require.NoError(t, locationRepo.Create(ctx, &entity.Location{ID: "loc-destino", BusinessID: "biz-1", Name: "Sucursal", Type: entity.LocationBar, IsActive: true}))
	require.NoError(t, locationRepo.Create(ctx, &entity.Location{ID: "loc-cerrado", BusinessID: "biz-1", Name: "Cerrado por obras", Type: entity.LocationBar}))
	require.NoError(t, locationRepo.Create(ctx, &entity.Location{ID: "loc-ajeno", BusinessID: "biz-2", Name: "Otro negocio", Type: entity.LocationBar, IsActive: true}))
	require.NoError(t, batchRepo.Create(ctx, &entity.Batch{
		ID:                "batch-1",
		LocationID:        "loc-origen",
		ProductID:         "prod-1",
		Quantity:          decimal.NewFromInt(10),
		RemainingQuantity: decimal.NewFromInt(10),
		Status:            entity.BatchOK,
	}))

	accessRepo.grant("gestor", "loc-origen", true)
	accessRepo.grant("empleado", "loc-destino", false)
	accessRepo.grant("empleado", "loc-cerrado", false)

	return transfer.NewUseCase(transferRepo, batchRepo, locationRepo, accessRepo, txRunner), batchRepo, transferRepo, accessRepo
}

func crearTraspaso(t *testing.T, uc *transfer.UseCase, qty int64) *dto.TransferResponse {
	t.Helper()
	resp, err := uc.Create(context.Background(), "empleado", dto.CreateTransferRequest{
		BatchID:      "batch-1",
		ToLocationID: "loc-destino",
		Quantity:     decimal.NewFromInt(qty),
	})
	require.NoError(t, err)
	return resp
}

func TestCreate_TraspasoQuedaPendiente(t *testing.T) {
	uc, _, _, _ := setup(t)

	resp := crearTraspaso(t, uc, 4)

	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "loc-origen", resp.FromLocationID)
	assert.Equal(t, "loc-destino", resp.ToLocationID)
	assert.Equal(t, "prod-1", resp.ProductID, "el traspaso referencia el producto del lote")
	assert.Equal(t, "empleado", resp.RequestedBy)
	assert.Nil(t, resp.ProcessedAt)
}

func TestCreate_Validaciones(t *testing.T) {
	uc, batchRepo, _, _ := setup(t)
	ctx := context.Background()

	t.Run("cantidad no positiva", func(t *testing.T) {
		_, err := uc.Create(ctx, "empleado", dto.CreateTransferRequest{
			BatchID: "batch-1", ToLocationID: "loc-destino", Quantity: decimal.Zero,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("mismo local origen y destino", func(t *testing.T) {
		_, err := uc.Create(ctx, "empleado", dto.CreateTransferRequest{
			BatchID: "batch-1", ToLocationID: "loc-origen", Quantity: decimal.NewFromInt(1),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("destino de otro negocio", func(t *testing.T) {
		_, err := uc.Create(ctx, "empleado", dto.CreateTransferRequest{
			BatchID: "batch-1", ToLocationID: "loc-ajeno", Quantity: decimal.NewFromInt(1),
		})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("sin acceso al destino", func(t *testing.T) {
		_, err := uc.Create(ctx, "desconocido", dto.CreateTransferRequest{
			BatchID: "batch-1", ToLocationID: "loc-destino", Quantity: decimal.NewFromInt(1),
		})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("lote sin stock", func(t *testing.T) {
		require.NoError(t, batchRepo.Create(ctx, &entity.Batch{
			ID: "batch-vacio", LocationID: "loc-origen", ProductID: "prod-1",
			Quantity: decimal.NewFromInt(5), RemainingQuantity: decimal.Zero,
		}))
		_, err := uc.Create(ctx, "empleado", dto.CreateTransferRequest{
			BatchID: "batch-vacio", ToLocationID: "loc-destino", Quantity: decimal.NewFromInt(1),
		})
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	})

	t.Run("cantidad mayor que el stock restante", func(t *testing.T) {
		require.NoError(t, batchRepo.Create(ctx, &entity.Batch{
			ID: "batch-corto", LocationID: "loc-origen", ProductID: "prod-1",
			Quantity: decimal.NewFromInt(5), RemainingQuantity: decimal.NewFromInt(5),
		}))
		_, err := uc.Create(ctx, "empleado", dto.CreateTransferRequest{
			BatchID: "batch-corto", ToLocationID: "loc-destino", Quantity: decimal.NewFromInt(10),
		})
		assert.ErrorIs(t, err, domain.ErrInsufficientStock,
			"no puede solicitarse más cantidad de la que queda en el lote")
	})

	t.Run("local destino inactivo", func(t *testing.T) {
		_, err := uc.Create(ctx, "empleado", dto.CreateTransferRequest{
			BatchID: "batch-1", ToLocationID: "loc-cerrado", Quantity: decimal.NewFromInt(1),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestAccept_SoloGestorDelOrigen(t *testing.T) {
	uc, _, _, _ := setup(t)
	ctx := context.Background()
	created := crearTraspaso(t, uc, 4)

	_, err := uc.Accept(ctx, "empleado", created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	resp, err := uc.Accept(ctx, "gestor", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "accepted", resp.Status)
	require.NotNil(t, resp.ProcessedBy)
	assert.Equal(t, "gestor", *resp.ProcessedBy)
	assert.NotNil(t, resp.ProcessedAt)
}

func TestReject_EsTerminalYNoTocaElLote(t *testing.T) {
	uc, batchRepo, _, _ := setup(t)
	ctx := context.Background()
	created := crearTraspaso(t, uc, 4)

	resp, err := uc.Reject(ctx, "gestor", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "rejected", resp.Status)

	// el lote conserva su cantidad
	batch, err := batchRepo.GetByID(ctx, "batch-1")
	require.NoError(t, err)
	assert.True(t, batch.RemainingQuantity.Equal(decimal.NewFromInt(10)))

	// un traspaso rechazado no admite más transiciones
	_, err = uc.Accept(ctx, "gestor", created.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = uc.Complete(ctx, "gestor", created.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestComplete_DescuentaDelLoteOrigen(t *testing.T) {
	uc, batchRepo, _, _ := setup(t)
	ctx := context.Background()
	created := crearTraspaso(t, uc, 4)

	_, err := uc.Accept(ctx, "gestor", created.ID)
	require.NoError(t, err)

	resp, err := uc.Complete(ctx, "gestor", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
	assert.NotNil(t, resp.CompletedAt)

	batch, err := batchRepo.GetByID(ctx, "batch-1")
	require.NoError(t, err)
	assert.True(t, batch.RemainingQuantity.Equal(decimal.NewFromInt(6)),
		"esperaba 6, quedó %s", batch.RemainingQuantity)
}

func TestComplete_NoBajaDeCero(t *testing.T) {
	uc, batchRepo, _, _ := setup(t)
	ctx := context.Background()

	created := crearTraspaso(t, uc, 8)
	_, err := uc.Accept(ctx, "gestor", created.ID)
	require.NoError(t, err)

	// entre la aceptación y el cierre la cocina consume parte del lote:
	// al completar solo quedan 3 de las 8 solicitadas
	batchRepo.batches["batch-1"].RemainingQuantity = decimal.NewFromInt(3)

	resp, err := uc.Complete(ctx, "gestor", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)

	batch, err := batchRepo.GetByID(ctx, "batch-1")
	require.NoError(t, err)
	assert.True(t, batch.RemainingQuantity.IsZero(),
		"la cantidad restante no puede ser negativa, quedó %s", batch.RemainingQuantity)
}

func TestComplete_RequierePrevioAccepted(t *testing.T) {
	uc, _, _, _ := setup(t)
	ctx := context.Background()
	created := crearTraspaso(t, uc, 4)

	_, err := uc.Complete(ctx, "gestor", created.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestComplete_EsIdempotenteEnError(t *testing.T) {
	uc, batchRepo, _, _ := setup(t)
	ctx := context.Background()
	created := crearTraspaso(t, uc, 4)

	_, err := uc.Accept(ctx, "gestor", created.ID)
	require.NoError(t, err)
	_, err = uc.Complete(ctx, "gestor", created.ID)
	require.NoError(t, err)

	// un segundo Complete no vuelve a descontar
	_, err = uc.Complete(ctx, "gestor", created.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	batch, err := batchRepo.GetByID(ctx, "batch-1")
	require.NoError(t, err)
	assert.True(t, batch.RemainingQuantity.Equal(decimal.NewFromInt(6)))
}

func TestListCandidates_ExcluyeElPropioLocalYLotesSinStock(t *testing.T) {
	uc, batchRepo, _, _ := setup(t)
	ctx := context.Background()

	require.NoError(t, batchRepo.Create(ctx, &entity.Batch{
		ID: "batch-destino", LocationID: "loc-destino", ProductID: "prod-2",
		Quantity: decimal.NewFromInt(3), RemainingQuantity: decimal.NewFromInt(3),
	}))
	require.NoError(t, batchRepo.Create(ctx, &entity.Batch{
		ID: "batch-agotado", LocationID: "loc-origen", ProductID: "prod-3",
		Quantity: decimal.NewFromInt(2), RemainingQuantity: decimal.Zero,
	}))

	resp, err := uc.ListCandidates(ctx, "empleado", "loc-destino")
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "batch-1", resp.Items[0].ID)
}
