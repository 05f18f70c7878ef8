package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/haccp-pro/internal/application/analytics"
	"github.com/tu-usuario/haccp-pro/internal/domain/entity"
	"github.com/tu-usuario/haccp-pro/internal/domain/haccp"
	"github.com/tu-usuario/haccp-pro/internal/domain/repository"
)

type fakeBatchRepo struct {
	batches map[string]*entity.Batch
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

func (f *fakeBatchRepo) ListByLocation(context.Context, string, repository.BatchFilter) ([]entity.Batch, error) {
	return nil, nil
}

func (f *fakeBatchRepo) ListAlerts(context.Context, string) ([]entity.Batch, error) {
	return nil, nil
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

func (f *fakeBatchRepo) CountCreatedBetween(context.Context, string, time.Time, time.Time) (int, error) {
	return 0, nil
}

func (f *fakeBatchRepo) CountAlertsBetween(context.Context, string, time.Time, time.Time) ([]repository.StatusCount, error) {
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

type fakeTransferRepo struct {
	transfers []entity.InternalTransfer
}

func (f *fakeTransferRepo) Create(_ context.Context, t *entity.InternalTransfer) error {
	f.transfers = append(f.transfers, *t)
	return nil
}

func (f *fakeTransferRepo) GetByID(context.Context, string) (*entity.InternalTransfer, error) {
	return nil, nil
}

func (f *fakeTransferRepo) GetForUpdate(context.Context, string) (*entity.InternalTransfer, error) {
	return nil, nil
}

func (f *fakeTransferRepo) ListByLocation(_ context.Context, locationID string, filter repository.TransferFilter) ([]entity.InternalTransfer, error) {
	var out []entity.InternalTransfer
	for _, t := range f.transfers {
		if t.FromLocationID != locationID && t.ToLocationID != locationID {
			continue
		}
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTransferRepo) Update(context.Context, *entity.InternalTransfer) error { return nil }

type fakeDeliveryRepo struct {
	dates []time.Time
}

func (f *fakeDeliveryRepo) Create(_ context.Context, n *entity.DeliveryNote) error {
	f.dates = append(f.dates, n.DeliveryDate)
	return nil
}

func (f *fakeDeliveryRepo) CreateItem(context.Context, *entity.DeliveryNoteItem) error { return nil }

func (f *fakeDeliveryRepo) GetByID(context.Context, string) (*entity.DeliveryNote, error) {
	return nil, nil
}

func (f *fakeDeliveryRepo) ListByLocation(context.Context, string, int, int) ([]entity.DeliveryNote, error) {
	return nil, nil
}

func (f *fakeDeliveryRepo) CountBetween(_ context.Context, _ string, from, to time.Time) (int, error) {
	count := 0
	for _, d := range f.dates {
		if !d.Before(from) && d.Before(to) {
			count++
		}
	}
	return count, nil
}

const locPanel = "loc-panel"

func setup(t *testing.T) (*analytics.DashboardUseCase, *fakeBatchRepo, *fakeTransferRepo, *fakeDeliveryRepo) {
	t.Helper()
	batchRepo := &fakeBatchRepo{batches: map[string]*entity.Batch{}}
	transferRepo := &fakeTransferRepo{}
	deliveryRepo := &fakeDeliveryRepo{}
	uc := analytics.NewDashboardUseCase(batchRepo, transferRepo, deliveryRepo, haccp.NewClassifier(haccp.DefaultThresholds()))
	return uc, batchRepo, transferRepo, deliveryRepo
}

func TestGet_AgregaContadoresDelLocal(t *testing.T) {
	uc, batchRepo, transferRepo, deliveryRepo := setup(t)
	ctx := context.Background()

	require.NoError(t, batchRepo.Create(ctx, &entity.Batch{
		ID: "b-1", LocationID: locPanel,
		Quantity: decimal.NewFromInt(5), RemainingQuantity: decimal.NewFromInt(5),
		Status: entity.BatchOK,
	}))
	exp := time.Now().AddDate(0, 0, 1)
	require.NoError(t, batchRepo.Create(ctx, &entity.Batch{
		ID: "b-2", LocationID: locPanel,
		Quantity: decimal.NewFromInt(2), RemainingQuantity: decimal.NewFromInt(2),
		ExpiryDate: &exp, Status: entity.BatchCritical,
	}))
	require.NoError(t, transferRepo.Create(ctx, &entity.InternalTransfer{
		ID: "t-1", FromLocationID: locPanel, ToLocationID: "loc-x", Status: entity.TransferPending,
	}))
	require.NoError(t, deliveryRepo.Create(ctx, &entity.DeliveryNote{
		ID: "d-1", LocationID: locPanel, DeliveryDate: time.Now(),
	}))

	out, err := uc.Get(ctx, locPanel)
	require.NoError(t, err)

	assert.Equal(t, 2, out.ActiveBatches)
	assert.Equal(t, 1, out.BatchesByStatus["ok"])
	assert.Equal(t, 1, out.BatchesByStatus["critical"])
	assert.Equal(t, 1, out.AlertCount)
	assert.Equal(t, 1, out.PendingTransfers)
	assert.Equal(t, 1, out.DeliveriesMonth)
}

func TestGet_ReclasificaAntesDeContar(t *testing.T) {
	uc, batchRepo, _, _ := setup(t)
	ctx := context.Background()

	// estado persistido desfasado: consta como ok pero la fecha ya pasó
	exp := time.Now().AddDate(0, 0, -1)
	require.NoError(t, batchRepo.Create(ctx, &entity.Batch{
		ID: "b-viejo", LocationID: locPanel,
		Quantity: decimal.NewFromInt(1), RemainingQuantity: decimal.NewFromInt(1),
		ExpiryDate: &exp, Status: entity.BatchOK,
	}))

	out, err := uc.Get(ctx, locPanel)
	require.NoError(t, err)

	assert.Zero(t, out.BatchesByStatus["ok"])
	assert.Equal(t, 1, out.BatchesByStatus["expired"])
	assert.Equal(t, 1, out.AlertCount)
}
