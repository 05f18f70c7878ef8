package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/haccp-pro/internal/domain/entity"
	"github.com/tu-usuario/haccp-pro/internal/domain/repository"
)

var _ repository.HaccpReportRepository = (*HaccpReportRepo)(nil)

// HaccpReportRepo registro de informes generados sobre PostgreSQL.
type HaccpReportRepo struct {
	q Querier
}

// NewHaccpReportRepository construye el adaptador. Pasar pool o tx (Querier).
func NewHaccpReportRepository(q Querier) *HaccpReportRepo {
	return &HaccpReportRepo{q: q}
}

// Create registra la generación de un informe.
func (r *HaccpReportRepo) Create(ctx context.Context, rep *entity.HaccpReport) error {
	query := `
		INSERT INTO haccp_reports (id, location_id, year, month, file_name, generated_by, generated_at, signed_by, signed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query, rep.ID, rep.LocationID, rep.Year, rep.Month, rep.FileName, rep.GeneratedBy, rep.GeneratedAt, rep.SignedBy, rep.SignedAt)
	if err != nil {
		return fmt.Errorf("insert haccp report: %w", err)
	}
	return nil
}

// ListByLocation histórico de informes del local, más recientes primero.
func (r *HaccpReportRepo) ListByLocation(ctx context.Context, locationID string) ([]entity.HaccpReport, error) {
	query := `
		SELECT id, location_id, year, month, file_name, generated_by, generated_at, signed_by, signed_at
		FROM haccp_reports WHERE location_id = $1
		ORDER BY year DESC, month DESC, generated_at DESC`
	rows, err := r.q.Query(ctx, query, locationID)
	if err != nil {
		return nil, fmt.Errorf("list haccp reports: %w", err)
	}
	defer rows.Close()

	var out []entity.HaccpReport
	for rows.Next() {
		var rep entity.HaccpReport
		if err := rows.Scan(&rep.ID, &rep.LocationID, &rep.Year, &rep.Month, &rep.FileName, &rep.GeneratedBy, &rep.GeneratedAt, &rep.SignedBy, &rep.SignedAt); err != nil {
			return nil, fmt.Errorf("scan haccp report: %w", err)
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}
