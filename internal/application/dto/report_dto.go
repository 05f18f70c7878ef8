package dto

import "time"

// HaccpReportRequest periodo del informe mensual.
type HaccpReportRequest struct {
	Year  int `query:"year" validate:"required,min=2000,max=2100"`
	Month int `query:"month" validate:"required,min=1,max=12"`
	// SignedBy nombre del responsable: añade el bloque de firma al PDF y
	// queda registrado en el histórico.
	SignedBy *string `query:"signed_by"`
}

// HaccpReportResponse metadatos de un informe generado.
type HaccpReportResponse struct {
	ID          string     `json:"id"`
	LocationID  string     `json:"location_id"`
	Year        int        `json:"year"`
	Month       int        `json:"month"`
	FileName    string     `json:"file_name"`
	GeneratedBy string     `json:"generated_by"`
	GeneratedAt time.Time  `json:"generated_at"`
	SignedBy    *string    `json:"signed_by,omitempty"`
	SignedAt    *time.Time `json:"signed_at,omitempty"`
}

// HaccpReportListResponse histórico de informes del local.
type HaccpReportListResponse struct {
	Items []HaccpReportResponse `json:"items"`
}
