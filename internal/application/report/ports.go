// Package report generación del informe HACCP mensual por local.
package report

// Data datos agregados del periodo que van al PDF.
type Data struct {
	LocationName   string
	Year           int
	Month          int // 1-12
	Deliveries     int // entradas registradas en el periodo
	BatchesCreated int // lotes generados en el periodo
	WarningCount   int
	CriticalCount  int
	ExpiredCount   int
	// SignedBy nombre del responsable que firma el informe; nulo genera el
	// documento sin bloque de firma.
	SignedBy    *string
	GeneratedBy string
}

// Generator produce el documento PDF del informe.
type Generator interface {
	Generate(data Data) ([]byte, error)
}
