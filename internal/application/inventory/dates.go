package inventory

import (
	"time"

	"github.com/tu-usuario/haccp-pro/internal/domain"
)

const dateLayout = "2006-01-02"

// parseDate parsea una fecha YYYY-MM-DD. Nil de entrada devuelve nil.
func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	return &t, nil
}

// formatDate formatea una fecha a YYYY-MM-DD. Nil de entrada devuelve nil.
func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
