// Package ocr extracción de datos de albaranes a partir de una foto.
package ocr

import (
	"context"

	"github.com/tu-usuario/haccp-pro/internal/application/dto"
)

// DocumentExtractor extrae los campos de un albarán desde una imagen
// (base64 o URL). Implementado contra un modelo de visión.
type DocumentExtractor interface {
	Extract(ctx context.Context, imageBase64, imageURL string) (*dto.OCRResponse, error)
}
