package ocr

import (
	"context"

	"github.com/tu-usuario/haccp-pro/internal/application/dto"
	"github.com/tu-usuario/haccp-pro/internal/domain"
)

// UseCase orquesta la extracción OCR. El resultado es un borrador: el
// usuario lo revisa y completa antes de registrar la entrada.
type UseCase struct {
	extractor DocumentExtractor
}

// NewUseCase construye el caso de uso.
func NewUseCase(extractor DocumentExtractor) *UseCase {
	return &UseCase{extractor: extractor}
}

// Extract valida la entrada y delega en el extractor. Exactamente una de
// las dos fuentes de imagen debe venir informada.
func (uc *UseCase) Extract(ctx context.Context, in dto.OCRRequest) (*dto.OCRResponse, error) {
	if (in.ImageBase64 == "") == (in.ImageURL == "") {
		return nil, domain.ErrInvalidInput
	}
	resp, err := uc.extractor.Extract(ctx, in.ImageBase64, in.ImageURL)
	if err != nil {
		return nil, err
	}
	if resp.Products == nil {
		resp.Products = []dto.OCRProduct{}
	}
	return resp, nil
}
