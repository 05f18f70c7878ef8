package dto

// OCRRequest imagen de albarán a extraer, en base64 o por URL.
type OCRRequest struct {
	ImageBase64 string `json:"image_base64"`
	ImageURL    string `json:"image_url"`
}

// OCRResponse datos extraídos del albarán. Campos nulos cuando el modelo
// no pudo leerlos; el usuario los completa antes de registrar la entrada.
type OCRResponse struct {
	Supplier *string      `json:"supplier"`
	Date     *string      `json:"date"` // YYYY-MM-DD
	Products []OCRProduct `json:"products"`
}

// OCRProduct línea extraída del albarán.
type OCRProduct struct {
	Name     *string  `json:"name"`
	Quantity *float64 `json:"quantity"`
	Unit     *string  `json:"unit"`
}
