// Package ai adaptador OCR de albaranes sobre la API de visión de OpenAI.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/tu-usuario/haccp-pro/internal/application/dto"
	"github.com/tu-usuario/haccp-pro/internal/application/ocr"
	"github.com/tu-usuario/haccp-pro/internal/domain"
)

// Verificar en tiempo de compilación que OpenAIService implementa DocumentExtractor.
var _ ocr.DocumentExtractor = (*OpenAIService)(nil)

const (
	openAIChatCompletionsURL = "https://api.openai.com/v1/chat/completions"

	ocrSystemPrompt = `Eres un asistente que extrae datos de albaranes de proveedores de hostelería.
Devuelve ÚNICAMENTE un objeto JSON válido (sin markdown, sin bloques de código) con esta estructura exacta:
{
  "supplier": "<nombre del proveedor o null>",
  "date": "<fecha del albarán en formato YYYY-MM-DD o null>",
  "products": [
    {"name": "<nombre del producto o null>", "quantity": <número o null>, "unit": "<kg, l, ud... o null>"}
  ]
}

Reglas:
- Usa null en cualquier campo que no puedas leer con certeza.
- quantity siempre numérico, con punto decimal.
- No incluyas texto fuera del JSON. Solo el objeto JSON.`
)

// OpenAIService adaptador que implementa DocumentExtractor usando la API REST
// de OpenAI (chat completions con imagen). Usa net/http de la librería
// estándar; no requiere SDK.
type OpenAIService struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewOpenAIService construye el adaptador. model suele ser "gpt-4o-mini".
// Si apiKey está vacío las llamadas devuelven error descriptivo en lugar de panic.
func NewOpenAIService(apiKey, model string) *OpenAIService {
	return &OpenAIService{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: 45 * time.Second,
		},
	}
}

// ── Estructuras internas del protocolo OpenAI chat completions ────────────────

type openAIRequest struct {
	Model       string          `json:"model"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature float64         `json:"temperature"`
	Messages    []openAIMessage `json:"messages"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"` // string o []openAIContentPart
}

type openAIContentPart struct {
	Type     string          `json:"type"` // text | image_url
	Text     string          `json:"text,omitempty"`
	ImageURL *openAIImageURL `json:"image_url,omitempty"`
}

type openAIImageURL struct {
	URL string `json:"url"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// jsonBlockRe extrae el primer objeto JSON del texto aunque el modelo lo
// envuelva en markdown.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// ── Implementación del puerto ─────────────────────────────────────────────────

// Extract envía la imagen del albarán al modelo de visión y parsea el JSON
// devuelto. Devuelve ErrUpstream si el servicio externo falla o responde
// algo que no es el JSON esperado.
func (s *OpenAIService) Extract(ctx context.Context, imageBase64, imageURL string) (*dto.OCRResponse, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("ocr: OPENAI_API_KEY no configurado")
	}

	url := imageURL
	if imageBase64 != "" {
		url = "data:image/jpeg;base64," + imageBase64
	}

	payload := openAIRequest{
		Model:       s.model,
		MaxTokens:   1024,
		Temperature: 0,
		Messages: []openAIMessage{
			{Role: "system", Content: ocrSystemPrompt},
			{Role: "user", Content: []openAIContentPart{
				{Type: "text", Text: "Extrae los datos de este albarán."},
				{Type: "image_url", ImageURL: &openAIImageURL{URL: url}},
			}},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("ocr: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openAIChatCompletionsURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ocr: crear HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("ocr: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return nil, fmt.Errorf("%w: leer respuesta: %v", domain.ErrUpstream, err)
	}

	var parsed openAIResponse
	if err := json.Unmarshal(rawBody, &parsed); err != nil {
		return nil, fmt.Errorf("%w: respuesta no es JSON: %v", domain.ErrUpstream, err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUpstream, parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK || len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("%w: status %d", domain.ErrUpstream, resp.StatusCode)
	}

	return parseOCRContent(parsed.Choices[0].Message.Content)
}

// parseOCRContent extrae y parsea el objeto JSON del texto del modelo.
func parseOCRContent(content string) (*dto.OCRResponse, error) {
	raw := extractJSON(content)
	if raw == "" {
		return nil, fmt.Errorf("%w: la respuesta no contiene JSON", domain.ErrUpstream)
	}
	var out dto.OCRResponse
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("%w: JSON inválido: %v", domain.ErrUpstream, err)
	}
	return &out, nil
}

// extractJSON devuelve el primer bloque {...} del texto, limpiando
// posibles fences de markdown.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return jsonBlockRe.FindString(s)
}
