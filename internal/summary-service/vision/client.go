package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// prompt fixo enviado junto da imagem. Os marcadores MATCH SUMMARY: e
// GOALS ANALYSIS: fazem parte do contrato com o parser — não alterar.
const instructionPrompt = "Analyze this sports match statistics image and provide two separate analyses:\n\n" +
	"1. MATCH SUMMARY: A concise 2-3 sentence summary focusing on key insights that would help someone understand " +
	"the match dynamics and likely outcome. Focus on team form, head-to-head records, and any statistical advantages.\n\n" +
	"2. GOALS ANALYSIS: Analyze the goal-scoring patterns from previous games shown in the image. Based on this data, " +
	"provide a specific recommendation for Total Goals Over/Under betting (e.g., 'Over 2.5 goals' or 'Under 1.5 goals') " +
	"in ONE sentence only.\n\n" +
	"Format your response as:\nMATCH SUMMARY: [your summary here]\nGOALS ANALYSIS: [your goals analysis and betting recommendation in one sentence]"

const maxTokens = 300

// Client chama a API de chat-completions com uma imagem embutida.
// A chave é passada por requisição, não fica no cliente.
type Client struct {
	BaseURL string
	Model   string
	HTTP    *http.Client
}

func New(baseURL, model string) *Client {
	return &Client{
		BaseURL: baseURL,
		Model:   model,
		// inferência de visão é lenta; timeout explícito e folgado
		HTTP: &http.Client{Timeout: 60 * time.Second},
	}
}

type chatRequest struct {
	Model     string    `json:"model"`
	Messages  []message `json:"messages"`
	MaxTokens int       `json:"max_tokens"`
}

type message struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Describe envia uma requisição única (sem retry) com o prompt fixo e a
// imagem JPEG em base64, e retorna o texto cru da resposta do modelo.
func (c *Client) Describe(ctx context.Context, apiKey, imageBase64 string) (string, error) {
	payload := chatRequest{
		Model:     c.Model,
		MaxTokens: maxTokens,
		Messages: []message{
			{
				Role: "user",
				Content: []contentPart{
					{Type: "text", Text: instructionPrompt},
					{Type: "image_url", ImageURL: &imageURL{URL: "data:image/jpeg;base64," + imageBase64}},
				},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	res, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("vision request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 2048))
		return "", fmt.Errorf("vision http %d: %s", res.StatusCode, string(msg))
	}

	var out chatResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("vision decode: %w", err)
	}

	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return "Unable to analyze the image.", nil
	}
	return out.Choices[0].Message.Content, nil
}
