package gemini

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/genai"

	"voice-backend/internal/llm"
)

const defaultModelName = "gemini-2.5-flash"

// Client calls the Gemini API with a text instruction and one inline audio part.
type Client struct {
	api       *genai.Client
	modelName string
}

// NewClient constructs a Gemini-backed llm.Client.
func NewClient(ctx context.Context, apiKey, modelName string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini api key is required")
	}
	if strings.TrimSpace(modelName) == "" {
		modelName = defaultModelName
	}

	api, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &Client{api: api, modelName: modelName}, nil
}

// GenerateFromAudio issues a single multimodal generation request and returns
// the text reply. The SDK encodes the audio bytes as base64 inline data.
func (c *Client) GenerateFromAudio(ctx context.Context, input llm.AudioInput) (string, error) {
	if len(input.Audio) == 0 {
		return "", errors.New("audio payload is empty")
	}

	contents := []*genai.Content{
		genai.NewContentFromParts(
			[]*genai.Part{
				genai.NewPartFromText(input.Prompt),
				genai.NewPartFromBytes(input.Audio, input.MIMEType),
			},
			genai.RoleUser,
		),
	}

	response, err := c.api.Models.GenerateContent(ctx, c.modelName, contents, &genai.GenerateContentConfig{})
	if err != nil {
		return "", err
	}

	reply := strings.TrimSpace(response.Text())
	if reply == "" {
		return "", errors.New("model reply is empty")
	}
	return reply, nil
}

// Ping issues a minimal text-only generation to verify the API is reachable.
func (c *Client) Ping(ctx context.Context) error {
	contents := []*genai.Content{
		genai.NewContentFromParts(
			[]*genai.Part{genai.NewPartFromText("ping")},
			genai.RoleUser,
		),
	}
	_, err := c.api.Models.GenerateContent(ctx, c.modelName, contents, &genai.GenerateContentConfig{})
	return err
}

var _ llm.Client = (*Client)(nil)
