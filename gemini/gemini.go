package gemini

import (
	"context"
	"errors"

	"google.golang.org/genai"

	"github.com/thankscarbon/rida/conversation"
	"github.com/thankscarbon/rida/logger"
)

const DefaultModel = "gemini-2.0-flash"

var (
	log = logger.New("gemini")

	// ErrEmptyResponse means the model returned no usable candidate,
	// usually because the output was filtered.
	ErrEmptyResponse = errors.New("gemini: empty response")
)

type Client struct {
	client *genai.Client
	model  string
}

func New(ctx context.Context, apiKey, model string) (*Client, error) {
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		client: client,
		model:  model,
	}, nil
}

// Generate runs one model invocation over the assembled blocks. The system
// block becomes the system instruction; history and the new user turn are
// passed as contents. Temperature is pinned to zero so repeated reports for
// the same photo stay consistent.
func (c *Client) Generate(ctx context.Context, blocks []conversation.Block) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0)),
	}

	var contents []*genai.Content
	for _, block := range blocks {
		content := &genai.Content{Role: string(roleFor(block.Role))}
		for _, part := range block.Parts {
			if part.MimeType != "" {
				content.Parts = append(content.Parts, genai.NewPartFromBytes(part.Data, part.MimeType))
			} else {
				content.Parts = append(content.Parts, genai.NewPartFromText(part.Text))
			}
		}

		if block.Role == conversation.RoleSystem {
			config.SystemInstruction = content
			continue
		}
		contents = append(contents, content)
	}

	response, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return "", err
	}

	if len(response.Candidates) == 0 ||
		response.Candidates[0].Content == nil ||
		len(response.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}

	var text string
	for _, part := range response.Candidates[0].Content.Parts {
		text += part.Text
	}
	if text == "" {
		return "", ErrEmptyResponse
	}

	return text, nil
}

func roleFor(role conversation.Role) genai.Role {
	if role == conversation.RoleModel {
		return genai.RoleModel
	}
	return genai.RoleUser
}
