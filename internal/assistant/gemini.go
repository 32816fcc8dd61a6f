package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"study-dashboard/internal/schedule"
)

// ErrNoCredential is returned when no API key is configured.
var ErrNoCredential = errors.New("assistant: api key missing")

// GeminiClient implements Client on the Gemini API.
type GeminiClient struct {
	client    *genai.Client
	modelName string
	catalog   *schedule.Catalog
	system    string
}

func NewGeminiClient(ctx context.Context, apiKey, modelName string, catalog *schedule.Catalog) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, ErrNoCredential
	}
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiClient{
		client:    client,
		modelName: modelName,
		catalog:   catalog,
		system:    BuildSystemPrompt(catalog.Profile, catalog.Subjects),
	}, nil
}

// ParseInput implements Client.
func (g *GeminiClient) ParseInput(ctx context.Context, input string, now time.Time) (*Reply, error) {
	prompt := BuildParsePrompt(input, now, g.catalog.Subjects)
	var reply Reply
	if err := g.generateJSON(ctx, prompt, replySchema(g.catalog.Subjects), &reply); err != nil {
		return nil, err
	}
	if reply.Intent == "" {
		reply.Intent = IntentUnknown
	}
	return &reply, nil
}

// Suggest implements Client.
func (g *GeminiClient) Suggest(ctx context.Context, snap Snapshot) (*Suggestion, error) {
	prompt := BuildSuggestionPrompt(g.catalog.Profile, snap)
	var s Suggestion
	if err := g.generateJSON(ctx, prompt, suggestionSchema(), &s); err != nil {
		return nil, err
	}
	if strings.TrimSpace(s.Text) == "" {
		return nil, fmt.Errorf("gemini returned an empty suggestion")
	}
	if s.Category == "" {
		s.Category = CategoryGeneral
	}
	return &s, nil
}

func (g *GeminiClient) generateJSON(ctx context.Context, prompt string, schema *genai.Schema, out any) error {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(g.system, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    schema,
	}
	res, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), cfg)
	if err != nil {
		return fmt.Errorf("gemini generate content: %w", err)
	}
	text := res.Text()
	if text == "" {
		return fmt.Errorf("gemini returned empty text")
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("decode gemini response: %w", err)
	}
	return nil
}

func replySchema(subjects []string) *genai.Schema {
	nullable := true
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"intent": {
				Type:        genai.TypeString,
				Enum:        []string{string(IntentAddTask), string(IntentQuery), string(IntentChat)},
				Description: "The user's intention",
			},
			"taskDetails": {
				Type:     genai.TypeObject,
				Nullable: &nullable,
				Properties: map[string]*genai.Schema{
					"title":       {Type: genai.TypeString},
					"type":        {Type: genai.TypeString, Enum: taskKinds},
					"priority":    {Type: genai.TypeString, Enum: priorities},
					"dueDate":     {Type: genai.TypeString, Description: "ISO date YYYY-MM-DD"},
					"description": {Type: genai.TypeString},
					"subject": {
						Type:        genai.TypeString,
						Enum:        append(append([]string{}, subjects...), "Otro"),
						Description: "The academic subject related to this task if applicable",
					},
				},
			},
			"mentoringDetails": {
				Type:     genai.TypeObject,
				Nullable: &nullable,
				Properties: map[string]*genai.Schema{
					"mentoringType": {Type: genai.TypeString, Enum: []string{"TOPIC", "DATE", "WORKSHOP"}},
					"title":         {Type: genai.TypeString},
					"date":          {Type: genai.TypeString, Description: "ISO date YYYY-MM-DD"},
					"time":          {Type: genai.TypeString, Description: "24h HH:MM"},
				},
			},
			"responseMessage": {
				Type:        genai.TypeString,
				Description: "A friendly, efficient confirmation or response message.",
			},
		},
		Required: []string{"intent", "responseMessage"},
	}
}

func suggestionSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"suggestionText": {Type: genai.TypeString, Description: "Detailed advice customized for the user"},
			"category": {
				Type: genai.TypeString,
				Enum: []string{string(CategoryStudy), string(CategoryRest), string(CategoryPriority), string(CategoryGeneral)},
			},
		},
	}
}
