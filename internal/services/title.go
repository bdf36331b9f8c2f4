package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/zamm-dev/diary-mvp/internal/models"
)

const (
	// shortContentWords is the length up to which content is its own title
	shortContentWords = 6
	// suggestedTitleRunes caps derived titles well below the storage bound
	suggestedTitleRunes = 60
	untitled            = "Untitled"
)

// TitleService proposes a title for a diary entry's content
type TitleService interface {
	SuggestTitle(ctx context.Context, content string) (string, error)
}

// NewTitleService returns a model-backed service when apiKey is set, otherwise
// one that derives titles from the content itself.
func NewTitleService(apiKey string) TitleService {
	if apiKey == "" {
		return localTitleService{}
	}
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &anthropicTitleService{
		client: &client,
	}
}

// localTitleService derives titles without network access
type localTitleService struct{}

func (localTitleService) SuggestTitle(_ context.Context, content string) (string, error) {
	return TitleFromContent(content), nil
}

// anthropicTitleService asks Anthropic's API for a title
type anthropicTitleService struct {
	client *anthropic.Client
}

// SuggestTitle asks the model for a short title. Content of a few words is
// used as-is.
func (s *anthropicTitleService) SuggestTitle(ctx context.Context, content string) (string, error) {
	if len(strings.Fields(content)) <= shortContentWords {
		return TitleFromContent(content), nil
	}

	if s.client == nil {
		return "", fmt.Errorf("anthropic client is nil - service not properly initialized")
	}

	prompt := fmt.Sprintf(`Here is a diary entry:

%s

Suggest a short title for it, at most six words, in title case.

Return only the title, nothing else.`, content)

	message, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.ModelClaude_3_Haiku_20240307,
		MaxTokens: 50,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to call Anthropic API: %w", err)
	}

	if len(message.Content) == 0 {
		return "", fmt.Errorf("empty response from API")
	}

	contentBlock := message.Content[0]
	if contentBlock.Type != "text" {
		return "", fmt.Errorf("expected text content block, got: %s", contentBlock.Type)
	}

	return TitleFromContent(contentBlock.AsText().Text), nil
}

// TitleFromContent uses the first non-blank line of content, shortened at a
// word boundary.
func TitleFromContent(content string) string {
	for _, line := range strings.Split(content, "\n") {
		if title := cleanTitle(line); title != untitled {
			return title
		}
	}
	return untitled
}

// cleanTitle collapses whitespace, strips wrapping quotes and bounds the length
func cleanTitle(raw string) string {
	if i := strings.IndexByte(raw, '\n'); i >= 0 {
		raw = raw[:i]
	}
	title := strings.Join(strings.Fields(raw), " ")
	title = strings.Trim(title, "\"'`")
	title = strings.TrimSpace(title)
	if title == "" {
		return untitled
	}

	runes := []rune(title)
	if len(runes) > suggestedTitleRunes {
		cut := string(runes[:suggestedTitleRunes])
		if i := strings.LastIndexByte(cut, ' '); i > 0 {
			cut = cut[:i]
		}
		title = strings.TrimRight(cut, " ,.;:-") + "..."
	}

	return models.Truncate(title, models.MaxTitleLen)
}
