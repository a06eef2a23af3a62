package llm

import (
	"Moments/config"
	"Moments/pkg/log"
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"go.uber.org/zap"
)

const tagPrompt = "You are a photo tagging assistant. Output exactly 5 short hashtags describing " +
	"this photo, each starting with #, separated by spaces, nothing else."

var ErrDisabled = errors.New("tag suggestion is not configured")

var tagPattern = regexp.MustCompile(`#[^\s#]+`)

// TagSuggester 根据图片生成标签
type TagSuggester interface {
	SuggestTags(ctx context.Context, imageURL string) ([]string, error)
}

// NewTagSuggester 未配置 api_key 时返回 disabled 实现
func NewTagSuggester(cfg *config.LLM) TagSuggester {
	if cfg == nil || cfg.APIKey == "" {
		return disabled{}
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAISuggester{
		client: openai.NewClient(opts...),
		model:  cfg.Model,
	}
}

type disabled struct{}

func (disabled) SuggestTags(context.Context, string) ([]string, error) {
	return nil, ErrDisabled
}

type OpenAISuggester struct {
	client openai.Client
	model  string
}

func (s *OpenAISuggester) SuggestTags(ctx context.Context, imageURL string) ([]string, error) {
	contentParts := []openai.ChatCompletionContentPartUnionParam{
		{
			OfText: &openai.ChatCompletionContentPartTextParam{
				Text: tagPrompt,
			},
		},
		{
			OfImageURL: &openai.ChatCompletionContentPartImageParam{
				ImageURL: openai.ChatCompletionContentPartImageImageURLParam{
					URL: imageURL,
				},
			},
		},
	}
	startTime := time.Now()
	userMessage := openai.ChatCompletionUserMessageParam{
		Content: openai.ChatCompletionUserMessageParamContentUnion{
			OfArrayOfContentParts: contentParts,
		},
	}
	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			{OfUser: &userMessage},
		},
	}
	completion, err := s.client.Chat.Completions.New(ctx, params)
	if err != nil {
		log.L.Error("failed to gen tag", zap.Error(err))
		return nil, err
	}
	if len(completion.Choices) == 0 {
		return []string{}, nil
	}
	content := completion.Choices[0].Message.Content
	log.L.Info("gen tag", zap.String("tag", content), zap.Duration("gen time", time.Since(startTime)))
	return ParseTags(content), nil
}

// ParseTags 提取 #xxx 形式的标签, 去重并保持顺序
func ParseTags(input string) []string {
	matches := tagPattern.FindAllString(input, -1)

	tags := make([]string, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))
	for _, tag := range matches {
		cleanTag := strings.TrimPrefix(tag, "#")
		if _, ok := seen[cleanTag]; ok {
			continue
		}
		seen[cleanTag] = struct{}{}
		tags = append(tags, cleanTag)
	}
	return tags
}
