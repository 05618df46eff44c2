// Package assistant talks to the hosted language model that polishes lesson
// comments.
package assistant

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// ErrNotConfigured is returned by a rewriter built without an API key.
var ErrNotConfigured = errors.New("assistant: no API key configured")

// BuildPrompt is the instruction sent for one draft comment.
func BuildPrompt(draft, subject, className string) string {
	return fmt.Sprintf(`Bạn là một trợ lý giáo dục ảo hữu ích.
Hãy viết lại hoặc mở rộng nhận xét sau đây vào sổ đầu bài cho môn %s, lớp %s.
Nhận xét cần mang tính sư phạm, chuyên nghiệp, ngắn gọn (dưới 50 từ) và mang tính xây dựng.

Nội dung thô: "%s"

Chỉ trả về nội dung nhận xét đã chỉnh sửa, không thêm lời dẫn.`, subject, className, draft)
}

// GeminiRewriter rewrites comments with the Gemini API.
type GeminiRewriter struct {
	client *genai.Client
	model  string
	log    zerolog.Logger
}

// NewGeminiRewriter creates a rewriter. An empty apiKey gives a rewriter
// whose every call fails with ErrNotConfigured.
func NewGeminiRewriter(ctx context.Context, apiKey, model string, log zerolog.Logger) (*GeminiRewriter, error) {
	r := &GeminiRewriter{
		model: model,
		log:   log.With().Str("component", "gemini").Logger(),
	}
	if apiKey == "" {
		r.log.Warn().Msg("GEMINI_API_KEY not set, comment rewriting disabled")
		return r, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	r.client = client
	return r, nil
}

// Rewrite asks the model to polish draft and returns its text reply.
func (r *GeminiRewriter) Rewrite(ctx context.Context, draft, subject, className string) (string, error) {
	if r.client == nil {
		return "", ErrNotConfigured
	}

	resp, err := r.client.Models.GenerateContent(ctx, r.model, genai.Text(BuildPrompt(draft, subject, className)), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	r.log.Debug().Str("model", r.model).Msg("comment rewritten")
	return resp.Text(), nil
}
