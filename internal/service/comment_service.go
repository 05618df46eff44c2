package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// CommentFallback is shown when no rewritten comment could be produced.
const CommentFallback = "Không thể tạo nhận xét lúc này. Vui lòng thử lại."

// CommentRewriter turns a draft lesson comment into a polished one.
type CommentRewriter interface {
	Rewrite(ctx context.Context, draft, subject, className string) (string, error)
}

// CommentService wraps a CommentRewriter so callers always get text back.
type CommentService struct {
	rewriter CommentRewriter
	log      zerolog.Logger
}

func NewCommentService(rewriter CommentRewriter, log zerolog.Logger) *CommentService {
	return &CommentService{
		rewriter: rewriter,
		log:      log.With().Str("component", "comment_service").Logger(),
	}
}

// Rewrite never fails: a blank draft comes back unchanged and any rewriter
// error or empty reply yields CommentFallback.
func (s *CommentService) Rewrite(ctx context.Context, draft, subject, className string) string {
	if strings.TrimSpace(draft) == "" {
		return draft
	}
	if strings.TrimSpace(subject) == "" {
		subject = "Môn học"
	}
	if strings.TrimSpace(className) == "" {
		className = "chung"
	}

	out, err := s.rewriter.Rewrite(ctx, draft, subject, className)
	if err != nil {
		s.log.Warn().Err(err).Msg("comment rewrite failed")
		return CommentFallback
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return CommentFallback
	}
	return out
}
