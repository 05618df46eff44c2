package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/sodaubai-backend/internal/model"
	"github.com/stemsi/sodaubai-backend/internal/response"
	"github.com/stemsi/sodaubai-backend/internal/service"
	"github.com/stemsi/sodaubai-backend/internal/validator"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Rewrite godoc
// POST /api/v1/comments/rewrite
// Always answers 200; when the assistant is unavailable the comment is a
// fixed apology text.
func (h *CommentHandler) Rewrite(c *gin.Context) {
	var req model.RewriteCommentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	comment := h.commentService.Rewrite(c.Request.Context(), req.Draft, req.Subject, req.ClassName)
	response.Success(c, http.StatusOK, gin.H{"comment": comment})
}
