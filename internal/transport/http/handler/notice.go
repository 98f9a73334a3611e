package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"smart-campus/internal/app"
	"smart-campus/internal/transport/http/response"
)

type NoticeHandler struct {
	noticeService *app.NoticeService
}

type PublishNoticeRequest struct {
	Title      string  `json:"title" binding:"required,max=200"`
	Content    string  `json:"content" binding:"required"`
	Priority   string  `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	TargetRole *string `json:"target_role"`
}

func NewNoticeHandler(noticeService *app.NoticeService) *NoticeHandler {
	return &NoticeHandler{noticeService: noticeService}
}

func (h *NoticeHandler) Publish(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}
	role, ok := getRoleFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	var req PublishNoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	notice, err := h.noticeService.Publish(app.PublishNoticeInput{
		AuthorID:   userID,
		AuthorRole: role,
		Title:      req.Title,
		Content:    req.Content,
		Priority:   req.Priority,
		TargetRole: req.TargetRole,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput),
			errors.Is(err, app.ErrInvalidPriority),
			errors.Is(err, app.ErrInvalidRole):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrNoticeForbidden):
			response.Error(c, http.StatusForbidden, response.CodeForbidden, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "publish notice failed")
		}
		return
	}

	response.Created(c, notice)
}

func (h *NoticeHandler) Feed(c *gin.Context) {
	role, ok := getRoleFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	notices, err := h.noticeService.Feed(role)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list notices failed")
		return
	}

	response.OK(c, notices)
}
