package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"smart-campus/internal/app"
	"smart-campus/internal/transport/http/response"
)

type ChatHandler struct {
	messagingService *app.MessagingService
}

type SendMessageRequest struct {
	Content    string  `json:"content" binding:"required"`
	ReceiverID *uint   `json:"receiver_id"`
	ChatType   string  `json:"chat_type" binding:"omitempty,oneof=PRIVATE ROOM"`
	RoomID     *string `json:"room_id"`
}

func NewChatHandler(messagingService *app.MessagingService) *ChatHandler {
	return &ChatHandler{messagingService: messagingService}
}

func (h *ChatHandler) Send(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	// Sender identity comes from the token, never the payload.
	message, err := h.messagingService.Send(app.SendMessageInput{
		SenderID:   userID,
		Content:    req.Content,
		ChatType:   req.ChatType,
		ReceiverID: req.ReceiverID,
		RoomID:     req.RoomID,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput),
			errors.Is(err, app.ErrMessageEmpty),
			errors.Is(err, app.ErrInvalidTarget):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "send message failed")
		}
		return
	}

	response.Created(c, message)
}

func (h *ChatHandler) List(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	receiverID64, err := strconv.ParseUint(c.Query("receiver_id"), 10, 64)
	if err != nil || receiverID64 == 0 {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid receiver_id")
		return
	}

	var roomID *string
	if raw := c.Query("room_id"); raw != "" {
		roomID = &raw
	}

	messages, err := h.messagingService.ListConversation(userID, uint(receiverID64), roomID)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list messages failed")
		}
		return
	}

	response.OK(c, messages)
}
