package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cedrulion/murika-farm/internal/api/metrics"
	"github.com/cedrulion/murika-farm/internal/core/domain"
	"github.com/cedrulion/murika-farm/internal/core/ports"
)

// MessageHandler handles direct messaging between users.
type MessageHandler struct {
	messageService ports.MessageService
}

func NewMessageHandler(messageService ports.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

type sendMessageRequest struct {
	Receiver string `json:"receiver" validate:"required"`
	Content  string `json:"content"  validate:"required"`
}

type sendMessageResponse struct {
	NewMessage *domain.Message `json:"newMessage"`
}

// Send persists a message from the caller to the receiver. The sender is
// always the token identity, never a body field.
//
// @Summary      Send a message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sendMessageRequest  true  "Receiver id and content"
// @Success      201   {object}  sendMessageResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/messages [post]
func (h *MessageHandler) Send(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msg, err := h.messageService.Send(c.Request().Context(), actor.UserID, req.Receiver, req.Content)
	if err != nil {
		return err
	}

	metrics.MessagesSentTotal.Inc()
	return c.JSON(http.StatusCreated, sendMessageResponse{NewMessage: msg})
}

// Conversation returns the full thread between the caller and the user in
// the path, oldest first.
//
// @Summary      Get a conversation thread
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        receiverId  path      string  true  "Counterparty user id"
// @Success      200         {array}   domain.Message
// @Failure      401         {object}  errorResponse
// @Router       /api/messages/{receiverId} [get]
func (h *MessageHandler) Conversation(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	messages, err := h.messageService.Conversation(c.Request().Context(), actor.UserID, c.Param("receiverId"))
	if err != nil {
		return err
	}
	if messages == nil {
		messages = []*domain.Message{}
	}
	return c.JSON(http.StatusOK, messages)
}

// Inbox returns the conversation overview: one entry per counterparty with
// the latest message, most recently active first.
//
// @Summary      Get the conversation overview
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ports.InboxEntry
// @Failure      401  {object}  errorResponse
// @Router       /api/messages/overview [get]
func (h *MessageHandler) Inbox(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	entries, err := h.messageService.Inbox(c.Request().Context(), actor.UserID)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []ports.InboxEntry{}
	}
	return c.JSON(http.StatusOK, entries)
}

// MarkRead flips the read flag on a message. Safe to call repeatedly.
//
// @Summary      Mark a message read
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Message id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/messages/{id}/read [patch]
func (h *MessageHandler) MarkRead(c echo.Context) error {
	if err := h.messageService.MarkRead(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "message marked read"})
}
