package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"portfolio-server/api/http/presenter"
	"portfolio-server/pkg/chat"
)

// ChatHandler exposes the chat widget operations to the UI.
type ChatHandler struct {
	manager *chat.Manager
}

func NewChatHandler(manager *chat.Manager) *ChatHandler {
	return &ChatHandler{manager: manager}
}

// Open creates a widget for a visitor.
// @Summary Open chat widget
// @Tags    chat
// @Produce json
// @Success 201 {object} chat.WidgetState
// @Router  /chat [post]
func (h *ChatHandler) Open(c *fiber.Ctx) error {
	// The widget's fetch and probe outlive this request; Open deliberately
	// gets no request-scoped context (Fiber recycles it after the handler).
	w := h.manager.Open()
	return presenter.JSON(c, http.StatusCreated, w.State())
}

// Close disposes a widget. In-flight results are discarded.
// @Summary Close chat widget
// @Tags    chat
// @Produce json
// @Param   id path string true "widget id"
// @Success 204
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /chat/{id} [delete]
func (h *ChatHandler) Close(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid widget id")
	}
	if err := h.manager.Close(id); err != nil {
		return presenter.Error(c, http.StatusNotFound, "unknown widget")
	}
	return c.SendStatus(http.StatusNoContent)
}

// State returns the widget's observable state.
// @Summary Chat widget state
// @Tags    chat
// @Produce json
// @Param   id path string true "widget id"
// @Success 200 {object} chat.WidgetState
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /chat/{id} [get]
func (h *ChatHandler) State(c *fiber.Ctx) error {
	w, err := h.widget(c)
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "unknown widget")
	}
	return presenter.JSON(c, http.StatusOK, w.State())
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

// SendMessage submits a visitor message and returns the bot reply.
// @Summary Send chat message
// @Tags    chat
// @Accept  json
// @Produce json
// @Param   id path string true "widget id"
// @Param   input body sendMessageRequest true "message payload"
// @Success 200 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /chat/{id}/messages [post]
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	w, err := h.widget(c)
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "unknown widget")
	}
	var req sendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Text) == "" {
		return presenter.Error(c, http.StatusBadRequest, "text is required")
	}

	reply, err := w.SendMessage(c.Context(), req.Text)
	switch {
	case errors.Is(err, chat.ErrSendInFlight):
		return presenter.Error(c, http.StatusConflict, "a previous message is still being processed")
	case errors.Is(err, chat.ErrWidgetClosed):
		return presenter.Error(c, http.StatusGone, "chat widget is closed")
	case err != nil:
		return presenter.Error(c, http.StatusInternalServerError, "failed to process message")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"reply": reply,
		"state": w.State(),
	})
}

// SubmitMeeting validates and records a meeting request.
// @Summary Submit meeting request
// @Tags    chat
// @Accept  json
// @Produce json
// @Param   id path string true "widget id"
// @Param   input body chat.MeetingRequest true "meeting form"
// @Success 200 {object} map[string]any
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 422 {object} presenter.ValidationErrorResponse
// @Router  /chat/{id}/meeting [post]
func (h *ChatHandler) SubmitMeeting(c *fiber.Ctx) error {
	w, err := h.widget(c)
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "unknown widget")
	}
	var req chat.MeetingRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	confirmation, err := w.SubmitMeeting(req)
	if err != nil {
		var vErr *chat.ValidationError
		if errors.As(err, &vErr) {
			return presenter.Validation(c, "please fill in the required fields", vErr.Fields)
		}
		if errors.Is(err, chat.ErrWidgetClosed) {
			return presenter.Error(c, http.StatusGone, "chat widget is closed")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to submit meeting request")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"confirmation": confirmation,
		"state":        w.State(),
	})
}

func (h *ChatHandler) widget(c *fiber.Ctx) (*chat.Widget, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, chat.ErrWidgetUnknown
	}
	return h.manager.Get(id)
}
