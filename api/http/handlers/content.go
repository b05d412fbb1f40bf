package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"portfolio-server/api/http/presenter"
	"portfolio-server/pkg/content"
	"portfolio-server/pkg/search"
)

// ContentHandler is the admin panel write side. Routes are JWT-protected.
// After a successful write the aggregator slice is refreshed so new chat
// sessions see the change, and the blog index is rebuilt when posts change.
type ContentHandler struct {
	useCase   content.UseCase
	agg       *content.Aggregator
	blogIndex *search.BlogIndex
}

func NewContentHandler(useCase content.UseCase, agg *content.Aggregator, blogIndex *search.BlogIndex) *ContentHandler {
	return &ContentHandler{useCase: useCase, agg: agg, blogIndex: blogIndex}
}

// AddItem appends one item to a list-valued category.
// @Summary Add content item
// @Tags    admin
// @Accept  json
// @Produce json
// @Param   category path string true "category name"
// @Param   input body map[string]any true "item payload"
// @Security BearerAuth
// @Success 201 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 422 {object} presenter.ValidationErrorResponse
// @Router  /admin/content/{category}/items [post]
func (h *ContentHandler) AddItem(c *fiber.Ctx) error {
	cat, err := content.ParseCategory(c.Params("category"))
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "unknown category")
	}
	added, err := h.useCase.AddItem(c.Context(), cat, json.RawMessage(c.Body()))
	if err != nil {
		return h.writeError(c, err)
	}
	h.afterWrite(c, cat)
	return c.Status(http.StatusCreated).Send(added)
}

// UpdateItem replaces one item, addressed by id.
// @Summary Update content item
// @Tags    admin
// @Accept  json
// @Produce json
// @Param   category path string true "category name"
// @Param   id path string true "item id"
// @Param   input body map[string]any true "item payload"
// @Security BearerAuth
// @Success 204
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 422 {object} presenter.ValidationErrorResponse
// @Router  /admin/content/{category}/items/{id} [put]
func (h *ContentHandler) UpdateItem(c *fiber.Ctx) error {
	cat, err := content.ParseCategory(c.Params("category"))
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "unknown category")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid item id")
	}
	if err := h.useCase.UpdateItem(c.Context(), cat, id, json.RawMessage(c.Body())); err != nil {
		return h.writeError(c, err)
	}
	h.afterWrite(c, cat)
	return c.SendStatus(http.StatusNoContent)
}

// RemoveItem deletes one item, addressed by id.
// @Summary Remove content item
// @Tags    admin
// @Produce json
// @Param   category path string true "category name"
// @Param   id path string true "item id"
// @Security BearerAuth
// @Success 204
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /admin/content/{category}/items/{id} [delete]
func (h *ContentHandler) RemoveItem(c *fiber.Ctx) error {
	cat, err := content.ParseCategory(c.Params("category"))
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "unknown category")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid item id")
	}
	if err := h.useCase.RemoveItem(c.Context(), cat, id); err != nil {
		return h.writeError(c, err)
	}
	h.afterWrite(c, cat)
	return c.SendStatus(http.StatusNoContent)
}

// SetPersonalDetails replaces the personal details record.
// @Summary Update personal details
// @Tags    admin
// @Accept  json
// @Produce json
// @Param   input body content.PersonalDetails true "personal details"
// @Security BearerAuth
// @Success 204
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /admin/content/personalDetails [put]
func (h *ContentHandler) SetPersonalDetails(c *fiber.Ctx) error {
	var pd content.PersonalDetails
	if err := c.BodyParser(&pd); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if err := h.useCase.SetPersonalDetails(c.Context(), pd); err != nil {
		return h.writeError(c, err)
	}
	h.afterWrite(c, content.CategoryPersonalDetails)
	return c.SendStatus(http.StatusNoContent)
}

func (h *ContentHandler) writeError(c *fiber.Ctx, err error) error {
	var vErr content.ErrValidation
	switch {
	case errors.As(err, &vErr):
		return presenter.Validation(c, vErr.Error(), nil)
	case errors.Is(err, content.ErrItemNotFound):
		return presenter.Error(c, http.StatusNotFound, "item not found")
	case errors.Is(err, content.ErrNotListValued):
		return presenter.Error(c, http.StatusBadRequest, "category does not hold a list of items")
	default:
		return presenter.Error(c, http.StatusInternalServerError, "failed to write content")
	}
}

// afterWrite refreshes the read-side caches, best-effort.
func (h *ContentHandler) afterWrite(c *fiber.Ctx, cat content.Category) {
	if err := h.agg.Refresh(c.Context(), cat); err != nil {
		log.Printf("warning: refresh %s slice: %v", cat, err)
		return
	}
	if cat == content.CategoryBlogPosts && h.blogIndex != nil {
		posts := h.agg.Snapshot().Slices[content.CategoryBlogPosts].Doc.BlogPosts
		if err := h.blogIndex.Rebuild(posts); err != nil {
			log.Printf("warning: rebuild blog index: %v", err)
		}
	}
}
