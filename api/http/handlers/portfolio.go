package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"portfolio-server/api/http/presenter"
	"portfolio-server/pkg/content"
)

// PortfolioHandler serves the public read side used by page rendering.
type PortfolioHandler struct {
	useCase content.UseCase
}

func NewPortfolioHandler(useCase content.UseCase) *PortfolioHandler {
	return &PortfolioHandler{useCase: useCase}
}

// GetAll returns every content category in one payload.
// @Summary Full portfolio content
// @Tags    portfolio
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /portfolio [get]
func (h *PortfolioHandler) GetAll(c *fiber.Ctx) error {
	out := fiber.Map{}
	for _, cat := range content.Categories() {
		doc, err := h.useCase.Get(c.Context(), cat)
		if err != nil {
			// One bad category must not blank the whole page; report it and
			// keep the rest.
			out[string(cat)] = fiber.Map{"error": "failed to load"}
			continue
		}
		out[string(cat)] = categoryPayload(doc)
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// GetCategory returns one content category.
// @Summary One portfolio category
// @Tags    portfolio
// @Produce json
// @Param   category path string true "category name"
// @Success 200 {object} map[string]any
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /portfolio/{category} [get]
func (h *PortfolioHandler) GetCategory(c *fiber.Ctx) error {
	cat, err := content.ParseCategory(c.Params("category"))
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "unknown category")
	}
	doc, err := h.useCase.Get(c.Context(), cat)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to load category")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"category":  doc.Category,
		"items":     categoryPayload(doc),
		"updatedAt": doc.UpdatedAt,
	})
}

// categoryPayload picks the populated side of the document so clients get a
// plain list (or a record for personal details) instead of the storage shape.
func categoryPayload(doc content.Document) any {
	switch doc.Category {
	case content.CategoryPersonalDetails:
		return doc.PersonalDetails
	case content.CategoryProjects:
		return emptyIfNil(doc.Projects)
	case content.CategoryExperience:
		return emptyIfNil(doc.Experience)
	case content.CategoryTechStack:
		return emptyIfNil(doc.TechStack)
	case content.CategoryCertifications:
		return emptyIfNil(doc.Certifications)
	case content.CategoryBlogPosts:
		return emptyIfNil(doc.BlogPosts)
	case content.CategoryAbout:
		return emptyIfNil(doc.About)
	}
	return nil
}

func emptyIfNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
