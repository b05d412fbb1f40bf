package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"portfolio-server/api/http/presenter"
	"portfolio-server/pkg/search"
)

type BlogHandler struct {
	index *search.BlogIndex
}

func NewBlogHandler(index *search.BlogIndex) *BlogHandler {
	return &BlogHandler{index: index}
}

// Search queries published blog posts.
// @Summary Search blog posts
// @Tags    blog
// @Produce json
// @Param   q query string true "search query"
// @Param   limit query int false "max results (default 10)"
// @Success 200 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /blog/search [get]
func (h *BlogHandler) Search(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		return presenter.Error(c, http.StatusBadRequest, "q is required")
	}
	limit := parseLimit(c, 10, 50)
	results, err := h.index.Search(q, limit)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "search failed")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"query":   q,
		"results": results,
	})
}
