package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/thinkcraftlab/studio/internal/catalog"
	"github.com/thinkcraftlab/studio/internal/logging"
	"github.com/thinkcraftlab/studio/internal/service"
)

const defaultPageSize = 12

type ProductHandler struct {
	Svc *service.CatalogService
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("get_product_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}

	product, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, "get_product_failed", err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), defaultPageSize)

	res, err := h.Svc.List(ctx, c.QueryParam("category"), page, size)
	if err != nil {
		return fail(l, "get_products_error", err)
	}

	return c.JSON(http.StatusOK, pageBody(res))
}

func (h *ProductHandler) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), defaultPageSize)

	res, err := h.Svc.Search(ctx, c.QueryParam("q"), page, size)
	if err != nil {
		return fail(l, "search_products_error", err)
	}

	return c.JSON(http.StatusOK, pageBody(res))
}

func (h *ProductHandler) GetOptions(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"categories":   catalog.Categories,
		"sizes":        catalog.Sizes,
		"default_size": catalog.DefaultSize,
	})
}

func pageBody(res catalog.Page) map[string]any {
	limit := int64(res.Size)
	totalPages := (res.Total + limit - 1) / limit
	return map[string]any{
		"data": res.Items,
		"meta": map[string]any{
			"page":        res.Page,
			"size":        res.Size,
			"total":       res.Total,
			"total_pages": totalPages,
			"has_prev":    res.Page > 1,
			"has_next":    int64(res.Page) < totalPages,
		},
	}
}
