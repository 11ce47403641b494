package rest

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/dfryer1193/catalog/api"
	"github.com/dfryer1193/catalog/catalog/application"
	"github.com/dfryer1193/catalog/catalog/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ItemHandler exposes the catalog over HTTP.
type ItemHandler struct {
	service *application.CatalogService
}

func NewItemHandler(service *application.CatalogService) *ItemHandler {
	return &ItemHandler{
		service: service,
	}
}

func (h *ItemHandler) Hello(c *gin.Context) {
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Hello, world!"})
}

// AddItem handles POST /items. It expects a multipart form with a name, a
// category name, and a single image file.
func (h *ItemHandler) AddItem(c *gin.Context) {
	name := c.PostForm("name")
	category := c.PostForm("category")

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open image upload"})
		return
	}
	defer file.Close()

	imageData, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image upload"})
		return
	}

	if _, err := h.service.AddItem(c.Request.Context(), name, category, fileHeader.Filename, imageData); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: fmt.Sprintf("Item '%s' added successfully", name)})
}

// GetItems handles GET /items, returning every item in insertion order.
func (h *ItemHandler) GetItems(c *gin.Context) {
	items, err := h.service.ListItems(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	resp := api.ItemsResponse{Items: []api.Item{}}
	for _, item := range items {
		resp.Items = append(resp.Items, toAPIItem(item))
	}

	c.JSON(http.StatusOK, resp)
}

// GetItem handles GET /items/:item_id.
func (h *ItemHandler) GetItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("item_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item id must be numeric"})
		return
	}

	item, err := h.service.GetItem(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAPIItem(item))
}

// SearchItems handles GET /search?keyword=. No match yields an empty list,
// never an error.
func (h *ItemHandler) SearchItems(c *gin.Context) {
	items, err := h.service.SearchItems(c.Request.Context(), c.Query("keyword"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	resp := api.SearchResponse{Items: []api.SearchItem{}}
	for _, item := range items {
		resp.Items = append(resp.Items, api.SearchItem{
			Name:      item.Name,
			Category:  item.Category,
			ImageName: item.ImageRef,
		})
	}

	c.JSON(http.StatusOK, resp)
}

func toAPIItem(item *domain.Item) api.Item {
	return api.Item{
		ID:        item.ID,
		Name:      item.Name,
		Category:  item.Category,
		ImageName: item.ImageRef,
	}
}

// abortWithError maps the domain error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is a storage failure and stays server-side.
func abortWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrConstraintViolation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
