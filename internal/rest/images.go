package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetImage handles GET /image/:image_name, serving raw image bytes. Unknown
// refs come back as the placeholder image with a success status.
func (h *ItemHandler) GetImage(c *gin.Context) {
	data, err := h.service.GetImage(c.Request.Context(), c.Param("image_name"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.Data(http.StatusOK, "image/jpeg", data)
}
