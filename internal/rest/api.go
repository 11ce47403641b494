package rest

import (
	"github.com/dfryer1193/catalog/catalog/application"
	"github.com/gin-gonic/gin"
)

func NewApi(router *gin.Engine, service *application.CatalogService) {
	h := NewItemHandler(service)

	router.GET("/", h.Hello)

	router.POST("/items", h.AddItem)
	router.GET("/items", h.GetItems)
	router.GET("/items/:item_id", h.GetItem)
	router.GET("/search", h.SearchItems)

	router.GET("/image/:image_name", h.GetImage)
}
