package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/barbearia-api/internal/adapter/api/controller"
)

// RegisterCatalogRoutes registra as rotas públicas do catálogo
func RegisterCatalogRoutes(r *gin.RouterGroup, catalogController *controller.CatalogController) {
	catalog := r.Group("/catalog")
	{
		catalog.GET("/services", catalogController.ListServices)
		catalog.GET("/services/:id", catalogController.GetService)
		catalog.GET("/products", catalogController.ListProducts)
	}
}
