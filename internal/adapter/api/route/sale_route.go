package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/barbearia-api/internal/adapter/api/controller"
)

// RegisterSaleRoutes registra as rotas de vendas
func RegisterSaleRoutes(r *gin.RouterGroup, saleController *controller.SaleController, authMiddleware gin.HandlerFunc) {
	sales := r.Group("/sales")
	sales.Use(authMiddleware)
	{
		sales.GET("/:id", saleController.Get)
		sales.GET("/:id/receipt", saleController.Receipt)
	}

	r.GET("/appointments/:id/sale", authMiddleware, saleController.GetByAppointment)
}
