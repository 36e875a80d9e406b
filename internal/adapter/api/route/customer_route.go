package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/barbearia-api/internal/adapter/api/controller"
)

// RegisterCustomerRoutes registra as rotas do módulo de clientes
func RegisterCustomerRoutes(r *gin.RouterGroup, customerController *controller.CustomerController, authMiddleware gin.HandlerFunc) {
	customers := r.Group("/customers")
	customers.Use(authMiddleware)
	{
		customers.GET("/:id/loyalty", customerController.Loyalty)
	}
}
