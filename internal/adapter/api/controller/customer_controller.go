package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/barbearia-api/internal/adapter/api/dto"
	customerdomain "github.com/hugohenrick/barbearia-api/internal/domain/customer"
	"github.com/hugohenrick/barbearia-api/pkg/logger"
)

// CustomerController gerencia as consultas de fidelidade dos clientes
type CustomerController struct {
	customerRepo customerdomain.Repository
	logger       logger.Logger
}

// NewCustomerController cria uma nova instância de CustomerController
func NewCustomerController(customerRepo customerdomain.Repository, logger logger.Logger) *CustomerController {
	return &CustomerController{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// Loyalty retorna os contadores de fidelidade e o extrato do cliente
// @Summary Fidelidade do cliente
// @Description Retorna créditos de corte grátis, experiência, nível e o extrato de lançamentos
// @Tags customers
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do cliente"
// @Success 200 {object} dto.LoyaltyResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /customers/{id}/loyalty [get]
func (c *CustomerController) Loyalty(ctx *gin.Context) {
	id := ctx.Param("id")

	customer, err := c.customerRepo.FindByID(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	entries, err := c.customerRepo.ListLedger(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLoyaltyResponse(customer, entries))
}
