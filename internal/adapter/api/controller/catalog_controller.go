package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/barbearia-api/internal/adapter/api/dto"
	"github.com/hugohenrick/barbearia-api/internal/domain/catalog"
	"github.com/hugohenrick/barbearia-api/pkg/logger"
)

// CatalogController expõe o catálogo de serviços e produtos
type CatalogController struct {
	catalog catalog.Repository
	logger  logger.Logger
}

// NewCatalogController cria uma nova instância de CatalogController
func NewCatalogController(catalogRepo catalog.Repository, log logger.Logger) *CatalogController {
	return &CatalogController{
		catalog: catalogRepo,
		logger:  log,
	}
}

// ListServices lista os serviços ativos
// @Summary Listar serviços
// @Tags catalog
// @Produce json
// @Param all query bool false "Inclui serviços inativos"
// @Success 200 {array} dto.ServiceResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /catalog/services [get]
func (c *CatalogController) ListServices(ctx *gin.Context) {
	services, err := c.catalog.ListServices(ctx.Request.Context(), ctx.Query("all") != "true")
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToServiceListResponse(services))
}

// GetService retorna um serviço pelo ID
// @Summary Buscar serviço
// @Tags catalog
// @Produce json
// @Param id path string true "ID do serviço"
// @Success 200 {object} dto.ServiceResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /catalog/services/{id} [get]
func (c *CatalogController) GetService(ctx *gin.Context) {
	svc, err := c.catalog.FindService(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToServiceResponse(svc))
}

// ListProducts lista os produtos ativos
// @Summary Listar produtos
// @Tags catalog
// @Produce json
// @Param all query bool false "Inclui produtos inativos"
// @Success 200 {array} dto.ProductResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /catalog/products [get]
func (c *CatalogController) ListProducts(ctx *gin.Context) {
	products, err := c.catalog.ListProducts(ctx.Request.Context(), ctx.Query("all") != "true")
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToProductListResponse(products))
}
