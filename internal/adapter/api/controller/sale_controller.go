package controller

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/barbearia-api/internal/adapter/api/dto"
	"github.com/hugohenrick/barbearia-api/internal/domain/sale"
	"github.com/hugohenrick/barbearia-api/pkg/apperror"
	"github.com/hugohenrick/barbearia-api/pkg/auth"
	"github.com/hugohenrick/barbearia-api/pkg/logger"
	"github.com/hugohenrick/barbearia-api/pkg/receipt"
)

// SaleController gerencia as consultas de vendas e comprovantes
type SaleController struct {
	sales  sale.Repository
	header receipt.Header
	render func(w io.Writer, h receipt.Header, s *sale.Sale) error
	logger logger.Logger
}

// NewSaleController cria uma nova instância de SaleController
func NewSaleController(sales sale.Repository, header receipt.Header, log logger.Logger) *SaleController {
	return &SaleController{
		sales:  sales,
		header: header,
		render: receipt.Render,
		logger: log,
	}
}

// Get retorna uma venda do barbeiro autenticado, com o registro de resgate quando houver
// @Summary Buscar venda
// @Tags sales
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da venda"
// @Success 200 {object} dto.SaleResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /sales/{id} [get]
func (c *SaleController) Get(ctx *gin.Context) {
	s, err := c.find(ctx.Request.Context(), ctx.Param("id"), auth.CurrentBarberID(ctx))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	c.respondSale(ctx, s)
}

// GetByAppointment retorna a venda gerada por um agendamento
// @Summary Venda do agendamento
// @Tags sales
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do agendamento"
// @Success 200 {object} dto.SaleResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /appointments/{id}/sale [get]
func (c *SaleController) GetByAppointment(ctx *gin.Context) {
	s, err := c.sales.FindByAppointment(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, apperror.OrPersistence("falha ao consultar a venda", err))
		return
	}
	if s.BarberID != auth.CurrentBarberID(ctx) {
		respondError(ctx, c.logger, apperror.Authorization("venda pertence a outro barbeiro"))
		return
	}
	c.respondSale(ctx, s)
}

func (c *SaleController) respondSale(ctx *gin.Context, s *sale.Sale) {
	var redemption *sale.Redemption
	if s.IsFreeCutRedemption {
		red, err := c.sales.FindRedemptionBySale(ctx.Request.Context(), s.ID)
		switch {
		case err == nil:
			redemption = red
		case errors.Is(err, apperror.ErrNotFound):
			c.logger.Warn("venda com resgate sem registro de auditoria", "sale_id", s.ID)
		default:
			respondError(ctx, c.logger, apperror.OrPersistence("falha ao consultar o resgate", err))
			return
		}
	}
	ctx.JSON(http.StatusOK, dto.ToSaleResponse(s, redemption))
}

// Receipt gera o comprovante da venda em PDF
// @Summary Comprovante da venda
// @Tags sales
// @Produce application/pdf
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da venda"
// @Success 200 {file} file
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /sales/{id}/receipt [get]
func (c *SaleController) Receipt(ctx *gin.Context) {
	s, err := c.find(ctx.Request.Context(), ctx.Param("id"), auth.CurrentBarberID(ctx))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	var buf bytes.Buffer
	if err := c.render(&buf, c.header, s); err != nil {
		respondError(ctx, c.logger, apperror.Persistence("falha ao gerar o comprovante", err))
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("inline; filename=comprovante-%s.pdf", s.ID))
	ctx.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func (c *SaleController) find(ctx context.Context, id, barberID string) (*sale.Sale, error) {
	s, err := c.sales.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.OrPersistence("falha ao consultar a venda", err)
	}
	if s.BarberID != barberID {
		return nil, apperror.Authorization("venda pertence a outro barbeiro")
	}
	return s, nil
}
