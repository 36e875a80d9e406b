package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/barbearia-api/internal/adapter/api/dto"
	"github.com/hugohenrick/barbearia-api/internal/domain/appointment"
	"github.com/hugohenrick/barbearia-api/internal/service/checkout"
	"github.com/hugohenrick/barbearia-api/internal/service/lifecycle"
	"github.com/hugohenrick/barbearia-api/pkg/auth"
	"github.com/hugohenrick/barbearia-api/pkg/logger"
)

// AppointmentController gerencia as requisições relacionadas a agendamentos
type AppointmentController struct {
	lifecycle *lifecycle.Service
	checkout  *checkout.Service
	logger    logger.Logger
}

// NewAppointmentController cria uma nova instância de AppointmentController
func NewAppointmentController(lifecycleService *lifecycle.Service, checkoutService *checkout.Service, log logger.Logger) *AppointmentController {
	return &AppointmentController{
		lifecycle: lifecycleService,
		checkout:  checkoutService,
		logger:    log,
	}
}

// Create cria um novo agendamento
// @Summary Criar agendamento
// @Description Agenda um atendimento, impedindo duplicidade no mesmo dia e resgates pendentes repetidos
// @Tags appointments
// @Accept json
// @Produce json
// @Param appointment body dto.CreateAppointmentRequest true "Dados do agendamento"
// @Success 201 {object} dto.AppointmentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /appointments [post]
func (c *AppointmentController) Create(ctx *gin.Context) {
	var req dto.CreateAppointmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "dados inválidos", err)
		return
	}

	a, err := c.lifecycle.Create(ctx.Request.Context(), lifecycle.CreateInput{
		BarberID:    req.BarberID,
		ServiceID:   req.ServiceID,
		ScheduledAt: req.ScheduledAt,
		Customer: appointment.Customer{
			ID:    req.Customer.ID,
			Name:  req.Customer.Name,
			Phone: req.Customer.Phone,
			Email: req.Customer.Email,
		},
		Notes:                  req.Notes,
		WantsFreeCutRedemption: req.WantsFreeCutRedemption,
	})
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToAppointmentResponse(a))
}

// ReservedSlots lista os horários ocupados de um barbeiro
// @Summary Horários ocupados
// @Description Lista os horários dos agendamentos ativos do barbeiro no dia (UTC)
// @Tags appointments
// @Produce json
// @Param barber_id query string true "ID do barbeiro"
// @Param date query string false "Data no formato AAAA-MM-DD"
// @Success 200 {object} dto.ReservedSlotsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /appointments/reserved-slots [get]
func (c *AppointmentController) ReservedSlots(ctx *gin.Context) {
	date, err := parseDate(ctx.Query("date"))
	if err != nil {
		badRequest(ctx, "data inválida", err)
		return
	}

	barberID := ctx.Query("barber_id")
	slots, err := c.lifecycle.ReservedSlots(ctx.Request.Context(), barberID, date)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ReservedSlotsResponse{
		BarberID: barberID,
		Date:     date.UTC().Format(dto.DateLayout),
		Slots:    slots,
	})
}

// Get retorna um agendamento do barbeiro autenticado
// @Summary Buscar agendamento
// @Tags appointments
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do agendamento"
// @Success 200 {object} dto.AppointmentResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /appointments/{id} [get]
func (c *AppointmentController) Get(ctx *gin.Context) {
	a, err := c.lifecycle.Get(ctx.Request.Context(), ctx.Param("id"), auth.CurrentBarberID(ctx))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToAppointmentResponse(a))
}

// Enqueue coloca o cliente na fila de espera
// @Summary Colocar na fila
// @Description Registra a chegada do cliente; repetir a chamada não altera a posição
// @Tags appointments
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do agendamento"
// @Success 200 {object} dto.AppointmentResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /appointments/{id}/enqueue [post]
func (c *AppointmentController) Enqueue(ctx *gin.Context) {
	a, err := c.lifecycle.Enqueue(ctx.Request.Context(), ctx.Param("id"), auth.CurrentBarberID(ctx))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToAppointmentResponse(a))
}

// StartService leva o cliente da fila para a cadeira
// @Summary Iniciar atendimento
// @Tags appointments
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do agendamento"
// @Success 200 {object} dto.AppointmentResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /appointments/{id}/start-service [post]
func (c *AppointmentController) StartService(ctx *gin.Context) {
	a, err := c.lifecycle.StartService(ctx.Request.Context(), ctx.Param("id"), auth.CurrentBarberID(ctx))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToAppointmentResponse(a))
}

// Cancel cancela um agendamento
// @Summary Cancelar agendamento
// @Tags appointments
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do agendamento"
// @Param body body dto.CancelAppointmentRequest false "Motivo do cancelamento"
// @Success 200 {object} dto.AppointmentResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /appointments/{id}/cancel [post]
func (c *AppointmentController) Cancel(ctx *gin.Context) {
	var req dto.CancelAppointmentRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			badRequest(ctx, "dados inválidos", err)
			return
		}
	}

	a, err := c.lifecycle.Cancel(ctx.Request.Context(), ctx.Param("id"), auth.CurrentBarberID(ctx), req.Reason)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToAppointmentResponse(a))
}

// NoShow marca que o cliente não compareceu
// @Summary Marcar falta
// @Tags appointments
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do agendamento"
// @Success 200 {object} dto.AppointmentResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /appointments/{id}/no-show [post]
func (c *AppointmentController) NoShow(ctx *gin.Context) {
	a, err := c.lifecycle.MarkNoShow(ctx.Request.Context(), ctx.Param("id"), auth.CurrentBarberID(ctx))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToAppointmentResponse(a))
}

// Finalize transforma o atendimento em venda
// @Summary Finalizar atendimento
// @Description Gera a venda, aplica o programa de fidelidade e baixa o estoque dos produtos
// @Tags appointments
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do agendamento"
// @Param body body dto.FinalizeRequest true "Forma de pagamento, serviços extras e produtos"
// @Success 201 {object} dto.FinalizeResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /appointments/{id}/finalize [post]
func (c *AppointmentController) Finalize(ctx *gin.Context) {
	var req dto.FinalizeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "dados inválidos", err)
		return
	}

	res, err := c.checkout.Finalize(ctx.Request.Context(), req.ToFinalizeInput(ctx.Param("id"), auth.CurrentBarberID(ctx)))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToFinalizeResponse(res))
}

// Agenda lista a agenda do barbeiro autenticado
// @Summary Agenda do barbeiro
// @Description Lista os agendamentos do dia com o resumo do serviço e da venda
// @Tags appointments
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param barber_id query string false "ID do barbeiro (padrão: o autenticado)"
// @Param date query string false "Data no formato AAAA-MM-DD"
// @Success 200 {array} dto.AgendaEntryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /appointments/agenda [get]
func (c *AppointmentController) Agenda(ctx *gin.Context) {
	date, err := parseDate(ctx.Query("date"))
	if err != nil {
		badRequest(ctx, "data inválida", err)
		return
	}

	entries, err := c.lifecycle.Agenda(ctx.Request.Context(), auth.CurrentBarberID(ctx), ctx.Query("barber_id"), date)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToAgendaResponse(entries))
}
