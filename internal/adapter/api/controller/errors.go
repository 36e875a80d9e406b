package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/barbearia-api/internal/adapter/api/dto"
	"github.com/hugohenrick/barbearia-api/pkg/apperror"
	"github.com/hugohenrick/barbearia-api/pkg/logger"
)

// respondError traduz o erro de aplicação para o status HTTP e a resposta padrão
func respondError(ctx *gin.Context, log logger.Logger, err error) {
	status := apperror.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error("erro ao processar requisição",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"error", err,
		)
	}
	ctx.JSON(status, dto.NewErrorResponse(status, apperror.Message(err), err.Error()))
}

// badRequest responde 400 para corpo ou parâmetros malformados
func badRequest(ctx *gin.Context, message string, err error) {
	details := ""
	if err != nil {
		details = err.Error()
	}
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, message, details))
}

// parseDate lê o parâmetro de data no formato AAAA-MM-DD; vazio significa hoje (UTC)
func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now().UTC(), nil
	}
	return time.Parse(dto.DateLayout, raw)
}
