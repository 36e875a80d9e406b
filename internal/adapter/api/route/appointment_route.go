package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/barbearia-api/internal/adapter/api/controller"
)

// RegisterAppointmentRoutes registra as rotas de agendamento.
// Criação e horários ocupados são públicos; o restante exige o token do barbeiro.
func RegisterAppointmentRoutes(
	r *gin.RouterGroup,
	appointmentController *controller.AppointmentController,
	authMiddleware gin.HandlerFunc,
	rateLimit gin.HandlerFunc,
) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", rateLimit, appointmentController.Create)
		appointments.GET("/reserved-slots", appointmentController.ReservedSlots)
	}

	protected := appointments.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/agenda", appointmentController.Agenda)
		protected.GET("/:id", appointmentController.Get)
		protected.POST("/:id/enqueue", appointmentController.Enqueue)
		protected.POST("/:id/start-service", appointmentController.StartService)
		protected.POST("/:id/cancel", appointmentController.Cancel)
		protected.POST("/:id/no-show", appointmentController.NoShow)
		protected.POST("/:id/finalize", appointmentController.Finalize)
	}
}
