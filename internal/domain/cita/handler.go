package cita

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinisys/citas-api/internal/platform/apperror"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes wires the appointment routes. The patient-history and
// available-doctors routes live here because both join the appointment
// collection against the other entities.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/citas", h.Crear)
	e.GET("/citas", h.Listar)
	e.GET("/citas/proximas", h.Proximas)
	e.GET("/citas/:id", h.Obtener)
	e.PUT("/citas/:id", h.Actualizar)
	e.PUT("/citas/:id/cancelar", h.Cancelar)
	e.GET("/citas/doctor/:doctorId", h.AgendaDoctor)
	e.GET("/pacientes/:id/historial", h.HistorialPaciente)
	e.GET("/doctores/disponibles", h.DoctoresDisponibles)
}

func (h *Handler) Crear(c echo.Context) error {
	var req CrearRequest
	if err := c.Bind(&req); err != nil {
		return apperror.Validation("Cuerpo de la petición inválido")
	}
	nueva, err := h.svc.Crear(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, nueva)
}

func (h *Handler) Listar(c echo.Context) error {
	filtros := Filtros{Fecha: c.QueryParam("fecha"), Estado: c.QueryParam("estado")}
	citas, err := h.svc.Listar(c.Request().Context(), filtros)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, citas)
}

func (h *Handler) Obtener(c echo.Context) error {
	detalle, err := h.svc.Obtener(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detalle)
}

func (h *Handler) Actualizar(c echo.Context) error {
	var req ActualizarRequest
	if err := c.Bind(&req); err != nil {
		return apperror.Validation("Cuerpo de la petición inválido")
	}
	actualizada, err := h.svc.Actualizar(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, actualizada)
}

func (h *Handler) Cancelar(c echo.Context) error {
	cancelada, err := h.svc.Cancelar(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cancelada)
}

func (h *Handler) AgendaDoctor(c echo.Context) error {
	agenda, err := h.svc.AgendaDoctor(c.Request().Context(), c.Param("doctorId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, agenda)
}

func (h *Handler) Proximas(c echo.Context) error {
	proximas, err := h.svc.Proximas(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, proximas)
}

func (h *Handler) HistorialPaciente(c echo.Context) error {
	historial, err := h.svc.HistorialPaciente(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, historial)
}

func (h *Handler) DoctoresDisponibles(c echo.Context) error {
	disponibles, err := h.svc.DoctoresDisponibles(c.Request().Context(), c.QueryParam("fecha"), c.QueryParam("hora"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, disponibles)
}
