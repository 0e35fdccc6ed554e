package paciente

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

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/pacientes", h.Crear)
	e.GET("/pacientes", h.Listar)
	e.GET("/pacientes/:id", h.Obtener)
	e.PUT("/pacientes/:id", h.Actualizar)
}

func (h *Handler) Crear(c echo.Context) error {
	var req CrearRequest
	if err := c.Bind(&req); err != nil {
		return apperror.Validation("Cuerpo de la petición inválido")
	}
	p, err := h.svc.Crear(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) Listar(c echo.Context) error {
	pacientes, err := h.svc.Listar(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pacientes)
}

func (h *Handler) Obtener(c echo.Context) error {
	p, err := h.svc.Obtener(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) Actualizar(c echo.Context) error {
	var req ActualizarRequest
	if err := c.Bind(&req); err != nil {
		return apperror.Validation("Cuerpo de la petición inválido")
	}
	p, err := h.svc.Actualizar(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}
