package doctor

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

// RegisterRoutes wires the doctor routes. /doctores/disponibles is owned
// by the cita handler because availability depends on the appointment
// collection.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/doctores", h.Crear)
	e.GET("/doctores", h.Listar)
	e.GET("/doctores/:id", h.Obtener)
	e.PUT("/doctores/:id", h.Actualizar)
	e.GET("/doctores/especialidad/:especialidad", h.BuscarPorEspecialidad)
}

func (h *Handler) Crear(c echo.Context) error {
	var req CrearRequest
	if err := c.Bind(&req); err != nil {
		return apperror.Validation("Cuerpo de la petición inválido")
	}
	d, err := h.svc.Crear(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *Handler) Listar(c echo.Context) error {
	doctores, err := h.svc.Listar(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doctores)
}

func (h *Handler) Obtener(c echo.Context) error {
	d, err := h.svc.Obtener(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) Actualizar(c echo.Context) error {
	var req ActualizarRequest
	if err := c.Bind(&req); err != nil {
		return apperror.Validation("Cuerpo de la petición inválido")
	}
	d, err := h.svc.Actualizar(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) BuscarPorEspecialidad(c echo.Context) error {
	doctores, err := h.svc.BuscarPorEspecialidad(c.Request().Context(), c.Param("especialidad"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doctores)
}
