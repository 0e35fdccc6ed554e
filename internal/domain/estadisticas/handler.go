package estadisticas

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/clinisys/citas-api/internal/platform/apperror"
)

// DefaultDias is the default cancellation-rate window in days.
const DefaultDias = 30

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/estadisticas/doctores", h.DoctorConMasCitas)
	e.GET("/estadisticas/especialidades", h.EspecialidadMasSolicitada)
	e.GET("/estadisticas/citas-mes", h.PorMes)
	e.GET("/estadisticas/tasa-cancelacion", h.Cancelaciones)
}

func (h *Handler) DoctorConMasCitas(c echo.Context) error {
	ranking, err := h.svc.DoctorConMasCitas(c.Request().Context())
	if err != nil {
		return err
	}
	if ranking == nil {
		return c.JSON(http.StatusOK, map[string]string{"mensaje": "No hay citas registradas"})
	}
	return c.JSON(http.StatusOK, ranking)
}

func (h *Handler) EspecialidadMasSolicitada(c echo.Context) error {
	ranking, err := h.svc.EspecialidadMasSolicitada(c.Request().Context())
	if err != nil {
		return err
	}
	if ranking == nil {
		return c.JSON(http.StatusOK, map[string]string{"mensaje": "No hay citas registradas"})
	}
	return c.JSON(http.StatusOK, ranking)
}

func (h *Handler) PorMes(c echo.Context) error {
	resultado, err := h.svc.PorMes(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resultado)
}

func (h *Handler) Cancelaciones(c echo.Context) error {
	dias := DefaultDias
	if v := c.QueryParam("dias"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return apperror.Validation("El parámetro dias debe ser un entero positivo")
		}
		dias = n
	}
	resultado, err := h.svc.Cancelaciones(c.Request().Context(), dias)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resultado)
}
