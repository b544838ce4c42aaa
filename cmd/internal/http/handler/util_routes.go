package handler

import (
	"net/http"

	"notesbackend/cmd/internal/contract"

	"github.com/labstack/echo/v4"
)

func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, &contract.HealthResponse{Message: contract.HealthyMessage})
}
