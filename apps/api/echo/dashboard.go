package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

func registerDashboardAPI(g *echo.Group, svc RecordsService) {
	g.GET("/dashboard", func(ctx echo.Context) error {
		dash, err := svc.Dashboard(ctx.Request().Context())
		if err != nil {
			return errors.Wrap(err, "computing dashboard")
		}
		return ctx.JSON(http.StatusOK, dash)
	})
}
