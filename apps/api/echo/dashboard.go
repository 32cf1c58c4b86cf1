package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Fukuzeya/zim-student-companion-sub000/core/dashboard"
)

type dashboardApi struct {
	svc dashboard.Service
}

func registerDashboardAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc dashboard.Service) {
	api := dashboardApi{svc: svc}

	dg := g.Group("/dashboard", jwt, adminMiddleware())
	dg.GET("", api.overview)
}

func (api *dashboardApi) overview(ctx echo.Context) error {
	ov, err := api.svc.Overview()
	if err != nil {
		return errors.Wrap(err, "building dashboard overview")
	}
	return ctx.JSON(http.StatusOK, ov)
}
