package echoapi

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/labstack/echo/v4"

	"github.com/Fukuzeya/zim-student-companion-sub000/core"
)

const statusOK, statusDown, statusSkipped = "ok", "down", "skipped"

type healthApi struct {
	db        *sql.DB
	portalURL string
	client    *resty.Client
}

type HealthResponse struct {
	Status        string `json:"status"`
	Database      string `json:"database"`
	StudentPortal string `json:"student_portal"`
}

func registerHealthAPI(app *echo.Echo, conf *core.Config, db *sql.DB) {
	client := resty.New()
	client.SetTimeout(5 * time.Second)

	api := healthApi{
		db:        db,
		portalURL: conf.StudentPortalURL,
		client:    client,
	}
	app.GET("/health", api.health)
}

// health reports DB reachability and the upstream student portal's liveness.
// Probes are best-effort; a failing dependency degrades the status but the
// endpoint itself always answers.
func (api *healthApi) health(ctx echo.Context) error {
	res := HealthResponse{
		Status:        statusOK,
		Database:      statusSkipped,
		StudentPortal: statusSkipped,
	}

	if api.db != nil {
		res.Database = statusOK
		if err := api.db.Ping(); err != nil {
			res.Database = statusDown
		}
	}

	if api.portalURL != "" {
		res.StudentPortal = statusOK
		resp, err := api.client.R().Get(api.portalURL + "/health")
		if err != nil || resp.StatusCode() >= http.StatusBadRequest {
			res.StudentPortal = statusDown
		}
	}

	code := http.StatusOK
	if res.Database == statusDown || res.StudentPortal == statusDown {
		res.Status = statusDown
		code = http.StatusServiceUnavailable
	}
	return ctx.JSON(code, res)
}
