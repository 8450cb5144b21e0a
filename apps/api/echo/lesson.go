package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/wiseconnect/core"
	"github.com/trezcool/wiseconnect/core/lesson"
	"github.com/trezcool/wiseconnect/services/metrics"
)

var (
	errHttpLessonNotFound = echo.NewHTTPError(http.StatusNotFound, "Lesson not found")
	errUserIDRequired     = core.NewValidationError(
		errors.New("User ID required"),
		core.FieldError{Field: "userId", Error: "this field is required"},
	)
)

type lessonApi struct {
	svc      *lesson.Service
	validate *validator.Validate
	metrics  *metrics.Metrics
}

func registerLessonAPI(g *echo.Group, svc *lesson.Service, validate *validator.Validate, m *metrics.Metrics) {
	api := lessonApi{
		svc:      svc,
		validate: validate,
		metrics:  m,
	}

	lg := g.Group("/lessons")
	lg.GET("", api.query)
	lg.GET("/:id", api.retrieve)
	lg.POST("/:id/progress", api.updateProgress)

	pg := g.Group("/progress")
	pg.GET("", api.queryProgress)
	pg.GET("/stats", api.stats)
}

// Handlers

func (api *lessonApi) query(ctx echo.Context) error {
	lessons, err := api.svc.List(ctx.Request().Context(), ctx.QueryParam("userId"))
	if err != nil {
		return errors.Wrap(err, "listing lessons")
	}
	return ctx.JSON(http.StatusOK, lessons)
}

func (api *lessonApi) retrieve(ctx echo.Context) error {
	detail, err := api.svc.Detail(ctx.Request().Context(), ctx.Param("id"), ctx.QueryParam("userId"))
	if err != nil {
		if errors.Cause(err) == lesson.ErrNotFound {
			return errHttpLessonNotFound
		}
		return errors.Wrap(err, "getting lesson detail")
	}
	return ctx.JSON(http.StatusOK, detail)
}

func (api *lessonApi) updateProgress(ctx echo.Context) error {
	var data lesson.ProgressUpdate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to lesson.ProgressUpdate")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	prog, err := api.svc.UpdateProgress(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating progress")
	}
	api.metrics.ProgressUpdated(prog.Completed)

	return ctx.JSON(http.StatusOK, prog)
}

func (api *lessonApi) queryProgress(ctx echo.Context) error {
	userID := core.CleanString(ctx.QueryParam("userId"))
	if userID == "" {
		return errUserIDRequired
	}

	progress, err := api.svc.UserProgress(ctx.Request().Context(), userID)
	if err != nil {
		return errors.Wrap(err, "listing user progress")
	}
	return ctx.JSON(http.StatusOK, progress)
}

func (api *lessonApi) stats(ctx echo.Context) error {
	userID := core.CleanString(ctx.QueryParam("userId"))
	if userID == "" {
		return errUserIDRequired
	}

	stats, err := api.svc.Stats(ctx.Request().Context(), userID)
	if err != nil {
		return errors.Wrap(err, "getting progress stats")
	}
	return ctx.JSON(http.StatusOK, stats)
}
