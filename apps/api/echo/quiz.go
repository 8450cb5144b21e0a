package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/wiseconnect/core/quiz"
	"github.com/trezcool/wiseconnect/services/metrics"
)

type quizApi struct {
	svc      *quiz.Service
	validate *validator.Validate
	metrics  *metrics.Metrics
}

func registerQuizAPI(g *echo.Group, svc *quiz.Service, validate *validator.Validate, m *metrics.Metrics) {
	api := quizApi{
		svc:      svc,
		validate: validate,
		metrics:  m,
	}

	qg := g.Group("/quiz")
	qg.GET("/questions", api.questions)
	qg.POST("/submit", api.submit)
}

// Handlers

func (api *quizApi) questions(ctx echo.Context) error {
	questions, err := api.svc.Questions(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing quiz questions")
	}
	return ctx.JSON(http.StatusOK, questions)
}

func (api *quizApi) submit(ctx echo.Context) error {
	var data quiz.Submission
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to quiz.Submission")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	res, err := api.svc.Submit(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "submitting quiz")
	}
	api.metrics.QuizSubmitted(res.DigitalLiteracyLevel)

	return ctx.JSON(http.StatusOK, res)
}
