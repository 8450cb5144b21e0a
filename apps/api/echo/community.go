package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/wiseconnect/core/community"
	"github.com/trezcool/wiseconnect/services/metrics"
)

var errHttpPostNotFound = echo.NewHTTPError(http.StatusNotFound, "Post not found")

type communityApi struct {
	svc      *community.Service
	validate *validator.Validate
	metrics  *metrics.Metrics
}

func registerCommunityAPI(g *echo.Group, svc *community.Service, validate *validator.Validate, m *metrics.Metrics) {
	api := communityApi{
		svc:      svc,
		validate: validate,
		metrics:  m,
	}

	pg := g.Group("/community/posts")
	pg.GET("", api.query)
	pg.POST("", api.create)
	pg.GET("/:id", api.retrieve)
}

// Handlers

func (api *communityApi) query(ctx echo.Context) error {
	posts, err := api.svc.List(ctx.Request().Context(), ctx.QueryParam("category"))
	if err != nil {
		return errors.Wrap(err, "listing posts")
	}
	return ctx.JSON(http.StatusOK, posts)
}

func (api *communityApi) retrieve(ctx echo.Context) error {
	detail, err := api.svc.Detail(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == community.ErrNotFound {
			return errHttpPostNotFound
		}
		return errors.Wrap(err, "getting post detail")
	}
	return ctx.JSON(http.StatusOK, detail)
}

func (api *communityApi) create(ctx echo.Context) error {
	var data community.NewPost
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to community.NewPost")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	post, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating post")
	}
	api.metrics.PostCreated(post.Category)

	return ctx.JSON(http.StatusOK, post)
}
