package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/wiseconnect/core/user"
)

var (
	errUsrNotFoundInCtx = errors.New("user object not found in echo.Context")
	errHttpUsrNotFound  = echo.NewHTTPError(http.StatusNotFound, "User not found")
)

type userApi struct {
	svc      *user.Service
	validate *validator.Validate
}

func registerUserAPI(g *echo.Group, svc *user.Service, validate *validator.Validate) {
	api := userApi{
		svc:      svc,
		validate: validate,
	}

	// detail endpoints
	dg := g.Group("/users/:id", userObjectMiddleware(api.svc))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
}

// Handlers

func (api *userApi) retrieve(ctx echo.Context) error {
	usr, ok := ctx.Get("object").(user.User)
	if !ok {
		return errUsrNotFoundInCtx
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *userApi) update(ctx echo.Context) error {
	usr, ok := ctx.Get("object").(user.User)
	if !ok {
		return errUsrNotFoundInCtx
	}

	var data user.UpdateUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateUser")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := api.svc.Update(ctx.Request().Context(), usr.ID, data)
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return errHttpUsrNotFound
		}
		return errors.Wrap(err, "updating user")
	}
	return ctx.JSON(http.StatusOK, usr)
}

// userObjectMiddleware loads the User identified by the `id` path param into the "object" context key.
func userObjectMiddleware(svc *user.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			usr, err := svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
			if err != nil {
				if errors.Cause(err) == user.ErrNotFound {
					return errHttpUsrNotFound
				}
				return errors.Wrap(err, "finding user by ID")
			}
			ctx.Set("object", usr)
			return next(ctx)
		}
	}
}
