package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/semillerodigital/educompass/core"
	"github.com/semillerodigital/educompass/core/dashboard"
	"github.com/semillerodigital/educompass/core/user"
)

var errUsrNotFoundInCtx = errors.New("user object not found in echo.Context")

type userApi struct {
	svc      *dashboard.Service
	validate   *validator.Validate
	translator ut.Translator
}

func registerUserAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *dashboard.Service, validate *validator.Validate, translator ut.Translator) {
	api := userApi{svc: svc, validate: validate, translator: translator}

	ug := g.Group("/users", jwt)
	ug.GET("", api.query, roleMiddleware(user.RoleTeacher, user.RoleCoordinator))
	ug.GET("/me", api.me)
	ug.GET("/roles", api.queryRoles)
	ug.GET("/:id", api.retrieve, api.ctxUserOrSupervisorMiddleware())
}

// Handlers

func (api *userApi) query(ctx echo.Context) error {
	filter := new(user.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}
	if err := api.validate.Struct(filter); err != nil {
		return core.TranslateValidationErrors(err, api.translator)
	}

	// teachers only see their own cell
	ctxUsr, err := getContextUser(ctx)
	if err != nil {
		return err
	}
	if ctxUsr.IsTeacher() {
		if filter.CellID != "" && filter.CellID != ctxUsr.CellID {
			return ctx.JSON(http.StatusOK, []user.User{})
		}
		filter.CellID = ctxUsr.CellID
	}

	snap, err := api.svc.Load(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "loading dashboard data")
	}
	return ctx.JSON(http.StatusOK, user.Filter(snap.Users, *filter))
}

func (api *userApi) me(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *userApi) retrieve(ctx echo.Context) error {
	usr, ok := ctx.Get("object").(user.User)
	if !ok {
		return errors.Wrap(errUsrNotFoundInCtx, "retrieving object from context")
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *userApi) queryRoles(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, user.Roles)
}

// ctxUserOrSupervisorMiddleware lets users see themselves, coordinators see everyone and anyone else
// see the members of their cell who rank below them. Anything else is reported as not found.
func (api *userApi) ctxUserOrSupervisorMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			ctxUsr, err := getContextUser(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context user")
			}

			snap, err := api.svc.Load(ctx.Request().Context())
			if err != nil {
				return errors.Wrap(err, "loading dashboard data")
			}
			usr, ok := snap.UserByID(ctx.Param("id"))
			if !ok {
				return errHttpNotFound
			}

			sameCell := ctxUsr.CellID != "" && usr.CellID == ctxUsr.CellID
			allowed := usr.ID == ctxUsr.ID || ctxUsr.IsCoordinator() || (sameCell && ctxUsr.Outranks(usr))
			if !allowed {
				return errHttpNotFound
			}
			ctx.Set("object", usr)
			return next(ctx)
		}
	}
}
