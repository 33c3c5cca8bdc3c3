package apiv1

import (
	"employee-portal-backend/controllers"
	resignationhandler "employee-portal-backend/lib/resignation"
	"employee-portal-backend/middleware"
	"employee-portal-backend/models"
	apimodels "employee-portal-backend/models/api"
	requestapimodels "employee-portal-backend/models/api/request"

	"github.com/gofiber/fiber/v2"
)

type resignationApiController struct {
	controllers.BaseAPIController
}

func InitResignationApiRouters(app *fiber.App) {
	controller := resignationApiController{}
	app.Route("requests/resignation", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Post("", controller.create)
		router.Get("my", controller.listOwn)
		router.Get("eligibility", controller.eligibility)
	})
	app.Route("staff/resignations", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired(), middleware.DepartmentRoleRequired(models.HrDepartment))
		router.Get("", controller.queue)
	})
}

// @Summary Submit a resignation request
// @Tags Resignations
// @Description Submit a resignation request
// @Param   Authorization	header	string							true	"Authorization token"
// @Param	body			body	requestapimodels.CreateResignation	true	"request body"
// @Success 200 {object} apimodels.Response{data=requestapimodels.RequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requests/resignation [post]
func (c *resignationApiController) create(ctx *fiber.Ctx) error {
	var payload requestapimodels.CreateResignation
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := resignationhandler.Instance.Create(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary List own resignation requests
// @Tags Resignations
// @Description List own resignation requests
// @Param   Authorization	header	string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]requestapimodels.RequestView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requests/resignation/my [get]
func (c *resignationApiController) listOwn(ctx *fiber.Ctx) error {
	resp, err := resignationhandler.Instance.ListOwn(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Check whether a resignation request can be submitted
// @Tags Resignations
// @Description Check whether a resignation request can be submitted
// @Param   Authorization	header	string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=requestapimodels.EligibilityView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requests/resignation/eligibility [get]
func (c *resignationApiController) eligibility(ctx *fiber.Ctx) error {
	resp, err := resignationhandler.Instance.Eligibility(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary HR queue of resignation requests
// @Tags Resignations
// @Description HR queue of resignation requests
// @Param   Authorization	header	string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]requestapimodels.RequestView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/staff/resignations [get]
func (c *resignationApiController) queue(ctx *fiber.Ctx) error {
	resp, err := resignationhandler.Instance.Queue()
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
