package apiv1

import (
	"employee-portal-backend/controllers"
	exceptionrequesthandler "employee-portal-backend/lib/exception-request"
	"employee-portal-backend/middleware"
	"employee-portal-backend/models"
	apimodels "employee-portal-backend/models/api"
	requestapimodels "employee-portal-backend/models/api/request"

	"github.com/gofiber/fiber/v2"
)

type exceptionRequestApiController struct {
	controllers.BaseAPIController
}

func InitExceptionRequestApiRouters(app *fiber.App) {
	controller := exceptionRequestApiController{}
	app.Route("requests/exception-request", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Post("", controller.create)
		router.Get("my", controller.listOwn)
		router.Get("eligibility", controller.eligibility)
	})
	app.Route("staff/exception-requests", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired(), middleware.StaffRoleRequired())
		router.Get(":department", controller.queue)
	})
}

// @Summary Submit an exception request
// @Tags Exception requests
// @Description Submit an exception request
// @Param   Authorization	header	string								true	"Authorization token"
// @Param	body			body	requestapimodels.CreateExceptionRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=requestapimodels.RequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requests/exception-request [post]
func (c *exceptionRequestApiController) create(ctx *fiber.Ctx) error {
	var payload requestapimodels.CreateExceptionRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := exceptionrequesthandler.Instance.Create(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary List own exception requests
// @Tags Exception requests
// @Description List own exception requests
// @Param   Authorization	header	string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]requestapimodels.RequestView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requests/exception-request/my [get]
func (c *exceptionRequestApiController) listOwn(ctx *fiber.Ctx) error {
	resp, err := exceptionrequesthandler.Instance.ListOwn(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Check whether a new exception request can be submitted
// @Tags Exception requests
// @Description Check whether a new exception request can be submitted
// @Param   Authorization	header	string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=requestapimodels.EligibilityView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requests/exception-request/eligibility [get]
func (c *exceptionRequestApiController) eligibility(ctx *fiber.Ctx) error {
	resp, err := exceptionrequesthandler.Instance.Eligibility(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Department queue of exception requests
// @Tags Exception requests
// @Description Department queue of exception requests
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   department		path	string	true	"department (HR/IT)"
// @Success 200 {object} apimodels.Response{data=[]requestapimodels.RequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/staff/exception-requests/{department} [get]
func (c *exceptionRequestApiController) queue(ctx *fiber.Ctx) error {
	dept := models.Department(ctx.Params("department"))
	if !dept.IsValid() {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("unknown department"))
	}
	role := middleware.GetUserRole(ctx)
	if role != dept.QueueRole() && role != models.AdminRole {
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("operation is not allowed"))
	}
	resp, err := exceptionrequesthandler.Instance.Queue(dept)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
