package apiv1

import (
	"employee-portal-backend/controllers"
	approvalhandler "employee-portal-backend/lib/approval"
	"employee-portal-backend/middleware"
	"employee-portal-backend/models"
	apimodels "employee-portal-backend/models/api"
	requestapimodels "employee-portal-backend/models/api/request"

	"github.com/gofiber/fiber/v2"
)

type approvalApiController struct {
	controllers.BaseAPIController
}

func InitApprovalApiRouters(app *fiber.App) {
	controller := approvalApiController{}
	app.Route("staff/requests/:id", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired(), middleware.StaffRoleRequired())
		router.Get("approvals", controller.list)
		router.Post("decision/:department", controller.decide)
	})
}

// @Summary Approval state of a request
// @Tags Approvals
// @Description Approval state of a request
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id				path	string	true	"request ID"
// @Success 200 {object} apimodels.Response{data=[]requestapimodels.ApprovalView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/staff/requests/{id}/approvals [get]
func (c *approvalApiController) list(ctx *fiber.Ctx) error {
	resp, err := approvalhandler.Instance.Get(ctx.Params("id"))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Record a department decision on a request
// @Tags Approvals
// @Description Record a department decision on a request
// @Param   Authorization	header	string							true	"Authorization token"
// @Param   id				path	string							true	"request ID"
// @Param   department		path	string							true	"department (HR/IT)"
// @Param	body			body	requestapimodels.DecisionRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/staff/requests/{id}/decision/{department} [post]
func (c *approvalApiController) decide(ctx *fiber.Ctx) error {
	dept := models.Department(ctx.Params("department"))
	if !dept.IsValid() {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("unknown department"))
	}
	role := middleware.GetUserRole(ctx)
	if role != dept.QueueRole() && role != models.AdminRole {
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("operation is not allowed"))
	}
	var payload requestapimodels.DecisionRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return c.SendError(ctx, err)
	}
	err := approvalhandler.Instance.Decide(ctx.Params("id"), dept, payload.State(), middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
