package apiv1

import (
	"fmt"
	"io"
	"time"

	"employee-portal-backend/controllers"
	portalusershandler "employee-portal-backend/lib/portal-users"
	"employee-portal-backend/middleware"
	apimodels "employee-portal-backend/models/api"
	usersapimodels "employee-portal-backend/models/api/users"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

type adminUsersApiController struct {
	controllers.BaseAPIController
}

func InitAdminUsersApiRouters(app *fiber.App) {
	controller := adminUsersApiController{}
	app.Route("admin/users", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired(), middleware.AdminRoleRequired())
		router.Post("", controller.create)
		router.Post("list", controller.list)
		router.Post("bulk-upload", controller.bulkUpload)
		router.Get("export", controller.export)
		router.Get(":id", controller.get)
		router.Put(":id", controller.update)
		router.Delete(":id", controller.delete)
	})
}

// @Summary Add a roster record
// @Tags User administration
// @Description Add a roster record
// @Param   Authorization	header	string						true	"Authorization token"
// @Param	body			body	usersapimodels.CreateUser	true	"request body"
// @Success 200 {object} apimodels.Response{data=usersapimodels.PortalUserView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/users [post]
func (c *adminUsersApiController) create(ctx *fiber.Ctx) error {
	var payload usersapimodels.CreateUser
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := portalusershandler.Instance.CreateUser(payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Paged roster list
// @Tags User administration
// @Description Paged roster list
// @Param   Authorization	header	string					true	"Authorization token"
// @Param	body			body	apimodels.Pagination	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]usersapimodels.PortalUserView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/users/list [post]
func (c *adminUsersApiController) list(ctx *fiber.Ctx) error {
	var payload apimodels.Pagination
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	page, limit := payload.GetPage()
	list, rowCount, err := portalusershandler.Instance.GetList(page, limit)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Bulk roster upload from CSV or XLSX
// @Tags User administration
// @Description Bulk roster upload from CSV or XLSX
// @Param   Authorization	header		string	true	"Authorization token"
// @Param   file			formData	file	true	"file to upload"
// @Success 200 {object} apimodels.Response{data=usersapimodels.BulkImportResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/users/bulk-upload [post]
func (c *adminUsersApiController) bulkUpload(ctx *fiber.Ctx) error {
	file, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("file is required"))
	}
	buffer, err := file.Open()
	if err != nil {
		log.WithError(err).Error("failed to open roster file")
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	defer buffer.Close()
	fileBody, err := io.ReadAll(buffer)
	if err != nil {
		log.WithError(err).Error("failed to read roster file")
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := portalusershandler.Instance.BulkImport(file.Filename, fileBody)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Export the roster to XLSX
// @Tags User administration
// @Description Export the roster to XLSX
// @Param   Authorization	header	string	true	"Authorization token"
// @Success 200 {file} file
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/users/export [get]
func (c *adminUsersApiController) export(ctx *fiber.Ctx) error {
	data, err := portalusershandler.Instance.Export()
	if err != nil {
		return c.SendError(ctx, err)
	}
	fileName := fmt.Sprintf("users-%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Set("Content-Type", "application/vnd.ms-excel")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.SendStream(data)
}

// @Summary Roster record by ID
// @Tags User administration
// @Description Roster record by ID
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id				path	string	true	"user ID"
// @Success 200 {object} apimodels.Response{data=usersapimodels.PortalUserView}
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/users/{id} [get]
func (c *adminUsersApiController) get(ctx *fiber.Ctx) error {
	resp, err := portalusershandler.Instance.GetUser(ctx.Params("id"))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Update a roster record
// @Tags User administration
// @Description Update a roster record
// @Param   Authorization	header	string						true	"Authorization token"
// @Param   id				path	string						true	"user ID"
// @Param	body			body	usersapimodels.UpdateUser	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/users/{id} [put]
func (c *adminUsersApiController) update(ctx *fiber.Ctx) error {
	var payload usersapimodels.UpdateUser
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err := portalusershandler.Instance.UpdateUser(ctx.Params("id"), payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Delete a roster record and its requests
// @Tags User administration
// @Description Delete a roster record and its requests
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id				path	string	true	"user ID"
// @Success 200 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/users/{id} [delete]
func (c *adminUsersApiController) delete(ctx *fiber.Ctx) error {
	err := portalusershandler.Instance.DeleteUser(ctx.Params("id"))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
