package apiv1

import (
	"io"
	"mime/multipart"

	"employee-portal-backend/controllers"
	jobapplicationhandler "employee-portal-backend/lib/job-application"
	"employee-portal-backend/middleware"
	"employee-portal-backend/models"
	apimodels "employee-portal-backend/models/api"
	requestapimodels "employee-portal-backend/models/api/request"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

type jobApplicationApiController struct {
	controllers.BaseAPIController
}

func InitJobApplicationApiRouters(app *fiber.App) {
	controller := jobApplicationApiController{}
	// applications are open to candidates without an account
	app.Post("public/job-application", controller.createPublic)
	app.Route("requests/job-application", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Post("", controller.create)
		router.Get("my", controller.listOwn)
		router.Get("eligibility", controller.eligibility)
	})
	app.Route("staff/job-applications", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired(), middleware.DepartmentRoleRequired(models.HrDepartment))
		router.Get("", controller.queue)
	})
}

// @Summary Submit a job application without an account
// @Tags Job applications
// @Description Submit a job application without an account
// @Param   full_name	formData	string	true	"applicant full name"
// @Param   phone		formData	string	true	"contact phone"
// @Param   email		formData	string	true	"contact email"
// @Param   details		formData	string	false	"cover note"
// @Param   resume		formData	file	true	"resume file"
// @Param   documents	formData	file	false	"additional documents"
// @Success 200 {object} apimodels.Response{data=requestapimodels.RequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/public/job-application [post]
func (c *jobApplicationApiController) createPublic(ctx *fiber.Ctx) error {
	return c.handleCreate(ctx, "")
}

// @Summary Submit a job application
// @Tags Job applications
// @Description Submit a job application
// @Param   Authorization	header		string	true	"Authorization token"
// @Param   full_name	formData	string	true	"applicant full name"
// @Param   phone		formData	string	true	"contact phone"
// @Param   email		formData	string	true	"contact email"
// @Param   details		formData	string	false	"cover note"
// @Param   resume		formData	file	true	"resume file"
// @Param   documents	formData	file	false	"additional documents"
// @Success 200 {object} apimodels.Response{data=requestapimodels.RequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requests/job-application [post]
func (c *jobApplicationApiController) create(ctx *fiber.Ctx) error {
	return c.handleCreate(ctx, middleware.GetUserID(ctx))
}

func (c *jobApplicationApiController) handleCreate(ctx *fiber.Ctx, userID string) error {
	var payload requestapimodels.CreateJobApplication
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resume, err := readFormFile(ctx, "resume")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("resume file is required"))
	}
	documents, err := readFormFiles(ctx, "documents")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("failed to read attached documents"))
	}
	resp, err := jobapplicationhandler.Instance.Create(ctx.UserContext(), userID, payload, resume, documents)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary List own job applications
// @Tags Job applications
// @Description List own job applications
// @Param   Authorization	header	string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]requestapimodels.RequestView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requests/job-application/my [get]
func (c *jobApplicationApiController) listOwn(ctx *fiber.Ctx) error {
	resp, err := jobapplicationhandler.Instance.ListOwn(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Check whether a new application can be submitted
// @Tags Job applications
// @Description Check whether a new application can be submitted
// @Param   Authorization	header	string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=requestapimodels.EligibilityView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requests/job-application/eligibility [get]
func (c *jobApplicationApiController) eligibility(ctx *fiber.Ctx) error {
	resp, err := jobapplicationhandler.Instance.Eligibility(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary HR queue of job applications
// @Tags Job applications
// @Description HR queue of job applications
// @Param   Authorization	header	string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]requestapimodels.RequestView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/staff/job-applications [get]
func (c *jobApplicationApiController) queue(ctx *fiber.Ctx) error {
	resp, err := jobapplicationhandler.Instance.Queue()
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

func readFormFile(ctx *fiber.Ctx, field string) (requestapimodels.FileUpload, error) {
	file, err := ctx.FormFile(field)
	if err != nil {
		return requestapimodels.FileUpload{}, err
	}
	return readMultipartFile(file)
}

func readFormFiles(ctx *fiber.Ctx, field string) ([]requestapimodels.FileUpload, error) {
	form, err := ctx.MultipartForm()
	if err != nil {
		return nil, err
	}
	result := []requestapimodels.FileUpload{}
	for _, file := range form.File[field] {
		upload, err := readMultipartFile(file)
		if err != nil {
			return nil, err
		}
		result = append(result, upload)
	}
	return result, nil
}

func readMultipartFile(file *multipart.FileHeader) (requestapimodels.FileUpload, error) {
	buffer, err := file.Open()
	if err != nil {
		log.WithError(err).Error("failed to open uploaded file")
		return requestapimodels.FileUpload{}, err
	}
	defer buffer.Close()
	fileBody, err := io.ReadAll(buffer)
	if err != nil {
		log.WithError(err).Error("failed to read uploaded file")
		return requestapimodels.FileUpload{}, err
	}
	return requestapimodels.FileUpload{
		Name:        file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Data:        fileBody,
	}, nil
}
