package controllers

import (
	"employee-portal-backend/models"
	apimodels "employee-portal-backend/models/api"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("failed to parse request body")
		return errors.New("failed to read request data")
	}
	return nil
}

// SendError maps the error taxonomy onto an HTTP status and the standard
// response envelope.
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, err error) error {
	apiErr := models.AsAPIError(err)
	return ctx.Status(apiErr.HTTPStatus()).JSON(apimodels.NewError(apiErr.Message))
}
