package fiberlog

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	TagStatus  = "status"
	TagLatency = "latency"
	TagMethod  = "method"
	TagPath    = "path"
	TagIP      = "ip"
	TagPid     = "pid"
	TagBody    = "body"
	TagResBody = "res_body"
	RequestID  = "request_id"
)

type data struct {
	pid   int
	start time.Time
	end   time.Time
}

// FuncTag resolves a single log field value for a finished request
type FuncTag func(c *fiber.Ctx, d *data) any

var funcTags = map[string]FuncTag{
	TagStatus: func(c *fiber.Ctx, d *data) any {
		return c.Response().StatusCode()
	},
	TagLatency: func(c *fiber.Ctx, d *data) any {
		return d.end.Sub(d.start).String()
	},
	TagMethod: func(c *fiber.Ctx, d *data) any {
		return c.Method()
	},
	TagPath: func(c *fiber.Ctx, d *data) any {
		return c.Path()
	},
	TagIP: func(c *fiber.Ctx, d *data) any {
		return c.IP()
	},
	TagPid: func(c *fiber.Ctx, d *data) any {
		return d.pid
	},
	TagBody: func(c *fiber.Ctx, d *data) any {
		return string(c.Body())
	},
	TagResBody: func(c *fiber.Ctx, d *data) any {
		if c.Response().StatusCode() < 300 {
			return ""
		}
		return string(c.Response().Body())
	},
	RequestID: func(c *fiber.Ctx, d *data) any {
		return c.Get(fiber.HeaderXRequestID)
	},
}

func getFuncTagMap(cfg Config, d *data) map[string]FuncTag {
	ftm := make(map[string]FuncTag, len(cfg.Tags))
	for _, tag := range cfg.Tags {
		if ft, ok := funcTags[tag]; ok {
			ftm[tag] = ft
		}
	}
	return ftm
}
