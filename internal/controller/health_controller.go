package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Check(ctx *fiber.Ctx) error
}

type healthController struct {
	db *gorm.DB
	// devMode is true when no model provider is configured and replies come
	// from the deterministic templates.
	devMode bool
}

func NewHealthController(db *gorm.DB, devMode bool) IHealthController {
	return &healthController{
		db:      db,
		devMode: devMode,
	}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/health/v1")
	h.Get("", c.Check)
}

func (c *healthController) Check(ctx *fiber.Ctx) error {
	dbStatus := "connected"
	status := "healthy"

	sqlDB, err := c.db.DB()
	if err != nil {
		dbStatus = "error: " + err.Error()
	} else if err := sqlDB.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
	}
	if dbStatus != "connected" {
		status = "degraded"
	}

	return ctx.JSON(fiber.Map{
		"status":   status,
		"dev_mode": c.devMode,
		"database": dbStatus,
	})
}
