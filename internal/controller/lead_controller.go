package controller

import (
	"advisor-chat-be/internal/dto"
	"advisor-chat-be/internal/pkg/serverutils"
	"advisor-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ILeadController interface {
	RegisterRoutes(r fiber.Router)
	CreateLead(ctx *fiber.Ctx) error
}

type leadController struct {
	leadService service.ILeadService
}

func NewLeadController(leadService service.ILeadService) ILeadController {
	return &leadController{
		leadService: leadService,
	}
}

func (c *leadController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/lead/v1")
	h.Post("", c.CreateLead)
}

func (c *leadController) CreateLead(ctx *fiber.Ctx) error {
	var req dto.CreateLeadRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	// Fall back to transport-level values for the consent audit trail.
	if req.IPAddress == "" {
		req.IPAddress = ctx.IP()
	}
	if req.UserAgent == "" {
		req.UserAgent = ctx.Get("User-Agent")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.leadService.CreateLead(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create lead", res))
}
