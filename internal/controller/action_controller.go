package controller

import (
	"sales-crm-be/internal/command"
	"sales-crm-be/internal/pkg/serverutils"
	"sales-crm-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IActionController interface {
	RegisterRoutes(r fiber.Router)
	Execute(ctx *fiber.Ctx) error
}

type actionController struct {
	accountService service.IAccountService
}

func NewActionController(accountService service.IAccountService) IActionController {
	return &actionController{
		accountService: accountService,
	}
}

func (c *actionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/dashboard/v1")
	h.Post("action", c.Execute)
}

func (c *actionController) Execute(ctx *fiber.Ctx) error {
	cmd, err := command.Parse(ctx.Body())
	if err != nil {
		return err
	}

	res, err := c.accountService.Execute(ctx.Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success execute action", res))
}
