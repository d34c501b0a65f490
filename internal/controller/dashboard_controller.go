package controller

import (
	"sales-crm-be/internal/pkg/serverutils"
	"sales-crm-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDashboardController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
}

type dashboardController struct {
	accountService service.IAccountService
}

func NewDashboardController(accountService service.IAccountService) IDashboardController {
	return &dashboardController{
		accountService: accountService,
	}
}

func (c *dashboardController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/dashboard/v1")
	h.Get("", c.Show)
}

func (c *dashboardController) Show(ctx *fiber.Ctx) error {
	res, err := c.accountService.GetDashboard(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get dashboard", res))
}
