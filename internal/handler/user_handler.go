package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/eventos-backend/internal/middleware"
	"github.com/sefazor/eventos-backend/internal/models"
	"github.com/sefazor/eventos-backend/internal/service"
)

type UserHandler struct {
	userService *service.UserService
	resp        *Responder
}

func NewUserHandler(userService *service.UserService, resp *Responder) *UserHandler {
	return &UserHandler{
		userService: userService,
		resp:        resp,
	}
}

func (h *UserHandler) GetMyProfile(c *fiber.Ctx) error {
	user, err := h.userService.GetProfile(c.UserContext(), middleware.Identity(c))
	if err != nil {
		return h.resp.Error(c, err)
	}
	return c.JSON(models.SuccessResponse(user, ""))
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var req models.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return h.resp.badRequest(c)
	}

	user, err := h.userService.UpdateProfile(c.UserContext(), middleware.Identity(c), req)
	if err != nil {
		return h.resp.Error(c, err)
	}

	return h.resp.Success(c, fiber.StatusOK, user, "profile.updated", nil)
}
