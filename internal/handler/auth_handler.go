package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/eventos-backend/internal/middleware"
	"github.com/sefazor/eventos-backend/internal/models"
	"github.com/sefazor/eventos-backend/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
	resp        *Responder
}

func NewAuthHandler(authService *service.AuthService, resp *Responder) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		resp:        resp,
	}
}

// Register creates an account and returns a session token for it.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return h.resp.badRequest(c)
	}

	auth, err := h.authService.Register(c.UserContext(), req)
	if err != nil {
		return h.resp.Error(c, err)
	}

	return h.resp.Success(c, fiber.StatusCreated, auth, "auth.registered", nil)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return h.resp.badRequest(c)
	}

	auth, err := h.authService.Login(c.UserContext(), req)
	if err != nil {
		return h.resp.Error(c, err)
	}

	return h.resp.Success(c, fiber.StatusOK, auth, "auth.logged_in", nil)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authService.Logout(c.UserContext(), middleware.Identity(c)); err != nil {
		return h.resp.Error(c, err)
	}
	return h.resp.Success(c, fiber.StatusOK, nil, "auth.logged_out", nil)
}
