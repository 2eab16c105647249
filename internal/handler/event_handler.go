package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/eventos-backend/internal/middleware"
	"github.com/sefazor/eventos-backend/internal/models"
	"github.com/sefazor/eventos-backend/internal/service"
)

type EventHandler struct {
	eventService      *service.EventService
	enrollmentService *service.EnrollmentService
	rosterService     *service.RosterService
	resp              *Responder
}

func NewEventHandler(
	eventService *service.EventService,
	enrollmentService *service.EnrollmentService,
	rosterService *service.RosterService,
	resp *Responder,
) *EventHandler {
	return &EventHandler{
		eventService:      eventService,
		enrollmentService: enrollmentService,
		rosterService:     rosterService,
		resp:              resp,
	}
}

func (h *EventHandler) ListEvents(c *fiber.Ctx) error {
	events, err := h.eventService.List(c.UserContext(), middleware.Identity(c))
	if err != nil {
		return h.resp.Error(c, err)
	}
	return c.JSON(models.SuccessResponse(events, ""))
}

func (h *EventHandler) MyEvents(c *fiber.Ctx) error {
	events, err := h.eventService.ListEnrolled(c.UserContext(), middleware.Identity(c))
	if err != nil {
		return h.resp.Error(c, err)
	}
	return c.JSON(models.SuccessResponse(events, ""))
}

func (h *EventHandler) GetEvent(c *fiber.Ctx) error {
	id, err := eventID(c)
	if err != nil {
		return h.resp.Error(c, err)
	}

	event, err := h.eventService.Get(c.UserContext(), middleware.Identity(c), id)
	if err != nil {
		return h.resp.Error(c, err)
	}
	return c.JSON(models.SuccessResponse(event, ""))
}

func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	var req models.EventRequest
	if err := c.BodyParser(&req); err != nil {
		return h.resp.badRequest(c)
	}

	event, err := h.eventService.Create(c.UserContext(), middleware.Identity(c), req)
	if err != nil {
		return h.resp.Error(c, err)
	}

	return h.resp.Success(c, fiber.StatusCreated, event, "event.created", nil)
}

// DeleteEvent removes the event. Non-admins are redirected to the event with 303.
func (h *EventHandler) DeleteEvent(c *fiber.Ctx) error {
	id, err := eventID(c)
	if err != nil {
		return h.resp.Error(c, err)
	}

	if err := h.eventService.Delete(c.UserContext(), middleware.Identity(c), id); err != nil {
		return h.resp.Error(c, err)
	}

	return h.resp.Success(c, fiber.StatusOK, nil, "event.deleted", nil)
}

func (h *EventHandler) Enroll(c *fiber.Ctx) error {
	id, err := eventID(c)
	if err != nil {
		return h.resp.Error(c, err)
	}

	event, err := h.enrollmentService.Enroll(c.UserContext(), middleware.Identity(c), id)
	if err != nil {
		return h.resp.Error(c, err)
	}

	return h.resp.Success(c, fiber.StatusOK, event, "event.enrolled", map[string]any{"Event": event.Name})
}

// Ticket returns the caller's QR ticket as a PNG image.
func (h *EventHandler) Ticket(c *fiber.Ctx) error {
	id, err := eventID(c)
	if err != nil {
		return h.resp.Error(c, err)
	}

	png, err := h.enrollmentService.Ticket(c.UserContext(), middleware.Identity(c), id)
	if err != nil {
		return h.resp.Error(c, err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

func (h *EventHandler) ExportRoster(c *fiber.Ctx) error {
	id, err := eventID(c)
	if err != nil {
		return h.resp.Error(c, err)
	}

	export, err := h.rosterService.Export(c.UserContext(), middleware.Identity(c), id)
	if err != nil {
		return h.resp.Error(c, err)
	}

	return h.resp.Success(c, fiber.StatusOK, export, "event.roster_exported", nil)
}
