package reservations

import (
	"circulation/core/apperr"
	"circulation/core/identity"
	"circulation/core/logger"
	"circulation/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for reservations and book queues.
type Handler struct {
	manager *Manager
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(m *Manager, logger *zap.Logger) *Handler {
	return &Handler{manager: m, logger: logger}
}

// RegisterRoutes registers the reservation routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	books := app.Group("/books")
	books.Get("/:id/availability", h.HandleAvailability)
	books.Get("/:id/queue", h.HandleQueue)

	group := app.Group("/reservations")
	group.Post("/", h.HandleCreate)
	group.Get("/", h.HandleList)
	group.Delete("/:id", h.HandleCancel)
}

// HandleAvailability reports whether reserving a book is meaningful.
// @Summary Check Availability
// @Description Returns free copies, pending queue length and whether a new reservation could be served.
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Success 200 {object} reservations.Availability
// @Failure 404 {object} apperr.Response
// @Router /books/{id}/availability [get]
func (h *Handler) HandleAvailability(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return apperr.Respond(c, err)
	}
	out, err := h.manager.CheckAvailability(c.UserContext(), id)
	if err != nil {
		return h.fail(c, "Availability check failed", err)
	}
	return c.JSON(out)
}

// HandleQueue lists a book's pending reservations.
// @Summary Reservation Queue
// @Description Lists pending reservations of a book in FIFO order with their 1-based positions.
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Success 200 {array} reservations.QueueEntry
// @Failure 404 {object} apperr.Response
// @Router /books/{id}/queue [get]
func (h *Handler) HandleQueue(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return apperr.Respond(c, err)
	}
	out, err := h.manager.Queue(c.UserContext(), id)
	if err != nil {
		return h.fail(c, "Queue lookup failed", err)
	}
	return c.JSON(out)
}

// HandleCreate reserves a book for the caller.
// @Summary Create Reservation
// @Description Queues the caller for a book. Without dates the window is the configured default starting now.
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reservations.CreateRequest true "Reservation"
// @Success 201 {object} reservations.View
// @Failure 400 {object} apperr.Response
// @Failure 404 {object} apperr.Response
// @Failure 409 {object} apperr.Response "Duplicate pending reservation"
// @Router /reservations [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	who, err := identity.Require(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Respond(c, apperr.Wrap(apperr.Invalid, "INVALID_BODY", "request body is not valid JSON", err))
	}

	res, err := h.manager.Create(c.UserContext(), who, req)
	if err != nil {
		return h.fail(c, "Reservation failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// HandleList lists reservations visible to the caller.
// @Summary List Reservations
// @Description Librarians and admins see every reservation, other callers their own. Newest first.
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, cancelled or completed"
// @Success 200 {array} reservations.View
// @Failure 400 {object} apperr.Response
// @Router /reservations [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	who, err := identity.Require(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	out, err := h.manager.List(c.UserContext(), who, ListFilter{Status: c.Query("status")})
	if err != nil {
		return h.fail(c, "List reservations failed", err)
	}
	return c.JSON(out)
}

// HandleCancel cancels a pending reservation.
// @Summary Cancel Reservation
// @Description Cancels a pending reservation. Only its owner, a librarian or an admin may cancel.
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reservation ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} apperr.Response
// @Failure 404 {object} apperr.Response
// @Failure 409 {object} apperr.Response "Not pending"
// @Router /reservations/{id} [delete]
func (h *Handler) HandleCancel(c *fiber.Ctx) error {
	who, err := identity.Require(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return apperr.Respond(c, err)
	}
	if err := h.manager.Cancel(c.UserContext(), who, id); err != nil {
		return h.fail(c, "Cancel reservation failed", err)
	}
	return c.JSON(fiber.Map{"message": "Reservation cancelled"})
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	l := logger.WithRayID(h.logger, c)
	switch apperr.KindOf(err) {
	case apperr.Transient, apperr.Internal:
		l.Error(msg, zap.Error(err))
	default:
		l.Info(msg, zap.Error(err))
	}
	return apperr.Respond(c, err)
}
