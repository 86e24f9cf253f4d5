package loans

import (
	"circulation/core/apperr"
	"circulation/core/identity"
	"circulation/core/logger"
	"circulation/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for borrowing and returning books.
type Handler struct {
	manager *Manager
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(m *Manager, logger *zap.Logger) *Handler {
	return &Handler{manager: m, logger: logger}
}

// RegisterRoutes registers the loan routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	books := app.Group("/books")
	books.Post("/:id/borrow", h.HandleBorrow)
	books.Post("/:id/return", h.HandleReturn)

	app.Get("/loans", h.HandleList)
}

// HandleBorrow lends a copy of a book to the caller.
// @Summary Borrow Book
// @Description Lends one copy for the configured loan period. Completes the caller's pending reservation for the book, if any.
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Success 200 {object} loans.BorrowResult
// @Failure 409 {object} apperr.Response "Not available"
// @Failure 422 {object} apperr.Response "Overdue loans block borrowing"
// @Failure 503 {object} apperr.Response
// @Router /books/{id}/borrow [post]
func (h *Handler) HandleBorrow(c *fiber.Ctx) error {
	who, err := identity.Require(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return apperr.Respond(c, err)
	}

	res, err := h.manager.Borrow(c.UserContext(), who, BorrowRequest{BookID: id})
	if err != nil {
		return h.fail(c, "Borrow failed", err)
	}
	return c.JSON(res)
}

// HandleReturn closes the caller's loan of a book.
// @Summary Return Book
// @Description Returns the caller's copy. A late return creates one unpaid fine in the same transaction.
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Success 200 {object} loans.ReturnResult
// @Failure 404 {object} apperr.Response "No active loan"
// @Failure 503 {object} apperr.Response
// @Router /books/{id}/return [post]
func (h *Handler) HandleReturn(c *fiber.Ctx) error {
	who, err := identity.Require(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return apperr.Respond(c, err)
	}

	res, err := h.manager.Return(c.UserContext(), who, ReturnRequest{BookID: id})
	if err != nil {
		return h.fail(c, "Return failed", err)
	}
	return c.JSON(res)
}

// HandleList lists the caller's loans.
// @Summary List Loans
// @Description Lists the caller's loans, most recent first.
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param open query boolean false "Only loans not yet returned"
// @Success 200 {array} loans.LoanView
// @Router /loans [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	who, err := identity.Require(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	out, err := h.manager.ListLoans(c.UserContext(), who, c.QueryBool("open"))
	if err != nil {
		return h.fail(c, "List loans failed", err)
	}
	return c.JSON(out)
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
