package fines

import (
	"circulation/core/apperr"
	"circulation/core/identity"
	"circulation/core/logger"
	"circulation/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler exposes the fine ledger over HTTP.
type Handler struct {
	ledger *Ledger
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(l *Ledger, logger *zap.Logger) *Handler {
	return &Handler{ledger: l, logger: logger}
}

// RegisterRoutes registers the fine routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/fines")
	group.Get("/", h.HandleOutstanding)
	group.Get("/history", h.HandleHistory)
	group.Get("/receipts", h.HandleReceipts)
	group.Get("/quote/:borrowId", h.HandleQuote)
	group.Post("/:id/pay", h.HandlePay)
	group.Get("/:id/receipt", h.HandleReceipt)
}

// HandleOutstanding lists the caller's unpaid fines.
// @Summary List Unpaid Fines
// @Description Returns the caller's unpaid fines with book title and due date, newest first.
// @Tags fines
// @Produce json
// @Security BearerAuth
// @Success 200 {array} fines.View
// @Failure 401 {object} apperr.Response
// @Failure 503 {object} apperr.Response
// @Router /fines [get]
func (h *Handler) HandleOutstanding(c *fiber.Ctx) error {
	who, err := identity.Require(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	out, err := h.ledger.Outstanding(c.UserContext(), who)
	if err != nil {
		return h.fail(c, "List fines failed", err)
	}
	return c.JSON(out)
}

// HandleHistory lists the caller's paid fines.
// @Summary Fine Payment History
// @Description Returns the caller's paid fines, most recently paid first.
// @Tags fines
// @Produce json
// @Security BearerAuth
// @Success 200 {array} fines.View
// @Failure 401 {object} apperr.Response
// @Failure 503 {object} apperr.Response
// @Router /fines/history [get]
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	who, err := identity.Require(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	out, err := h.ledger.History(c.UserContext(), who)
	if err != nil {
		return h.fail(c, "Fine history failed", err)
	}
	return c.JSON(out)
}

// HandleQuote prices one of the caller's loans.
// @Summary Quote Fine
// @Description Computes the days overdue and the fine that returning the loan now would incur.
// @Tags fines
// @Produce json
// @Security BearerAuth
// @Param borrowId path int true "Borrow record ID"
// @Success 200 {object} fines.Quote
// @Failure 400 {object} apperr.Response
// @Failure 404 {object} apperr.Response
// @Router /fines/quote/{borrowId} [get]
func (h *Handler) HandleQuote(c *fiber.Ctx) error {
	who, err := identity.Require(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	id, err := utils.ParamID(c, "borrowId")
	if err != nil {
		return apperr.Respond(c, err)
	}
	q, err := h.ledger.Quote(c.UserContext(), who, id)
	if err != nil {
		return h.fail(c, "Fine quote failed", err)
	}
	return c.JSON(q)
}

// HandlePay settles a fine.
// @Summary Pay Fine
// @Description Pays a fine in full. The tendered amount must cover the amount owed.
// @Tags fines
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Fine ID"
// @Param request body fines.PayRequest true "Payment"
// @Success 200 {object} ledger.Fine
// @Failure 400 {object} apperr.Response
// @Failure 403 {object} apperr.Response
// @Failure 404 {object} apperr.Response
// @Failure 409 {object} apperr.Response "Already paid"
// @Failure 422 {object} apperr.Response "Insufficient payment"
// @Router /fines/{id}/pay [post]
func (h *Handler) HandlePay(c *fiber.Ctx) error {
	who, err := identity.Require(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return apperr.Respond(c, err)
	}
	var req PayRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Respond(c, apperr.Wrap(apperr.Invalid, "INVALID_BODY", "request body is not valid JSON", err))
	}

	fine, err := h.ledger.Pay(c.UserContext(), who, id, req)
	if err != nil {
		return h.fail(c, "Fine payment failed", err)
	}
	return c.JSON(fine)
}

// HandleReceipts lists the caller's archived receipts.
// @Summary List Receipts
// @Description Lists the payment receipts archived for the caller.
// @Tags fines
// @Produce json
// @Security BearerAuth
// @Success 200 {array} fines.ReceiptObject
// @Failure 404 {object} apperr.Response "Archive disabled"
// @Router /fines/receipts [get]
func (h *Handler) HandleReceipts(c *fiber.Ctx) error {
	who, err := identity.Require(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	if h.ledger.receipts == nil {
		return apperr.Respond(c, ErrReceiptsDisabled)
	}
	out, err := h.ledger.receipts.List(c.UserContext(), who.UserID)
	if err != nil {
		return h.fail(c, "List receipts failed", apperr.AsTransient(err))
	}
	return c.JSON(out)
}

// HandleReceipt returns the receipt of one paid fine.
// @Summary Get Receipt
// @Description Returns the archived payment receipt of one of the caller's fines.
// @Tags fines
// @Produce json
// @Security BearerAuth
// @Param id path int true "Fine ID"
// @Success 200 {object} fines.Receipt
// @Failure 404 {object} apperr.Response
// @Router /fines/{id}/receipt [get]
func (h *Handler) HandleReceipt(c *fiber.Ctx) error {
	who, err := identity.Require(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return apperr.Respond(c, err)
	}
	if h.ledger.receipts == nil {
		return apperr.Respond(c, ErrReceiptsDisabled)
	}
	r, err := h.ledger.receipts.Fetch(c.UserContext(), who.UserID, id)
	if err != nil {
		return h.fail(c, "Fetch receipt failed", apperr.AsTransient(err))
	}
	return c.JSON(r)
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	l := logger.WithRayID(h.logger, c)
	if apperr.KindOf(err) == apperr.Transient || apperr.KindOf(err) == apperr.Internal {
		l.Error(msg, zap.Error(err))
	} else {
		l.Info(msg, zap.Error(err))
	}
	return apperr.Respond(c, err)
}
