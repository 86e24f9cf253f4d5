package audit

import (
	"circulation/core/apperr"
	"circulation/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for audits.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the audit routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/audit")
	group.Get("/", h.HandleAudit)
	group.Get("/schema", h.HandleSchemaCheck)
	group.Get("/circulation", h.HandleCirculationCheck)
}

// HandleAudit runs every check.
// @Summary Run All Audits
// @Description Performs the schema and circulation checks. Never repairs anything.
// @Tags audit
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} audit.Report
// @Failure 403 {object} apperr.Response
// @Router /audit [get]
func (h *Handler) HandleAudit(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all audits")

	report := h.service.Run(c.UserContext())
	if len(report.Errors) > 0 {
		l.Warn("Audit finished with errors", zap.Strings("errors", report.Errors))
	}
	return c.JSON(report)
}

// HandleSchemaCheck compares the live schema with the models.
// @Summary Check Schema
// @Description Checks that every ledger table and column exists in the connected database.
// @Tags audit
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} audit.SchemaReport
// @Failure 403 {object} apperr.Response
// @Failure 503 {object} apperr.Response
// @Router /audit/schema [get]
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckSchema(c.UserContext())
	if err != nil {
		l.Error("Schema check failed", zap.Error(err))
		return apperr.Respond(c, err)
	}
	if !report.Matched {
		l.Warn("Schema drift detected", zap.Any("tables", report.Tables))
	}
	return c.JSON(report)
}

// HandleCirculationCheck checks and optionally repairs circulation drift.
// @Summary Check Circulation
// @Description Detects status drift, negative quantities, late returns without a fine and duplicate pending reservations. Optionally repairs them.
// @Tags audit
// @Produce json
// @Security ApiKeyAuth
// @Param fix query boolean false "Apply the planned repairs"
// @Param dry_run query boolean false "Plan only, even with fix"
// @Success 200 {object} map[string]interface{} "Circulation Report"
// @Failure 403 {object} apperr.Response
// @Failure 503 {object} apperr.Response
// @Router /audit/circulation [get]
func (h *Handler) HandleCirculationCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.QueryBool("fix")
	dryRun := c.QueryBool("dry_run")

	plan, err := h.service.PlanCirculation(c.UserContext())
	if err != nil {
		l.Error("Circulation check failed", zap.Error(err))
		return apperr.Respond(c, err)
	}

	if plan.Clean() || !fix {
		return c.JSON(fiber.Map{
			"status": "checked",
			"plan":   plan,
		})
	}

	l.Warn("Circulation drift detected",
		zap.Int("findings", len(plan.Findings)),
		zap.Int("actions", len(plan.Actions)),
	)

	executed, err := h.service.Apply(c.UserContext(), plan, Options{DryRun: dryRun, Confirmed: true})
	if err != nil {
		l.Error("Circulation repair failed", zap.Int("executed", executed), zap.Error(err))
		return c.Status(apperr.Status(apperr.KindOf(err))).JSON(fiber.Map{
			"error":    "Failed to repair circulation",
			"details":  err.Error(),
			"executed": executed,
			"plan":     plan,
		})
	}

	status := "fixed"
	if dryRun {
		status = "dry_run"
	}
	return c.JSON(fiber.Map{
		"status":   status,
		"executed": executed,
		"plan":     plan,
	})
}
