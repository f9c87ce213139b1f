package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/freelanceflow/backend/internal/models"
	"github.com/freelanceflow/backend/internal/services/payments"
)

type PaymentHandler struct {
	Svc *payments.Service
}

func NewPaymentHandler(svc *payments.Service) *PaymentHandler {
	return &PaymentHandler{Svc: svc}
}

type createMilestoneReq struct {
	ProjectID     string     `json:"project_id"`
	Description   string     `json:"description"`
	Amount        float64    `json:"amount"`
	PaymentMethod string     `json:"payment_method"`
	Notes         string     `json:"notes"`
	DueDate       *time.Time `json:"due_date"`
	ClientID      *int64     `json:"client_id"`
	FreelancerID  *int64     `json:"freelancer_id"`
}

func (h *PaymentHandler) CreateMilestone(c *fiber.Ctx) error {
	var req createMilestoneReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	m, err := h.Svc.CreateMilestone(c.Context(), payments.CreateMilestoneInput{
		ProjectID:     req.ProjectID,
		Description:   req.Description,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		DueDate:       req.DueDate,
		ClientID:      req.ClientID,
		FreelancerID:  req.FreelancerID,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": m})
}

func (h *PaymentHandler) ListMilestones(c *fiber.Ctx) error {
	ms, err := h.Svc.Milestones(c.Context(), projectFilter(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": ms})
}

func (h *PaymentHandler) ReleaseMilestone(c *fiber.Ctx) error {
	inv, err := h.Svc.ReleaseMilestone(c.Context(), c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"invoice": inv}})
}

type openDisputeReq struct {
	RaisedBy string `json:"raised_by"`
	Reason   string `json:"reason"`
}

func (h *PaymentHandler) DisputeMilestone(c *fiber.Ctx) error {
	var req openDisputeReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	d, err := h.Svc.OpenDispute(c.Context(), payments.OpenDisputeInput{
		MilestoneID: c.Params("id"),
		RaisedBy:    models.DisputeParty(req.RaisedBy),
		Reason:      req.Reason,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": d})
}

func (h *PaymentHandler) ListEscrow(c *fiber.Ctx) error {
	accounts, err := h.Svc.EscrowAccounts(c.Context(), projectFilter(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": accounts})
}

func (h *PaymentHandler) ReleaseEscrow(c *fiber.Ctx) error {
	inv, err := h.Svc.ReleaseEscrow(c.Context(), c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"invoice": inv}})
}

func (h *PaymentHandler) HoldEscrow(c *fiber.Ctx) error {
	if err := h.Svc.HoldEscrow(c.Context(), c.Params("id")); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *PaymentHandler) RefundEscrow(c *fiber.Ctx) error {
	if err := h.Svc.RefundEscrow(c.Context(), c.Params("id")); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

type generateInvoiceReq struct {
	ProjectID    string  `json:"project_id"`
	Amount       float64 `json:"amount"`
	Description  string  `json:"description"`
	ClientID     *int64  `json:"client_id"`
	FreelancerID *int64  `json:"freelancer_id"`
}

func (h *PaymentHandler) GenerateInvoice(c *fiber.Ctx) error {
	var req generateInvoiceReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	inv, err := h.Svc.GenerateInvoice(c.Context(), payments.GenerateInvoiceInput{
		ProjectID:    req.ProjectID,
		Amount:       req.Amount,
		Description:  req.Description,
		ClientID:     req.ClientID,
		FreelancerID: req.FreelancerID,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": inv})
}

func (h *PaymentHandler) ListInvoices(c *fiber.Ctx) error {
	invs, err := h.Svc.Invoices(c.Context(), projectFilter(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": invs})
}

func (h *PaymentHandler) SendInvoice(c *fiber.Ctx) error {
	if err := h.Svc.SendInvoice(c.Context(), c.Params("id")); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *PaymentHandler) ListDisputes(c *fiber.Ctx) error {
	ds, err := h.Svc.Disputes(c.Context(), projectFilter(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": ds})
}

type resolveDisputeReq struct {
	Resolution string `json:"resolution"`
}

func (h *PaymentHandler) ResolveDispute(c *fiber.Ctx) error {
	var req resolveDisputeReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := h.Svc.ResolveDispute(c.Context(), c.Params("id"), req.Resolution); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *PaymentHandler) EscalateDispute(c *fiber.Ctx) error {
	if err := h.Svc.EscalateDispute(c.Context(), c.Params("id")); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *PaymentHandler) MediateDispute(c *fiber.Ctx) error {
	if err := h.Svc.MediateDispute(c.Context(), c.Params("id")); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *PaymentHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.Svc.Dashboard(c.Context(), projectFilter(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": stats})
}
