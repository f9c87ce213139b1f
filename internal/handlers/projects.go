package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/freelanceflow/backend/internal/models"
	"github.com/freelanceflow/backend/internal/services/projects"
)

type ProjectHandler struct {
	Svc *projects.Service
}

func NewProjectHandler(svc *projects.Service) *ProjectHandler {
	return &ProjectHandler{Svc: svc}
}

type createProjectReq struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	ClientName   string  `json:"client_name"`
	Category     string  `json:"category"`
	Budget       float64 `json:"budget"`
	Difficulty   string  `json:"difficulty"`
	DeadlineDays int     `json:"deadline_days"`
}

func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var req createProjectReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	p, err := h.Svc.CreateProject(c.Context(), projects.CreateProjectInput{
		Title:        req.Title,
		Description:  req.Description,
		ClientName:   req.ClientName,
		Category:     req.Category,
		Budget:       req.Budget,
		Difficulty:   models.ProjectDifficulty(req.Difficulty),
		DeadlineDays: req.DeadlineDays,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": p})
}

func (h *ProjectHandler) List(c *fiber.Ctx) error {
	ps, err := h.Svc.Projects(c.Context())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": ps})
}

func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	p, err := h.Svc.Project(c.Context(), c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": p})
}

type changeStatusReq struct {
	Status string `json:"status"`
	Actor  string `json:"actor"`
	Reason string `json:"reason"`
}

func (h *ProjectHandler) ChangeStatus(c *fiber.Ctx) error {
	var req changeStatusReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}
	err := h.Svc.ChangeProjectStatus(c.Context(), c.Params("id"),
		models.ProjectStatus(req.Status), req.Actor, req.Reason)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *ProjectHandler) History(c *fiber.Ctx) error {
	rows, err := h.Svc.StatusHistory(c.Context(), c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": rows})
}

func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	if err := h.Svc.DeleteProject(c.Context(), c.Params("id")); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

type placeBidReq struct {
	FreelancerName string  `json:"freelancer_name"`
	Amount         float64 `json:"amount"`
	CompletionDays int     `json:"completion_days"`
	Proposal       string  `json:"proposal"`
	ResumeRef      string  `json:"resume_ref"`
}

func (h *ProjectHandler) PlaceBid(c *fiber.Ctx) error {
	var req placeBidReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	b, err := h.Svc.PlaceBid(c.Context(), projects.PlaceBidInput{
		ProjectID:      c.Params("id"),
		FreelancerName: req.FreelancerName,
		Amount:         req.Amount,
		CompletionDays: req.CompletionDays,
		Proposal:       req.Proposal,
		ResumeRef:      req.ResumeRef,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": b})
}

func (h *ProjectHandler) ListBids(c *fiber.Ctx) error {
	bids, err := h.Svc.Bids(c.Context(), projectFilter(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": bids})
}

type decideBidReq struct {
	Status string `json:"status"`
}

func (h *ProjectHandler) DecideBid(c *fiber.Ctx) error {
	var req decideBidReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := h.Svc.DecideBid(c.Context(), c.Params("id"), models.BidStatus(req.Status)); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
