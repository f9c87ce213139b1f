package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/freelanceflow/backend/internal/middleware"
	"github.com/freelanceflow/backend/internal/models"
	"github.com/freelanceflow/backend/internal/store"
	"github.com/freelanceflow/backend/internal/utils"
)

type AuthHandler struct {
	Store     *store.Store
	JWTSecret string
	Expires   int
}

type RegisterReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Skill    string `json:"skill"`
	Level    string `json:"level"`
}

type FieldErrors map[string][]string

func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func validationFail(c *fiber.Ctx, errs FieldErrors) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": "Validation error",
		"errors":  errs,
	})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}

	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := strings.TrimSpace(req.Password)
	role := models.Role(strings.ToLower(strings.TrimSpace(req.Role)))

	errs := FieldErrors{}
	if name == "" {
		errs.Add("name", "Name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		errs.Add("email", "A valid email is required")
	}
	if len(password) < 8 {
		errs.Add("password", "Password must be at least 8 characters")
	}
	// Admin accounts are never self-registered.
	if role != models.RoleClient && role != models.RoleFreelancer {
		errs.Add("role", "Role must be client or freelancer")
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	if _, err := h.Store.UserByEmail(c.Context(), email); err == nil {
		errs.Add("email", "Email is already registered")
		return validationFail(c, errs)
	} else if !errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Server error",
		})
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to process password",
		})
	}

	u := models.User{
		Name:         name,
		Email:        email,
		Role:         role,
		Skill:        req.Skill,
		Level:        req.Level,
		Status:       models.UserStatusPending,
		PasswordHash: hash,
	}
	if err := h.Store.CreateUser(c.Context(), &u); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Registration failed",
		})
	}

	return h.issueSession(c, &u, fiber.StatusCreated, "Registered")
}

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := strings.TrimSpace(req.Password)

	u, err := h.Store.UserByEmail(c.Context(), email)
	if err != nil || !utils.CheckPassword(u.PasswordHash, password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Invalid email or password",
		})
	}

	return h.issueSession(c, u, fiber.StatusOK, "Logged in")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		MaxAge:   -1,
	})
	return c.JSON(fiber.Map{"success": true, "message": "Logged out"})
}

func (h *AuthHandler) issueSession(c *fiber.Ctx, u *models.User, status int, msg string) error {
	token, err := utils.SignJWT(h.JWTSecret, itoa(u.ID), string(u.Role), h.Expires)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to create session token",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		SameSite: "Lax",
		MaxAge:   h.Expires * 60,
	})

	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"message": msg,
		"data": fiber.Map{
			"user": fiber.Map{
				"id":    u.ID,
				"name":  u.Name,
				"email": u.Email,
				"role":  u.Role,
			},
		},
	})
}
