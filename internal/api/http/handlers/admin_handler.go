package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/redemption-service/internal/api/dto"
	"github.com/spec-kit/redemption-service/internal/service"
	apperrors "github.com/spec-kit/redemption-service/pkg/util"
)

// AdminHandler exposes operator endpoints.
type AdminHandler struct {
	authService *service.AuthService
	redemptions *service.RedemptionService
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(authService *service.AuthService, redemptions *service.RedemptionService) *AdminHandler {
	return &AdminHandler{authService: authService, redemptions: redemptions}
}

// Login handles POST /auth/admin/login.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Password == "" {
		return apperrors.NewValidationError("password is required", nil)
	}

	token, expiresAt, err := h.authService.LoginAdmin(req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": dto.AuthResponse{Token: token, ExpiresAt: expiresAt}})
}

// ListRedemptions handles GET /api/admin/redemptions.
func (h *AdminHandler) ListRedemptions(c *fiber.Ctx) error {
	redemptions, err := h.redemptions.ListRedemptions(c.UserContext())
	if err != nil {
		return err
	}

	resp := make([]dto.RedemptionResponse, 0, len(redemptions))
	for i := range redemptions {
		resp = append(resp, redemptionResponse(&redemptions[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}
