package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/redemption-service/internal/api/dto"
	"github.com/spec-kit/redemption-service/internal/domain"
	"github.com/spec-kit/redemption-service/internal/service"
	apperrors "github.com/spec-kit/redemption-service/pkg/util"
)

// RedemptionHandler exposes the redemption workflow over HTTP.
type RedemptionHandler struct {
	redemptions *service.RedemptionService
}

// NewRedemptionHandler constructs the handler.
func NewRedemptionHandler(redemptions *service.RedemptionService) *RedemptionHandler {
	return &RedemptionHandler{redemptions: redemptions}
}

// CheckEligibility handles GET /api/redemptions/eligibility/:teamName.
// The response is advisory; Redeem re-checks atomically.
func (h *RedemptionHandler) CheckEligibility(c *fiber.Ctx) error {
	result, err := h.redemptions.CheckEligibility(c.UserContext(), c.Params("teamName"))
	if err != nil {
		return err
	}

	resp := dto.EligibilityResponse{
		TeamName: result.TeamName,
		Eligible: result.Eligible,
		Detail:   result.Detail,
	}
	if result.Redemption != nil {
		r := redemptionResponse(result.Redemption)
		resp.Redemption = &r
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Redeem handles POST /api/redemptions.
func (h *RedemptionHandler) Redeem(c *fiber.Ctx) error {
	var req dto.RedeemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.StaffPassID == "" {
		return apperrors.NewValidationError("staff_pass_id is required", nil)
	}

	result, err := h.redemptions.Redeem(c.UserContext(), req.StaffPassID)
	if err != nil {
		return err
	}

	if !result.Redeemed {
		return apperrors.NewConflict(result.Detail, map[string]any{
			"team_name":     result.Redemption.TeamName,
			"staff_pass_id": result.Redemption.StaffPassID,
			"redeemed_at":   result.Redemption.RedeemedAt,
		})
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": redemptionResponse(result.Redemption),
	})
}

func redemptionResponse(redemption *domain.Redemption) dto.RedemptionResponse {
	return dto.RedemptionResponse{
		TeamName:    redemption.TeamName,
		StaffPassID: redemption.StaffPassID,
		RedeemedAt:  redemption.RedeemedAt,
	}
}
