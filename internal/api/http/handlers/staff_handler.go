package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/redemption-service/internal/api/dto"
	"github.com/spec-kit/redemption-service/internal/service"
)

// StaffHandler exposes the read-only staff/team lookup surface.
type StaffHandler struct {
	staff *service.StaffService
}

// NewStaffHandler constructs the handler.
func NewStaffHandler(staff *service.StaffService) *StaffHandler {
	return &StaffHandler{staff: staff}
}

// Lookup handles GET /api/staff/:staffPassId.
func (h *StaffHandler) Lookup(c *fiber.Ctx) error {
	staff, err := h.staff.LookupStaff(c.UserContext(), c.Params("staffPassId"))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": dto.StaffLookupResponse{
		StaffPassID: staff.PassID,
		TeamName:    staff.TeamName,
		CreatedAt:   staff.CreatedAt,
	}})
}

// GetTeam handles GET /api/teams/:teamName.
func (h *StaffHandler) GetTeam(c *fiber.Ctx) error {
	team, err := h.staff.GetTeam(c.UserContext(), c.Params("teamName"))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": dto.TeamResponse{
		TeamName:   team.Name,
		StaffCount: team.StaffCount,
	}})
}
