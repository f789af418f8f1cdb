package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"temperature-dashboard/internal/models"
	"temperature-dashboard/internal/services/dashboard"
	"temperature-dashboard/internal/views"
)

// StateResponse is a snapshot of one dashboard session
type StateResponse struct {
	Phase dashboard.Phase `json:"phase" example:"showing_results"`
	models.DashboardState
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error" example:"unknown selection kind"`
}

func (r *routes) handlePage(c *fiber.Ctx) error {
	id, state, err := r.session(c)
	if err != nil {
		return r.internalError(c, err, "Failed to load session", nil)
	}

	c.Set(fiber.HeaderCacheControl, "no-store")
	if err := c.Render(views.PageTemplate, views.NewPage(state)); err != nil {
		return r.internalError(c, err, "Failed to render page", map[string]any{"session": id})
	}
	return nil
}

// handleSelection stores one (kind, value) change from the selection panel.
func (r *routes) handleSelection(c *fiber.Ctx) error {
	id, _, err := r.session(c)
	if err != nil {
		return r.internalError(c, err, "Failed to load session", nil)
	}

	kind := c.FormValue("kind")
	if _, err := r.service.Apply(c.UserContext(), id, kind, c.FormValue("value")); err != nil {
		if errors.Is(err, dashboard.ErrUnknownSlot) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error: "unknown selection kind",
			})
		}
		return r.internalError(c, err, "Failed to update selection", map[string]any{
			"session": id,
			"kind":    kind,
		})
	}

	return c.Redirect("/", fiber.StatusSeeOther)
}

// handleCompare applies any form fields sent along with the button press and
// then requests the comparison. Both validation and backend failures end up
// in the session's error banner.
func (r *routes) handleCompare(c *fiber.Ctx) error {
	id, _, err := r.session(c)
	if err != nil {
		return r.internalError(c, err, "Failed to load session", nil)
	}

	form := c.Request().PostArgs()
	for _, kind := range []string{dashboard.SlotCity1, dashboard.SlotCity2, dashboard.SlotStart, dashboard.SlotEnd} {
		if !form.Has(kind) {
			continue
		}
		if _, err := r.service.Apply(c.UserContext(), id, kind, string(form.Peek(kind))); err != nil {
			return r.internalError(c, err, "Failed to update selection", map[string]any{
				"session": id,
				"kind":    kind,
			})
		}
	}

	if _, err := r.service.Compare(c.UserContext(), id); err != nil {
		return r.internalError(c, err, "Failed to compare", map[string]any{"session": id})
	}

	return c.Redirect("/", fiber.StatusSeeOther)
}

func (r *routes) handleBack(c *fiber.Ctx) error {
	id, _, err := r.session(c)
	if err != nil {
		return r.internalError(c, err, "Failed to load session", nil)
	}

	if _, err := r.service.Back(c.UserContext(), id); err != nil {
		return r.internalError(c, err, "Failed to update session", map[string]any{"session": id})
	}

	return c.Redirect("/", fiber.StatusSeeOther)
}

// GetState godoc
// @Summary Get dashboard state
// @Description Returns the dashboard state of the caller's session together with the phase that decides what the page shows. A session is started when the request carries no valid session cookie.
// @Tags Dashboard
// @Produce json
// @Success 200 {object} StateResponse "Session state"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/state [get]
// @Example {curl} Example usage:
//
//	curl -b "dashboard_session=<id>" "http://localhost:8080/api/v1/state"
func (r *routes) handleState(c *fiber.Ctx) error {
	_, state, err := r.session(c)
	if err != nil {
		return r.internalError(c, err, "Failed to load session", nil)
	}

	return c.JSON(StateResponse{
		Phase:          dashboard.PhaseOf(state),
		DashboardState: state,
	})
}
