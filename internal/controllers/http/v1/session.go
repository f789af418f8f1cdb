package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"temperature-dashboard/internal/models"
	"temperature-dashboard/internal/repositories"
)

// session returns the id and state of the caller's dashboard session. A
// missing, malformed or expired cookie starts a new session.
func (r *routes) session(c *fiber.Ctx) (string, models.DashboardState, error) {
	id := c.Cookies(r.opts.CookieName)
	if _, err := uuid.Parse(id); err == nil {
		state, err := r.service.State(c.UserContext(), id)
		if err == nil {
			return id, state, nil
		}
		if !errors.Is(err, repositories.ErrSessionNotFound) {
			return "", models.DashboardState{}, err
		}
	}

	id = uuid.NewString()
	state, err := r.service.StartSession(c.UserContext(), id)
	if err != nil {
		return "", models.DashboardState{}, err
	}

	c.Cookie(&fiber.Cookie{
		Name:     r.opts.CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(r.opts.CookieTTL.Seconds()),
		HTTPOnly: true,
		Secure:   r.opts.SecureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return id, state, nil
}

func (r *routes) internalError(c *fiber.Ctx, err error, msg string, fields map[string]any) error {
	r.l.Error(err, fields)

	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error: msg,
	})
}
