package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// PushHandler exposes the operator push endpoint used by the admin
// dashboard to message a customer directly.
type PushHandler struct {
	Line Messenger
}

// PushMessage handles POST /api/push-line.  Body: {"uid": ..., "message": ...}.
// Returns 400 when either field is missing and 500 when LINE rejects the
// push; the route is JWT-protected and rate limited in the router.
func (h *PushHandler) PushMessage(c echo.Context) error {
	var body struct {
		UID     string `json:"uid"`
		Message string `json:"message"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.UID == "" || body.Message == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing uid or message"})
	}
	if err := h.Line.Push(c.Request().Context(), body.UID, body.Message); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "LINE push failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
