package http

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	ndomain "promobook/internal/domain/notifications"
)

func (s *Server) GetNotificationsHandler(c echo.Context) error {
	userID := c.Request().Header.Get("X-User-ID")
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, "missing user identity")
	}

	opts := ndomain.ListOptions{
		UnreadOnly: c.QueryParam("unread_only") == "true",
	}

	if limit := c.QueryParam("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			return c.JSON(http.StatusBadRequest, "limit is not a number")
		}
		opts.Limit = n
	}

	if offset := c.QueryParam("offset"); offset != "" {
		n, err := strconv.Atoi(offset)
		if err != nil {
			return c.JSON(http.StatusBadRequest, "offset is not a number")
		}
		opts.Offset = n
	}

	if typ := c.QueryParam("type"); typ != "" {
		opts.Types = []ndomain.Type{ndomain.Type(typ)}
	}

	notifications, err := s.notifications.ListByUser(c.Request().Context(), userID, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, notifications)
}

func (s *Server) GetUnreadCountHandler(c echo.Context) error {
	userID := c.Request().Header.Get("X-User-ID")
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, "missing user identity")
	}

	count, err := s.notifications.UnreadCount(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, map[string]int{"count": count})
}

func (s *Server) MarkNotificationReadHandler(c echo.Context) error {
	id, err := uuid.Parse(c.Param("notification_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, "notification_id is not a valid UUID")
	}

	if err := s.notifications.MarkRead(c.Request().Context(), id); err != nil {
		return c.JSON(http.StatusInternalServerError, err)
	}

	return c.NoContent(http.StatusNoContent)
}
