package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	pdomain "promobook/internal/domain/promotions"
)

func (s *Server) GetPromotionHandler(c echo.Context) error {
	id, err := uuid.Parse(c.Param("promotion_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, "promotion_id is not a valid UUID")
	}

	promotion, err := s.promotions.GetPromotion(c.Request().Context(), id)
	if errors.Is(err, pdomain.ErrNotFound) {
		return c.JSON(http.StatusNotFound, "promotion not found")
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, promotion)
}
