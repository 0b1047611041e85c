package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promobook/internal/application/usecases/booking"
	"promobook/internal/application/usecases/booking/mocks"
	bdomain "promobook/internal/domain/bookings"
	pdomain "promobook/internal/domain/promotions"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unauthenticated", bdomain.ErrUnauthenticated, http.StatusUnauthorized},
		{"invalid quantity", bdomain.ErrInvalidQuantity, http.StatusBadRequest},
		{"promotion not found", pdomain.ErrNotFound, http.StatusNotFound},
		{"capacity exceeded", pdomain.ErrCapacityExceeded, http.StatusConflict},
		{"payment declined", bdomain.ErrPaymentDeclined, http.StatusPaymentRequired},
		{"wrapped payment declined", fmt.Errorf("charge payment: %w", bdomain.ErrPaymentDeclined), http.StatusPaymentRequired},
		{
			"inconsistency",
			&bdomain.InconsistencyError{BookingID: uuid.New(), PaymentReference: "ch_1", Err: errors.New("db down")},
			http.StatusInternalServerError,
		},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusForError(tt.err))
		})
	}
}

func newTestServer(t *testing.T) (*Server, *mocks.MockPromotionsRepo) {
	t.Helper()

	ctrl := gomock.NewController(t)
	promotions := mocks.NewMockPromotionsRepo(ctrl)

	u := booking.NewSubmitBookingUsecase(booking.Deps{
		Promotions: promotions,
		Affiliates: mocks.NewMockAffiliatesRepo(ctrl),
		Bookings:   mocks.NewMockBookingsRepo(ctrl),
		Tickets:    mocks.NewMockTicketsRepo(ctrl),
		Payments:   mocks.NewMockPaymentGateway(ctrl),
		Artifacts:  mocks.NewMockArtifactGenerator(ctrl),
		Email:      mocks.NewMockEmailSender(ctrl),
		TrManager:  mocks.NewMockTxManager(ctrl),
		TxEventBus: mocks.NewMockEventPublisher(ctrl),
		EventBus:   mocks.NewMockEventPublisher(ctrl),
	})

	srv := NewServer(echo.New(), ":0", u, nil, nil, nil, nil, func() bool { return true })

	return srv, promotions
}

func TestSubmitBookingHandler_InvalidPromotionID(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(`{"promotion_id": "not-a-uuid", "quantity": 1}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("X-User-ID", "user-1")
	rec := httptest.NewRecorder()

	c := srv.e.NewContext(req, rec)
	require.NoError(t, srv.SubmitBookingHandler(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitBookingHandler_Unauthenticated(t *testing.T) {
	srv, _ := newTestServer(t)

	promotionID := uuid.New()
	body := fmt.Sprintf(`{"promotion_id": %q, "quantity": 1}`, promotionID)

	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	c := srv.e.NewContext(req, rec)
	require.NoError(t, srv.SubmitBookingHandler(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSubmitBookingHandler_PromotionNotFound(t *testing.T) {
	srv, promotions := newTestServer(t)

	promotionID := uuid.New()
	promotions.EXPECT().
		GetPromotion(gomock.Any(), promotionID).
		Return(nil, pdomain.ErrNotFound)

	body := fmt.Sprintf(`{"promotion_id": %q, "quantity": 1}`, promotionID)

	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("X-User-ID", "user-1")
	rec := httptest.NewRecorder()

	c := srv.e.NewContext(req, rec)
	require.NoError(t, srv.SubmitBookingHandler(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
