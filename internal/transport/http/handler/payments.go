package handler

import (
	"net/http"

	"github.com/alterera/academy-api/internal/application/payment"
	"github.com/alterera/academy-api/internal/domain"
	"github.com/alterera/academy-api/internal/transport/http/middleware"
)

// PaymentHandler handles checkout order creation and verification.
type PaymentHandler struct {
	payments payment.Service
}

func NewPaymentHandler(payments payment.Service) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

func (h *PaymentHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		httpError(w, err)
		return
	}
	sess := middleware.SessionFrom(r.Context())
	res, err := h.payments.CreateOrder(r.Context(), sess.UserID, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *PaymentHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		httpError(w, err)
		return
	}
	sess := middleware.SessionFrom(r.Context())
	res, err := h.payments.VerifyPayment(r.Context(), sess.UserID, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
