package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"saas-background-remover/internal/domain"
	"saas-background-remover/internal/infra/metrics"
)

// maxImageBytes bounds the uploaded image size (the provider rejects larger
// files anyway).
const maxImageBytes = 20 << 20

type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	PlanID   string `json:"plan_id,omitempty"`
}

// verifyPaymentRequest mirrors the checkout callback payload. plan_id,
// credits and user_id are accepted for forward compatibility but ignored:
// granting credits after a verified payment belongs to the caller's ledger.
type verifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
	PlanID            string `json:"plan_id,omitempty"`
	Credits           int64  `json:"credits,omitempty"`
	UserID            string `json:"user_id,omitempty"`
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := s.payUC.CreateOrder(r.Context(), req.Amount, req.Currency, r.Header.Get("Idempotency-Key"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidArgument):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrAlreadyExists):
			writeError(w, http.StatusConflict, "order creation already in progress")
		default:
			writeError(w, http.StatusBadGateway, "failed to create order")
		}
		return
	}

	writeJSON(w, http.StatusOK, order)
}

func (s *Server) handleVerifyPayment(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req verifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.PaymentVerifyRequests.WithLabelValues("fail", "bad_json").Inc()
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.RazorpayOrderID == "" || req.RazorpayPaymentID == "" || req.RazorpaySignature == "" {
		metrics.PaymentVerifyRequests.WithLabelValues("fail", "missing_field").Inc()
		writeError(w, http.StatusBadRequest, "razorpay_order_id, razorpay_payment_id and razorpay_signature are required")
		return
	}

	ok := s.payUC.VerifyPayment(r.Context(), req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature)
	if !ok {
		metrics.PaymentVerifyRequests.WithLabelValues("fail", "bad_signature").Inc()
		metrics.PaymentVerifyDuration.WithLabelValues("fail").Observe(time.Since(start).Seconds())
		// A forged or stale signature is the client's problem, not ours.
		writeError(w, http.StatusBadRequest, "invalid payment signature")
		return
	}

	metrics.PaymentVerifyRequests.WithLabelValues("ok", "").Inc()
	metrics.PaymentVerifyDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "payment verified successfully",
	})
}

func (s *Server) handleRemoveBackground(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read file")
		return
	}
	if len(image) > maxImageBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "file too large")
		return
	}

	out, err := s.imgUC.Remove(r.Context(), header.Filename, image)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusBadGateway, "failed to remove background")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
