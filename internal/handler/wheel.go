package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/osse101/WheelPortal_Go/internal/domain"
	"github.com/osse101/WheelPortal_Go/internal/wheel"
)

// Pagination defaults of the history endpoint
const (
	DefaultHistoryPage    = 1
	DefaultHistoryPerPage = 20
	MaxHistoryPerPage     = 100
)

// HistoryFeedFactory returns the history feed of a user
type HistoryFeedFactory func(userID string) wheel.HistoryFeed

// WheelHandler serves the wheel endpoints of the Mini-App
type WheelHandler struct {
	registry *wheel.Registry
	backend  wheel.Backend
	history  HistoryFeedFactory
}

// NewWheelHandler creates the wheel handler. A nil history factory reads history from the backend.
func NewWheelHandler(registry *wheel.Registry, backend wheel.Backend, history HistoryFeedFactory) *WheelHandler {
	if history == nil {
		history = func(string) wheel.HistoryFeed { return backend }
	}
	return &WheelHandler{registry: registry, backend: backend, history: history}
}

// SectorView is a prize sector with its position on the wheel
type SectorView struct {
	domain.PrizeSector
	Angle float64 `json:"angle"`
}

// WheelConfigResponse is the wheel configuration plus sector angles
type WheelConfigResponse struct {
	*domain.WheelConfig
	Sectors []SectorView `json:"sectors"`
}

// SpinRequest starts a spin
type SpinRequest struct {
	PaymentMode    string `json:"payment_mode" validate:"required,payment_mode"`
	PaymentSubType string `json:"payment_sub_type,omitempty" validate:"max=32"`
}

// PaymentRequest reports the status of an external payment
type PaymentRequest struct {
	SessionID string `json:"session_id" validate:"required,uuid"`
	Status    string `json:"status" validate:"required,max=32"`
}

// DismissRequest closes an outcome. An empty session id dismisses the current session.
type DismissRequest struct {
	SessionID string `json:"session_id" validate:"omitempty,uuid"`
}

// SessionResponse wraps a session snapshot
type SessionResponse struct {
	Session *domain.SessionSnapshot `json:"session,omitempty"`
	Error   string                  `json:"error,omitempty"`
}

// RotationView is the wheel's accumulated rotation
type RotationView struct {
	Accumulated float64 `json:"accumulated"`
	Display     float64 `json:"display"`
}

// SessionStateResponse is the current session plus the wheel rotation
type SessionStateResponse struct {
	Session  *domain.SessionSnapshot `json:"session"`
	Busy     bool                    `json:"busy"`
	Rotation RotationView            `json:"rotation"`
}

func (h *WheelHandler) orchestrator(w http.ResponseWriter, r *http.Request, userID string) (*wheel.Orchestrator, bool) {
	o, err := h.registry.Get(userID)
	if err != nil {
		respondServiceError(w, r, "Get orchestrator", err)
		return nil, false
	}
	return o, true
}

// HandleGetConfig returns the wheel configuration
// @Summary Wheel configuration
// @Description Returns prizes, daily limits and costs, with the angle of each sector
// @Tags wheel
// @Produce json
// @Param X-User-ID header string true "User ID"
// @Success 200 {object} WheelConfigResponse
// @Failure 502 {object} ErrorResponse
// @Router /api/v1/wheel/config [get]
func (h *WheelHandler) HandleGetConfig(w http.ResponseWriter, r *http.Request) {
	_, ctx, ok := requireUser(w, r)
	if !ok {
		return
	}

	cfg, err := h.backend.GetWheelConfig(ctx)
	if err != nil {
		respondServiceError(w, r, "Get wheel config", err)
		return
	}

	sectors := make([]SectorView, len(cfg.Prizes))
	for i, prize := range cfg.Prizes {
		sectors[i] = SectorView{PrizeSector: prize, Angle: domain.SectorAngle(i, len(cfg.Prizes))}
	}
	respondJSON(w, http.StatusOK, WheelConfigResponse{WheelConfig: cfg, Sectors: sectors})
}

// HandleSpin starts a spin. internal_debit spins right away, external_invoice returns an invoice.
// @Summary Start a spin
// @Tags wheel
// @Accept json
// @Produce json
// @Param X-User-ID header string true "User ID"
// @Param request body SpinRequest true "Spin request"
// @Success 200 {object} SessionResponse
// @Success 201 {object} SessionResponse "external payment begun"
// @Failure 400 {object} ValidationErrorResponse
// @Failure 402 {object} SessionResponse
// @Failure 409 {object} SessionResponse
// @Failure 429 {object} SessionResponse
// @Router /api/v1/wheel/spin [post]
func (h *WheelHandler) HandleSpin(w http.ResponseWriter, r *http.Request) {
	userID, ctx, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req SpinRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Spin"); err != nil {
		return
	}

	o, ok := h.orchestrator(w, r, userID)
	if !ok {
		return
	}

	mode := domain.PaymentMode(req.PaymentMode)
	if mode == domain.PaymentModeExternalInvoice {
		h.beginExternal(w, r, ctx, o)
		return
	}

	snap, err := o.StartSpin(ctx, domain.SpinRequest{PaymentMode: mode, PaymentSubType: req.PaymentSubType})
	if err != nil {
		status, msg := mapServiceError(err)
		if snap == nil {
			respondServiceError(w, r, "Spin", err)
			return
		}
		// The failure outcome is waiting at /outcome
		respondJSON(w, status, SessionResponse{Session: snap, Error: msg})
		return
	}
	respondJSON(w, http.StatusOK, SessionResponse{Session: snap})
}

// HandleCreateInvoice begins an external payment
// @Summary Begin external payment
// @Description Snapshots the history baseline and creates an invoice for the external payment surface
// @Tags wheel
// @Produce json
// @Param X-User-ID header string true "User ID"
// @Success 201 {object} SessionResponse
// @Failure 409 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /api/v1/wheel/invoice [post]
func (h *WheelHandler) HandleCreateInvoice(w http.ResponseWriter, r *http.Request) {
	userID, ctx, ok := requireUser(w, r)
	if !ok {
		return
	}
	o, ok := h.orchestrator(w, r, userID)
	if !ok {
		return
	}
	h.beginExternal(w, r, ctx, o)
}

func (h *WheelHandler) beginExternal(w http.ResponseWriter, r *http.Request, ctx context.Context, o *wheel.Orchestrator) {
	snap, err := o.BeginExternalPayment(ctx)
	if err != nil {
		respondServiceError(w, r, "Begin external payment", err)
		return
	}
	respondJSON(w, http.StatusCreated, SessionResponse{Session: snap})
}

// HandlePayment applies the status reported by the external payment surface
// @Summary Report external payment status
// @Description paid starts the animation, cancelled returns to idle, anything else fails the spin
// @Tags wheel
// @Accept json
// @Produce json
// @Param X-User-ID header string true "User ID"
// @Param request body PaymentRequest true "Payment status"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/wheel/payment [post]
func (h *WheelHandler) HandlePayment(w http.ResponseWriter, r *http.Request) {
	userID, ctx, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req PaymentRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Payment status"); err != nil {
		return
	}
	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidSessionID)
		return
	}

	o, ok := h.orchestrator(w, r, userID)
	if !ok {
		return
	}

	status := domain.PaymentStatus(strings.ToLower(req.Status))
	snap, err := o.CompletePayment(ctx, sessionID, status)
	if err != nil {
		respondServiceError(w, r, "Payment status", err)
		return
	}
	respondJSON(w, http.StatusOK, SessionResponse{Session: snap})
}

// HandleGetSession returns the current session and wheel rotation
// @Summary Current spin session
// @Tags wheel
// @Produce json
// @Param X-User-ID header string true "User ID"
// @Success 200 {object} SessionStateResponse
// @Router /api/v1/wheel/session [get]
func (h *WheelHandler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := requireUser(w, r)
	if !ok {
		return
	}
	o, ok := h.orchestrator(w, r, userID)
	if !ok {
		return
	}

	resp := SessionStateResponse{
		Busy: o.Busy(),
		Rotation: RotationView{
			Accumulated: o.Animator().Accumulated(),
			Display:     o.Animator().Display(),
		},
	}
	if snap, found := o.Snapshot(); found {
		resp.Session = &snap
	}
	respondJSON(w, http.StatusOK, resp)
}

// HandleGetOutcome returns the outcome to show. The redeem code is included on the first read only.
// @Summary Spin outcome
// @Tags wheel
// @Produce json
// @Param X-User-ID header string true "User ID"
// @Success 200 {object} wheel.Presentation
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/wheel/outcome [get]
func (h *WheelHandler) HandleGetOutcome(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := requireUser(w, r)
	if !ok {
		return
	}
	o, ok := h.orchestrator(w, r, userID)
	if !ok {
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	p, found := o.Outcome()
	if !found {
		respondError(w, http.StatusNotFound, ErrMsgNoOutcome)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// HandleDismiss closes the outcome of a finished spin
// @Summary Dismiss outcome
// @Tags wheel
// @Accept json
// @Produce json
// @Param X-User-ID header string true "User ID"
// @Param request body DismissRequest false "Session to dismiss"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/wheel/dismiss [post]
func (h *WheelHandler) HandleDismiss(w http.ResponseWriter, r *http.Request) {
	userID, ctx, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req DismissRequest
	if r.ContentLength != 0 {
		if err := DecodeAndValidateRequest(r, w, &req, "Dismiss"); err != nil {
			return
		}
	}
	sessionID := uuid.Nil
	if req.SessionID != "" {
		parsed, err := uuid.Parse(req.SessionID)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidSessionID)
			return
		}
		sessionID = parsed
	}

	o, ok := h.orchestrator(w, r, userID)
	if !ok {
		return
	}
	if err := o.Dismiss(ctx, sessionID); err != nil {
		respondServiceError(w, r, "Dismiss", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgDismissed})
}

// HandleCancel tears down the in-flight spin. A confirmed payment is not rolled back.
// @Summary Cancel spin
// @Tags wheel
// @Produce json
// @Param X-User-ID header string true "User ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/wheel/cancel [post]
func (h *WheelHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	userID, ctx, ok := requireUser(w, r)
	if !ok {
		return
	}

	o, found := h.registry.Peek(userID)
	if !found {
		respondError(w, http.StatusNotFound, ErrMsgNoSession)
		return
	}
	if err := o.Cancel(ctx); err != nil {
		respondServiceError(w, r, "Cancel", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgSessionCancelled})
}

// HandleGetHistory returns one page of the user's spin history
// @Summary Spin history
// @Tags wheel
// @Produce json
// @Param X-User-ID header string true "User ID"
// @Param page query int false "Page, starting at 1"
// @Param per_page query int false "Page size, at most 100"
// @Success 200 {object} domain.HistoryPage
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/wheel/history [get]
func (h *WheelHandler) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	userID, ctx, ok := requireUser(w, r)
	if !ok {
		return
	}

	page, okPage := GetOptionalIntQueryParam(r, "page", DefaultHistoryPage)
	perPage, okPerPage := GetOptionalIntQueryParam(r, "per_page", DefaultHistoryPerPage)
	if !okPage || !okPerPage {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidPagination)
		return
	}
	perPage = min(perPage, MaxHistoryPerPage)

	history, err := h.history(userID).GetHistory(ctx, page, perPage)
	if err != nil {
		respondServiceError(w, r, "Get history", err)
		return
	}
	respondJSON(w, http.StatusOK, redactHistory(history))
}

// redactHistory copies page without redeem codes. Codes are disclosed by the
// outcome view only, never by a replayable listing.
func redactHistory(page *domain.HistoryPage) *domain.HistoryPage {
	out := &domain.HistoryPage{Total: page.Total, Items: make([]domain.HistoryRecord, len(page.Items))}
	for i, rec := range page.Items {
		rec.RedeemCode = ""
		out.Items[i] = rec
	}
	return out
}
