package http

import (
	"net/http"

	"club-finance-backend/internal/domain"
	"club-finance-backend/internal/service"
)

type LedgerHandler struct {
	ledgerService service.LedgerService
}

func NewLedgerHandler(ledger service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledger}
}

type approveEntryRequest struct {
	AccountID int32 `json:"account_id"`
}

type approveEntryResponse struct {
	EntryID int64                 `json:"entry_id"`
	Status  domain.ApprovalStatus `json:"status"`
	*domain.Approval
}

func (h *LedgerHandler) RecordManual(w http.ResponseWriter, r *http.Request, sess domain.Session) {
	var in service.LedgerEntryInput
	if err := decodeBody(r, &in); err != nil {
		writeServiceError(w, r, err)
		return
	}
	entry, err := h.ledgerService.RecordManualEntry(r.Context(), sess, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (h *LedgerHandler) Submit(w http.ResponseWriter, r *http.Request, sess domain.Session) {
	var in service.LedgerEntryInput
	if err := decodeBody(r, &in); err != nil {
		writeServiceError(w, r, err)
		return
	}
	entry, err := h.ledgerService.SubmitEntry(r.Context(), sess, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (h *LedgerHandler) ListPending(w http.ResponseWriter, r *http.Request, sess domain.Session) {
	entries, err := h.ledgerService.ListPendingEntries(r.Context(), sess)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if entries == nil {
		entries = []domain.LedgerEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *LedgerHandler) Approve(w http.ResponseWriter, r *http.Request, sess domain.Session) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	var req approveEntryRequest
	if err := decodeBody(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	approval, err := h.ledgerService.ApproveEntry(r.Context(), sess, id, req.AccountID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, approveEntryResponse{EntryID: id, Status: domain.StatusApproved, Approval: approval})
}

func (h *LedgerHandler) Discard(w http.ResponseWriter, r *http.Request, sess domain.Session) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if err := h.ledgerService.DiscardEntry(r.Context(), sess, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
