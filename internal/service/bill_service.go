// Package service exposes the ledger over a JSON HTTP boundary and hosts
// the platform webhook listener.
package service

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"splitbase/internal/ledger"
	"splitbase/internal/share"
)

// BillService translates the HTTP boundary into ledger operations.
// Input validation that the ledger deliberately does not do (empty
// participant names) happens here, at the boundary.
type BillService struct {
	repo *ledger.PersistentRepository
}

// NewBillService creates a BillService backed by the given repository.
func NewBillService(repo *ledger.PersistentRepository) *BillService {
	return &BillService{repo: repo}
}

// Register attaches all bill routes to the mux.
func (s *BillService) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/bills", s.handleCreateBill)
	mux.HandleFunc("GET /api/bills", s.handleListBills)
	mux.HandleFunc("GET /api/bills/{id}", s.handleGetBill)
	mux.HandleFunc("PATCH /api/bills/{id}", s.handleUpdateBill)
	mux.HandleFunc("DELETE /api/bills/{id}", s.handleDeleteBill)
	mux.HandleFunc("POST /api/bills/{id}/select", s.handleSelectBill)
	mux.HandleFunc("POST /api/bills/{id}/split", s.handleSplitEqually)
	mux.HandleFunc("GET /api/bills/{id}/share", s.handleShareBill)
	mux.HandleFunc("POST /api/bills/{id}/participants", s.handleAddParticipant)
	mux.HandleFunc("DELETE /api/bills/{id}/participants/{pid}", s.handleRemoveParticipant)
	mux.HandleFunc("PUT /api/bills/{id}/participants/{pid}/amount", s.handleUpdateAmount)
	mux.HandleFunc("PUT /api/bills/{id}/participants/{pid}/paid", s.handleMarkPaid)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeOK(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type createBillRequest struct {
	Title       string  `json:"title"`
	TotalAmount float64 `json:"totalAmount"`
	Description string  `json:"description"`
}

func (s *BillService) handleCreateBill(w http.ResponseWriter, r *http.Request) {
	var req createBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	bill, err := s.repo.CreateBill(r.Context(), req.Title, req.TotalAmount, req.Description)
	if err != nil {
		slog.Warn("CreateBill rejected", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	slog.Info("Bill created", "bill_id", bill.ID, "title", bill.Title, "total", bill.TotalAmount)
	writeJSON(w, http.StatusCreated, bill)
}

func (s *BillService) handleListBills(w http.ResponseWriter, r *http.Request) {
	bills := s.repo.Bills()

	resp := map[string]any{"bills": bills}
	if current := s.repo.Current(); current != nil {
		resp["currentBillId"] = current.ID
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *BillService) handleGetBill(w http.ResponseWriter, r *http.Request) {
	bill := s.repo.Bill(r.PathValue("id"))
	if bill == nil {
		writeError(w, http.StatusNotFound, "bill not found")
		return
	}
	writeJSON(w, http.StatusOK, bill)
}

type updateBillRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	TotalAmount *float64 `json:"totalAmount"`
}

func (s *BillService) handleUpdateBill(w http.ResponseWriter, r *http.Request) {
	var req updateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.repo.UpdateBill(r.Context(), r.PathValue("id"), ledger.BillUpdate{
		Title:       req.Title,
		Description: req.Description,
		TotalAmount: req.TotalAmount,
	})
	writeOK(w)
}

func (s *BillService) handleDeleteBill(w http.ResponseWriter, r *http.Request) {
	billID := r.PathValue("id")
	s.repo.DeleteBill(r.Context(), billID)
	slog.Info("Bill deleted", "bill_id", billID)
	writeOK(w)
}

func (s *BillService) handleSelectBill(w http.ResponseWriter, r *http.Request) {
	s.repo.SetCurrent(r.Context(), r.PathValue("id"))
	writeOK(w)
}

func (s *BillService) handleSplitEqually(w http.ResponseWriter, r *http.Request) {
	s.repo.SplitEqually(r.Context(), r.PathValue("id"))
	writeOK(w)
}

func (s *BillService) handleShareBill(w http.ResponseWriter, r *http.Request) {
	bill := s.repo.Bill(r.PathValue("id"))
	if bill == nil {
		writeError(w, http.StatusNotFound, "bill not found")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(share.Text(bill)))
}

type addParticipantRequest struct {
	Name    string  `json:"name"`
	Address *string `json:"address"`
	FID     *int64  `json:"fid"`
	Avatar  *string `json:"avatar"`
}

func (s *BillService) handleAddParticipant(w http.ResponseWriter, r *http.Request) {
	var req addParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Name validation lives here at the boundary; the ledger accepts
	// whatever it is given.
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "participant name must not be empty")
		return
	}

	s.repo.AddParticipant(r.Context(), r.PathValue("id"), ledger.ParticipantInput{
		Name:    strings.TrimSpace(req.Name),
		Address: req.Address,
		FID:     req.FID,
		Avatar:  req.Avatar,
	})
	writeOK(w)
}

func (s *BillService) handleRemoveParticipant(w http.ResponseWriter, r *http.Request) {
	s.repo.RemoveParticipant(r.Context(), r.PathValue("id"), r.PathValue("pid"))
	writeOK(w)
}

type updateAmountRequest struct {
	Amount float64 `json:"amount"`
}

func (s *BillService) handleUpdateAmount(w http.ResponseWriter, r *http.Request) {
	var req updateAmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.repo.UpdateParticipantAmount(r.Context(), r.PathValue("id"), r.PathValue("pid"), req.Amount)
	writeOK(w)
}

type markPaidRequest struct {
	Paid bool `json:"paid"`
}

func (s *BillService) handleMarkPaid(w http.ResponseWriter, r *http.Request) {
	var req markPaidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.repo.MarkAsPaid(r.Context(), r.PathValue("id"), r.PathValue("pid"), req.Paid)
	writeOK(w)
}
