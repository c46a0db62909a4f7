package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"tally/internal/core"
	"tally/internal/store"
)

// transactionRequest is the wire shape for create and update. Amount
// accepts a decimal number or string; date accepts YYYY-MM-DD or RFC 3339.
type transactionRequest struct {
	Title       string               `json:"title"`
	Amount      core.Money           `json:"amount"`
	Category    string               `json:"category"`
	Description string               `json:"description"`
	Type        core.TransactionType `json:"type"`
	Date        string               `json:"date"`
}

// decodeTransaction parses and validates a request body. Every error
// returned here maps to a 400.
func decodeTransaction(body io.Reader) (core.Transaction, error) {
	var req transactionRequest
	dec := json.NewDecoder(body)
	if err := dec.Decode(&req); err != nil {
		return core.Transaction{}, fmt.Errorf("invalid request body: %w", err)
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return core.Transaction{}, err
	}

	tx := core.Transaction{
		Title:       sanitizeInput(req.Title),
		Amount:      req.Amount,
		Category:    sanitizeInput(req.Category),
		Description: sanitizeInput(req.Description),
		Date:        date,
		Type:        req.Type,
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	return tx, nil
}

// requireStore guards data endpoints in degraded mode.
func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.store == nil {
		respondError(w, http.StatusInternalServerError, "database not connected")
		return false
	}
	return true
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	list, err := s.store.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List transactions failed", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if list == nil {
		list = []core.Transaction{}
	}
	respondJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	tx, err := decodeTransaction(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	created, err := s.store.Create(r.Context(), tx)
	if err != nil {
		if isValidationError(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Create transaction failed", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	id := r.PathValue("id")
	tx, err := decodeTransaction(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	updated, err := s.store.Update(r.Context(), id, tx)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			respondError(w, http.StatusNotFound, "Expense not found")
		case isValidationError(err):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			slog.ErrorContext(r.Context(), "Update transaction failed", "error", err, "id", id)
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	id := r.PathValue("id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Expense not found")
			return
		}
		slog.ErrorContext(r.Context(), "Delete transaction failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Expense deleted"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	stats, err := s.store.Stats(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Stats query failed", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// handleTest reports liveness plus store connectivity; it stays reachable
// in degraded mode so deployments can tell "server down" from "database
// down".
func (s *Server) handleTest(w http.ResponseWriter, r *http.Request) {
	dbStatus := "disconnected"
	if s.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.store.Ping(ctx); err == nil {
			dbStatus = "connected"
		}
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message":   "Expense Tracker Backend is working!",
		"timestamp": time.Now().UTC(),
		"database":  dbStatus,
		"port":      s.port,
	})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
	})
}

// isValidationError reports whether err came from Transaction.Validate,
// so store-level rejections still map to a 400.
func isValidationError(err error) bool {
	return errors.Is(err, core.ErrEmptyTitle) ||
		errors.Is(err, core.ErrInvalidAmount) ||
		errors.Is(err, core.ErrEmptyCategory) ||
		errors.Is(err, core.ErrInvalidType)
}
