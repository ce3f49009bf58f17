package transaction

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/centsible/centsible/internal/rest"
	"github.com/centsible/centsible/pkg/category"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type TransactionDTO struct {
	ID          int                   `json:"id"`
	Amount      float64               `json:"amount"`
	Description string                `json:"description"`
	Type        string                `json:"type"`
	CategoryID  int                   `json:"categoryId,omitempty"`
	Category    *category.CategoryDTO `json:"category,omitempty"`
	Date        time.Time             `json:"date"`
}

type Handler struct {
	transactionService Service
}

func NewHandler(transactionService Service) *Handler {
	return &Handler{transactionService}
}

// Create godoc
// @Summary Record a new transaction
// @Tags Transaction
// @Accept json
// @Produce json
// @Param transaction body TransactionDTO true "Transaction"
// @Success 201 {object} TransactionDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid transaction data"
// @Failure 404 {object} rest.ErrorResponse "Category not found"
// @Router /api/transaction [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Recording new transaction")

	var dto TransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format")
		return
	}

	created, err := h.transactionService.Create(r.Context(), Transaction{
		Amount:      dto.Amount,
		Description: dto.Description,
		Type:        TransactionType(dto.Type),
		CategoryID:  dto.CategoryID,
		Date:        dto.Date,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrInvalidDescription), errors.Is(err, ErrInvalidType):
			rest.WriteError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, category.ErrCategoryNotFound):
			rest.WriteError(w, http.StatusNotFound, err.Error())
		default:
			rest.WriteError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(toDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GetAll godoc
// @Summary List the current user's transactions
// @Tags Transaction
// @Produce json
// @Success 200 {array} TransactionDTO
// @Router /api/transaction [get]
func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	transactions, err := h.transactionService.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]TransactionDTO, 0, len(transactions))
	for _, txn := range transactions {
		dtos = append(dtos, toDTO(txn))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Delete godoc
// @Summary Delete a transaction
// @Tags Transaction
// @Param id path int true "Transaction ID"
// @Success 204
// @Failure 404 {object} rest.ErrorResponse "Transaction not found"
// @Router /api/transaction/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid transaction id")
		return
	}

	if err := h.transactionService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrTransactionNotFound) {
			rest.WriteError(w, http.StatusNotFound, err.Error())
		} else {
			rest.WriteError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toDTO(txn Transaction) TransactionDTO {
	dto := TransactionDTO{
		ID:          txn.ID,
		Amount:      txn.Amount,
		Description: txn.Description,
		Type:        string(txn.Type),
		CategoryID:  txn.CategoryID,
		Date:        txn.Date,
	}
	if txn.Category != nil {
		categoryDTO := category.CategoryDTO{
			ID:        txn.Category.ID,
			Name:      txn.Category.Name,
			Type:      string(txn.Category.Type),
			Icon:      txn.Category.Icon,
			Color:     txn.Category.Color,
			IsDefault: txn.Category.IsDefault,
		}
		dto.Category = &categoryDTO
	}
	return dto
}
