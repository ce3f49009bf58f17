package budget

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/centsible/centsible/internal/rest"
	"github.com/centsible/centsible/pkg/category"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type BudgetDTO struct {
	ID              int                  `json:"id"`
	CategoryID      int                  `json:"categoryId"`
	Category        category.CategoryDTO `json:"category"`
	Month           int                  `json:"month"`
	Year            int                  `json:"year"`
	BudgetAmount    float64              `json:"budgetAmount"`
	SpentAmount     float64              `json:"spentAmount"`
	RemainingAmount float64              `json:"remainingAmount"`
	PercentageUsed  float64              `json:"percentageUsed"`
	Status          string               `json:"status"`
}

type SetBudgetRequest struct {
	CategoryID int     `json:"categoryId"`
	Month      int     `json:"month"`
	Year       int     `json:"year"`
	Amount     float64 `json:"amount"`
}

type BudgetListDTO struct {
	Month   int         `json:"month"`
	Year    int         `json:"year"`
	Budgets []BudgetDTO `json:"budgets"`
}

type AlertsDTO struct {
	OverBudget   []string `json:"overBudget"`
	CloseToLimit []string `json:"closeToLimit"`
}

type DailySpendingDTO struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

type OverviewDTO struct {
	Month                int                `json:"month"`
	Year                 int                `json:"year"`
	TotalBudget          float64            `json:"totalBudget"`
	TotalSpent           float64            `json:"totalSpent"`
	RemainingBudget      float64            `json:"remainingBudget"`
	BudgetUsedPercentage float64            `json:"budgetUsedPercentage"`
	CategoriesCount      int                `json:"categoriesCount"`
	OverBudgetCount      int                `json:"overBudgetCount"`
	CloseToLimitCount    int                `json:"closeToLimitCount"`
	Budgets              []BudgetDTO        `json:"budgets"`
	Alerts               AlertsDTO          `json:"alerts"`
	DailySpending        []DailySpendingDTO `json:"dailySpending"`
}

type Handler struct {
	budgetService   Service
	overviewService OverviewService
}

func NewHandler(budgetService Service, overviewService OverviewService) *Handler {
	return &Handler{budgetService, overviewService}
}

// Set godoc
// @Summary Create or overwrite a budget for a category and month
// @Tags Budget
// @Accept json
// @Produce json
// @Param budget body SetBudgetRequest true "Budget"
// @Success 200 {object} BudgetDTO "Existing budget overwritten"
// @Success 201 {object} BudgetDTO "New budget created"
// @Failure 400 {object} rest.ErrorResponse "Invalid amount or period"
// @Failure 404 {object} rest.ErrorResponse "Category not found"
// @Failure 409 {object} rest.ErrorResponse "Budget already exists"
// @Router /api/budget [post]
func (h *Handler) Set(w http.ResponseWriter, r *http.Request) {
	log.Debug("Setting budget")

	var request SetBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format")
		return
	}

	view, created, err := h.budgetService.SetBudget(r.Context(), request.CategoryID, request.Amount,
		Period{Month: request.Month, Year: request.Year})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrInvalidPeriod):
			rest.WriteError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, category.ErrCategoryNotFound):
			rest.WriteError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrBudgetExists):
			rest.WriteError(w, http.StatusConflict, err.Error())
		default:
			rest.WriteError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(toBudgetDTO(view)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GetAll godoc
// @Summary List the current user's budgets for a month
// @Tags Budget
// @Produce json
// @Param month query int false "Month (1-12), defaults to the current month"
// @Param year query int false "Year, defaults to the current year"
// @Success 200 {object} BudgetListDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid period"
// @Router /api/budget [get]
func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	period, err := periodFromQuery(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid month or year")
		return
	}

	views, period, err := h.budgetService.GetBudgets(r.Context(), period)
	if err != nil {
		if errors.Is(err, ErrInvalidPeriod) {
			rest.WriteError(w, http.StatusBadRequest, err.Error())
		} else {
			rest.WriteError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	list := BudgetListDTO{Month: period.Month, Year: period.Year, Budgets: make([]BudgetDTO, 0, len(views))}
	for _, view := range views {
		list.Budgets = append(list.Budgets, toBudgetDTO(view))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(list); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GetOverview godoc
// @Summary Aggregate the month's budgets into totals, alerts and daily spending
// @Tags Budget
// @Produce json
// @Param month query int false "Month (1-12), defaults to the current month"
// @Param year query int false "Year, defaults to the current year"
// @Success 200 {object} OverviewDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid period"
// @Router /api/budget/overview [get]
func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	period, err := periodFromQuery(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid month or year")
		return
	}

	overview, err := h.overviewService.GetOverview(r.Context(), period)
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	dto := OverviewDTO{
		Month:                overview.Period.Month,
		Year:                 overview.Period.Year,
		TotalBudget:          overview.TotalBudget,
		TotalSpent:           overview.TotalSpent,
		RemainingBudget:      overview.RemainingBudget,
		BudgetUsedPercentage: overview.BudgetUsedPercentage,
		CategoriesCount:      overview.CategoriesCount,
		OverBudgetCount:      overview.OverBudgetCount,
		CloseToLimitCount:    overview.CloseToLimitCount,
		Budgets:              make([]BudgetDTO, 0, len(overview.Budgets)),
		Alerts: AlertsDTO{
			OverBudget:   overview.Alerts.OverBudget,
			CloseToLimit: overview.Alerts.CloseToLimit,
		},
		DailySpending: make([]DailySpendingDTO, 0, len(overview.DailySpending)),
	}
	for _, view := range overview.Budgets {
		dto.Budgets = append(dto.Budgets, toBudgetDTO(view))
	}
	for _, day := range overview.DailySpending {
		dto.DailySpending = append(dto.DailySpending, DailySpendingDTO{
			Date:   day.Date.Format("2006-01-02"),
			Amount: day.Amount,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Delete godoc
// @Summary Delete a budget
// @Tags Budget
// @Param id path int true "Budget ID"
// @Success 204
// @Failure 404 {object} rest.ErrorResponse "Budget not found"
// @Router /api/budget/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid budget id")
		return
	}

	if err := h.budgetService.DeleteBudget(r.Context(), id); err != nil {
		if errors.Is(err, ErrBudgetNotFound) {
			rest.WriteError(w, http.StatusNotFound, err.Error())
		} else {
			rest.WriteError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func periodFromQuery(r *http.Request) (Period, error) {
	var period Period
	if raw := r.URL.Query().Get("month"); raw != "" {
		month, err := strconv.Atoi(raw)
		if err != nil {
			return Period{}, err
		}
		period.Month = month
	}
	if raw := r.URL.Query().Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return Period{}, err
		}
		period.Year = year
	}
	return period, nil
}

func toBudgetDTO(view BudgetView) BudgetDTO {
	return BudgetDTO{
		ID:         view.ID,
		CategoryID: view.CategoryID,
		Category: category.CategoryDTO{
			ID:        view.Category.ID,
			Name:      view.Category.Name,
			Type:      string(view.Category.Type),
			Icon:      view.Category.Icon,
			Color:     view.Category.Color,
			IsDefault: view.Category.IsDefault,
		},
		Month:           view.Month,
		Year:            view.Year,
		BudgetAmount:    view.BudgetAmount,
		SpentAmount:     view.SpentAmount,
		RemainingAmount: view.RemainingAmount,
		PercentageUsed:  view.PercentageUsed,
		Status:          string(view.Status),
	}
}
