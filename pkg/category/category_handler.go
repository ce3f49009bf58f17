package category

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/centsible/centsible/internal/rest"
	log "github.com/sirupsen/logrus"
)

type CategoryDTO struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Icon      string `json:"icon,omitempty"`
	Color     string `json:"color,omitempty"`
	IsDefault bool   `json:"isDefault"`
}

type Handler struct {
	categoryService Service
}

func NewHandler(categoryService Service) *Handler {
	return &Handler{categoryService}
}

// GetAll godoc
// @Summary List all categories
// @Tags Category
// @Produce json
// @Success 200 {array} CategoryDTO
// @Router /api/category [get]
func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	categories, err := h.categoryService.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	categoriesDTO := make([]CategoryDTO, 0, len(categories))
	for _, category := range categories {
		categoriesDTO = append(categoriesDTO, toDTO(category))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(categoriesDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Create godoc
// @Summary Create a new category
// @Tags Category
// @Accept json
// @Produce json
// @Param category body CategoryDTO true "Category"
// @Success 201 {object} CategoryDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid category data"
// @Failure 409 {object} rest.ErrorResponse "Name already taken"
// @Router /api/category [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new category")

	var categoryDTO CategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&categoryDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format")
		return
	}

	created, err := h.categoryService.Create(r.Context(), fromDTO(categoryDTO))
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidName), errors.Is(err, ErrInvalidType), errors.Is(err, ErrInvalidColor):
			rest.WriteError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrCategoryNameTaken):
			rest.WriteError(w, http.StatusConflict, err.Error())
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

func toDTO(category Category) CategoryDTO {
	return CategoryDTO{
		ID:        category.ID,
		Name:      category.Name,
		Type:      string(category.Type),
		Icon:      category.Icon,
		Color:     category.Color,
		IsDefault: category.IsDefault,
	}
}

func fromDTO(dto CategoryDTO) Category {
	return Category{
		ID:    dto.ID,
		Name:  dto.Name,
		Type:  CategoryType(dto.Type),
		Icon:  dto.Icon,
		Color: dto.Color,
	}
}
