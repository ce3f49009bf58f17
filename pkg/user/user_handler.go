package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/centsible/centsible/internal/rest"
	log "github.com/sirupsen/logrus"
)

type RegisterRequestDTO struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserDTO struct {
	Uid      string `json:"uid"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type TokenDTO struct {
	Token string `json:"token"`
}

type Handler struct {
	userService Service
}

func NewHandler(userService Service) *Handler {
	return &Handler{userService: userService}
}

// Register godoc
// @Summary Register a new user
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body RegisterRequestDTO true "Registration data"
// @Success 201 {object} UserDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Failure 409 {object} rest.ErrorResponse "Email or username already taken"
// @Router /api/auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	log.Debug("Registering new user")

	var req RegisterRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format")
		return
	}

	created, err := h.userService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidUsername), errors.Is(err, ErrInvalidPassword):
			rest.WriteError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrEmailTaken), errors.Is(err, ErrUsernameTaken):
			rest.WriteError(w, http.StatusConflict, err.Error())
		default:
			rest.WriteError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(UserDTO{Uid: created.Uid, Username: created.Username, Email: created.Email}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Login godoc
// @Summary Authenticate and receive a token
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequestDTO true "Credentials"
// @Success 200 {object} TokenDTO
// @Failure 401 {object} rest.ErrorResponse "Invalid credentials"
// @Router /api/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format")
		return
	}

	token, err := h.userService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			rest.WriteError(w, http.StatusUnauthorized, err.Error())
		} else {
			rest.WriteError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(TokenDTO{Token: token}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
