package handler

import (
	"net/http"

	"github.com/forgo/places/api/internal/model"
	"github.com/forgo/places/api/internal/service"
)

// UserHandler handles user HTTP requests
type UserHandler struct {
	svc     *service.AuthService
	uploads UploadStore
}

// NewUserHandler creates a new user handler
func NewUserHandler(svc *service.AuthService, uploads UploadStore) *UserHandler {
	return &UserHandler{svc: svc, uploads: uploads}
}

// List handles GET /api/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, users)
}

// Signup handles POST /api/users/signup. The body is multipart form data
// with the account fields and an optional avatar image. If the avatar was
// stored but the signup fails, the file is reaped before the error goes
// out.
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		WriteError(w, model.NewBadRequestError("invalid multipart form"))
		return
	}

	req := model.SignupRequest{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}

	imagePath, err := saveFormImage(r, h.uploads)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	resp, err := h.svc.Signup(r.Context(), req, imagePath)
	if err != nil {
		if imagePath != "" {
			h.uploads.Remove(imagePath)
		}
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, resp)
}

// Login handles POST /api/users/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	resp, err := h.svc.Login(r.Context(), req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, resp)
}
