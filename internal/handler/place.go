package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/forgo/places/api/internal/middleware"
	"github.com/forgo/places/api/internal/model"
	"github.com/forgo/places/api/internal/service"
)

// maxMultipartMemory bounds the in-memory portion of multipart parsing;
// larger parts spill to temp files.
const maxMultipartMemory = 8 << 20

// UploadStore stores and reaps uploaded images
type UploadStore interface {
	Save(filename string, size int64, src io.Reader) (string, error)
	Remove(path string)
}

// PlaceHandler handles place HTTP requests
type PlaceHandler struct {
	svc     *service.PlaceService
	uploads UploadStore
}

// NewPlaceHandler creates a new place handler
func NewPlaceHandler(svc *service.PlaceService, uploads UploadStore) *PlaceHandler {
	return &PlaceHandler{svc: svc, uploads: uploads}
}

// Get handles GET /api/places/{placeID}
func (h *PlaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	placeID := r.PathValue("placeID")
	if placeID == "" {
		WriteError(w, model.NewBadRequestError("place ID required"))
		return
	}

	place, err := h.svc.GetByID(r.Context(), placeID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, place)
}

// GetByUser handles GET /api/places/user/{userID}
func (h *PlaceHandler) GetByUser(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	if userID == "" {
		WriteError(w, model.NewBadRequestError("user ID required"))
		return
	}

	places, err := h.svc.GetByUser(r.Context(), userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, places)
}

// Create handles POST /api/places. The body is multipart form data with
// the place fields and an image. If the image was stored but the create
// fails, the file is reaped before the error goes out.
func (h *PlaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewAuthFailedError("authentication required"))
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		WriteError(w, model.NewBadRequestError("invalid multipart form"))
		return
	}

	req := model.CreatePlaceRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Address:     r.FormValue("address"),
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		WriteError(w, model.NewValidationError(fieldErrors))
		return
	}

	imagePath, err := saveFormImage(r, h.uploads)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	if imagePath == "" {
		WriteError(w, model.NewValidationError([]model.FieldError{
			{Field: "image", Message: "image is required"},
		}))
		return
	}

	place, err := h.svc.Create(ctx, userID, req, imagePath)
	if err != nil {
		if imagePath != "" {
			h.uploads.Remove(imagePath)
		}
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, place)
}

// Update handles PATCH /api/places/{placeID}
func (h *PlaceHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewAuthFailedError("authentication required"))
		return
	}

	placeID := r.PathValue("placeID")
	if placeID == "" {
		WriteError(w, model.NewBadRequestError("place ID required"))
		return
	}

	var req model.UpdatePlaceRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		WriteError(w, model.NewValidationError(fieldErrors))
		return
	}

	place, err := h.svc.Update(ctx, userID, placeID, req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, place)
}

// Delete handles DELETE /api/places/{placeID}
func (h *PlaceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewAuthFailedError("authentication required"))
		return
	}

	placeID := r.PathValue("placeID")
	if placeID == "" {
		WriteError(w, model.NewBadRequestError("place ID required"))
		return
	}

	if err := h.svc.Delete(ctx, userID, placeID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}

// saveFormImage stores the "image" part of a parsed multipart form, if
// one was sent. Returns the stored path or "" when the part is absent.
func saveFormImage(r *http.Request, uploads UploadStore) (string, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", err
	}
	defer file.Close()

	return uploads.Save(header.Filename, header.Size, file)
}
