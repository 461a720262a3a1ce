package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/forgo/places/api/internal/middleware"
	"github.com/forgo/places/api/internal/model"
	"github.com/forgo/places/api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Stub Repositories
// ============================================================================

type stubPlaceRepo struct {
	createWithOwnerFunc func(ctx context.Context, place *model.Place) error
	getByIDFunc         func(ctx context.Context, id string) (*model.Place, error)
	getByOwnerFunc      func(ctx context.Context, ownerID string) ([]*model.Place, error)
	updateFunc          func(ctx context.Context, place *model.Place) error
	deleteWithOwnerFunc func(ctx context.Context, placeID, ownerID string) error
}

func (s *stubPlaceRepo) CreateWithOwner(ctx context.Context, place *model.Place) error {
	if s.createWithOwnerFunc != nil {
		return s.createWithOwnerFunc(ctx, place)
	}
	place.ID = "place:created"
	return nil
}

func (s *stubPlaceRepo) GetByID(ctx context.Context, id string) (*model.Place, error) {
	if s.getByIDFunc != nil {
		return s.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (s *stubPlaceRepo) GetByOwner(ctx context.Context, ownerID string) ([]*model.Place, error) {
	if s.getByOwnerFunc != nil {
		return s.getByOwnerFunc(ctx, ownerID)
	}
	return nil, nil
}

func (s *stubPlaceRepo) Update(ctx context.Context, place *model.Place) error {
	if s.updateFunc != nil {
		return s.updateFunc(ctx, place)
	}
	return nil
}

func (s *stubPlaceRepo) DeleteWithOwner(ctx context.Context, placeID, ownerID string) error {
	if s.deleteWithOwnerFunc != nil {
		return s.deleteWithOwnerFunc(ctx, placeID, ownerID)
	}
	return nil
}

type stubUserRepo struct {
	getByIDFunc func(ctx context.Context, id string) (*model.User, error)
}

func (s *stubUserRepo) Create(ctx context.Context, user *model.User) error { return nil }

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	if s.getByIDFunc != nil {
		return s.getByIDFunc(ctx, id)
	}
	return &model.User{ID: id, Name: "Max", Email: "max@test.com"}, nil
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return nil, nil
}

func (s *stubUserRepo) List(ctx context.Context) ([]*model.User, error) { return nil, nil }

type stubGeocoder struct{}

func (s *stubGeocoder) Geocode(ctx context.Context, address string) (model.Location, error) {
	return model.Location{Lat: 40.748, Lng: -73.985}, nil
}

// ============================================================================
// Test Helpers
// ============================================================================

func newUploadStore(t *testing.T) (*service.UploadService, string) {
	t.Helper()
	dir := t.TempDir()
	return service.NewUploadService(service.UploadConfig{Dir: dir, MaxBytes: 1 << 20}, nil), dir
}

func newPlaceHandler(t *testing.T, placeRepo *stubPlaceRepo, userRepo *stubUserRepo) (*PlaceHandler, string) {
	t.Helper()
	uploads, dir := newUploadStore(t)
	svc := service.NewPlaceService(placeRepo, userRepo, &stubGeocoder{}, uploads)
	return NewPlaceHandler(svc, uploads), dir
}

func multipartPlaceBody(t *testing.T, title, description, address string, withImage bool) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	require.NoError(t, mw.WriteField("title", title))
	require.NoError(t, mw.WriteField("description", description))
	require.NoError(t, mw.WriteField("address", address))
	if withImage {
		part, err := mw.CreateFormFile("image", "photo.png")
		require.NoError(t, err)
		_, err = io.Copy(part, bytes.NewReader([]byte("fake image bytes")))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func authedRequest(method, target string, body io.Reader, userID string) *http.Request {
	req := httptest.NewRequest(method, target, body)
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
	return req.WithContext(ctx)
}

func storedFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

// ============================================================================
// Create
// ============================================================================

func TestCreatePlaceEndpoint(t *testing.T) {
	h, dir := newPlaceHandler(t, &stubPlaceRepo{}, &stubUserRepo{})

	body, contentType := multipartPlaceBody(t, "Empire State Building", "Famous skyscraper", "20 W 34th St", true)
	req := authedRequest(http.MethodPost, "/api/places", body, "user:u1")
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), "place:created")
	assert.Len(t, storedFiles(t, dir), 1, "image should be stored on success")
}

func TestCreatePlaceValidationFailure(t *testing.T) {
	h, dir := newPlaceHandler(t, &stubPlaceRepo{}, &stubUserRepo{})

	body, contentType := multipartPlaceBody(t, "", "x", "", true)
	req := authedRequest(http.MethodPost, "/api/places", body, "user:u1")
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, "application/problem+json", rr.Header().Get("Content-Type"))
	assert.Empty(t, storedFiles(t, dir), "no file should be stored for an invalid request")
}

func TestCreatePlaceReapsImageOnFailure(t *testing.T) {
	placeRepo := &stubPlaceRepo{
		createWithOwnerFunc: func(ctx context.Context, place *model.Place) error {
			return errors.New("transaction failed")
		},
	}
	h, dir := newPlaceHandler(t, placeRepo, &stubUserRepo{})

	body, contentType := multipartPlaceBody(t, "Doomed", "Never stored", "Main St 1", true)
	req := authedRequest(http.MethodPost, "/api/places", body, "user:u1")
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Empty(t, storedFiles(t, dir), "image must be reaped when the create fails")
}

func TestCreatePlaceOwnerMissing(t *testing.T) {
	userRepo := &stubUserRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			return nil, nil
		},
	}
	h, dir := newPlaceHandler(t, &stubPlaceRepo{}, userRepo)

	body, contentType := multipartPlaceBody(t, "Ghost place", "For a ghost owner", "Main St 1", true)
	req := authedRequest(http.MethodPost, "/api/places", body, "user:ghost")
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Empty(t, storedFiles(t, dir), "image must be reaped when the owner is missing")
}

func TestCreatePlaceMissingImage(t *testing.T) {
	placeRepo := &stubPlaceRepo{
		createWithOwnerFunc: func(ctx context.Context, place *model.Place) error {
			t.Error("create must not run without an image")
			return nil
		},
	}
	h, dir := newPlaceHandler(t, placeRepo, &stubUserRepo{})

	body, contentType := multipartPlaceBody(t, "No photo", "Nothing to see", "Main St 1", false)
	req := authedRequest(http.MethodPost, "/api/places", body, "user:u1")
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "image")
	assert.Empty(t, storedFiles(t, dir))
}

func TestCreatePlaceUnauthenticated(t *testing.T) {
	h, _ := newPlaceHandler(t, &stubPlaceRepo{}, &stubUserRepo{})

	body, contentType := multipartPlaceBody(t, "Title", "Description here", "Address", false)
	req := httptest.NewRequest(http.MethodPost, "/api/places", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

// ============================================================================
// Reads
// ============================================================================

func TestGetPlaceEndpoint(t *testing.T) {
	placeRepo := &stubPlaceRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Place, error) {
			return &model.Place{ID: id, Title: "Empire State Building", CreatorID: "user:u1"}, nil
		},
	}
	h, _ := newPlaceHandler(t, placeRepo, &stubUserRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/places/place:p1", nil)
	req.SetPathValue("placeID", "place:p1")
	rr := httptest.NewRecorder()

	h.Get(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Empire State Building")
}

func TestGetPlaceNotFound(t *testing.T) {
	h, _ := newPlaceHandler(t, &stubPlaceRepo{}, &stubUserRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/places/place:missing", nil)
	req.SetPathValue("placeID", "place:missing")
	rr := httptest.NewRecorder()

	h.Get(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "application/problem+json", rr.Header().Get("Content-Type"))
}

func TestGetPlacesByUserEmpty(t *testing.T) {
	h, _ := newPlaceHandler(t, &stubPlaceRepo{}, &stubUserRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/places/user/user:u1", nil)
	req.SetPathValue("userID", "user:u1")
	rr := httptest.NewRecorder()

	h.GetByUser(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

// ============================================================================
// Update / Delete
// ============================================================================

func TestUpdatePlaceEndpoint(t *testing.T) {
	placeRepo := &stubPlaceRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Place, error) {
			return &model.Place{ID: id, Title: "Old", Description: "Old desc", CreatorID: "user:u1"}, nil
		},
	}
	h, _ := newPlaceHandler(t, placeRepo, &stubUserRepo{})

	payload := bytes.NewBufferString(`{"title":"New title","description":"New description"}`)
	req := authedRequest(http.MethodPatch, "/api/places/place:p1", payload, "user:u1")
	req.SetPathValue("placeID", "place:p1")
	rr := httptest.NewRecorder()

	h.Update(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "New title")
}

func TestUpdatePlaceNotOwnerEndpoint(t *testing.T) {
	placeRepo := &stubPlaceRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Place, error) {
			return &model.Place{ID: id, CreatorID: "user:owner"}, nil
		},
	}
	h, _ := newPlaceHandler(t, placeRepo, &stubUserRepo{})

	payload := bytes.NewBufferString(`{"title":"Hijack","description":"Should not work"}`)
	req := authedRequest(http.MethodPatch, "/api/places/place:p1", payload, "user:intruder")
	req.SetPathValue("placeID", "place:p1")
	rr := httptest.NewRecorder()

	h.Update(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestDeletePlaceEndpoint(t *testing.T) {
	deleted := false
	placeRepo := &stubPlaceRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Place, error) {
			return &model.Place{ID: id, CreatorID: "user:u1"}, nil
		},
		deleteWithOwnerFunc: func(ctx context.Context, placeID, ownerID string) error {
			deleted = true
			return nil
		},
	}
	h, _ := newPlaceHandler(t, placeRepo, &stubUserRepo{})

	req := authedRequest(http.MethodDelete, "/api/places/place:p1", nil, "user:u1")
	req.SetPathValue("placeID", "place:p1")
	rr := httptest.NewRecorder()

	h.Delete(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.True(t, deleted)
}
