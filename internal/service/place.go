package service

import (
	"context"

	"github.com/forgo/places/api/internal/model"
)

// PlaceRepository defines the interface for place storage
type PlaceRepository interface {
	CreateWithOwner(ctx context.Context, place *model.Place) error
	GetByID(ctx context.Context, id string) (*model.Place, error)
	GetByOwner(ctx context.Context, ownerID string) ([]*model.Place, error)
	Update(ctx context.Context, place *model.Place) error
	DeleteWithOwner(ctx context.Context, placeID, ownerID string) error
}

// Geocoder resolves a street address to coordinates
type Geocoder interface {
	Geocode(ctx context.Context, address string) (model.Location, error)
}

// FileRemover removes a stored upload. Used to reap image files whose
// owning record is gone.
type FileRemover interface {
	Remove(path string)
}

// PlaceService coordinates place mutations and the ownership invariant.
// All writes that touch a place's creator pointer or a user's
// back-reference list go through here.
type PlaceService struct {
	placeRepo PlaceRepository
	userRepo  UserRepository
	geocoder  Geocoder
	files     FileRemover
}

// NewPlaceService creates a new place service
func NewPlaceService(placeRepo PlaceRepository, userRepo UserRepository, geocoder Geocoder, files FileRemover) *PlaceService {
	return &PlaceService{
		placeRepo: placeRepo,
		userRepo:  userRepo,
		geocoder:  geocoder,
		files:     files,
	}
}

// Create geocodes the address and writes the place together with the
// owner's back-reference in one transaction. The owner must exist before
// anything is written.
func (s *PlaceService) Create(ctx context.Context, creatorID string, req model.CreatePlaceRequest, imagePath string) (*model.Place, error) {
	owner, err := s.userRepo.GetByID(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, ErrUserNotFound
	}

	location, err := s.geocoder.Geocode(ctx, req.Address)
	if err != nil {
		return nil, err
	}

	place := &model.Place{
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		Location:    location,
		ImagePath:   imagePath,
		CreatorID:   creatorID,
	}

	if err := s.placeRepo.CreateWithOwner(ctx, place); err != nil {
		return nil, err
	}

	return place, nil
}

// GetByID returns a single place
func (s *PlaceService) GetByID(ctx context.Context, placeID string) (*model.Place, error) {
	place, err := s.placeRepo.GetByID(ctx, placeID)
	if err != nil {
		return nil, err
	}
	if place == nil {
		return nil, ErrPlaceNotFound
	}
	return place, nil
}

// GetByUser returns all places a user owns, oldest first. A user with no
// places and a user that does not exist are indistinguishable here; both
// report not found.
func (s *PlaceService) GetByUser(ctx context.Context, userID string) ([]*model.Place, error) {
	places, err := s.placeRepo.GetByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(places) == 0 {
		return nil, ErrPlaceNotFound
	}
	return places, nil
}

// Update rewrites a place's title and description. Only the owner may
// update; the ownership pointer itself never changes.
func (s *PlaceService) Update(ctx context.Context, userID, placeID string, req model.UpdatePlaceRequest) (*model.Place, error) {
	place, err := s.placeRepo.GetByID(ctx, placeID)
	if err != nil {
		return nil, err
	}
	if place == nil {
		return nil, ErrPlaceNotFound
	}

	if place.CreatorID != userID {
		return nil, ErrNotPlaceOwner
	}

	place.Title = req.Title
	place.Description = req.Description

	if err := s.placeRepo.Update(ctx, place); err != nil {
		return nil, err
	}

	return place, nil
}

// Delete removes a place and the owner's back-reference in one
// transaction, then reaps the image file. The file is only touched after
// the transaction commits; a failed delete leaves it in place.
func (s *PlaceService) Delete(ctx context.Context, userID, placeID string) error {
	place, err := s.placeRepo.GetByID(ctx, placeID)
	if err != nil {
		return err
	}
	if place == nil {
		return ErrPlaceNotFound
	}

	if place.CreatorID != userID {
		return ErrNotPlaceOwner
	}

	if err := s.placeRepo.DeleteWithOwner(ctx, place.ID, place.CreatorID); err != nil {
		return err
	}

	if place.ImagePath != "" && s.files != nil {
		s.files.Remove(place.ImagePath)
	}

	return nil
}
