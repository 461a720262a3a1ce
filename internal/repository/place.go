package repository

import (
	"context"
	"errors"
	"time"

	"github.com/forgo/places/api/internal/database"
	"github.com/forgo/places/api/internal/model"
)

// PlaceRepository handles place data access.
//
// The paired writes that keep a place's creator pointer and the owner's
// back-reference list in lockstep (CreateWithOwner, DeleteWithOwner) run
// as single atomic batches. No other method touches both sides.
type PlaceRepository struct {
	db database.Database
}

// NewPlaceRepository creates a new place repository
func NewPlaceRepository(db database.Database) *PlaceRepository {
	return &PlaceRepository{db: db}
}

// CreateWithOwner creates a place and appends its id to the owner's
// back-reference list in one transaction. Either both records change or
// neither does.
func (r *PlaceRepository) CreateWithOwner(ctx context.Context, place *model.Place) error {
	id := newRecordID("place")
	now := time.Now().UTC()
	nowStr := now.Format(time.RFC3339Nano)

	batch := database.NewAtomicBatch()

	batch.Add(`
		CREATE type::record($id) CONTENT {
			title: $title,
			description: $description,
			address: $address,
			location: $location,
			image: $image,
			creator: $creator,
			created_on: <datetime> $now,
			updated_on: <datetime> $now
		}
	`, map[string]interface{}{
		"id":          id,
		"title":       place.Title,
		"description": place.Description,
		"address":     place.Address,
		"location": map[string]interface{}{
			"lat": place.Location.Lat,
			"lng": place.Location.Lng,
		},
		"image":   place.ImagePath,
		"creator": place.CreatorID,
		"now":     nowStr,
	})

	batch.Add(`
		UPDATE type::record($owner) SET
			places += $place,
			updated_on = <datetime> $now
	`, map[string]interface{}{
		"owner": place.CreatorID,
		"place": id,
		"now":   nowStr,
	})

	if err := batch.Execute(ctx, r.db); err != nil {
		return err
	}

	place.ID = id
	place.CreatedOn = now
	place.UpdatedOn = now
	return nil
}

// GetByID retrieves a place by ID. Returns (nil, nil) when no such record
// exists.
func (r *PlaceRepository) GetByID(ctx context.Context, id string) (*model.Place, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parsePlaceResult(result)
}

// GetByOwner retrieves all places created by a user, oldest first
func (r *PlaceRepository) GetByOwner(ctx context.Context, ownerID string) ([]*model.Place, error) {
	query := `SELECT * FROM place WHERE creator = $owner ORDER BY created_on ASC`
	vars := map[string]interface{}{"owner": ownerID}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	rows := extractQueryRows(result)
	places := make([]*model.Place, 0, len(rows))
	for _, row := range rows {
		data, ok := row.(map[string]interface{})
		if !ok {
			continue
		}
		var place model.Place
		if err := decodeRecord(data, &place); err != nil {
			return nil, err
		}
		places = append(places, &place)
	}

	return places, nil
}

// Update rewrites a place's mutable fields. Ownership is not touched, so
// a single-record write needs no transaction.
func (r *PlaceRepository) Update(ctx context.Context, place *model.Place) error {
	now := time.Now().UTC()

	query := `
		UPDATE type::record($id) SET
			title = $title,
			description = $description,
			updated_on = <datetime> $now
	`

	vars := map[string]interface{}{
		"id":          place.ID,
		"title":       place.Title,
		"description": place.Description,
		"now":         now.Format(time.RFC3339Nano),
	}

	if err := r.db.Execute(ctx, query, vars); err != nil {
		return err
	}

	place.UpdatedOn = now
	return nil
}

// DeleteWithOwner deletes a place and removes its id from the owner's
// back-reference list in one transaction
func (r *PlaceRepository) DeleteWithOwner(ctx context.Context, placeID, ownerID string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	batch := database.NewAtomicBatch()

	batch.Add(`DELETE type::record($id)`, map[string]interface{}{
		"id": placeID,
	})

	batch.Add(`
		UPDATE type::record($owner) SET
			places -= $place,
			updated_on = <datetime> $now
	`, map[string]interface{}{
		"owner": ownerID,
		"place": placeID,
		"now":   now,
	})

	return batch.Execute(ctx, r.db)
}

func parsePlaceResult(result interface{}) (*model.Place, error) {
	if result == nil {
		return nil, nil
	}

	if arr, ok := result.([]interface{}); ok {
		if len(arr) == 0 {
			return nil, nil
		}
		result = arr[0]
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}

	var place model.Place
	if err := decodeRecord(data, &place); err != nil {
		return nil, err
	}

	return &place, nil
}
