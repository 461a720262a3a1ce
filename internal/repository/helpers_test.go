package repository

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/forgo/places/api/internal/model"
	"github.com/surrealdb/surrealdb.go/pkg/models"
)

func TestNewRecordID(t *testing.T) {
	id := newRecordID("place")
	if !strings.HasPrefix(id, "place:") {
		t.Errorf("expected place: prefix, got %q", id)
	}
	if strings.Contains(id, "-") {
		t.Errorf("id part must not contain hyphens, got %q", id)
	}
	if len(id) != len("place:")+32 {
		t.Errorf("expected 32 hex chars after the table, got %q", id)
	}

	other := newRecordID("place")
	if id == other {
		t.Error("consecutive ids must differ")
	}
}

func TestIsUniqueConstraintError(t *testing.T) {
	if !isUniqueConstraintError(errors.New("index email_idx already contains 'a@b.com'... unique")) {
		t.Error("expected unique violation to be detected")
	}
	if isUniqueConstraintError(errors.New("connection refused")) {
		t.Error("connection error is not a unique violation")
	}
	if isUniqueConstraintError(nil) {
		t.Error("nil is not an error")
	}
}

func TestConvertSurrealID(t *testing.T) {
	if got := convertSurrealID("user:abc"); got != "user:abc" {
		t.Errorf("string passthrough failed: %q", got)
	}

	rid := models.RecordID{Table: "user", ID: "abc"}
	if got := convertSurrealID(rid); got != rid.String() {
		t.Errorf("RecordID conversion failed: %q", got)
	}
	if got := convertSurrealID(&rid); got != rid.String() {
		t.Errorf("*RecordID conversion failed: %q", got)
	}

	m := map[string]interface{}{"tb": "place", "id": "xyz"}
	if got := convertSurrealID(m); got != "place:xyz" {
		t.Errorf("map conversion failed: %q", got)
	}
}

func TestDecodeRecordPlace(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	data := map[string]interface{}{
		"id":          models.RecordID{Table: "place", ID: "p1"},
		"title":       "Empire State Building",
		"description": "Famous skyscraper",
		"address":     "20 W 34th St",
		"location":    map[string]interface{}{"lat": 40.748, "lng": -73.985},
		"image":       "uploads/images/pic.png",
		"creator":     models.RecordID{Table: "user", ID: "u1"},
		"created_on":  models.CustomDateTime{Time: now},
		"updated_on":  now.Format(time.RFC3339Nano),
	}

	var place model.Place
	if err := decodeRecord(data, &place); err != nil {
		t.Fatalf("decodeRecord failed: %v", err)
	}

	if place.ID != "place:p1" {
		t.Errorf("unexpected id %q", place.ID)
	}
	if place.CreatorID != "user:u1" {
		t.Errorf("unexpected creator %q", place.CreatorID)
	}
	if place.Location.Lat != 40.748 || place.Location.Lng != -73.985 {
		t.Errorf("unexpected location %+v", place.Location)
	}
	if !place.CreatedOn.Equal(now) {
		t.Errorf("created_on mismatch: %v vs %v", place.CreatedOn, now)
	}
	if !place.UpdatedOn.Equal(now) {
		t.Errorf("updated_on mismatch: %v vs %v", place.UpdatedOn, now)
	}
}

func TestDecodeRecordUserBackRefs(t *testing.T) {
	data := map[string]interface{}{
		"id":    models.RecordID{Table: "user", ID: "u1"},
		"name":  "Max",
		"email": "max@test.com",
		"places": []interface{}{
			models.RecordID{Table: "place", ID: "p1"},
			"place:p2",
		},
	}

	var user model.User
	if err := decodeRecord(data, &user); err != nil {
		t.Fatalf("decodeRecord failed: %v", err)
	}

	if len(user.Places) != 2 {
		t.Fatalf("expected 2 back-references, got %v", user.Places)
	}
	if user.Places[0] != "place:p1" || user.Places[1] != "place:p2" {
		t.Errorf("unexpected back-references %v", user.Places)
	}
}

func TestExtractQueryRows(t *testing.T) {
	result := []interface{}{
		map[string]interface{}{
			"status": "OK",
			"result": []interface{}{
				map[string]interface{}{"id": "user:u1"},
				map[string]interface{}{"id": "user:u2"},
			},
		},
	}

	rows := extractQueryRows(result)
	if len(rows) != 2 {
		t.Errorf("expected 2 rows, got %d", len(rows))
	}

	if rows := extractQueryRows(nil); rows != nil {
		t.Errorf("expected nil for empty result, got %v", rows)
	}
}
