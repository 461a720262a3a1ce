package repository

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// newRecordID mints a client-side record id for a table. Hyphens are
// stripped so the id part stays a plain identifier in SurrealQL.
func newRecordID(table string) string {
	return table + ":" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// isUniqueConstraintError checks if an error is a unique constraint violation
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "unique") ||
		strings.Contains(errStr, "duplicate") ||
		strings.Contains(errStr, "already exists")
}

// convertSurrealID converts a SurrealDB ID (which may be a complex object) to a string
func convertSurrealID(id interface{}) string {
	switch v := id.(type) {
	case string:
		return v
	case models.RecordID:
		return v.String()
	case *models.RecordID:
		if v != nil {
			return v.String()
		}
	case map[string]interface{}:
		// Handle {"tb": "table", "id": "xxx"} format
		tb, _ := v["tb"].(string)
		if idVal, ok := v["id"]; ok {
			if s, ok := idVal.(string); ok && tb != "" {
				return tb + ":" + s
			}
		}
	}

	// Try JSON marshaling as fallback
	if data, err := json.Marshal(id); err == nil {
		var recordID models.RecordID
		if err := json.Unmarshal(data, &recordID); err == nil {
			return recordID.String()
		}
	}

	return ""
}

// parseTime parses time from the formats the driver hands back
func parseTime(v interface{}) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed
		}
	case models.CustomDateTime:
		return t.Time
	case *models.CustomDateTime:
		if t != nil {
			return t.Time
		}
	}
	return time.Time{}
}

// normalizeRecord rewrites driver-specific values (record ids, datetimes)
// in a result map to plain strings so the map survives a JSON round trip
// into a model struct.
func normalizeRecord(data map[string]interface{}) {
	if id, ok := data["id"]; ok {
		data["id"] = convertSurrealID(id)
	}
	for _, key := range []string{"creator"} {
		if v, ok := data[key]; ok {
			if s := convertSurrealID(v); s != "" {
				data[key] = s
			}
		}
	}
	if refs, ok := data["places"].([]interface{}); ok {
		converted := make([]interface{}, 0, len(refs))
		for _, ref := range refs {
			converted = append(converted, convertSurrealID(ref))
		}
		data["places"] = converted
	}
	for _, key := range []string{"created_on", "updated_on"} {
		if v, ok := data[key]; ok {
			if t := parseTime(v); !t.IsZero() {
				data[key] = t.Format(time.RFC3339Nano)
			}
		}
	}
}

// decodeRecord converts a normalized result map into a model struct via a
// JSON round trip
func decodeRecord(data map[string]interface{}, dst interface{}) error {
	normalizeRecord(data)
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(jsonBytes, dst)
}

// extractQueryRows extracts the rows of the first statement from a
// SurrealDB query response
func extractQueryRows(result []interface{}) []interface{} {
	if len(result) == 0 {
		return nil
	}
	if resp, ok := result[0].(map[string]interface{}); ok {
		if rows, ok := resp["result"].([]interface{}); ok {
			return rows
		}
	}
	return nil
}
