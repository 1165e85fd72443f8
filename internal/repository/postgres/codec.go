package postgres

import (
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"projecthub/internal/domain/models"
)

// dateParam converts an optional date into a DATE parameter (NULL when nil).
func dateParam(d *models.Date) pgtype.Date {
	if d == nil {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: d.Time(), Valid: true}
}

// dateFromPg converts a scanned DATE column back into an optional date.
func dateFromPg(d pgtype.Date) *models.Date {
	if !d.Valid {
		return nil
	}
	date := models.DateFromTime(d.Time)
	return &date
}

// teamParam encodes a team list as JSONB. A nil slice is stored as SQL NULL,
// not as the JSON literal null.
func teamParam(team []string) ([]byte, error) {
	if team == nil {
		return nil, nil
	}
	raw, err := json.Marshal(team)
	if err != nil {
		return nil, fmt.Errorf("encode team: %w", err)
	}
	return raw, nil
}

// teamFromPg decodes a scanned JSONB team column. NULL and JSON null both
// come back as an empty list.
func teamFromPg(raw []byte) ([]string, error) {
	team := []string{}
	if len(raw) == 0 {
		return team, nil
	}
	if err := json.Unmarshal(raw, &team); err != nil {
		return nil, fmt.Errorf("decode team: %w", err)
	}
	if team == nil {
		team = []string{}
	}
	return team, nil
}
