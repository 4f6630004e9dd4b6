package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/medusa-scheduler/internal/model"
	"github.com/Nixie-Tech-LLC/medusa-scheduler/internal/scheduling"
)

func (s *Store) GetDisplay(ctx context.Context, displayID int) (*model.Display, error) {
	var d model.Display
	err := s.db.GetContext(ctx, &d, `
		SELECT id, organization_id, group_id, name, created_at
		  FROM displays
		 WHERE id = $1;`, displayID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, scheduling.ErrNotFound
	}
	if err != nil {
		log.Error().Err(err).Int("display_id", displayID).Msg("GetDisplay failed")
		return nil, err
	}
	return &d, nil
}
