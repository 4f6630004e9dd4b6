package db

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/medusa-scheduler/internal/model"
)

func (s *Store) ListContentPriorities(ctx context.Context, organizationID int) ([]model.ContentPriority, error) {
	out := []model.ContentPriority{}
	const q = `
	SELECT id, organization_id, content_id, priority, display_id, group_id, valid_from, valid_until
	  FROM content_priorities
	 WHERE organization_id = $1
	 ORDER BY id;`
	if err := s.db.SelectContext(ctx, &out, q, organizationID); err != nil {
		log.Error().Err(err).Int("organization_id", organizationID).Msg("ListContentPriorities failed")
		return nil, err
	}
	return out, nil
}
