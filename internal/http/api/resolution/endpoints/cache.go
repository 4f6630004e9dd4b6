package endpoints

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/medusa-scheduler/internal/http/api"
	"github.com/Nixie-Tech-LLC/medusa-scheduler/internal/http/api/resolution/packets"
	"github.com/Nixie-Tech-LLC/medusa-scheduler/internal/model"
)

// Invalidator drops cached scheduling data of an organization.
type Invalidator interface {
	InvalidateOrganization(ctx context.Context, organizationID int) (int, error)
}

type CacheController struct {
	cache Invalidator
}

// NewCacheController accepts a nil cache; invalidation is then a no-op.
func NewCacheController(cache Invalidator) *CacheController {
	return &CacheController{cache: cache}
}

func CacheModule(ctl *CacheController) api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/cache/invalidate", ctl.invalidate)
	})
}

func (s *CacheController) invalidate(ctx *gin.Context, principal *model.Principal) (any, *api.APIError) {
	if s.cache == nil {
		return packets.InvalidateResponse{Enabled: false}, nil
	}
	removed, err := s.cache.InvalidateOrganization(ctx.Request.Context(), principal.OrganizationID)
	if err != nil {
		log.Error().Err(err).Int("organization_id", principal.OrganizationID).Msg("failed to invalidate cache")
		return nil, api.Internal("failed to invalidate cache")
	}
	return packets.InvalidateResponse{Enabled: true, Removed: removed}, nil
}
