package endpoints

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/medusa-scheduler/internal/http/api"
	"github.com/Nixie-Tech-LLC/medusa-scheduler/internal/http/api/resolution/packets"
	"github.com/Nixie-Tech-LLC/medusa-scheduler/internal/model"
	"github.com/Nixie-Tech-LLC/medusa-scheduler/internal/scheduling"
)

// Notifier pushes a display's resolved content to the display.
type Notifier interface {
	PublishContent(ctx context.Context, displayID int, content *model.ScheduledContent, resolvedAt time.Time) error
}

type ResolutionController struct {
	engine   *scheduling.Engine
	store    scheduling.Store
	notifier Notifier
	clock    func() time.Time
}

// NewResolutionController wires the engine and the store it reads from. A
// nil notifier disables refresh pushes.
func NewResolutionController(engine *scheduling.Engine, store scheduling.Store, notifier Notifier) *ResolutionController {
	return &ResolutionController{engine: engine, store: store, notifier: notifier, clock: time.Now}
}

func ResolutionModule(ctl *ResolutionController) api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/displays/:id/content", ctl.displayContent)
		c.POST("/displays/:id/refresh", ctl.refreshDisplay)
		c.GET("/groups/:id/content", ctl.groupContent)

		c.GET("/conflicts", ctl.listConflicts)
		c.GET("/timeline", ctl.timeline)
	})
}

func pathID(ctx *gin.Context) (int, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		return 0, api.BadRequest("invalid id")
	}
	return id, nil
}

func (r *ResolutionController) now(at time.Time) time.Time {
	if at.IsZero() {
		return r.clock()
	}
	return at
}

// ownsDisplay reports whether the display exists in the caller's organization.
func (r *ResolutionController) ownsDisplay(ctx context.Context, displayID int, principal *model.Principal) (bool, *api.APIError) {
	display, err := r.store.GetDisplay(ctx, displayID)
	if errors.Is(err, scheduling.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		log.Error().Err(err).Int("display_id", displayID).Msg("failed to load display")
		return false, api.Internal("failed to load display")
	}
	return display != nil && display.OrganizationID == principal.OrganizationID, nil
}

func (r *ResolutionController) resolveDisplay(ctx context.Context, displayID int, principal *model.Principal, at time.Time) (*model.ScheduledContent, *api.APIError) {
	owned, apiErr := r.ownsDisplay(ctx, displayID, principal)
	if apiErr != nil || !owned {
		return nil, apiErr
	}
	content, err := r.engine.ContentForDisplay(ctx, displayID, at)
	if err != nil {
		log.Error().Err(err).Int("display_id", displayID).Msg("failed to resolve display content")
		return nil, api.Internal("failed to resolve content")
	}
	return content, nil
}

func (r *ResolutionController) displayContent(ctx *gin.Context, principal *model.Principal) (any, *api.APIError) {
	displayID, apiErr := pathID(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	var query packets.ContentQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		return nil, api.BadRequest(err.Error())
	}
	at := r.now(query.At)

	content, apiErr := r.resolveDisplay(ctx.Request.Context(), displayID, principal, at)
	if apiErr != nil {
		return nil, apiErr
	}
	return packets.ContentResponse{
		TargetType: string(model.TargetDisplay),
		TargetID:   displayID,
		At:         packets.FormatTime(at),
		Content:    packets.NewScheduledContentResponse(content),
	}, nil
}

func (r *ResolutionController) refreshDisplay(ctx *gin.Context, principal *model.Principal) (any, *api.APIError) {
	displayID, apiErr := pathID(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	owned, apiErr := r.ownsDisplay(ctx.Request.Context(), displayID, principal)
	if apiErr != nil {
		return nil, apiErr
	}
	if !owned {
		return nil, api.NotFound("display not found")
	}

	at := r.clock()
	content, err := r.engine.ContentForDisplay(ctx.Request.Context(), displayID, at)
	if err != nil {
		log.Error().Err(err).Int("display_id", displayID).Msg("failed to resolve display content")
		return nil, api.Internal("failed to resolve content")
	}

	published := false
	if r.notifier != nil {
		if err := r.notifier.PublishContent(ctx.Request.Context(), displayID, content, at); err != nil {
			log.Error().Err(err).Int("display_id", displayID).Msg("failed to publish refresh")
			return nil, &api.APIError{Code: http.StatusBadGateway, Message: "failed to notify display"}
		}
		published = true
	}
	log.Info().Int("display_id", displayID).Bool("published", published).Msg("display refreshed")

	return packets.RefreshResponse{
		DisplayID: displayID,
		At:        packets.FormatTime(at),
		Content:   packets.NewScheduledContentResponse(content),
		Published: published,
	}, nil
}

func (r *ResolutionController) groupContent(ctx *gin.Context, principal *model.Principal) (any, *api.APIError) {
	groupID, apiErr := pathID(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	var query packets.ContentQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		return nil, api.BadRequest(err.Error())
	}
	at := r.now(query.At)

	content, err := r.engine.ContentForGroup(ctx.Request.Context(), groupID, principal.OrganizationID, at)
	if err != nil {
		log.Error().Err(err).Int("group_id", groupID).Msg("failed to resolve group content")
		return nil, api.Internal("failed to resolve content")
	}
	return packets.ContentResponse{
		TargetType: string(model.TargetGroup),
		TargetID:   groupID,
		At:         packets.FormatTime(at),
		Content:    packets.NewScheduledContentResponse(content),
	}, nil
}

func (r *ResolutionController) listConflicts(ctx *gin.Context, principal *model.Principal) (any, *api.APIError) {
	var query packets.ConflictQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		return nil, api.BadRequest(err.Error())
	}
	at := r.now(query.At)

	conflicts, err := r.engine.DetectConflicts(ctx.Request.Context(), model.TargetType(query.TargetType), query.TargetID, principal.OrganizationID, at)
	if err != nil {
		log.Error().Err(err).Str("target_type", query.TargetType).Int("target_id", query.TargetID).Msg("failed to detect conflicts")
		return nil, api.Internal("failed to detect conflicts")
	}

	response := make([]packets.ConflictResponse, 0, len(conflicts))
	for _, c := range conflicts {
		response = append(response, packets.ConflictResponse{
			ScheduleA: packets.NewScheduleResponse(c.ScheduleA),
			ScheduleB: packets.NewScheduleResponse(c.ScheduleB),
			Reason:    c.Reason,
		})
	}
	return response, nil
}

func (r *ResolutionController) timeline(ctx *gin.Context, principal *model.Principal) (any, *api.APIError) {
	var query packets.TimelineQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		return nil, api.BadRequest(err.Error())
	}
	if query.From.IsZero() || query.To.IsZero() {
		return nil, api.BadRequest("from and to are required")
	}
	interval := query.Interval
	if interval <= 0 {
		interval = scheduling.DefaultIntervalMinutes
	}

	targetType := model.TargetType(query.TargetType)
	if targetType == model.TargetDisplay {
		owned, apiErr := r.ownsDisplay(ctx.Request.Context(), query.TargetID, principal)
		if apiErr != nil {
			return nil, apiErr
		}
		if !owned {
			return nil, api.NotFound("display not found")
		}
	}

	entries, err := r.engine.TimelinePreview(ctx.Request.Context(), targetType, query.TargetID, principal.OrganizationID, query.From, query.To, interval)
	if errors.Is(err, scheduling.ErrTimelineTooLarge) {
		return nil, api.BadRequest(err.Error())
	}
	if err != nil {
		log.Error().Err(err).Str("target_type", query.TargetType).Int("target_id", query.TargetID).Msg("failed to build timeline")
		return nil, api.Internal("failed to build timeline")
	}

	response := packets.TimelineResponse{
		TargetType: query.TargetType,
		TargetID:   query.TargetID,
		From:       packets.FormatTime(query.From),
		To:         packets.FormatTime(query.To),
		Interval:   interval,
		Entries:    make([]packets.TimelineEntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		response.Entries = append(response.Entries, packets.TimelineEntryResponse{
			Time:    packets.FormatTime(e.Time),
			Content: packets.NewScheduledContentResponse(e.Content),
		})
	}
	return response, nil
}
