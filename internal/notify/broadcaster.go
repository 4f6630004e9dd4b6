// Package notify pushes resolved content to displays over MQTT.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/medusa-scheduler/internal/model"
)

const contentQoS = 1

// Publisher is the part of mqtt.Client the broadcaster needs.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// ContentMessage is the retained payload a display finds on its topic.
type ContentMessage struct {
	DisplayID  int                     `json:"display_id"`
	Content    *model.ScheduledContent `json:"content"`
	ResolvedAt time.Time               `json:"resolved_at"`
}

type Broadcaster struct {
	client Publisher
}

func NewBroadcaster(client Publisher) *Broadcaster {
	return &Broadcaster{client: client}
}

func ContentTopic(displayID int) string {
	return fmt.Sprintf("displays/%d/content", displayID)
}

// PublishContent retains content on the display's topic so a display that
// reconnects later still receives its current assignment. A nil content
// tells the display to clear its screen.
func (b *Broadcaster) PublishContent(ctx context.Context, displayID int, content *model.ScheduledContent, resolvedAt time.Time) error {
	payload, err := json.Marshal(ContentMessage{
		DisplayID:  displayID,
		Content:    content,
		ResolvedAt: resolvedAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("encoding content for display %d: %w", displayID, err)
	}

	topic := ContentTopic(displayID)
	token := b.client.Publish(topic, contentQoS, true, payload)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return fmt.Errorf("publishing to %s: %w", topic, ctx.Err())
	}
	if err := token.Error(); err != nil {
		log.Error().Err(err).Int("display_id", displayID).Str("topic", topic).Msg("failed to publish content")
		return fmt.Errorf("publishing to %s: %w", topic, err)
	}

	log.Debug().Int("display_id", displayID).Str("topic", topic).Msg("content published")
	return nil
}
