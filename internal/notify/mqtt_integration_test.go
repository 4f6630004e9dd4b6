package notify

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/medusa-scheduler/internal/model"
)

// Requires a broker, e.g. MQTT_TEST_BROKER_URL=tcp://localhost:1883.
func TestBroadcaster_RetainedDelivery(t *testing.T) {
	broker := os.Getenv("MQTT_TEST_BROKER_URL")
	if broker == "" {
		t.Skip("MQTT_TEST_BROKER_URL not set, skipping broker test")
	}

	pub, err := Connect(broker, "medusa-scheduler-test-pub", 5*time.Second)
	require.NoError(t, err)
	defer Disconnect(pub)

	content := 42
	err = NewBroadcaster(pub).PublishContent(context.Background(), 9001, &model.ScheduledContent{
		ScheduleID: 1, ContentID: &content, Priority: 2, Source: model.SourceSchedule,
	}, time.Now())
	require.NoError(t, err)

	sub, err := Connect(broker, "medusa-scheduler-test-sub", 5*time.Second)
	require.NoError(t, err)
	defer Disconnect(sub)

	received := make(chan []byte, 1)
	token := sub.Subscribe(ContentTopic(9001), contentQoS, func(_ mqtt.Client, msg mqtt.Message) {
		select {
		case received <- msg.Payload():
		default:
		}
	})
	require.True(t, token.WaitTimeout(5*time.Second))
	require.NoError(t, token.Error())

	select {
	case payload := <-received:
		var msg ContentMessage
		require.NoError(t, json.Unmarshal(payload, &msg))
		assert.Equal(t, 9001, msg.DisplayID)
		require.NotNil(t, msg.Content)
		assert.Equal(t, 42, *msg.Content.ContentID)
	case <-time.After(5 * time.Second):
		t.Fatal("retained content not delivered")
	}
}
