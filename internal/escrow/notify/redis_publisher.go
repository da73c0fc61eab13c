package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/pledgevault/crowdfund-backend/internal/escrow/domain"
)

const eventChannelPrefix = "escrow:events:" // Pub/Sub channel per project: escrow:events:{project_id}

// RedisPublisher publishes each event on the project's pub/sub channel so
// external consumers (dashboards, webhooks) can follow transitions live.
type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Notify(ctx context.Context, ev domain.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[warn] operation=publish_event error=%v", err)
		return
	}

	channel := fmt.Sprintf("%s%d", eventChannelPrefix, ev.ProjectID)
	if err := p.client.Publish(ctx, channel, data).Err(); err != nil {
		log.Printf("[warn] operation=publish_event channel=%s error=%v", channel, err)
	}
}
