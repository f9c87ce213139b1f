package notify

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

const defaultChannel = "ff:events"

// RedisSink mirrors events onto a pub/sub channel for any listening
// frontend session.
type RedisSink struct {
	Client  *redis.Client
	Channel string
}

func NewRedisSink(client *redis.Client) *RedisSink {
	return &RedisSink{Client: client, Channel: defaultChannel}
}

func (s *RedisSink) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	ch := s.Channel
	if ch == "" {
		ch = defaultChannel
	}
	return s.Client.Publish(ctx, ch, payload).Err()
}
