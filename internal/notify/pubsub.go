package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"cloud.google.com/go/pubsub"
	"google.golang.org/api/option"

	"clinicdesk/config"
	"clinicdesk/internal/domain"
)

type PubSubDispatcher struct {
	client *pubsub.Client
	topic  *pubsub.Topic
}

// NewPubSubDispatcher uses Application Default Credentials unless explicit
// credentials JSON is configured.
func NewPubSubDispatcher(ctx context.Context, cfg config.PubSubConfig) (*PubSubDispatcher, error) {
	if cfg.ProjectID == "" {
		return nil, errors.New("не задан PUBSUB_PROJECT_ID")
	}

	var opts []option.ClientOption
	if cfg.CredentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}

	client, err := pubsub.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания клиента pubsub: %w", err)
	}

	return &PubSubDispatcher{
		client: client,
		topic:  client.Topic(cfg.Topic),
	}, nil
}

func (d *PubSubDispatcher) Dispatch(ctx context.Context, event domain.AppointmentEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("ошибка сериализации события: %w", err)
	}

	result := d.topic.Publish(ctx, &pubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"type":      string(event.Type),
			"doctor_id": strconv.FormatInt(event.DoctorID, 10),
		},
	})

	if _, err := result.Get(ctx); err != nil {
		return fmt.Errorf("ошибка публикации события %s: %w", event.Type, err)
	}
	return nil
}

func (d *PubSubDispatcher) Close() error {
	d.topic.Stop()
	return d.client.Close()
}
