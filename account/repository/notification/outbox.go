package notification

import (
	"context"

	"github.com/pkg/errors"

	"github.com/authogonal/account-service/domain"
	"github.com/authogonal/account-service/kit/mq"
	utilKit "github.com/authogonal/account-service/kit/util"
)

type notificationRepo struct {
	notificationMQTopic mq.MQTopic
}

// CreateNotificationRepo is the producing half of the notification outbox.
// Messages survive the request that enqueued them; delivery is the
// dispatcher's job.
func CreateNotificationRepo(notificationMQTopic mq.MQTopic) domain.NotificationRepo {
	return &notificationRepo{
		notificationMQTopic: notificationMQTopic,
	}
}

func (n *notificationRepo) Produce(ctx context.Context, notification *domain.Notification) error {
	if notification.ID == "" {
		uniqueIDGenerate, err := utilKit.GetUniqueIDGenerate()
		if err != nil {
			return errors.Wrap(err, "generate unique id failed")
		}
		notification.ID = uniqueIDGenerate.Generate().GetBase62()
	}
	if err := n.notificationMQTopic.Produce(ctx, notification); err != nil {
		return errors.Wrap(err, "produce failed")
	}
	return nil
}
