package kafka

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"

	"github.com/authogonal/account-service/kit/mq"
	"github.com/authogonal/account-service/kit/util"
)

type kafkaMQ struct {
	observers util.GenericSyncMap[mq.Observer, mq.Observer]
	writer    *kafka.Writer
	reader    *kafka.Reader
	doneCh    chan struct{}
	cancel    context.CancelFunc
	err       error
}

var _ mq.MQTopic = (*kafkaMQ)(nil)

// CreateKafkaMQ consumes the topic with a consumer group, so concurrent
// service instances share the work.
func CreateKafkaMQ(ctx context.Context, url, topic, groupID string) mq.MQTopic {
	ctx, cancel := context.WithCancel(ctx)

	brokers := strings.Split(url, ",")

	m := &kafkaMQ{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.Hash{},
		},
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			Topic:   topic,
			GroupID: groupID,
		}),
		doneCh: make(chan struct{}),
		cancel: cancel,
	}

	go func() {
		defer close(m.doneCh)
		for {
			message, err := m.reader.ReadMessage(ctx)
			if errors.Is(err, context.Canceled) {
				return
			} else if err != nil {
				m.err = errors.Wrap(err, "read message failed")
				return
			}

			m.observers.Range(func(key, value mq.Observer) bool {
				if err := value.Notify(message.Value); err != nil {
					value.ErrorHandler(err) // handle error then continue
					return true
				}
				return true
			})
		}
	}()

	return m
}

func (m *kafkaMQ) Done() <-chan struct{} {
	return m.doneCh
}

func (m *kafkaMQ) Err() error {
	return m.err
}

func (m *kafkaMQ) Produce(ctx context.Context, message mq.Message) error {
	marshalData, err := message.Marshal()
	if err != nil {
		return errors.Wrap(err, "marshal failed")
	}

	if err := m.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(message.GetKey()),
		Value: marshalData,
	}); err != nil {
		return errors.Wrap(err, "write message failed")
	}

	return nil
}

func (m *kafkaMQ) Shutdown() bool {
	m.cancel()
	<-m.doneCh
	if err := m.reader.Close(); err != nil && m.err == nil {
		m.err = errors.Wrap(err, "close reader failed")
	}
	if err := m.writer.Close(); err != nil && m.err == nil {
		m.err = errors.Wrap(err, "close writer failed")
	}
	return true
}

func (m *kafkaMQ) Subscribe(key string, notify mq.Notify, options ...mq.ObserverOption) mq.Observer {
	observer := mq.CreateObserver(key, notify, options...)

	m.observers.Store(observer, observer)

	return observer
}

func (m *kafkaMQ) UnSubscribe(observer mq.Observer) {
	m.observers.Delete(observer)
	observer.UnSubscribeHook()
}
