package memory

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/authogonal/account-service/kit/mq"
	"github.com/authogonal/account-service/kit/util"
)

type memoryMQ struct {
	observers util.GenericSyncMap[mq.Observer, mq.Observer]
	messageCh chan []byte
	messages  [][]byte
	doneCh    chan struct{}
	cancel    context.CancelFunc
	lock      *sync.Mutex
	err       error
}

var _ mq.MQTopic = (*memoryMQ)(nil)

func CreateMemoryMQ(ctx context.Context, messageChannelBuffer int, messageCollectDuration time.Duration) mq.MQTopic {
	ctx, cancel := context.WithCancel(ctx)

	m := &memoryMQ{
		messageCh: make(chan []byte, messageChannelBuffer),
		doneCh:    make(chan struct{}),
		lock:      new(sync.Mutex),
		cancel:    cancel,
	}

	go func() {
		for {
			select {
			case message := <-m.messageCh:
				m.lock.Lock()
				m.messages = append(m.messages, message)
				m.lock.Unlock()
			case <-ctx.Done():
				close(m.doneCh)
				return
			}
		}
	}()

	ticker := time.NewTicker(messageCollectDuration)
	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			cloneMessages := func() [][]byte {
				m.lock.Lock()
				defer m.lock.Unlock()
				if len(m.messages) == 0 {
					return nil
				}
				cloneMessages := make([][]byte, len(m.messages))
				copy(cloneMessages, m.messages)
				m.messages = nil

				return cloneMessages
			}()
			if cloneMessages == nil {
				continue
			}

			for _, message := range cloneMessages {
				m.observers.Range(func(key, value mq.Observer) bool {
					if err := value.Notify(message); err != nil {
						value.ErrorHandler(err) // handle error then continue
						return true
					}
					return true
				})
			}
		}
	}()

	return m
}

func (m *memoryMQ) Done() <-chan struct{} {
	return m.doneCh
}

func (m *memoryMQ) Err() error {
	return m.err
}

func (m *memoryMQ) Produce(ctx context.Context, message mq.Message) error {
	marshalData, err := message.Marshal()
	if err != nil {
		return errors.Wrap(err, "marshal failed")
	}

	select {
	case m.messageCh <- marshalData:
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "produce canceled")
	}

	return nil
}

func (m *memoryMQ) Shutdown() bool {
	m.cancel()
	<-m.doneCh
	return true
}

func (m *memoryMQ) Subscribe(key string, notify mq.Notify, options ...mq.ObserverOption) mq.Observer {
	observer := mq.CreateObserver(key, notify, options...)

	m.observers.Store(observer, observer)

	return observer
}

func (m *memoryMQ) UnSubscribe(observer mq.Observer) {
	m.observers.Delete(observer)
	observer.UnSubscribeHook()
}
