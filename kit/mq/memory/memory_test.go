package memory

import (
	"context"
	"encoding/json"
	"strconv"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/authogonal/account-service/kit/mq"
)

type testMessageStruct struct {
	Data string
}

func (t *testMessageStruct) GetKey() string {
	return t.Data
}

func (t *testMessageStruct) Marshal() ([]byte, error) {
	marshal, err := json.Marshal(*t)
	if err != nil {
		return nil, errors.Wrap(err, "marshal failed")
	}
	return marshal, nil
}

func TestMemory(t *testing.T) {
	ctx := context.Background()

	t.Run("test consume 1000 messages in order of arrival", func(t *testing.T) {
		mqTopic := CreateMemoryMQ(ctx, 100, 1*time.Millisecond)
		defer mqTopic.Shutdown()

		resultCh := make(chan *testMessageStruct)
		mqTopic.Subscribe("key", func(message []byte) error {
			var textMessage testMessageStruct
			if err := json.Unmarshal(message, &textMessage); err != nil {
				return errors.Wrap(err, "unmarshal failed")
			}
			resultCh <- &textMessage
			return nil
		})

		messages := make([]mq.Message, 1000)
		for i := 0; i < 1000; i++ {
			messages[i] = &testMessageStruct{
				Data: strconv.Itoa(i),
			}
		}

		go func() {
			for _, message := range messages {
				assert.Nil(t, mqTopic.Produce(ctx, message))
			}
		}()

		var results []*testMessageStruct
		timeout := time.NewTimer(30 * time.Second)
		defer timeout.Stop()
		func() {
			for {
				select {
				case <-timeout.C:
					assert.Fail(t, "timeout")
					return
				case message := <-resultCh:
					results = append(results, message)
					if message.Data == "999" {
						return
					}
				}
			}
		}()
		assert.Equal(t, 1000, len(results))
	})

	t.Run("test observer error does not stop consumption", func(t *testing.T) {
		mqTopic := CreateMemoryMQ(ctx, 10, 1*time.Millisecond)
		defer mqTopic.Shutdown()

		errCh := make(chan error, 1)
		mqTopic.Subscribe("key", func(message []byte) error {
			return errors.New("notify failed")
		}, mq.AddErrorHandler(func(err error) {
			select {
			case errCh <- err:
			default:
			}
		}))

		assert.Nil(t, mqTopic.Produce(ctx, &testMessageStruct{Data: "boom"}))

		select {
		case err := <-errCh:
			assert.NotNil(t, err)
		case <-time.After(5 * time.Second):
			assert.Fail(t, "timeout")
		}
	})
}
