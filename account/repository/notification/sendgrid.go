package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/authogonal/account-service/domain"
)

const sendGridMailSendURL = "https://api.sendgrid.com/v3/mail/send"

type sendGridMailSender struct {
	apiKey     string
	url        string
	httpClient *http.Client
}

type SendGridOption func(*sendGridMailSender)

func SendGridURL(url string) SendGridOption {
	return func(s *sendGridMailSender) {
		s.url = url
	}
}

// CreateSendGridMailSender delivers mail through the SendGrid v3 send API.
func CreateSendGridMailSender(apiKey string, options ...SendGridOption) domain.MailSender {
	s := &sendGridMailSender{
		apiKey:     apiKey,
		url:        sendGridMailSendURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, option := range options {
		option(s)
	}
	return s
}

type sendGridAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendGridPayload struct {
	Personalizations []struct {
		To []sendGridAddress `json:"to"`
	} `json:"personalizations"`
	From    sendGridAddress `json:"from"`
	Subject string          `json:"subject"`
	Content []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"content"`
}

func (s *sendGridMailSender) Send(ctx context.Context, mail *domain.Mail) error {
	payload := sendGridPayload{
		From: sendGridAddress{
			Email: mail.From,
			Name:  mail.FromName,
		},
		Subject: mail.Subject,
	}
	payload.Personalizations = []struct {
		To []sendGridAddress `json:"to"`
	}{{To: []sendGridAddress{{Email: mail.To}}}}
	payload.Content = []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	}{{Type: "text/plain", Value: mail.Text}}

	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "marshal payload failed")
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "create request failed")
	}
	request.Header.Set("Authorization", "Bearer "+s.apiKey)
	request.Header.Set("Content-Type", "application/json")

	response, err := s.httpClient.Do(request)
	if err != nil {
		return errors.Wrap(err, "send request failed")
	}
	defer response.Body.Close()

	if response.StatusCode >= http.StatusMultipleChoices {
		responseBody, _ := io.ReadAll(io.LimitReader(response.Body, 1024))
		return errors.New("send mail failed, status: " + response.Status + ", body: " + string(responseBody))
	}

	return nil
}
