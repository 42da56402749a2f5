package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"loyalty-program/pkg/utils"

	"go.uber.org/zap"
)

// TwilioSMS sends SMS through the Twilio Messages REST endpoint.
type TwilioSMS struct {
	config utils.TwilioConfig
	client *http.Client
	log    *zap.Logger
}

func NewTwilioSMS(config utils.TwilioConfig, log *zap.Logger) *TwilioSMS {
	return &TwilioSMS{
		config: config,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    log.With(zap.String("component", "twilio")),
	}
}

func (t *TwilioSMS) SendSMS(ctx context.Context, to, body string) error {
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", t.config.BaseURL, t.config.SID)

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", t.config.From)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build SMS request: %w", err)
	}
	req.SetBasicAuth(t.config.SID, t.config.Token)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		t.log.Error("Failed to send SMS", zap.Error(err), zap.String("to", to))
		return &DeliveryError{Provider: "twilio", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		var result struct {
			Message string `json:"message"`
		}
		json.NewDecoder(resp.Body).Decode(&result)
		t.log.Error("Twilio rejected SMS",
			zap.Int("status", resp.StatusCode),
			zap.String("message", result.Message),
			zap.String("to", to),
		)
		return &DeliveryError{
			Provider: "twilio",
			Err:      fmt.Errorf("status %d: %s", resp.StatusCode, result.Message),
		}
	}

	t.log.Info("SMS sent", zap.String("to", to))
	return nil
}
