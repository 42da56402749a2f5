package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// Profile is the subset of the Facebook Graph profile used for social
// login.
type Profile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Firstname string `json:"first_name"`
	Lastname  string `json:"last_name"`
}

// Provider resolves a third-party access token to a profile. An
// invalid token yields (nil, nil).
type Provider interface {
	FetchProfile(ctx context.Context, accessToken string) (*Profile, error)
}

type FacebookClient struct {
	graphURL string
	client   *http.Client
	log      *zap.Logger
}

func NewFacebookClient(graphURL string, log *zap.Logger) *FacebookClient {
	return &FacebookClient{
		graphURL: graphURL,
		client:   &http.Client{Timeout: 10 * time.Second},
		log:      log.With(zap.String("component", "facebook")),
	}
}

func (f *FacebookClient) FetchProfile(ctx context.Context, accessToken string) (*Profile, error) {
	endpoint := fmt.Sprintf("%s/me?fields=id,email,first_name,last_name&access_token=%s",
		f.graphURL, url.QueryEscape(accessToken))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build profile request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		f.log.Error("Failed to fetch facebook profile", zap.Error(err))
		return nil, fmt.Errorf("fetch facebook profile: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Profile
		Error *struct {
			Message string `json:"message"`
			Code    int    `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode facebook profile: %w", err)
	}

	// The Graph API reports bad tokens in the body, not the status.
	if payload.Error != nil || payload.ID == "" {
		if payload.Error != nil {
			f.log.Warn("Facebook rejected access token",
				zap.Int("code", payload.Error.Code),
				zap.String("message", payload.Error.Message),
			)
		}
		return nil, nil
	}

	return &payload.Profile, nil
}
