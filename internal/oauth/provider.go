package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/senkudev/otaku_shop/internal/models"
)

// Profile is the normalized identity returned by a federated provider.
type Profile struct {
	Provider   string
	ProviderID string
	Email      string
	FirstName  string
	LastName   string
	Avatar     string
}

type Client struct {
	googleURL   string
	facebookURL string
	httpClient  *http.Client
}

func NewClient(googleURL, facebookURL string) *Client {
	return &Client{
		googleURL:   googleURL,
		facebookURL: facebookURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// FetchProfile exchanges a provider access token for the user's profile.
func (c *Client) FetchProfile(ctx context.Context, provider, accessToken string) (*Profile, error) {
	switch provider {
	case models.ProviderGoogle:
		return c.fetchGoogle(ctx, accessToken)
	case models.ProviderFacebook:
		return c.fetchFacebook(ctx, accessToken)
	default:
		return nil, fmt.Errorf("unsupported provider %q", provider)
	}
}

func (c *Client) fetchGoogle(ctx context.Context, accessToken string) (*Profile, error) {
	var raw struct {
		ID         string `json:"id"`
		Email      string `json:"email"`
		GivenName  string `json:"given_name"`
		FamilyName string `json:"family_name"`
		Picture    string `json:"picture"`
	}
	if err := c.getJSON(ctx, c.googleURL, accessToken, &raw); err != nil {
		return nil, err
	}

	return &Profile{
		Provider:   models.ProviderGoogle,
		ProviderID: raw.ID,
		Email:      raw.Email,
		FirstName:  raw.GivenName,
		LastName:   raw.FamilyName,
		Avatar:     raw.Picture,
	}, nil
}

func (c *Client) fetchFacebook(ctx context.Context, accessToken string) (*Profile, error) {
	var raw struct {
		ID        string `json:"id"`
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Picture   struct {
			Data struct {
				URL string `json:"url"`
			} `json:"data"`
		} `json:"picture"`
	}
	if err := c.getJSON(ctx, c.facebookURL, accessToken, &raw); err != nil {
		return nil, err
	}

	return &Profile{
		Provider:   models.ProviderFacebook,
		ProviderID: raw.ID,
		Email:      raw.Email,
		FirstName:  raw.FirstName,
		LastName:   raw.LastName,
		Avatar:     raw.Picture.Data.URL,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, url, accessToken string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
