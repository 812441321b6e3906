package salesforce

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

const jwtBearerGrantType = "urn:ietf:params:oauth:grant-type:jwt-bearer"

// tokenResponse is the OAuth token endpoint reply. instance_url is the org
// host every data request must target.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	InstanceURL string `json:"instance_url"`
	TokenType   string `json:"token_type"`
	Error       string `json:"error"`
	ErrorDesc   string `json:"error_description"`
}

// jwtTokenSource implements oauth2.TokenSource using the Salesforce JWT
// bearer flow: an RS256-signed assertion exchanged for an access token.
type jwtTokenSource struct {
	loginURL string
	clientID string
	username string
	key      *rsa.PrivateKey
	client   *http.Client
}

// NewTokenSource loads the PEM private key and returns a caching token source
// for the configured connected app. Refreshing on expiry is handled by
// oauth2.ReuseTokenSource.
func NewTokenSource(loginURL, clientID, username, keyPath string, timeout time.Duration) (oauth2.TokenSource, error) {
	pemBytes, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key %s: %w", keyPath, err)
	}
	key, err := jwt.ParseRSAPrivateKeyFromPEM(pemBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse RSA private key: %w", err)
	}

	src := &jwtTokenSource{
		loginURL: strings.TrimRight(loginURL, "/"),
		clientID: clientID,
		username: username,
		key:      key,
		client:   &http.Client{Timeout: timeout},
	}
	return oauth2.ReuseTokenSource(nil, src), nil
}

func (s *jwtTokenSource) Token() (*oauth2.Token, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    s.clientID,
		Subject:   s.username,
		Audience:  jwt.ClaimStrings{s.loginURL},
		ExpiresAt: jwt.NewNumericDate(now.Add(3 * time.Minute)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	assertion, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token assertion: %w", err)
	}

	form := url.Values{
		"grant_type": {jwtBearerGrantType},
		"assertion":  {assertion},
	}
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost,
		s.loginURL+"/services/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || tr.AccessToken == "" {
		return nil, fmt.Errorf("token endpoint returned %d: %s %s", resp.StatusCode, tr.Error, tr.ErrorDesc)
	}

	tok := &oauth2.Token{
		AccessToken: tr.AccessToken,
		TokenType:   tr.TokenType,
		// Salesforce does not return expires_in for this grant; sessions are
		// bounded by the org session timeout. Refresh hourly.
		Expiry: now.Add(1 * time.Hour),
	}
	return tok.WithExtra(map[string]any{"instance_url": tr.InstanceURL}), nil
}
