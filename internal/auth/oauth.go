package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/oauth2"
)

// UserInfo : identité minimale renvoyée par un provider social.
// Google comme Facebook répondent avec ces trois clés.
type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// OAuthProvider : configuration OAuth2 d'un provider social, avec l'URL
// userinfo à interroger une fois le code échangé. Sert le flux SPA/mobile
// où l'app ouvre elle-même la page d'autorisation puis poste le code.
type OAuthProvider struct {
	Name        string
	Config      *oauth2.Config
	UserInfoURL string // le token d'accès est concaténé en query
}

func (p *OAuthProvider) GetAuthURL(state string) string {
	return p.Config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (p *OAuthProvider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return p.Config.Exchange(ctx, code)
}

// FetchUser récupère l'identité auprès du provider avec le token échangé.
func (p *OAuthProvider) FetchUser(ctx context.Context, token *oauth2.Token) (UserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		p.UserInfoURL+url.QueryEscape(token.AccessToken), nil)
	if err != nil {
		return UserInfo{}, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return UserInfo{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return UserInfo{}, fmt.Errorf("userinfo %s: statut %d", p.Name, resp.StatusCode)
	}

	var info UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return UserInfo{}, err
	}
	if info.Email == "" {
		return UserInfo{}, fmt.Errorf("email absent de la réponse %s", p.Name)
	}
	return info, nil
}
