package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func testProvider(userInfoURL string) *OAuthProvider {
	return &OAuthProvider{
		Name: "google",
		Config: &oauth2.Config{
			ClientID:     "client-123",
			ClientSecret: "secret",
			RedirectURL:  "http://localhost:8080/api/auth/google/callback",
			Scopes:       []string{"email", "profile"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  "https://accounts.example.com/auth",
				TokenURL: "https://accounts.example.com/token",
			},
		},
		UserInfoURL: userInfoURL,
	}
}

func TestGetAuthURLCarriesClientAndState(t *testing.T) {
	p := testProvider("")

	u := p.GetAuthURL("etat-xyz")

	assert.Contains(t, u, "client_id=client-123")
	assert.Contains(t, u, "state=etat-xyz")
	assert.Contains(t, u, "access_type=offline")
}

func TestFetchUserDecodesProviderResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "tok-abc", r.URL.Query().Get("access_token"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"prov-1","email":"kim@example.com","name":"Kim"}`))
	}))
	defer srv.Close()

	p := testProvider(srv.URL + "/userinfo?access_token=")

	info, err := p.FetchUser(context.Background(), &oauth2.Token{AccessToken: "tok-abc"})
	require.NoError(t, err)
	assert.Equal(t, "prov-1", info.ID)
	assert.Equal(t, "kim@example.com", info.Email)
	assert.Equal(t, "Kim", info.Name)
}

func TestFetchUserRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	p := testProvider(srv.URL + "/userinfo?access_token=")

	_, err := p.FetchUser(context.Background(), &oauth2.Token{AccessToken: "bad"})
	require.Error(t, err)
}

func TestFetchUserRequiresEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"prov-1","name":"Sans Email"}`))
	}))
	defer srv.Close()

	p := testProvider(srv.URL + "/userinfo?access_token=")

	_, err := p.FetchUser(context.Background(), &oauth2.Token{AccessToken: "tok"})
	require.Error(t, err)
}
