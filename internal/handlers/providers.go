package handlers

import (
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"kplat_back_end/internal/auth"
)

var Providers = map[string]*auth.OAuthProvider{}

func InitProviders() {
	Providers["google"] = &auth.OAuthProvider{
		Name: "google",
		Config: &oauth2.Config{
			ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
			Scopes:       []string{"email"},
			Endpoint:     google.Endpoint,
		},
		UserInfoURL: "https://www.googleapis.com/oauth2/v2/userinfo?access_token=",
	}

	Providers["facebook"] = &auth.OAuthProvider{
		Name: "facebook",
		Config: &oauth2.Config{
			ClientID:     os.Getenv("FACEBOOK_CLIENT_ID"),
			ClientSecret: os.Getenv("FACEBOOK_CLIENT_SECRET"),
			RedirectURL:  os.Getenv("FACEBOOK_REDIRECT_URL"),
			Scopes:       []string{"email"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  "https://www.facebook.com/v15.0/dialog/oauth",
				TokenURL: "https://graph.facebook.com/v15.0/oauth/access_token",
			},
		},
		UserInfoURL: "https://graph.facebook.com/me?fields=id,name,email&access_token=",
	}
}
