// portalctl is a headless client for the portal's identity and backend
// APIs. It keeps credentials in the auth cache instead of browser cookies
// and refreshes them the same way the server-side resolver does.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/akriva/portal/apiclient"
	"github.com/akriva/portal/authcache"
	"github.com/akriva/portal/identity"
	"github.com/akriva/portal/internal/config"
	"github.com/akriva/portal/internal/utils"
	"github.com/akriva/portal/session"
)

const usage = `usage: portalctl <command>

commands:
  signin <email> <password>   sign in and cache the credential triple
  whoami                      show the signed-in user, refreshing if needed
  set-company-name <name>     rename the tenant (admin only)
  logout                      drop the cached credentials
`

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "portalctl:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("missing command")
	}

	c := config.New()
	storage, err := authcache.NewFileStorage(c.GetAuthCachePath())
	if err != nil {
		return err
	}
	cache, err := authcache.New(storage)
	if err != nil {
		return err
	}
	identityClient, err := identity.NewClient(c.GetAuthBaseURL())
	if err != nil {
		return err
	}

	ctx := context.Background()

	switch args[0] {
	case "signin":
		if len(args) != 3 {
			return fmt.Errorf("signin requires <email> <password>")
		}
		return signin(ctx, identityClient, cache, args[1], args[2])
	case "whoami":
		return whoami(ctx, c, identityClient, cache)
	case "set-company-name":
		if len(args) != 2 {
			return fmt.Errorf("set-company-name requires <name>")
		}
		return setCompanyName(ctx, c, identityClient, cache, args[1])
	case "logout":
		return cache.Clear()
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func signin(ctx context.Context, identityClient *identity.Client, cache *authcache.Cache, email, password string) error {
	result, err := identityClient.Signin(ctx, identity.SigninRequest{Email: email, Password: password})
	if err != nil {
		return err
	}
	if result.Challenge != nil {
		return fmt.Errorf("account requires MFA (%s); complete signin in the browser", result.Challenge.ChallengeName)
	}

	sess, err := session.New(result.Tokens.AccessToken, result.Tokens.IDToken)
	if err != nil {
		return err
	}
	if err := cache.Set(authcache.Entry{Tokens: *result.Tokens, User: sess.User}); err != nil {
		return err
	}

	fmt.Printf("signed in as %s (%s)\n", sess.User.Email, sess.User.Role.Label())
	return nil
}

func whoami(ctx context.Context, c config.Config, identityClient *identity.Client, cache *authcache.Cache) error {
	sess, err := cachedSession(ctx, identityClient, cache)
	if err != nil {
		return err
	}

	apiClient, err := apiclient.NewClient(c.GetAPIBaseURL())
	if err != nil {
		return err
	}
	user, err := apiClient.CurrentUser(ctx, sess)
	if err != nil {
		return err
	}

	name := utils.Value(user.DisplayName)
	if name == "" {
		name = user.Email
	}
	fmt.Printf("%s <%s> (%s) tenant=%s active=%t\n", name, user.Email, user.Role.Label(), sess.User.TenantID, user.IsActive)
	return nil
}

func setCompanyName(ctx context.Context, c config.Config, identityClient *identity.Client, cache *authcache.Cache, name string) error {
	sess, err := cachedSession(ctx, identityClient, cache)
	if err != nil {
		return err
	}

	apiClient, err := apiclient.NewClient(c.GetAPIBaseURL())
	if err != nil {
		return err
	}
	tenant, err := apiClient.UpdateTenantSettings(ctx, sess, apiclient.UpdateTenantSettingsRequest{
		Name: utils.Ptr(name),
	})
	if err != nil {
		return err
	}

	fmt.Printf("company renamed to %s\n", tenant.Name)
	return nil
}

// cachedSession derives a session from the cached triple, refreshing through
// the provider when the cached access token is past its freshness window.
func cachedSession(ctx context.Context, identityClient *identity.Client, cache *authcache.Cache) (*session.Session, error) {
	entry, ok := cache.Get()
	if !ok {
		return nil, fmt.Errorf("not signed in; run portalctl signin first")
	}

	if session.TokenExpired(entry.Tokens.AccessToken, time.Now()) {
		creds, err := identityClient.Refresh(ctx, entry.Tokens.RefreshToken)
		if err != nil {
			_ = cache.Clear()
			return nil, fmt.Errorf("session expired; run portalctl signin again")
		}
		if err := cache.UpdateTokens(*creds); err != nil {
			return nil, err
		}
		entry.Tokens = *creds
		log.Debug().Msg("refreshed cached credentials")
	}

	return session.New(entry.Tokens.AccessToken, entry.Tokens.IDToken)
}
