// Package credential adapts Azure identity credentials for Kusto connections.
//
// Tokens are always fetched through the azcore.TokenCredential interface, so
// anything from sdk/azidentity (DefaultAzureCredential, AzureCLICredential,
// ClientSecretCredential, ...) plugs in directly. The package adds only what
// the connection layer needs: a fixed Kusto scope, a static credential for
// pre-issued tokens, and the ODBC access-token encoding.
package credential

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
)

// DefaultScope is the OAuth2 scope requested for Kusto access tokens.
const DefaultScope = "https://kusto.kusto.windows.net/.default"

// TokenCredential is the credential contract used throughout kustosql.
type TokenCredential = azcore.TokenCredential

// Token fetches a bearer token from cred for the given scope.
// An empty scope falls back to DefaultScope. The credential's own error is
// propagated unwrapped inside the returned error chain.
func Token(ctx context.Context, cred TokenCredential, scope string) (string, error) {
	if cred == nil {
		return "", fmt.Errorf("no token credential configured")
	}
	if scope == "" {
		scope = DefaultScope
	}
	tk, err := cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{scope}})
	if err != nil {
		return "", fmt.Errorf("acquire access token: %w", err)
	}
	return tk.Token, nil
}

// Static is a TokenCredential that returns a pre-issued token.
// Useful for tests and for environments where a token is minted out of band
// (CI pipelines, `az account get-access-token`).
type Static struct {
	// TokenValue is the bearer token returned for every request.
	TokenValue string

	// ExpiresOn is reported as the token expiry; zero means one hour from now.
	ExpiresOn time.Time
}

// GetToken implements azcore.TokenCredential.
func (s Static) GetToken(_ context.Context, _ policy.TokenRequestOptions) (azcore.AccessToken, error) {
	if s.TokenValue == "" {
		return azcore.AccessToken{}, fmt.Errorf("static credential holds no token")
	}
	expires := s.ExpiresOn
	if expires.IsZero() {
		expires = time.Now().Add(time.Hour)
	}
	return azcore.AccessToken{Token: s.TokenValue, ExpiresOn: expires}, nil
}
