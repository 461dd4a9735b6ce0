package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// AuthKind enumerates the supported request authentication modes.
type AuthKind string

// Auth kinds.
const (
	AuthNone    AuthKind = "none"
	AuthInherit AuthKind = "inherit"
	AuthAWSV4   AuthKind = "awsv4"
	AuthBasic   AuthKind = "basic"
	AuthBearer  AuthKind = "bearer"
	AuthDigest  AuthKind = "digest"
	AuthOAuth2  AuthKind = "oauth2"
)

// OAuth2 grant types.
const (
	GrantPassword          = "password"
	GrantAuthorizationCode = "authorization_code"
	GrantClientCredentials = "client_credentials"
)

// ParseAuthKind validates an auth type string.
func ParseAuthKind(s string) (AuthKind, error) {
	switch kind := AuthKind(strings.ToLower(strings.TrimSpace(s))); kind {
	case AuthNone, AuthInherit, AuthAWSV4, AuthBasic, AuthBearer, AuthDigest, AuthOAuth2:
		return kind, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedAuth, s)
	}
}

// Auth is a tagged union: at most the member matching Kind is set.
type Auth struct {
	Kind   AuthKind
	AWSV4  *AWSV4Auth
	Basic  *BasicAuth
	Bearer *BearerAuth
	Digest *DigestAuth
	OAuth2 *OAuth2Auth
}

// IsZero reports whether no credentials block is present.
func (a Auth) IsZero() bool {
	return a.AWSV4 == nil && a.Basic == nil && a.Bearer == nil && a.Digest == nil && a.OAuth2 == nil
}

// AWSV4Auth holds AWS Signature v4 credentials.
type AWSV4Auth struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	Service         string
	Region          string
	ProfileName     string
}

// BasicAuth holds basic auth credentials.
type BasicAuth struct {
	Username string
	Password string
}

// BearerAuth holds a bearer token.
type BearerAuth struct {
	Token string
}

// DigestAuth holds digest auth credentials.
type DigestAuth struct {
	Username string
	Password string
}

// OAuth2Auth holds OAuth2 settings. Which fields are rendered depends on GrantType.
type OAuth2Auth struct {
	GrantType        string
	CallbackURL      string
	AuthorizationURL string
	AccessTokenURL   string
	Username         string
	Password         string
	ClientID         string
	ClientSecret     string
	Scope            string
	State            string
	PKCE             bool
}

// NewAuth builds the credentials block for kind from configured values.
// Keys are matched ignoring case and underscores, so "grant_type", "grantType"
// and "granttype" are the same key. Kinds without credentials (none, inherit)
// yield an Auth with only Kind set. An oauth2 block needs one of the supported
// grant types and a boolean pkce, when given.
func NewAuth(kind AuthKind, values map[string]string) (Auth, error) {
	v := make(map[string]string, len(values))
	for key, value := range values {
		v[normalizeKey(key)] = value
	}

	auth := Auth{Kind: kind}

	switch kind {
	case AuthAWSV4:
		auth.AWSV4 = &AWSV4Auth{
			AccessKeyID:     v["accesskeyid"],
			SecretAccessKey: v["secretaccesskey"],
			SessionToken:    v["sessiontoken"],
			Service:         v["service"],
			Region:          v["region"],
			ProfileName:     v["profilename"],
		}
	case AuthBasic:
		auth.Basic = &BasicAuth{Username: v["username"], Password: v["password"]}
	case AuthBearer:
		auth.Bearer = &BearerAuth{Token: v["token"]}
	case AuthDigest:
		auth.Digest = &DigestAuth{Username: v["username"], Password: v["password"]}
	case AuthOAuth2:
		grant := strings.ToLower(strings.TrimSpace(v["granttype"]))
		switch grant {
		case GrantPassword, GrantAuthorizationCode, GrantClientCredentials:
		default:
			return Auth{}, fmt.Errorf("%w: oauth2 grant type %q", ErrUnsupportedAuth, v["granttype"])
		}

		var pkce bool
		if raw := strings.TrimSpace(v["pkce"]); raw != "" {
			var err error
			if pkce, err = strconv.ParseBool(raw); err != nil {
				return Auth{}, fmt.Errorf("%w: oauth2 pkce %q is not a boolean", ErrUnsupportedAuth, raw)
			}
		}

		auth.OAuth2 = &OAuth2Auth{
			GrantType:        grant,
			CallbackURL:      v["callbackurl"],
			AuthorizationURL: v["authorizationurl"],
			AccessTokenURL:   v["accesstokenurl"],
			Username:         v["username"],
			Password:         v["password"],
			ClientID:         v["clientid"],
			ClientSecret:     v["clientsecret"],
			Scope:            v["scope"],
			State:            v["state"],
			PKCE:             pkce,
		}
	}

	return auth, nil
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.ReplaceAll(key, "_", ""))
}
