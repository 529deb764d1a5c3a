package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"inventario-cli/internal/model"
)

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	// Some backend revisions return the username alongside the token; when
	// absent we fall back to the token's sub claim.
	Username string `json:"username,omitempty"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// Login exchanges credentials for a bearer token (form-encoded, the OAuth2
// password flow the backend speaks) and persists the resulting session.
// Single attempt, no retry; any failure leaves the store untouched.
func (c *Client) Login(ctx context.Context, username, password string) (model.Session, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/login", strings.NewReader(form.Encode()))
	if err != nil {
		return model.Session{}, &RequestFailedError{Method: http.MethodPost, Path: "/login", Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Log.Debug().Str("user", username).Err(err).Msg("login request failed")
		return model.Session{}, &RequestFailedError{Method: http.MethodPost, Path: "/login", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return model.Session{}, ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return model.Session{}, &RequestFailedError{Method: http.MethodPost, Path: "/login", Status: resp.StatusCode, Detail: readDetail(resp.Body)}
	}

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return model.Session{}, &RequestFailedError{Method: http.MethodPost, Path: "/login", Status: resp.StatusCode, Err: err}
	}
	if lr.AccessToken == "" {
		return model.Session{}, &RequestFailedError{Method: http.MethodPost, Path: "/login", Status: resp.StatusCode, Detail: "respuesta sin access_token"}
	}

	name := lr.Username
	if name == "" {
		name = subjectClaim(lr.AccessToken)
	}
	if name == "" {
		name = username
	}

	sess := model.Session{Token: lr.AccessToken, Username: name}
	if err := c.Sessions.Save(sess); err != nil {
		return model.Session{}, &RequestFailedError{Method: http.MethodPost, Path: "/login", Err: err}
	}
	c.Log.Info().Str("user", name).Msg("login ok")
	return sess, nil
}

// Logout clears the persisted session.
func (c *Client) Logout() error {
	return c.Sessions.Clear()
}

// ChangePassword issues one authenticated password change.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	return c.do(ctx, http.MethodPost, "/change-password", changePasswordRequest{
		OldPassword: oldPassword,
		NewPassword: newPassword,
	}, nil)
}

// subjectClaim decodes the token's sub claim for display purposes only. The
// signature is deliberately not verified: the token stays an opaque
// credential and authorization remains the server's call.
func subjectClaim(token string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}
