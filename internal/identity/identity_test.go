package identity

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifier_RoundTrip(t *testing.T) {
	v := NewVerifier("secret")
	token, err := v.Issue("user-1", time.Hour)
	require.NoError(t, err)

	ownerID, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", ownerID)
}

func TestVerifier_WrongSecret(t *testing.T) {
	token, err := NewVerifier("secret").Issue("user-1", time.Hour)
	require.NoError(t, err)

	_, err = NewVerifier("other").Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifier_Expired(t *testing.T) {
	v := NewVerifier("secret")
	v.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := v.Issue("user-1", time.Hour)
	require.NoError(t, err)

	_, err = NewVerifier("secret").Verify(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifier_MissingSubject(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.StandardClaims{
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewVerifier("secret").Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifier_IssueRequiresOwner(t *testing.T) {
	_, err := NewVerifier("secret").Issue("", time.Hour)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestBearerToken(t *testing.T) {
	token, err := bearerToken("Bearer abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	token, err = bearerToken("bearer abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	_, err = bearerToken("")
	assert.ErrorIs(t, err, ErrMissingToken)
	_, err = bearerToken("Basic abc")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestOwnerFromContext(t *testing.T) {
	_, ok := OwnerFromContext(context.Background())
	assert.False(t, ok)

	ownerID, ok := OwnerFromContext(WithOwner(context.Background(), "user-1"))
	assert.True(t, ok)
	assert.Equal(t, "user-1", ownerID)
}

type whoamiOutput struct {
	Body struct {
		OwnerID string `json:"ownerID"`
	}
}

func newWhoamiAPI(t *testing.T, v *Verifier) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	api.UseMiddleware(Middleware(api, v))
	huma.Register(api, huma.Operation{
		OperationID: "whoami",
		Method:      http.MethodGet,
		Path:        "/whoami",
	}, func(ctx context.Context, _ *struct{}) (*whoamiOutput, error) {
		out := &whoamiOutput{}
		out.Body.OwnerID, _ = OwnerFromContext(ctx)
		return out, nil
	})
	return api
}

func TestMiddleware_ValidToken(t *testing.T) {
	v := NewVerifier("secret")
	token, err := v.Issue("user-1", time.Hour)
	require.NoError(t, err)

	resp := newWhoamiAPI(t, v).Get("/whoami", "Authorization: Bearer "+token)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"ownerID":"user-1"`)
}

func TestMiddleware_MissingToken(t *testing.T) {
	resp := newWhoamiAPI(t, NewVerifier("secret")).Get("/whoami")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestMiddleware_InvalidToken(t *testing.T) {
	resp := newWhoamiAPI(t, NewVerifier("secret")).Get("/whoami", "Authorization: Bearer nope")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
