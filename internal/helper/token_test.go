package helper

import (
	"strings"
	"testing"
	"time"

	"github.com/SundayYogurt/projecthub/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-0123456789"

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func invitationClaims() Claims {
	return Claims{
		Purpose:      PurposeInvitation,
		UserID:       7,
		ProjectID:    "9b2f6a8e-2f5b-4f4e-8d55-0d9a0c1f2a11",
		InvitationID: "2d0c8c3b-2b5e-4e7b-9a8e-1c4c0f0e7d22",
		Role:         domain.RoleMember,
	}
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec := NewTokenCodec(testSecret)

	token, err := codec.Encode(invitationClaims(), time.Hour)
	require.NoError(t, err)

	got, err := codec.Decode(token, PurposeInvitation)
	require.NoError(t, err)
	assert.Equal(t, uint(7), got.UserID)
	assert.Equal(t, domain.RoleMember, got.Role)
	assert.Equal(t, invitationClaims().ProjectID, got.ProjectID)
	assert.Equal(t, invitationClaims().InvitationID, got.InvitationID)
}

func TestTokenCodec_PinnedClockIsDeterministic(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	codec := NewTokenCodec(testSecret).WithClock(fixedClock(at))

	a, err := codec.Encode(invitationClaims(), time.Hour)
	require.NoError(t, err)
	b, err := codec.Encode(invitationClaims(), time.Hour)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	other, err := NewTokenCodec("another-secret-0123456").WithClock(fixedClock(at)).Encode(invitationClaims(), time.Hour)
	require.NoError(t, err)
	assert.NotEqual(t, a, other)
}

func TestTokenCodec_Expired(t *testing.T) {
	issued := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	token, err := NewTokenCodec(testSecret).WithClock(fixedClock(issued)).Encode(invitationClaims(), time.Hour)
	require.NoError(t, err)

	later := NewTokenCodec(testSecret).WithClock(fixedClock(issued.Add(2 * time.Hour)))
	_, err = later.Decode(token, PurposeInvitation)
	assert.ErrorIs(t, err, domain.ErrExpiredToken)
}

func TestTokenCodec_Invalid(t *testing.T) {
	codec := NewTokenCodec(testSecret)
	token, err := codec.Encode(invitationClaims(), time.Hour)
	require.NoError(t, err)

	t.Run("garbage", func(t *testing.T) {
		_, err := codec.Decode("not-a-token", PurposeInvitation)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := NewTokenCodec("another-secret-0123456").Decode(token, PurposeInvitation)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("tampered signature", func(t *testing.T) {
		parts := strings.Split(token, ".")
		require.Len(t, parts, 3)
		sig := []byte(parts[2])
		if sig[0] == 'A' {
			sig[0] = 'B'
		} else {
			sig[0] = 'A'
		}
		_, err := codec.Decode(parts[0]+"."+parts[1]+"."+string(sig), PurposeInvitation)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("wrong purpose", func(t *testing.T) {
		_, err := codec.Decode(token, PurposeActivation)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})
}

func TestTokenCodec_EncodeRejectsBadInput(t *testing.T) {
	codec := NewTokenCodec(testSecret)

	_, err := codec.Encode(Claims{UserID: 1}, time.Hour)
	assert.Error(t, err)

	_, err = codec.Encode(invitationClaims(), 0)
	assert.Error(t, err)
}

func TestAuth_VerifyToken(t *testing.T) {
	auth := SetupAuth(NewTokenCodec(testSecret), time.Hour)

	token, err := auth.GenerateToken(3, 4, "a@example.com")
	require.NoError(t, err)

	user, err := auth.VerifyToken("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, uint(3), user.UserID)
	assert.Equal(t, uint(4), user.ProfileID)

	user, err = auth.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", user.Email)

	_, err = auth.VerifyToken("")
	assert.Error(t, err)

	_, err = auth.VerifyToken("Bearer ")
	assert.Error(t, err)

	invite, err := NewTokenCodec(testSecret).Encode(invitationClaims(), time.Hour)
	require.NoError(t, err)
	_, err = auth.VerifyToken(invite)
	assert.Error(t, err, "invitation tokens must not authenticate requests")
}
