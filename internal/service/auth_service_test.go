package service

import (
	"context"
	"testing"
	"time"

	"learning_center_backend/internal/config"
	"learning_center_backend/internal/model"
	"learning_center_backend/internal/repository"
	"learning_center_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (*AuthService, *MemoryMailer) {
	t.Helper()
	db := openTestDB(t)
	createUser(t, db, "maria", "correct-horse", model.RoleClient)

	mailer := &MemoryMailer{}
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "auth-test-secret", ExpireTime: time.Hour}}
	svc := NewAuthService(repository.NewUserRepository(db), repository.NewStatsLogRepository(db), mailer, testCodec(), cfg)
	return svc, mailer
}

var testClient = util.ClientInfo{IP: "10.0.0.1", Method: "POST", URL: "/api/auth/login", UserAgent: "go-test"}

func TestLoginIssuesToken(t *testing.T) {
	svc, _ := newAuthService(t)

	res, err := svc.Login(testClient, Credentials{Login: " maria "}, "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "maria", res.User.Login)

	claims, err := util.ParseJWT(res.Token, "auth-test-secret")
	require.NoError(t, err)
	assert.Equal(t, "maria", claims.Login)
}

func TestLoginRequiresLoginOrEmail(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Login(testClient, Credentials{}, "x")
	assert.True(t, util.IsKind(err, util.KindBadRequest))
}

func TestLoginThrottlesAfterRepeatedFailures(t *testing.T) {
	svc, _ := newAuthService(t)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return now }

	for i := 0; i < loginThrottleLimit; i++ {
		_, err := svc.Login(testClient, Credentials{Login: "maria"}, "wrong")
		require.ErrorIs(t, err, util.ErrInvalidCredentials, "attempt %d", i+1)
	}

	// even the right password is refused inside the window
	_, err := svc.Login(testClient, Credentials{Login: "maria"}, "correct-horse")
	assert.ErrorIs(t, err, util.ErrTooManyLogins)

	// the throttle key is case-insensitive
	_, err = svc.Login(testClient, Credentials{Login: "MARIA"}, "correct-horse")
	assert.ErrorIs(t, err, util.ErrTooManyLogins)

	now = now.Add(loginThrottleWindow + time.Minute)
	_, err = svc.Login(testClient, Credentials{Login: "maria"}, "correct-horse")
	assert.NoError(t, err)
}

func TestOTPLoginIsSingleUse(t *testing.T) {
	svc, mailer := newAuthService(t)

	require.NoError(t, svc.RequestOTP(context.Background(), testClient, Credentials{Login: "maria"}))
	require.NotNil(t, mailer.Last())

	user, err := svc.UserRepo.FindByCredentials("maria", "")
	require.NoError(t, err)
	require.True(t, user.IsOTPLogin)
	code := user.OTPCode
	assert.Contains(t, mailer.Last().HTML, code)

	_, err = svc.LoginOTP(testClient, Credentials{Login: "maria"}, "000000x")
	assert.ErrorIs(t, err, util.ErrInvalidOTP)

	res, err := svc.LoginOTP(testClient, Credentials{Login: "maria"}, code)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	_, err = svc.LoginOTP(testClient, Credentials{Login: "maria"}, code)
	assert.ErrorIs(t, err, util.ErrInvalidOTP)
}

func TestRequestOTPForUnknownUser(t *testing.T) {
	svc, mailer := newAuthService(t)

	err := svc.RequestOTP(context.Background(), testClient, Credentials{Email: "nobody@example.com"})
	assert.ErrorIs(t, err, util.ErrUserNotFound)
	assert.Nil(t, mailer.Last())
}
