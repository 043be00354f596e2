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
	"golang.org/x/crypto/bcrypt"
)

func newUserService(t *testing.T) (*UserService, *MemoryMailer) {
	t.Helper()
	db := openTestDB(t)
	mailer := &MemoryMailer{}
	mailCfg := &config.MailConfig{From: "no-reply@example.com", SuperAdmin: "boss@example.com", GeneratedDomain: "example.com"}
	svc := NewUserService(
		repository.NewUserRepository(db),
		repository.NewGroupRepository(db),
		mailer,
		NewReportService("http://localhost:3000"),
		testCodec(),
		mailCfg,
	)
	return svc, mailer
}

func TestCreateThenVerify(t *testing.T) {
	svc, mailer := newUserService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, CreateUserInput{
		Login:     "ion",
		Email:     "Ion@Example.com",
		Password:  "secret1",
		FirstName: "Ion",
		LastName:  "Popescu",
	})
	require.NoError(t, err)
	assert.Equal(t, "ion@example.com", user.Email)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.False(t, user.IsVerified)
	assert.Len(t, user.OTPCode, util.OTPLength)

	welcome := mailer.Last()
	require.NotNil(t, welcome)
	assert.Equal(t, []string{"ion@example.com"}, welcome.To)
	assert.Contains(t, welcome.HTML, user.OTPCode)

	creds := CredentialsInput{Login: "ion", Email: "ion@example.com"}
	err = svc.Verify(ctx, VerifyInput{CredentialsInput: creds, OTPCode: "999999x"})
	assert.Equal(t, errOTPInvalid, err)

	require.NoError(t, svc.Verify(ctx, VerifyInput{CredentialsInput: creds, OTPCode: user.OTPCode}))

	stored, err := svc.UserRepo.FindByID(user.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsVerified)
	assert.Empty(t, stored.OTPCode)
	assert.Nil(t, stored.OTPExpiresAt)

	err = svc.Verify(ctx, VerifyInput{CredentialsInput: creds, OTPCode: user.OTPCode})
	assert.True(t, util.IsKind(err, util.KindBadRequest))
	assert.Len(t, mailer.Sent, 2)
}

func TestCreateRejectsTakenLogin(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()
	in := CreateUserInput{Login: "ana", Email: "ana@example.com", Password: "secret1", FirstName: "Ana", LastName: "Rusu"}

	_, err := svc.Create(ctx, in)
	require.NoError(t, err)

	in.Email = "other@example.com"
	_, err = svc.Create(ctx, in)
	assert.True(t, util.IsKind(err, util.KindConflict))
}

func TestExpiredOTPCannotResetPassword(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()
	start := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return start }

	_, err := svc.Create(ctx, CreateUserInput{Login: "dan", Email: "dan@example.com", Password: "secret1", FirstName: "Dan", LastName: "Lungu"})
	require.NoError(t, err)
	creds := CredentialsInput{Login: "dan", Email: "dan@example.com"}
	require.NoError(t, svc.ForgotPassword(ctx, creds))

	user, err := svc.UserRepo.FindByCredentials("dan", "")
	require.NoError(t, err)

	svc.Now = func() time.Time { return start.Add(accountOTPValidity + time.Minute) }
	err = svc.ResetPassword(ctx, ResetPasswordInput{CredentialsInput: creds, OTPCode: user.OTPCode, NewPassword: "newsecret"})
	assert.Equal(t, errOTPInvalid, err)

	svc.Now = func() time.Time { return start.Add(time.Hour) }
	require.NoError(t, svc.ResetPassword(ctx, ResetPasswordInput{CredentialsInput: creds, OTPCode: user.OTPCode, NewPassword: "newsecret"}))

	user, err = svc.UserRepo.FindByID(user.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("newsecret")))
	assert.Empty(t, user.OTPCode)
}

func TestGenerateMailsCredentialsPDF(t *testing.T) {
	svc, mailer := newUserService(t)

	accounts, err := svc.Generate(context.Background(), GenerateUsersInput{Count: 3, BaseLogin: "Grupa A", BaseEmail: "grupa"})
	require.NoError(t, err)
	require.Len(t, accounts, 3)

	seen := map[string]bool{}
	for _, acc := range accounts {
		assert.False(t, seen[acc.Login], "duplicate login %s", acc.Login)
		seen[acc.Login] = true
		assert.Len(t, acc.Password, util.TempPasswordSize)
	}

	msg := mailer.Last()
	require.NotNil(t, msg)
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, util.MimePDF, msg.Attachments[0].ContentType)
	assert.Contains(t, msg.To, "boss@example.com")
}
