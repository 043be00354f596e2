package service

import (
	"context"
	"learning_center_backend/internal/config"
	"learning_center_backend/internal/model"
	"learning_center_backend/internal/repository"
	"learning_center_backend/internal/util"
	"learning_center_backend/pkg/hashid"
	"learning_center_backend/pkg/logger"
	"learning_center_backend/pkg/monitoring"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	loginThrottleWindow = 15 * time.Minute
	loginThrottleLimit  = 9
	otpLoginValidity    = 10 * time.Minute
)

var throttledStatuses = []string{model.StatsFailed, model.StatsOTPLoginFailed}

type AuthService struct {
	UserRepo  *repository.UserRepository
	StatsRepo *repository.StatsLogRepository
	Mailer    Mailer
	Codec     *hashid.Codec
	Cfg       *config.Config
	Now       func() time.Time
}

func NewAuthService(userRepo *repository.UserRepository, statsRepo *repository.StatsLogRepository, mailer Mailer, codec *hashid.Codec, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo:  userRepo,
		StatsRepo: statsRepo,
		Mailer:    mailer,
		Codec:     codec,
		Cfg:       cfg,
		Now:       time.Now,
	}
}

// Credentials identify an account by login, email, or both.
type Credentials struct {
	Login string
	Email string
}

// ThrottleKey is the value failed attempts are counted under.
func (c Credentials) ThrottleKey() string {
	key := c.Login
	if key == "" {
		key = c.Email
	}
	return strings.ToLower(strings.TrimSpace(key))
}

func (c Credentials) trimmed() Credentials {
	return Credentials{Login: strings.TrimSpace(c.Login), Email: strings.TrimSpace(c.Email)}
}

type LoginResult struct {
	Token string
	User  *model.User
}

func (s *AuthService) record(info util.ClientInfo, status string, cred Credentials, login string) {
	entry := &model.StatsLog{
		IP:             info.IP,
		Method:         info.Method,
		URL:            info.URL,
		UserAgent:      info.UserAgent,
		OS:             info.OS,
		Browser:        info.Browser,
		DeviceType:     info.DeviceType,
		Login:          login,
		Status:         status,
		AttemptedLogin: cred.ThrottleKey(),
		CreatedAt:      s.Now(),
	}
	// A lost stats row must not fail the login itself.
	if err := s.StatsRepo.Create(entry); err != nil {
		logger.Log.Warn("stats log write failed", zap.Error(err))
	}
	monitoring.LoginAttempts.WithLabelValues(status).Inc()
}

func (s *AuthService) checkThrottle(cred Credentials) error {
	failed, err := s.StatsRepo.CountSince(cred.ThrottleKey(), throttledStatuses, s.Now().Add(-loginThrottleWindow))
	if err != nil {
		return err
	}
	if failed >= loginThrottleLimit {
		return util.ErrTooManyLogins
	}
	return nil
}

// IssueToken signs a session token for user.
func (s *AuthService) IssueToken(user *model.User) (string, error) {
	claims := util.NewClaims(user, s.Codec)
	return util.GenerateJWT(claims, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

func (s *AuthService) Login(info util.ClientInfo, cred Credentials, password string) (*LoginResult, error) {
	cred = cred.trimmed()
	if cred.Login == "" && cred.Email == "" {
		return nil, util.NewBadRequest("Either email or login must be provided")
	}
	if err := s.checkThrottle(cred); err != nil {
		return nil, err
	}

	user, err := s.UserRepo.FindByCredentials(cred.Login, cred.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		s.record(info, model.StatsFailed, cred, "")
		return nil, util.ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}
	s.record(info, model.StatsSuccess, cred, user.Login)
	return &LoginResult{Token: token, User: user}, nil
}

// RequestOTP mails a 10 minute login code to the account.
func (s *AuthService) RequestOTP(ctx context.Context, info util.ClientInfo, cred Credentials) error {
	cred = cred.trimmed()
	if cred.Login == "" && cred.Email == "" {
		return util.NewBadRequest("Either email or login must be provided")
	}

	user, err := s.UserRepo.FindByCredentials(cred.Login, cred.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.record(info, model.StatsOTPFailed, cred, cred.Login)
			return util.ErrUserNotFound
		}
		return err
	}
	s.record(info, model.StatsOTPRequested, cred, user.Login)

	code, err := util.GenerateOTP()
	if err != nil {
		return err
	}
	expires := s.Now().Add(otpLoginValidity)
	user.OTPCode = code
	user.OTPExpiresAt = &expires
	user.IsOTPLogin = true
	if err := s.UserRepo.Update(user); err != nil {
		return err
	}

	return sendTemplate(ctx, s.Mailer, user.Email, "Your OTP code for Phonetics", "otp_login", mailData{Code: code})
}

// LoginOTP exchanges a mailed code for a session. The code is single use.
func (s *AuthService) LoginOTP(info util.ClientInfo, cred Credentials, code string) (*LoginResult, error) {
	cred = cred.trimmed()
	if cred.Login == "" && cred.Email == "" {
		return nil, util.NewBadRequest("Either email or login must be provided")
	}
	if err := s.checkThrottle(cred); err != nil {
		return nil, err
	}

	user, err := s.UserRepo.FindByCredentials(cred.Login, cred.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err != nil || !user.IsOTPLogin || !user.OTPValid(code, s.Now()) {
		s.record(info, model.StatsOTPLoginFailed, cred, cred.Login)
		return nil, util.ErrInvalidOTP
	}
	s.record(info, model.StatsOTPLoginSuccess, cred, user.Login)

	user.IsOTPLogin = false
	user.OTPCode = ""
	user.OTPExpiresAt = nil
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: user}, nil
}
