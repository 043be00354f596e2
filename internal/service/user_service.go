package service

import (
	"context"
	"learning_center_backend/internal/config"
	"learning_center_backend/internal/dto"
	"learning_center_backend/internal/model"
	"learning_center_backend/internal/repository"
	"learning_center_backend/internal/util"
	"learning_center_backend/pkg/hashid"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accountOTPValidity  = 3 * time.Hour
	generatedSuffixSize = 4
	// generatedAttemptLimit bounds the attempts at finding a free random suffix.
	generatedAttemptLimit = 50
)

var errOTPInvalid = util.NewBadRequest("Invalid or expired OTP code")

// UserService handles accounts: admin management, self service and the
// verification flows.
type UserService struct {
	UserRepo  *repository.UserRepository
	GroupRepo *repository.GroupRepository
	Mailer    Mailer
	Reports   *ReportService
	Codec     *hashid.Codec
	Mail      *config.MailConfig
	Now       func() time.Time
}

func NewUserService(userRepo *repository.UserRepository, groupRepo *repository.GroupRepository, mailer Mailer, reports *ReportService, codec *hashid.Codec, mailCfg *config.MailConfig) *UserService {
	return &UserService{
		UserRepo:  userRepo,
		GroupRepo: groupRepo,
		Mailer:    mailer,
		Reports:   reports,
		Codec:     codec,
		Mail:      mailCfg,
		Now:       time.Now,
	}
}

type CreateUserInput struct {
	Login     string   `json:"login" binding:"required,min=3,max=100"`
	Email     string   `json:"email" binding:"required,email"`
	Password  string   `json:"password" binding:"required,min=6"`
	FirstName string   `json:"firstName" binding:"required,min=2"`
	LastName  string   `json:"lastName" binding:"required,min=2"`
	Role      string   `json:"role" binding:"omitempty,role"`
	Groups    []string `json:"groups"`
}

type CredentialsInput struct {
	Login string `json:"login" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

type VerifyInput struct {
	CredentialsInput
	OTPCode string `json:"otpCode" binding:"required,len=6"`
}

type ResetPasswordInput struct {
	CredentialsInput
	OTPCode     string `json:"otpCode" binding:"required,len=6"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

type GenerateUsersInput struct {
	Count     int      `json:"count" binding:"required,min=1,max=100"`
	BaseLogin string   `json:"baseLogin" binding:"required,min=2"`
	BaseEmail string   `json:"baseEmail" binding:"required,min=2"`
	Groups    []string `json:"groups"`
}

// ProfileInput is the self-service update. Empty fields are left unchanged.
type ProfileInput struct {
	Login     string `json:"login" binding:"omitempty,min=3,max=100"`
	Email     string `json:"email" binding:"omitempty,email"`
	FirstName string `json:"firstName" binding:"omitempty,min=2"`
	LastName  string `json:"lastName" binding:"omitempty,min=2"`
}

// AdminUserInput adds role and group membership to ProfileInput. A nil
// Groups leaves the membership untouched; invalid group tokens are dropped.
type AdminUserInput struct {
	ProfileInput
	Role   string    `json:"role" binding:"omitempty,role"`
	Groups *[]string `json:"groups"`
}

type UserListQuery struct {
	Login string
	Email string
	Role  string
	Group string
}

func (s *UserService) hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "hash password")
	}
	return string(hashed), nil
}

func (s *UserService) issueOTP(user *model.User) error {
	code, err := util.GenerateOTP()
	if err != nil {
		return err
	}
	expires := s.Now().Add(accountOTPValidity)
	user.OTPCode = code
	user.OTPExpiresAt = &expires
	return nil
}

func clearOTP(user *model.User) {
	user.OTPCode = ""
	user.OTPExpiresAt = nil
	user.IsOTPLogin = false
}

func notFoundAsUser(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrUserNotFound
	}
	return err
}

func (s *UserService) groupsFor(tokens []string) ([]model.Group, error) {
	ids := s.Codec.DecodeUintsLenient(tokens)
	if len(ids) == 0 {
		return nil, nil
	}
	return s.GroupRepo.FindByIDs(ids)
}

func (s *UserService) List(q UserListQuery, p util.Pagination) ([]dto.UserView, int64, error) {
	filter := repository.UserFilter{Login: q.Login, Email: q.Email, Role: q.Role}
	if q.Group != "" {
		id, err := s.Codec.DecodeUint(q.Group)
		if err != nil {
			return nil, 0, err
		}
		filter.GroupID = id
	}
	users, total, err := s.UserRepo.List(filter, p.Offset(), p.Limit)
	if err != nil {
		return nil, 0, err
	}
	return dto.ToUserViews(users, s.Codec), total, nil
}

func (s *UserService) Get(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindProfile(id)
	return user, notFoundAsUser(err)
}

// Create registers an unverified account and mails the verification code.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*model.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Login = strings.TrimSpace(in.Login)

	taken, err := s.UserRepo.Taken(in.Login, in.Email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, util.NewConflict("Login or email already in use")
	}

	hashed, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}
	role := model.RoleUser
	if in.Role != "" {
		role = model.UserRole(in.Role)
	}
	groups, err := s.groupsFor(in.Groups)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Login:     in.Login,
		Email:     in.Email,
		Password:  hashed,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Role:      role,
		IsActive:  true,
		Groups:    groups,
	}
	if err := s.issueOTP(user); err != nil {
		return nil, err
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}

	err = sendTemplate(ctx, s.Mailer, user.Email, "Welcome to Phonetics Learning Center! Confirm Your Account", "welcome", mailData{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Login:     user.Login,
		Email:     user.Email,
		Code:      user.OTPCode,
	})
	return user, err
}

func (s *UserService) findForFlow(in CredentialsInput) (*model.User, error) {
	user, err := s.UserRepo.FindByCredentials(strings.TrimSpace(in.Login), strings.TrimSpace(in.Email))
	return user, notFoundAsUser(err)
}

func (s *UserService) Verify(ctx context.Context, in VerifyInput) error {
	user, err := s.findForFlow(in.CredentialsInput)
	if err != nil {
		return err
	}
	if user.IsVerified {
		return util.NewBadRequest("User already verified")
	}
	if !user.OTPValid(in.OTPCode, s.Now()) {
		return errOTPInvalid
	}

	user.IsVerified = true
	user.IsTempAccount = false
	clearOTP(user)
	if err := s.UserRepo.Update(user); err != nil {
		return err
	}
	return sendTemplate(ctx, s.Mailer, user.Email, "Your Phonetics Learning Account is Verified!", "verified", mailData{
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
}

func (s *UserService) ResendOTP(ctx context.Context, in CredentialsInput) error {
	user, err := s.findForFlow(in)
	if err != nil {
		return err
	}
	if user.IsVerified {
		return util.NewBadRequest("User already verified")
	}
	if err := s.issueOTP(user); err != nil {
		return err
	}
	if err := s.UserRepo.Update(user); err != nil {
		return err
	}
	return sendTemplate(ctx, s.Mailer, user.Email, "Your OTP Code (Phonetics)", "resend_otp", mailData{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Code:      user.OTPCode,
	})
}

func (s *UserService) ForgotPassword(ctx context.Context, in CredentialsInput) error {
	user, err := s.findForFlow(in)
	if err != nil {
		return err
	}
	if err := s.issueOTP(user); err != nil {
		return err
	}
	if err := s.UserRepo.Update(user); err != nil {
		return err
	}
	return sendTemplate(ctx, s.Mailer, user.Email, "Password Reset OTP Code", "forgot_password", mailData{
		FirstName: user.FirstName,
		Code:      user.OTPCode,
	})
}

func (s *UserService) ResetPassword(ctx context.Context, in ResetPasswordInput) error {
	user, err := s.findForFlow(in.CredentialsInput)
	if err != nil {
		return err
	}
	if !user.OTPValid(in.OTPCode, s.Now()) {
		return errOTPInvalid
	}
	return s.setPassword(ctx, user, in.NewPassword)
}

// ChangePassword sets a new password for the session user.
func (s *UserService) ChangePassword(ctx context.Context, userID uint, newPassword string) error {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return notFoundAsUser(err)
	}
	return s.setPassword(ctx, user, newPassword)
}

func (s *UserService) setPassword(ctx context.Context, user *model.User, password string) error {
	hashed, err := s.hash(password)
	if err != nil {
		return err
	}
	user.Password = hashed
	clearOTP(user)
	if err := s.UserRepo.Update(user); err != nil {
		return err
	}
	return sendTemplate(ctx, s.Mailer, user.Email, "Your Password Was Successfully Updated", "password_updated", mailData{
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
}

// Generate creates count temporary client accounts and mails their
// credentials as a PDF to the sender address and the super admin.
func (s *UserService) Generate(ctx context.Context, in GenerateUsersInput) ([]GeneratedAccount, error) {
	groups, err := s.groupsFor(in.Groups)
	if err != nil {
		return nil, err
	}

	baseLogin := util.Slugify(in.BaseLogin)
	baseEmail := strings.ToLower(strings.SplitN(strings.TrimSpace(in.BaseEmail), "@", 2)[0])
	seen := make(map[string]bool, in.Count*2)
	accounts := make([]GeneratedAccount, 0, in.Count)

	for i := 0; i < in.Count; i++ {
		login, email, err := s.freeGeneratedPair(baseLogin, baseEmail, seen)
		if err != nil {
			return nil, err
		}
		password, err := util.GeneratePassword()
		if err != nil {
			return nil, err
		}
		hashed, err := s.hash(password)
		if err != nil {
			return nil, err
		}

		user := &model.User{
			Login:         login,
			Email:         email,
			Password:      hashed,
			FirstName:     login,
			LastName:      "Temp",
			Role:          model.RoleClient,
			IsTempAccount: true,
			IsActive:      true,
			Groups:        groups,
		}
		if err := s.issueOTP(user); err != nil {
			return nil, err
		}
		if err := s.UserRepo.Create(user); err != nil {
			return nil, err
		}
		accounts = append(accounts, GeneratedAccount{
			Login:    login,
			Email:    email,
			Password: password,
			OTPCode:  user.OTPCode,
		})
	}

	pdf, err := s.Reports.GeneratedAccountsPDF(accounts)
	if err != nil {
		return nil, err
	}
	html, err := renderMail("generated_users", accounts)
	if err != nil {
		return nil, err
	}

	recipients := make([]string, 0, 2)
	for _, to := range []string{s.Mail.From, s.Mail.SuperAdmin} {
		if to != "" {
			recipients = append(recipients, to)
		}
	}
	if len(recipients) > 0 {
		err = deliver(ctx, s.Mailer, &MailMessage{
			To:      recipients,
			Subject: "Your temporary user accounts",
			HTML:    html,
			Attachments: []Attachment{{
				Filename:    "users.pdf",
				ContentType: util.MimePDF,
				Content:     pdf,
			}},
		})
	}
	return accounts, err
}

func (s *UserService) freeGeneratedPair(baseLogin, baseEmail string, seen map[string]bool) (string, string, error) {
	for i := 0; i < generatedAttemptLimit; i++ {
		suffix, err := util.RandomSuffix(generatedSuffixSize)
		if err != nil {
			return "", "", err
		}
		login := baseLogin + "-" + suffix
		email := baseEmail + "-" + suffix + "@" + s.Mail.GeneratedDomain
		if seen[login] || seen[email] {
			continue
		}
		taken, err := s.UserRepo.Taken(login, email, 0)
		if err != nil {
			return "", "", err
		}
		if taken {
			continue
		}
		seen[login] = true
		seen[email] = true
		return login, email, nil
	}
	return "", "", util.NewConflict("Could not find a free login for " + baseLogin)
}

// Profile looks a user up by login or email; with neither it returns the
// session user.
func (s *UserService) Profile(login, email string, sessionUserID uint) (*model.User, error) {
	login, email = strings.TrimSpace(login), strings.TrimSpace(email)
	if login == "" && email == "" {
		if sessionUserID == 0 {
			return nil, util.ErrNotAuthenticated
		}
		return s.Get(sessionUserID)
	}
	user, err := s.UserRepo.FindProfileByCredentials(login, email)
	return user, notFoundAsUser(err)
}

func (s *UserService) applyProfile(user *model.User, in ProfileInput) error {
	login := user.Login
	if in.Login != "" {
		login = strings.TrimSpace(in.Login)
	}
	email := user.Email
	if in.Email != "" {
		email = strings.ToLower(strings.TrimSpace(in.Email))
	}
	if login != user.Login || email != user.Email {
		taken, err := s.UserRepo.Taken(login, email, user.ID)
		if err != nil {
			return err
		}
		if taken {
			return util.NewConflict("Login or email already in use")
		}
	}
	user.Login = login
	user.Email = email
	if in.FirstName != "" {
		user.FirstName = in.FirstName
	}
	if in.LastName != "" {
		user.LastName = in.LastName
	}
	return nil
}

// UpdateProfile lets users edit themselves. Admins may edit anyone.
func (s *UserService) UpdateProfile(id, callerID uint, isAdmin bool, in ProfileInput) (*model.User, error) {
	if !isAdmin && id != callerID {
		return nil, util.ErrPermissionDenied
	}
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.applyProfile(user, in); err != nil {
		return nil, err
	}
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) AdminUpdate(id uint, in AdminUserInput) (*model.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.applyProfile(user, in.ProfileInput); err != nil {
		return nil, err
	}
	if in.Role != "" {
		user.Role = model.UserRole(in.Role)
	}
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	if in.Groups != nil {
		groups, err := s.groupsFor(*in.Groups)
		if err != nil {
			return nil, err
		}
		if err := s.UserRepo.ReplaceGroups(user, groups); err != nil {
			return nil, err
		}
		user.Groups = groups
	}
	return user, nil
}

// Delete removes an account. Only admins may delete somebody else.
func (s *UserService) Delete(id, callerID uint, isAdmin bool) error {
	if !isAdmin && id != callerID {
		return util.ErrPermissionDenied
	}
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		return notFoundAsUser(err)
	}
	return s.UserRepo.Delete(user)
}

func parseFlag(value string) (bool, error) {
	active, err := strconv.ParseBool(value)
	if err != nil {
		return false, util.NewBadRequest(`Value must be "true" or "false"`)
	}
	return active, nil
}

// SetActive flips is_active for every decodable token and returns the
// number of modified rows.
func (s *UserService) SetActive(tokens []string, value string) (int64, error) {
	active, err := parseFlag(value)
	if err != nil {
		return 0, err
	}
	ids := s.Codec.DecodeUintsLenient(tokens)
	if len(ids) == 0 {
		return 0, util.NewBadRequest("No valid user IDs provided")
	}
	return s.UserRepo.SetActive(ids, active)
}

func (s *UserService) Activate(id uint, value string) (*model.User, error) {
	active, err := parseFlag(value)
	if err != nil {
		return nil, err
	}
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	user.IsActive = active
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// All returns every user for the dictionary lookups.
func (s *UserService) All() ([]dto.UserView, error) {
	users, err := s.UserRepo.ListAll()
	if err != nil {
		return nil, err
	}
	return dto.ToUserViews(users, s.Codec), nil
}
