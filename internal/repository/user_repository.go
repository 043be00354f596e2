package repository

import (
	"learning_center_backend/internal/model"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// UserFilter narrows the user list. Login and Email are substring matches.
type UserFilter struct {
	Login   string
	Email   string
	Role    string
	GroupID uint
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Omit("Groups.*").Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.Preload("Groups").First(&user, id).Error
	return &user, err
}

// FindProfile loads a user with groups and the exam history.
func (r *UserRepository) FindProfile(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.Preload("Groups").Preload("ExamAttempts").First(&user, id).Error
	return &user, err
}

// FindByCredentials looks a user up by login, email, or both. When both are
// given they must belong to the same account.
func (r *UserRepository) FindByCredentials(login, email string) (*model.User, error) {
	var user model.User
	query := r.DB.Preload("Groups")
	if login != "" {
		query = query.Where("login = ?", login)
	}
	if email != "" {
		query = query.Where("email = ?", strings.ToLower(email))
	}
	err := query.First(&user).Error
	return &user, err
}

// FindProfileByCredentials is FindByCredentials plus the exam history.
func (r *UserRepository) FindProfileByCredentials(login, email string) (*model.User, error) {
	var user model.User
	query := r.DB.Preload("Groups").Preload("ExamAttempts")
	if login != "" {
		query = query.Where("login = ?", login)
	}
	if email != "" {
		query = query.Where("email = ?", strings.ToLower(email))
	}
	err := query.First(&user).Error
	return &user, err
}

// Taken reports whether login or email is used by a user other than excludeID.
func (r *UserRepository) Taken(login, email string, excludeID uint) (bool, error) {
	var count int64
	query := r.DB.Model(&model.User{}).Where("(login = ? OR email = ?)", login, strings.ToLower(email))
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) LoginExists(login string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.User{}).Where("login = ?", login).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.User{}).Where("email = ?", strings.ToLower(email)).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) List(filter UserFilter, offset, limit int) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	query := r.DB.Model(&model.User{})
	if filter.Login != "" {
		query = query.Where(likeClause(r.DB, "login"), containsPattern(filter.Login))
	}
	if filter.Email != "" {
		query = query.Where(likeClause(r.DB, "email"), containsPattern(filter.Email))
	}
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.GroupID > 0 {
		query = query.Where("id IN (?)",
			r.DB.Table("group_users").Select("user_id").Where("group_id = ?", filter.GroupID))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Groups").Preload("ExamAttempts").
		Order("created_at desc").
		Scopes(paginate(offset, limit)).
		Find(&users).Error
	return users, total, err
}

func (r *UserRepository) ListAll() ([]model.User, error) {
	var users []model.User
	err := r.DB.Preload("Groups").Preload("ExamAttempts").Order("created_at desc").Find(&users).Error
	return users, err
}

func (r *UserRepository) FindByIDs(ids []uint) ([]model.User, error) {
	return findByIDs[model.User](r.DB, ids)
}

// Update writes the user's own columns. Group membership is changed through
// ReplaceGroups.
func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Omit(clause.Associations).Save(user).Error
}

func (r *UserRepository) ReplaceGroups(user *model.User, groups []model.Group) error {
	return replaceAssociation(r.DB, user, "Groups", groups, len(groups))
}

// SetActive flips is_active for every id and returns the number of rows hit.
func (r *UserRepository) SetActive(ids []uint, active bool) (int64, error) {
	res := r.DB.Model(&model.User{}).Where("id IN ?", ids).Update("is_active", active)
	return res.RowsAffected, res.Error
}

// Delete removes the user and its group memberships. The exam-side attempt
// copies are kept.
func (r *UserRepository) Delete(user *model.User) error {
	if err := r.DB.Model(user).Association("Groups").Clear(); err != nil {
		return err
	}
	if err := r.DB.Where("user_id = ?", user.ID).Delete(&model.UserExamAttempt{}).Error; err != nil {
		return err
	}
	return r.DB.Unscoped().Delete(user).Error
}

func (r *UserRepository) AddExamAttempt(attempt *model.UserExamAttempt) error {
	return r.DB.Create(attempt).Error
}
