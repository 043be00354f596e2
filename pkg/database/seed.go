package database

import (
	"learning_center_backend/internal/model"
	"learning_center_backend/pkg/logger"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// SeedData is the shape of configs/seed.yaml.
type SeedData struct {
	Admin struct {
		Login     string `yaml:"login"`
		Email     string `yaml:"email"`
		Password  string `yaml:"password"`
		FirstName string `yaml:"first_name"`
		LastName  string `yaml:"last_name"`
	} `yaml:"admin"`
	AboutUs struct {
		Title   model.Localized `yaml:"title"`
		Context model.Localized `yaml:"context"`
	} `yaml:"about_us"`
}

func LoadSeedFile(path string) (*SeedData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read seed file %s", path)
	}
	var data SeedData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, errors.Wrapf(err, "parse seed file %s", path)
	}
	return &data, nil
}

// Seed creates the initial admin account and the content singletons when
// they are missing. A missing seed file is not an error.
func Seed(db *gorm.DB, path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Log.Info("Seed file not found, skipping", zap.String("path", path))
		return nil
	}

	data, err := LoadSeedFile(path)
	if err != nil {
		return err
	}
	return SeedWith(db, data)
}

func SeedWith(db *gorm.DB, data *SeedData) error {
	if data.Admin.Login != "" {
		var count int64
		if err := db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			hash, err := bcrypt.GenerateFromPassword([]byte(data.Admin.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			admin := &model.User{
				Login:      data.Admin.Login,
				Email:      data.Admin.Email,
				Password:   string(hash),
				FirstName:  data.Admin.FirstName,
				LastName:   data.Admin.LastName,
				Role:       model.RoleAdmin,
				IsVerified: true,
				IsActive:   true,
			}
			if err := db.Create(admin).Error; err != nil {
				return errors.Wrap(err, "seed admin")
			}
			logger.Log.Info("Seeded admin account", zap.String("login", admin.Login))
		}
	}

	var aboutCount int64
	db.Model(&model.AboutUs{}).Count(&aboutCount)
	if aboutCount == 0 && data.AboutUs.Title.Ro != "" {
		about := &model.AboutUs{Title: data.AboutUs.Title, Context: data.AboutUs.Context}
		if err := db.Create(about).Error; err != nil {
			return errors.Wrap(err, "seed about us")
		}
	}

	return nil
}
