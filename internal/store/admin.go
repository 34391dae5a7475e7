package store

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"catalog/internal/models"
)

// ErrBadCredentials — единый ответ и на неизвестный email, и на неверный
// пароль, чтобы по ошибке нельзя было перебирать учётки.
var ErrBadCredentials = errors.New("invalid email or password")

type AdminDirectory struct {
	db *gorm.DB
}

func NewAdminDirectory(db *gorm.DB) *AdminDirectory {
	return &AdminDirectory{db: db}
}

// FindByEmail ищет учётку без учёта регистра. Отсутствие — (nil, nil).
func (d *AdminDirectory) FindByEmail(email string) (*models.AdminUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u models.AdminUser
	if err := d.db.First(&u, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find admin")
	}
	return &u, nil
}

// Authenticate сверяет пароль через bcrypt (сравнение устойчиво к таймингу).
func (d *AdminDirectory) Authenticate(email, password string) (*models.AdminUser, error) {
	u, err := d.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if u == nil || !models.CheckPassword(u.PasswordHash, password) {
		return nil, ErrBadCredentials
	}
	return u, nil
}
