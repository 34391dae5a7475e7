package db

import (
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"catalog/internal/models"
)

const (
	// DefaultAdminEmail — учётка, создаваемая при первом запуске.
	DefaultAdminEmail    = "admin@leon.com"
	defaultAdminPassword = "admin123"
)

// Seed заполняет пустые таблицы стартовыми данными. Проверка на пустоту и
// вставка идут в одной транзакции, поэтому повторный (в т.ч. конкурентный)
// запуск ничего не дублирует.
func Seed(db *gorm.DB) error {
	if err := seedAdmin(db); err != nil {
		return errors.Wrap(err, "seed admin")
	}
	if err := seedProducts(db); err != nil {
		return errors.Wrap(err, "seed products")
	}
	return nil
}

func seedAdmin(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.AdminUser{}).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		hash, err := models.HashPassword(defaultAdminPassword)
		if err != nil {
			return err
		}
		admin := models.AdminUser{
			Email:        DefaultAdminEmail,
			PasswordHash: hash,
			CreatedAt:    time.Now().UTC(),
		}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}
		// Пароль печатаем один раз и осознанно: о дефолтной учётке надо знать,
		// а не прятать её.
		log.WithField("email", DefaultAdminEmail).
			Warnf("default admin created, password %q — change it", defaultAdminPassword)
		return nil
	})
}

func seedProducts(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Product{}).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		sample := []models.Product{
			{Name: "Anillo Clásico 18K", Description: "Anillo en oro 18 kilates, diseño clásico pulido.", Price: 450000, Weight: 3.5, Category: "anillo", IsActive: true},
			{Name: "Cadena Venezolana 14K", Description: "Cadena de eslabones tipo venezolana, sólida.", Price: 1250000, Weight: 9.8, Category: "cadena", IsActive: true},
			{Name: "Arracadas Diseño Sutil 18K", Description: "Arracadas medianas con acabado satinado.", Price: 680000, Weight: 4.2, Category: "arracadas", IsActive: true},
		}
		// метки по возрастанию, чтобы порядок created-DESC был детерминирован
		base := time.Now().UTC()
		for i := range sample {
			sample[i].CreatedAt = base.Add(time.Duration(i) * time.Millisecond)
		}
		if err := tx.Create(&sample).Error; err != nil {
			return err
		}
		log.WithField("count", len(sample)).Info("sample products added")
		return nil
	})
}
