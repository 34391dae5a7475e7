package store

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"catalog/internal/models"
)

// ErrNotFound возвращается для операций над несуществующим товаром.
var ErrNotFound = errors.New("product not found")

// FileRemover — то, что умеет убрать файл картинки (assets.Manager).
type FileRemover interface {
	Delete(name string) error
}

// ProductInput — сырые поля формы товара. Числа и флаг активности приходят
// строками и приводятся правилами из forms.go; Image — уже сохранённое
// менеджером ассетов имя файла, не пользовательский ввод.
type ProductInput struct {
	Name        string
	Description string
	Category    string
	Price       string
	Weight      string
	Active      string
	Image       string
}

type ProductStore struct {
	db    *gorm.DB
	files FileRemover
}

func NewProductStore(db *gorm.DB, files FileRemover) *ProductStore {
	return &ProductStore{db: db, files: files}
}

// ListActive возвращает видимые товары, новые первыми.
func (s *ProductStore) ListActive() ([]models.Product, error) {
	var items []models.Product
	if err := s.db.Where("is_active = ?", true).Order("created_at desc").Find(&items).Error; err != nil {
		return nil, errors.Wrap(err, "list active products")
	}
	return items, nil
}

// ListAll — то же без фильтра по активности (админский список).
func (s *ProductStore) ListAll() ([]models.Product, error) {
	var items []models.Product
	if err := s.db.Order("created_at desc").Find(&items).Error; err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	return items, nil
}

func (s *ProductStore) Get(id uint) (models.Product, error) {
	var p models.Product
	if err := s.db.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, ErrNotFound
		}
		return models.Product{}, errors.Wrap(err, "get product")
	}
	return p, nil
}

func (s *ProductStore) Create(in ProductInput) (uint, error) {
	p := models.Product{
		Name:          strings.TrimSpace(in.Name),
		Description:   strings.TrimSpace(in.Description),
		Category:      strings.TrimSpace(in.Category),
		Price:         ParseDecimal(in.Price),
		Weight:        ParseDecimal(in.Weight),
		ImageFilename: in.Image,
		IsActive:      ParseActive(in.Active),
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.db.Create(&p).Error; err != nil {
		return 0, errors.Wrap(err, "create product")
	}
	return p.ID, nil
}

// Update перезаписывает поля товара по тем же правилам, что и Create.
// newImage — имя уже сохранённого нового файла; пустая строка означает
// «картинку не трогать». Старый файл убирается только после успешной
// записи строки, ошибка удаления не роняет операцию.
func (s *ProductStore) Update(id uint, in ProductInput, newImage string) error {
	p, err := s.Get(id)
	if err != nil {
		return err
	}
	values := map[string]any{
		"name":        strings.TrimSpace(in.Name),
		"description": strings.TrimSpace(in.Description),
		"category":    strings.TrimSpace(in.Category),
		"price":       ParseDecimal(in.Price),
		"weight":      ParseDecimal(in.Weight),
		"is_active":   ParseActive(in.Active),
	}
	if newImage != "" {
		values["image_filename"] = newImage
	}
	if err := s.db.Model(&models.Product{}).Where("id = ?", id).Updates(values).Error; err != nil {
		return errors.Wrap(err, "update product")
	}
	if newImage != "" && p.ImageFilename != "" {
		s.removeFile(p.ImageFilename, "remove replaced image")
	}
	return nil
}

// Delete убирает строку и затем, best-effort, её файл картинки:
// отсутствующий или неудаляемый файл не должен мешать удалению товара.
func (s *ProductStore) Delete(id uint) error {
	p, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(&models.Product{}, "id = ?", id).Error; err != nil {
		return errors.Wrap(err, "delete product")
	}
	if p.ImageFilename != "" {
		s.removeFile(p.ImageFilename, "remove image of deleted product")
	}
	return nil
}

func (s *ProductStore) removeFile(name, what string) {
	if err := s.files.Delete(name); err != nil {
		log.WithError(err).WithField("file", name).Warn("could not " + what)
	}
}
