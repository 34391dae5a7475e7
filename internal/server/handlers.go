package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"catalog/internal/auth"
	"catalog/internal/store"
)

// feedItem — элемент машинного фида /api/products: товар плюс готовый URL
// картинки (null, если картинки нет).
type feedItem struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Weight      float64 `json:"weight"`
	Category    string  `json:"category"`
	ImageURL    *string `json:"image_url"`
}

func (s *Server) catalog(c *gin.Context) {
	items, err := s.products.ListActive()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": items})
}

func (s *Server) productsFeed(c *gin.Context) {
	items, err := s.products.ListActive()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	feed := make([]feedItem, 0, len(items))
	for _, p := range items {
		it := feedItem{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Weight:      p.Weight,
			Category:    p.Category,
		}
		if p.ImageFilename != "" {
			url := s.imageURL(p.ImageFilename)
			it.ImageURL = &url
		}
		feed = append(feed, it)
	}
	c.JSON(http.StatusOK, feed)
}

func (s *Server) loginPrompt(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": "login required"})
}

func (s *Server) login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")
	u, err := s.admins.Authenticate(email, password)
	if err != nil {
		if errors.Is(err, store.ErrBadCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := auth.Login(c, auth.Principal{ID: u.ID, Email: u.Email}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Redirect(http.StatusSeeOther, "/admin/products")
}

func (s *Server) logout(c *gin.Context) {
	if err := auth.Logout(c); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Redirect(http.StatusSeeOther, "/admin/login")
}

func (s *Server) adminList(c *gin.Context) {
	items, err := s.products.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": items})
}

func (s *Server) createProduct(c *gin.Context) {
	saved, err := s.saveUpload(c)
	if err != nil {
		c.JSON(uploadErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	in := productInput(c)
	in.Image = saved
	if _, err := s.products.Create(in); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Redirect(http.StatusSeeOther, "/admin/products")
}

func (s *Server) updateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	// существование проверяем до сохранения файла, чтобы апдейт
	// несуществующего id не оставлял осиротевшую картинку
	if _, err := s.products.Get(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	// новый файл сохраняем до записи строки, старый store уберёт после неё
	saved, err := s.saveUpload(c)
	if err != nil {
		c.JSON(uploadErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	if err := s.products.Update(id, productInput(c), saved); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Redirect(http.StatusSeeOther, "/admin/products")
}

func (s *Server) deleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := s.products.Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Redirect(http.StatusSeeOther, "/admin/products")
}

func productInput(c *gin.Context) store.ProductInput {
	return store.ProductInput{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
		Price:       c.PostForm("price"),
		Weight:      c.PostForm("weight"),
		Active:      c.PostForm("is_active"),
	}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return 0, false
	}
	return uint(id), true
}

// saveUpload сохраняет картинку из формы, если она есть.
// Файл не выбран или расширение не поддерживается — просто "".
// Ошибка разбора multipart (в т.ч. срез MaxBytesReader) — настоящая ошибка.
func (s *Server) saveUpload(c *gin.Context) (string, error) {
	file, err := c.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		// файл не выбран — не ошибка
		return "", nil
	case err != nil:
		return "", err
	}
	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	return s.assets.Save(file.Filename, f)
}

// uploadErrorStatus: превышение лимита тела запроса отдаём как 413,
// не доводя форму до store.
func uploadErrorStatus(err error) int {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}
