package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"catalog/internal/assets"
	"catalog/internal/auth"
	"catalog/internal/config"
	"catalog/internal/store"
)

type Server struct {
	db       *gorm.DB
	cfg      config.Config
	products *store.ProductStore
	admins   *store.AdminDirectory
	assets   *assets.Manager

	// imageURL превращает имя файла в публичный URL; подменяется, если
	// статику раздаёт кто-то другой (CDN и т.п.).
	imageURL func(filename string) string
}

func New(db *gorm.DB, cfg config.Config) *Server {
	mgr := assets.NewManager(cfg.UploadDir)
	return &Server{
		db:       db,
		cfg:      cfg,
		products: store.NewProductStore(db, mgr),
		admins:   store.NewAdminDirectory(db),
		assets:   mgr,
		imageURL: func(filename string) string { return "/uploads/" + filename },
	}
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logMiddleware())

	cookieStore := cookie.NewStore([]byte(s.cfg.SessionSecret))
	cookieStore.Options(sessions.Options{HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions("catalog_session", cookieStore))
	r.Use(maxBodySize(s.cfg.MaxUploadBytes))

	// раздача статики
	r.Static("/uploads", s.assets.Dir())

	r.GET("/health", s.health)
	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusSeeOther, "/catalog") })
	r.GET("/catalog", s.catalog)
	r.GET("/api/products", s.productsFeed)

	r.GET("/admin/login", s.loginPrompt)
	r.POST("/admin/login", s.login)
	r.GET("/admin/logout", s.logout)

	admin := r.Group("/admin", auth.LoadPrincipal(), auth.RequireAuth("/admin/login"))
	admin.GET("/products", s.adminList)
	admin.POST("/products", s.createProduct)
	admin.POST("/products/:id", s.updateProduct)
	admin.POST("/products/:id/delete", s.deleteProduct)

	return r
}

// maxBodySize отсекает запросы больше лимита до разбора multipart —
// предусловие менеджера ассетов.
func maxBodySize(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}

func logMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(log.Fields{
			"status":  c.Writer.Status(),
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"latency": time.Since(start),
		}).Info("request")
	}
}

func (s *Server) health(c *gin.Context) {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "db": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
