package router

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/KAKADIVA/testePFI/internal/config"
	"github.com/KAKADIVA/testePFI/internal/handler"
	"github.com/KAKADIVA/testePFI/internal/middleware"
	"github.com/KAKADIVA/testePFI/internal/session"
	"github.com/KAKADIVA/testePFI/internal/upload"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine, static mounts and API routes.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	sessions := session.New(db, time.Duration(cfg.Session.ExpireHours)*time.Hour)
	intake := upload.New(cfg.Upload.Dir, cfg.Upload.MaxBytes)

	// frontend estático e arquivos enviados
	if cfg.Server.PublicDir != "" {
		r.Static("/static", cfg.Server.PublicDir)
		r.GET("/", func(c *gin.Context) {
			c.File(filepath.Join(cfg.Server.PublicDir, "index.html"))
		})
	}
	r.StaticFS("/uploads", http.Dir(cfg.Upload.Dir))

	// ====== API ======
	api := r.Group("/usuarios")

	authHandler := handler.NewAuthHandler(db, sessions, cfg.Session.CookieName, cfg.Security.BcryptCost)
	questionHandler := handler.NewQuestionHandler(db, intake)
	answerHandler := handler.NewAnswerHandler(db)

	// rotas sem autenticação (login, cadastro e leituras abertas)
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.GET("/sessao", authHandler.Sessao)
	api.POST("/logout", authHandler.Logout)
	api.GET("/pergunta", questionHandler.List)
	api.GET("/resposta/:perguntaId", answerHandler.List)
	api.GET("/profissional", handler.ListProfessionals(db))

	// rotas que exigem sessão válida
	protected := api.Group("")
	protected.Use(middleware.Auth(sessions, cfg.Session.CookieName))

	protected.POST("/pergunta", questionHandler.Create)
	protected.DELETE("/pergunta/:id", questionHandler.Delete)
	protected.POST("/resposta", answerHandler.Create)
	protected.DELETE("/resposta/:id", answerHandler.Delete)
	protected.POST("/mudar-senha", authHandler.ChangePassword)

	return r
}
