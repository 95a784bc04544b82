package handlers

import (
	"time"

	"github.com/Donsufia/LACIPD-APP/internal/logger"
	"github.com/Donsufia/LACIPD-APP/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Config carries the HTTP-layer knobs.
type Config struct {
	// PagesDir is the directory holding the static site pages.
	PagesDir string
	// SessionTTL bounds the session cookie lifetime; it should match
	// the session manager's TTL.
	SessionTTL time.Duration
}

// Handler wires the HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	cfg      Config
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, cfg Config) *Handler {
	if cfg.PagesDir == "" {
		cfg.PagesDir = "public"
	}
	return &Handler{services: services, log: log, cfg: cfg}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	h.registerPageRoutes(router)
	h.registerAuthRoutes(router)
	h.registerUserRoutes(router)
	h.registerRecoveryRoutes(router)

	return router
}

func (h *Handler) registerPageRoutes(r *gin.Engine) {
	r.GET("/", h.page("index.html"))
	r.GET("/about", h.page("about.html"))
	r.GET("/contact", h.page("contact.html"))
	r.GET("/admission", h.page("admission.html"))
	r.GET("/signup", h.page("signup.html"))
	r.GET("/sign-in", h.page("sign-in.html"))

	// Dashboard, only for signed-in users.
	r.GET("/LACIPD_TECH", h.requirePageAuth, h.page("LACIPD_TECH.html"))
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	r.POST("/signup", h.signUp)
	r.POST("/sign-in", h.signIn)
	r.GET("/logout", h.logout)
	r.GET("/get-username", h.requireAuth, h.getUsername)
}

func (h *Handler) registerUserRoutes(r *gin.Engine) {
	r.GET("/users", h.listUsernames)
	r.GET("/view-users", h.requirePageAuth, h.requireAdmin, h.viewUsers)
}

func (h *Handler) registerRecoveryRoutes(r *gin.Engine) {
	r.GET("/recover-password", h.page("recover-password.html"))
	r.POST("/recover-password", h.recoverPassword)
	r.GET("/recover-username", h.page("recover-username.html"))
	r.POST("/recover-username", h.recoverUsername)
}
