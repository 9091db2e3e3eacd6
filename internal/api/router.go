package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"chatroom-service/internal/handlers"
	"chatroom-service/internal/middleware"
	"chatroom-service/internal/observability"
	"chatroom-service/internal/service"
	"chatroom-service/internal/telemetry"
)

// Deps are the collaborators the HTTP surface is built from.
type Deps struct {
	Accounts  service.AccountService
	Chatrooms service.ChatroomService
	Messages  service.MessageService
	Audit     *telemetry.AuditEmitter
	Health    map[string]handlers.HealthCheck
	Logger    zerolog.Logger
	StaticDir string
	Debug     bool
}

// NewRouter assembles the middleware chain and every route.
func NewRouter(deps Deps) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(deps.Logger),
		middleware.Recovery(),
		otelgin.Middleware("chatroom-service"),
		observability.HTTPMetricsMiddleware(),
	)

	accounts := handlers.NewAccountHandler(deps.Accounts, deps.Audit)
	chatrooms := handlers.NewChatroomHandler(deps.Chatrooms, deps.Audit)
	messages := handlers.NewMessageHandler(deps.Messages, deps.Audit)
	health := handlers.NewHealthHandler(deps.Health)

	router.GET("/messages", messages.ListMessages)
	router.POST("/messages", messages.PostMessage)

	router.POST("/register", accounts.Register)
	router.POST("/login", accounts.Login)
	router.POST("/logout", accounts.Logout)
	router.GET("/avatar", accounts.GetAvatar)
	router.POST("/avatar", accounts.SetAvatar)

	router.GET("/chatrooms", chatrooms.ListChatrooms)
	router.POST("/chatrooms", chatrooms.CreateChatroom)
	router.POST("/add_user", chatrooms.AddUser)
	router.POST("/remove_user", chatrooms.RemoveUser)
	router.GET("/members", chatrooms.ListMembers)

	router.GET("/healthz", health.Health)
	router.GET("/metrics", observability.MetricsHandler())

	handlers.RegisterDebugRoutes(router, deps.Audit, deps.Debug)

	router.NoMethod(func(c *gin.Context) {
		c.Header("Content-Type", "application/json")
		c.AbortWithStatus(http.StatusMethodNotAllowed)
	})
	router.NoRoute(staticOrNotFound(deps.StaticDir))

	return router
}

// staticOrNotFound serves the single-page UI for unmatched GETs when dir is set.
func staticOrNotFound(dir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if dir != "" && (c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead) {
			if file, ok := resolveStatic(dir, c.Request.URL.Path); ok {
				c.File(file)
				return
			}
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	}
}

func resolveStatic(dir, urlPath string) (string, bool) {
	clean := filepath.Clean("/" + strings.TrimPrefix(urlPath, "/"))
	candidate := filepath.Join(dir, filepath.FromSlash(clean))
	if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
		return candidate, true
	}
	index := filepath.Join(dir, "index.html")
	if info, err := os.Stat(index); err == nil && !info.IsDir() {
		return index, true
	}
	return "", false
}
