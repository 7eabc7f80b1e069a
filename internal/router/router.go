package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campusgrid/timetable-backend/internal/config"
	"github.com/campusgrid/timetable-backend/internal/handler"
	"github.com/campusgrid/timetable-backend/internal/middleware"
	"github.com/campusgrid/timetable-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Faculty  *handler.FacultyHandler
	Room     *handler.RoomHandler
	Subject  *handler.SubjectHandler
	Entry    *handler.EntryHandler
	Document *handler.DocumentHandler
	Feed     *handler.FeedHandler
	System   *handler.SystemHandler
}

// Deps are the cross-cutting collaborators the middleware chain needs.
type Deps struct {
	Verifier      middleware.IdentityVerifier
	Resolver      middleware.DepartmentResolver
	UploadLimiter *middleware.RateLimiter
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(deps Deps, handlers *Handlers, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition", "Retry-After"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Request ID first so the request log line carries it.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))

	// PDF downloads are already compressed.
	brotliConfig := middleware.DefaultBrotliConfig
	brotliConfig.Skipper = middleware.SkipPaths("/api/v1/documents/download")
	router.Use(middleware.BrotliWithConfig(brotliConfig))

	router.MaxMultipartMemory = cfg.MaxUploadBytes + 1<<20

	router.GET("/health", handlers.System.Health)

	scoped := []gin.HandlerFunc{
		middleware.NoStore(),
		middleware.RequireIdentity(deps.Verifier),
		middleware.ResolveScope(deps.Resolver, log),
	}

	// ─── 1. Timetable Group (Identity + Department Scope) ──────────────
	timetable := router.Group("/api/v1/timetable")
	timetable.Use(scoped...)
	{
		timetable.GET("/faculty", handlers.Faculty.List)
		timetable.POST("/faculty", handlers.Faculty.Create)
		timetable.GET("/faculty/:id", handlers.Faculty.Get)
		timetable.PUT("/faculty/:id", handlers.Faculty.Update)
		timetable.DELETE("/faculty/:id", handlers.Faculty.Delete)

		timetable.GET("/rooms", handlers.Room.List)
		timetable.POST("/rooms", handlers.Room.Create)
		timetable.GET("/rooms/:id", handlers.Room.Get)
		timetable.PUT("/rooms/:id", handlers.Room.Update)
		timetable.DELETE("/rooms/:id", handlers.Room.Delete)

		timetable.GET("/subjects", handlers.Subject.List)
		timetable.POST("/subjects", handlers.Subject.Create)
		timetable.GET("/subjects/:id", handlers.Subject.Get)
		timetable.PUT("/subjects/:id", handlers.Subject.Update)
		timetable.DELETE("/subjects/:id", handlers.Subject.Delete)

		timetable.GET("/entries", handlers.Entry.List)
		timetable.POST("/entries", handlers.Entry.Create)
		timetable.GET("/entries/:id", handlers.Entry.Get)
		timetable.PUT("/entries/:id", handlers.Entry.Update)
		timetable.DELETE("/entries/:id", handlers.Entry.Delete)
	}

	// ─── 2. Document Group (Identity + Department Scope) ───────────────
	documents := router.Group("/api/v1/documents")
	documents.Use(scoped...)
	{
		upload := []gin.HandlerFunc{handlers.Document.Upload}
		if deps.UploadLimiter != nil {
			upload = append([]gin.HandlerFunc{deps.UploadLimiter.Middleware()}, upload...)
		}
		documents.POST("/upload", upload...)
		documents.GET("/list", handlers.Document.List)
		documents.GET("/download/:id", middleware.PrivateCache(300), handlers.Document.Download)
		documents.DELETE("/:id", handlers.Document.Delete)
	}

	// ─── 3. WebSocket Group (Token in query allowed) ───────────────────
	ws := router.Group("/ws/v1")
	ws.Use(
		middleware.RequireWSIdentity(deps.Verifier),
		middleware.ResolveScope(deps.Resolver, log),
	)
	{
		ws.GET("/timetable/feed", handlers.Feed.Stream)
	}

	return router
}
