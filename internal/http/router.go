// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, session scoping, logging/redaction, panic
// recovery, metrics, idempotent replay, rate limiting, CORS and security
// headers.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → session → logging → recovery)
//   - Child data is never cached by intermediaries
//   - All dependencies injected; the router owns service construction only
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/kids-talk-backend/internal/config"
	"github.com/tbourn/kids-talk-backend/internal/domain"
	"github.com/tbourn/kids-talk-backend/internal/http/handlers"
	"github.com/tbourn/kids-talk-backend/internal/http/middleware"
	"github.com/tbourn/kids-talk-backend/internal/llm"
	"github.com/tbourn/kids-talk-backend/internal/quizbank"
	"github.com/tbourn/kids-talk-backend/internal/repo"
	"github.com/tbourn/kids-talk-backend/internal/services"
	"github.com/tbourn/kids-talk-backend/internal/session"
)

// chatroomRepoShim adapts the repository free functions to the
// services.ChatroomRepo interface expected by the ChatroomService.
type chatroomRepoShim struct{}

// CreateChatroom proxies repo.CreateChatroom.
func (chatroomRepoShim) CreateChatroom(ctx context.Context, db *gorm.DB, profileID int64, topic string) (*domain.Chatroom, error) {
	return repo.CreateChatroom(ctx, db, profileID, topic)
}

// UpdateChatroomTopic proxies repo.UpdateChatroomTopic.
func (chatroomRepoShim) UpdateChatroomTopic(ctx context.Context, db *gorm.DB, id, topic string) error {
	return repo.UpdateChatroomTopic(ctx, db, id, topic)
}

// ListChatroomsByProfile proxies repo.ListChatroomsByProfile.
func (chatroomRepoShim) ListChatroomsByProfile(ctx context.Context, db *gorm.DB, profileID int64) ([]domain.Chatroom, error) {
	return repo.ListChatroomsByProfile(ctx, db, profileID)
}

// ListTalksByChatroom proxies repo.ListTalksByChatroom.
func (chatroomRepoShim) ListTalksByChatroom(ctx context.Context, db *gorm.DB, chatroomID string) ([]domain.Talk, error) {
	return repo.ListTalksByChatroom(ctx, db, chatroomID)
}

// CountChatroomsCreatedBetween proxies repo.CountChatroomsCreatedBetween.
func (chatroomRepoShim) CountChatroomsCreatedBetween(ctx context.Context, db *gorm.DB, profileID int64, from, to time.Time) (int64, error) {
	return repo.CountChatroomsCreatedBetween(ctx, db, profileID, from, to)
}

// replayStore persists idempotent responses in the idempotency table.
type replayStore struct {
	db  *gorm.DB
	ttl time.Duration
}

// Lookup implements middleware.ReplayStore.
func (s replayStore) Lookup(ctx context.Context, sessionID, route, key string, now time.Time) (*middleware.Replay, error) {
	rec, err := repo.GetIdempotency(ctx, s.db, sessionID, route, key, now)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, middleware.ErrReplayNotFound
	}
	if err != nil {
		return nil, err
	}
	return &middleware.Replay{Status: rec.Status, Body: []byte(rec.Response)}, nil
}

// Save implements middleware.ReplayStore. A concurrent duplicate already
// holds the same turn and is not an error.
func (s replayStore) Save(ctx context.Context, sessionID, route, key string, status int, body []byte) error {
	_, err := repo.CreateIdempotency(ctx, s.db, sessionID, route, key, status, body, s.ttl)
	if errors.Is(err, repo.ErrDuplicate) {
		return nil
	}
	return err
}

// QuizBanks holds the three question banks.
type QuizBanks struct {
	Topic    *quizbank.Bank
	Animal   *quizbank.Bank
	Syllable *quizbank.Bank
}

// Deps are the process-wide collaborators shared by every service.
type Deps struct {
	DB       *gorm.DB
	LLM      *llm.Gateway
	Quizzes  QuizBanks
	Sessions *session.Store
	// Sink receives persisted turns; normally the analysis pipeline.
	Sink handlers.TurnSink
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine and mounts the public API under cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. SessionScope: resolve the session id for logs, replay and rate keys
//  4. RedactingLogger: structured logs with PII scrubbing
//  5. Recovery: capture panics after logger
//  6. Body size limiter
//  7. Metrics
//  8. Gzip
//  9. Idempotent replay (before rate limiter so replays are not throttled)
//  10. Rate limiter (per session/IP)
//  11. CORS and Security headers
func RegisterRoutes(r *gin.Engine, d Deps, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Session scope
	r.Use(middleware.SessionScope())

	// 4) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{"X-API-Key"},
	}))

	// 5) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 6) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 8) Compress report and history payloads
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 9) Idempotent replay of completed turns
	r.Use(middleware.Idempotency(
		middleware.IdempotencyOptions{MaxLen: 200},
		replayStore{db: d.DB, ttl: cfg.IdempotencyTTL},
	))

	// 10) Token-bucket rate limiter per session/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyBySessionOrIP())
	r.Use(rl.Handler())

	// 11) CORS posture (safe defaults: allow all if none configured)
	allowHeaders := []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderSessionID, middleware.HeaderIdempotencyKey}
	exposeHeaders := []string{"X-Request-ID", "Content-Length", "ETag", middleware.HeaderIdempotentReplay}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowHeaders:     allowHeaders,
			ExposeHeaders:    exposeHeaders,
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowHeaders:     allowHeaders,
			ExposeHeaders:    exposeHeaders,
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	h := handlers.New(buildDeps(d, cfg))

	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		// Activities
		api.POST("/conversation/talk", h.ConversationTalk)
		api.POST("/conversation/end", h.EndConversation)
		api.POST("/quiz/talk", h.TopicQuizTalk)
		api.POST("/syllable-quiz/talk", h.SyllableQuizTalk)
		api.POST("/animal-quiz/talk", h.AnimalQuizTalk)
		api.POST("/roleplay/start", h.StartRoleplay)
		api.POST("/roleplay/talk", h.RoleplayTalk)

		// Feedback
		api.PUT("/talks/:id/feedback", h.SetFeedback)
	}

	// Child data: never stored by shared caches.
	private := api.Group("", middleware.NoStore())
	{
		private.POST("/relationship-advice", h.RelationshipAdvice)

		private.GET("/reports/daily/:profile_id", h.DailyReport)
		private.GET("/reports/weekly/:profile_id", h.WeeklyReport)
		private.GET("/reports/weekly/:profile_id/narrative", h.WeeklyNarrative)
		private.GET("/reports/monthly/:profile_id", h.MonthlyReport)

		private.GET("/history/chatrooms/:profile_id", h.ListChatrooms)
		private.GET("/history/negative-talks/:profile_id", h.NegativeTalks)
		private.GET("/analysis/sentiment-summary/:profile_id", h.SentimentSummary)
		private.GET("/chatrooms/check-today/:profile_id", h.CheckToday)
	}

	// Revalidated through ETag, so it keeps its own Cache-Control.
	api.GET("/history/talks/:chatroom_id", h.ListTalks)
}

// buildDeps constructs the services over the shared collaborators.
func buildDeps(d Deps, cfg config.Config) handlers.Deps {
	loc := cfg.Location()
	rooms := services.NewChatroomService(d.DB, chatroomRepoShim{}, d.Sessions, d.LLM, loc)
	roleplay := &services.RoleplayService{Rooms: rooms, Sessions: d.Sessions, LLM: d.LLM}

	return handlers.Deps{
		Conversation: &services.ConversationService{
			DB:          d.DB,
			Rooms:       rooms,
			Sessions:    d.Sessions,
			LLM:         d.LLM,
			DriftWindow: cfg.DriftWindow,
		},
		TopicQuiz:     services.NewTopicQuizService(d.Quizzes.Topic, rooms, d.Sessions, d.LLM, nil),
		SyllableQuiz:  services.NewSyllableQuizService(d.Quizzes.Syllable, rooms, d.Sessions, nil),
		AnimalQuiz:    services.NewAnimalQuizService(d.Quizzes.Animal, rooms, d.Sessions, d.LLM, nil),
		Roleplay:      roleplay,
		RoleplayStart: roleplay,
		Rooms:         rooms,
		Sink:          d.Sink,
		Reports:       services.NewReportService(d.DB, d.LLM, loc),
		History:       services.NewHistoryService(d.DB, d.LLM, loc),
		Advice:        services.NewAdviceService(d.DB, d.LLM, loc),
		Feedback:      &services.FeedbackService{DB: d.DB},
		TalkStats: func(ctx context.Context, chatroomID string) (int64, *time.Time, error) {
			return repo.TalksStats(ctx, d.DB, chatroomID)
		},
		Location: loc,
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
