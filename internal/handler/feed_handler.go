package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/campusgrid/timetable-backend/internal/middleware"
	"github.com/campusgrid/timetable-backend/internal/service"
	ws "github.com/campusgrid/timetable-backend/internal/websocket"
)

const subscribeTimeout = 5 * time.Second

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// FeedHandler streams a department's timetable changes over a WebSocket.
type FeedHandler struct {
	feedService *service.FeedService
	log         zerolog.Logger
	upgrader    websocket.Upgrader
}

// NewFeedHandler creates a new FeedHandler.
func NewFeedHandler(feedService *service.FeedService, log zerolog.Logger, allowedOrigins []string) *FeedHandler {
	return &FeedHandler{
		feedService: feedService,
		log:         log.With().Str("component", "feed_handler").Logger(),
		upgrader:    buildUpgrader(allowedOrigins),
	}
}

// Stream godoc
// WS /ws/v1/timetable/feed?token=...
// Forwards every created/updated/deleted event of the caller's department.
func (h *FeedHandler) Stream(c *gin.Context) {
	scope := middleware.GetScope(c)
	deptID, err := scope.Department()
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	pubsub := h.feedService.Subscribe(ctx, deptID)
	defer pubsub.Close()

	subCtx, subCancel := context.WithTimeout(ctx, subscribeTimeout)
	_, err = pubsub.Receive(subCtx)
	subCancel()
	if err != nil {
		h.log.Error().Err(err).Str("department_id", deptID.String()).Msg("Feed subscription failed")
		ws.WriteError(conn, "feed unavailable")
		return
	}

	wsLog := h.log.With().
		Str("user_id", scope.Identity.UserID).
		Str("department_id", deptID.String()).
		Logger()

	if err := ws.WriteTyped(conn, ws.ReadyResponse{Event: ws.EventReady, Department: deptID.String()}); err != nil {
		return
	}
	wsLog.Info().Msg("Feed subscriber connected")

	// The reader only detects disconnects and ping actions; all writes stay
	// on this goroutine.
	pings := make(chan struct{}, 1)
	go func() {
		defer cancel()
		ws.KeepAlive(conn)
		for {
			var msg ws.RequestEnvelope
			if err := ws.ReadJSON(conn, &msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					wsLog.Warn().Err(err).Msg("Unexpected close")
				}
				return
			}
			if msg.Action == ws.ActionPing {
				select {
				case pings <- struct{}{}:
				default:
				}
			}
		}
	}()

	ticker := time.NewTicker(ws.PingPeriod)
	defer ticker.Stop()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			wsLog.Debug().Msg("Feed subscriber disconnected")
			return

		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := ws.WriteTyped(conn, ws.TimetableResponse{
				Event: ws.EventTimetable,
				Data:  json.RawMessage(msg.Payload),
			}); err != nil {
				wsLog.Debug().Err(err).Msg("Feed write failed")
				return
			}

		case <-pings:
			if err := ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong}); err != nil {
				return
			}

		case <-ticker.C:
			if err := ws.WritePing(conn); err != nil {
				return
			}
		}
	}
}
