package handler

import (
	"log/slog"
	"net/http"

	"orderdesk/internal/delivery/http/response"
	"orderdesk/internal/domain/service"
	"orderdesk/internal/infra/realtime"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// WSHandler upgrades notification subscribers onto the realtime hub.
// Browsers cannot set an Authorization header on the websocket handshake,
// so the access token travels as a query parameter instead.
type WSHandler struct {
	tokenSvc service.TokenService
	hub      *realtime.Hub
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler is the constructor for WSHandler, injected by Fx.
func NewWSHandler(tokenSvc service.TokenService, hub *realtime.Hub, logger *slog.Logger) *WSHandler {
	return &WSHandler{
		tokenSvc: tokenSvc,
		hub:      hub,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Cross-origin policy is enforced by the CORS middleware on the
			// REST surface; the handshake itself only trusts the token.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Notify handles GET /ws/notify. The connection stays registered on the hub
// until the client goes away; inbound frames are drained and discarded.
func (h *WSHandler) Notify(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing token")
	}

	claims, err := h.tokenSvc.ValidateAccessToken(token)
	if err != nil {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Invalid token")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.WithStack(err)
	}

	h.hub.Register(claims.TenantID, conn)
	h.logger.Debug("websocket subscriber connected",
		slog.String("tenant_id", claims.TenantID.String()),
		slog.String("account_id", claims.AccountID.String()),
	)

	go h.readLoop(claims, conn)

	return nil
}

func (h *WSHandler) readLoop(claims *service.TokenClaims, conn *websocket.Conn) {
	defer h.hub.Unregister(claims.TenantID, conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("websocket subscriber dropped",
					slog.String("tenant_id", claims.TenantID.String()),
					slog.String("error", err.Error()),
				)
			}
			return
		}
	}
}
