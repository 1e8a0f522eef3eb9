package api

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	models "FinTalk/internal/domain/models"
	"FinTalk/internal/usecase"
	xhttp "FinTalk/pkg/http"
	xlogger "FinTalk/pkg/logger"
)

// ChatHandler exposes the conversation engine over HTTP and websocket.
type ChatHandler struct {
	logger   *xlogger.Logger
	engine   *usecase.Engine
	upgrader websocket.Upgrader
}

func NewChatHandler(logger *xlogger.Logger, engine *usecase.Engine) *ChatHandler {
	return &ChatHandler{
		logger: logger,
		engine: engine,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Browser clients connect from app origins; auth sits upstream.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *ChatHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/chat", h.Chat)
	g.DELETE("/chat/session/:key", h.ClearSession)
	g.GET("/chat/ws", h.ChatStream)
}

// Chat runs one turn: one request in, one rendered reply out.
func (h *ChatHandler) Chat(c echo.Context) error {
	req := &models.ChatRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	reply, err := h.engine.HandleTurn(c.Request().Context(), req.Message, req.ChatID, req.UserID)
	if err != nil {
		h.logger.Error("chat turn failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	return xhttp.SuccessResponse(c, &models.ChatResponse{
		Reply: reply.Text,
		Chart: reply.Chart,
	})
}

// ClearSession forgets the conversation memory under :key.
func (h *ChatHandler) ClearSession(c echo.Context) error {
	key := c.Param("key")
	if key == "" {
		return xhttp.BadRequestResponse(c, xhttp.BadRequestError("session key required"))
	}
	if err := h.engine.ClearSession(c.Request().Context(), key); err != nil {
		h.logger.Error("session clear failed", xlogger.String("key", key), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.NoContentResponse(c)
}

// ChatStream is the websocket variant: a JSON ChatRequest per inbound
// frame, a JSON ChatResponse per outbound frame, same turn semantics as
// the POST endpoint.
func (h *ChatHandler) ChatStream(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx := c.Request().Context()
	for {
		var req models.ChatRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("websocket closed unexpectedly", xlogger.Error(err))
			}
			return nil
		}
		if req.Message == "" {
			if err := conn.WriteJSON(map[string]string{"error": "message required"}); err != nil {
				return nil
			}
			continue
		}

		reply, err := h.engine.HandleTurn(ctx, req.Message, req.ChatID, req.UserID)
		if err != nil {
			h.logger.Error("chat turn failed", xlogger.Error(err))
			if werr := conn.WriteJSON(map[string]string{"error": "turn failed"}); werr != nil {
				return nil
			}
			continue
		}

		if err := conn.WriteJSON(&models.ChatResponse{Reply: reply.Text, Chart: reply.Chart}); err != nil {
			return nil
		}
	}
}
