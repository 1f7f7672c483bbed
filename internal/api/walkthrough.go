package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/terra-clan/homework-assistant/internal/models"
	"github.com/terra-clan/homework-assistant/internal/usage"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const maxWalkthroughMessage = 4096

// Walkthrough message types
const (
	msgProblem  = "problem"
	msgNext     = "next"
	msgAnalysis = "analysis"
	msgStep     = "step"
	msgTip      = "tip"
	msgDone     = "done"
	msgError    = "error"
)

// WalkthroughMessage is exchanged over the walkthrough websocket.
// Clients send "problem" and "next"; the server answers with
// "analysis", "step", "tip", "done" or "error".
type WalkthroughMessage struct {
	Type     string           `json:"type"`
	Data     string           `json:"data,omitempty"`
	Code     string           `json:"code,omitempty"`
	Step     int              `json:"step,omitempty"`
	Total    int              `json:"total,omitempty"`
	Analysis *models.Analysis `json:"analysis,omitempty"`
}

// walkthrough is the state of one problem being revealed step by step
type walkthrough struct {
	guidance *models.Guidance
	next     int
}

func (s *Server) handleWalkthroughWS(w http.ResponseWriter, r *http.Request) {
	client := ClientFromContext(r.Context())
	requestID := middleware.GetReqID(r.Context())

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade to websocket", "error", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxWalkthroughMessage)

	slog.Info("walkthrough websocket connected", "client", client.Name, "request_id", requestID)

	var current *walkthrough
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Debug("websocket read error", "error", err)
			}
			break
		}

		var msg WalkthroughMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			slog.Debug("invalid message format", "error", err)
			s.sendWalkthroughError(conn, "invalid_message", "messages must be JSON objects with a type")
			continue
		}

		switch msg.Type {
		case msgProblem:
			current = s.startWalkthrough(r, conn, client, msg.Data)
		case msgNext:
			if current == nil {
				s.sendWalkthroughError(conn, "no_problem", "send a problem first")
				continue
			}
			if done := s.advanceWalkthrough(conn, current); done {
				current = nil
			}
		default:
			s.sendWalkthroughError(conn, "invalid_message", fmt.Sprintf("unknown message type %q", msg.Type))
		}
	}

	slog.Info("walkthrough websocket disconnected", "client", client.Name, "request_id", requestID)
}

// startWalkthrough analyses a problem and sends the analysis message.
// It returns nil when no steps can be revealed.
func (s *Server) startWalkthrough(r *http.Request, conn *websocket.Conn, client *models.ApiClient, problem string) *walkthrough {
	req := models.HomeworkRequest{Problem: problem}
	if err := s.validate.Struct(req); err != nil {
		s.sendWalkthroughError(conn, "validation_error", validationMessage(err))
		return nil
	}

	if _, err := s.limiter.Allow(r.Context(), client.Name, client.DailyLimit); err != nil {
		if errors.Is(err, usage.ErrLimitExceeded) {
			s.sendWalkthroughError(conn, "daily_limit_exceeded", "Daily request limit reached")
			return nil
		}
		slog.Warn("daily limit check failed, allowing request", "client", client.Name, "error", err)
	}

	env, bundle := s.service.Process(r.Context(), problem, client, "")
	if !env.Success {
		text := bundle.Message
		if bundle.Suggestion != "" {
			text += " " + bundle.Suggestion
		}
		s.sendWalkthroughError(conn, string(bundle.Error), text)
		return nil
	}

	analysis := env.Analysis
	s.sendWalkthroughMessage(conn, WalkthroughMessage{
		Type:     msgAnalysis,
		Data:     env.Guidance.Strategy,
		Total:    len(env.Guidance.Steps),
		Analysis: &analysis,
	})

	return &walkthrough{guidance: env.Guidance}
}

// advanceWalkthrough sends the next step, or the closing tip and done
// message once all steps are out. It reports whether the walkthrough ended.
func (s *Server) advanceWalkthrough(conn *websocket.Conn, wt *walkthrough) bool {
	steps := wt.guidance.Steps
	if wt.next < len(steps) {
		s.sendWalkthroughMessage(conn, WalkthroughMessage{
			Type:  msgStep,
			Data:  steps[wt.next],
			Step:  wt.next + 1,
			Total: len(steps),
		})
		wt.next++
		return false
	}

	s.sendWalkthroughMessage(conn, WalkthroughMessage{Type: msgTip, Data: wt.guidance.MentalMathTrick})
	s.sendWalkthroughMessage(conn, WalkthroughMessage{Type: msgDone, Data: wt.guidance.Encouragement})
	return true
}

func (s *Server) sendWalkthroughMessage(conn *websocket.Conn, msg WalkthroughMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("failed to marshal walkthrough message", "error", err)
		return err
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.Debug("failed to send walkthrough message", "error", err)
		return err
	}
	return nil
}

func (s *Server) sendWalkthroughError(conn *websocket.Conn, code, message string) {
	s.sendWalkthroughMessage(conn, WalkthroughMessage{
		Type: msgError,
		Code: code,
		Data: message,
	})
}
