// internal/provider/server.go
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/coder/websocket"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"github.com/crashka/euchre-plt/internal/euchre"
)

// Server exposes a local DecisionProvider over the websocket decision
// protocol, so an external runner can field a team backed by this process.
// It is the accepting side of the protocol Remote speaks.
type Server struct {
	provider euchre.DecisionProvider
	secret   string // empty disables auth
	log      *logrus.Logger
}

// NewServer wraps a provider for serving. With a non-empty secret, clients
// must present a bearer token signed with it (see AuthToken).
func NewServer(p euchre.DecisionProvider, secret string, logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logrus.New()
	}
	return &Server{provider: p, secret: secret, log: logger}
}

// authenticate validates the bearer token and returns the team identity.
func (s *Server) authenticate(r *http.Request) (string, error) {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) <= len(prefix) || auth[:len(prefix)] != prefix {
		return "", fmt.Errorf("missing bearer token")
	}
	token, err := jwt.Parse(auth[len(prefix):], func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return "", err
	}
	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return sub, nil
}

// ServeHTTP accepts a websocket and answers decision requests until the
// peer disconnects.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	team := "anonymous"
	if s.secret != "" {
		var err error
		team, err = s.authenticate(r)
		if err != nil {
			s.log.WithError(err).Warn("decision client rejected")
			http.Error(w, "authentication failed", http.StatusUnauthorized)
			return
		}
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		s.log.WithError(err).Warn("websocket accept failed")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "handler exit")
	s.log.WithFields(logrus.Fields{
		"team":   team,
		"remote": r.RemoteAddr,
	}).Info("decision client connected")

	ctx := r.Context()
	for {
		if err := s.serveOne(ctx, conn); err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				s.log.WithField("team", team).Info("decision client disconnected")
			} else {
				s.log.WithError(err).WithField("team", team).Warn("decision session ended")
			}
			return
		}
	}
}

func (s *Server) serveOne(ctx context.Context, conn *websocket.Conn) error {
	_, data, err := conn.Read(ctx)
	if err != nil {
		return err
	}
	var req remoteRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("malformed request: %w", err)
	}

	resp := remoteResponse{ID: req.ID}
	switch req.Action {
	case "bid":
		bid, err := s.provider.Bid(ctx, req.State)
		if err != nil {
			resp.Error = err.Error()
		} else {
			resp.Bid = &bid
		}
	case "discard":
		card, err := s.provider.Discard(ctx, req.State)
		if err != nil {
			resp.Error = err.Error()
		} else {
			resp.Card = &card
		}
	case "play_card":
		card, err := s.provider.PlayCard(ctx, req.State)
		if err != nil {
			resp.Error = err.Error()
		} else {
			resp.Card = &card
		}
	default:
		// lifecycle event: forward to the provider if it listens, no reply
		if n, ok := s.provider.(euchre.Notifier); ok {
			n.Notify(euchre.EventType(req.Action), req.State)
		}
		return nil
	}

	out, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("marshal response: %w", err)
	}
	return conn.Write(ctx, websocket.MessageText, out)
}
