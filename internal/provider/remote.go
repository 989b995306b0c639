// internal/provider/remote.go
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"github.com/crashka/euchre-plt/internal/euchre"
)

// Remote decision protocol: one JSON request per decision, answered by a
// response carrying the same id.
type remoteRequest struct {
	ID     int64             `json:"id"`
	Action string            `json:"action"` // "bid", "discard", "play_card", or an event type
	State  *euchre.DealState `json:"state"`
}

type remoteResponse struct {
	ID    int64        `json:"id"`
	Bid   *euchre.Bid  `json:"bid,omitempty"`
	Card  *euchre.Card `json:"card,omitempty"`
	Error string       `json:"error,omitempty"`
}

// AuthToken builds a signed bearer token identifying the connecting team,
// for servers that require authentication.
func AuthToken(secret, team string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": team,
	}
	if ttl > 0 {
		claims["exp"] = time.Now().Add(ttl).Unix()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Remote bridges decisions to an external service over a websocket. Calls
// are serialized on the single connection; a per-decision timeout bounds how
// long a stalled peer can block its match.
type Remote struct {
	conn    *websocket.Conn
	timeout time.Duration
	log     *logrus.Logger

	mu  sync.Mutex
	seq int64
}

// RemoteOptions configures the connection to a decision service.
type RemoteOptions struct {
	URL     string
	Token   string        // optional bearer token (see AuthToken)
	Timeout time.Duration // per-decision; zero means no limit
	Logger  *logrus.Logger
}

// NewRemote dials the decision service and returns the connected provider.
func NewRemote(ctx context.Context, opts RemoteOptions) (*Remote, error) {
	dialOpts := &websocket.DialOptions{}
	if opts.Token != "" {
		dialOpts.HTTPHeader = http.Header{
			"Authorization": []string{"Bearer " + opts.Token},
		}
	}
	conn, _, err := websocket.Dial(ctx, opts.URL, dialOpts)
	if err != nil {
		return nil, fmt.Errorf("dial decision service %s: %w", opts.URL, err)
	}
	log := opts.Logger
	if log == nil {
		log = logrus.New()
	}
	return &Remote{conn: conn, timeout: opts.Timeout, log: log}, nil
}

// call performs one request/response exchange. The connection carries one
// decision at a time, so responses need no out-of-order matching; the id is
// still checked to catch a desynced peer.
func (r *Remote) call(ctx context.Context, action string, state *euchre.DealState) (*remoteResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	r.seq++
	req := remoteRequest{ID: r.seq, Action: action, State: state}
	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal %s request: %w", action, err)
	}
	if err := r.conn.Write(ctx, websocket.MessageText, data); err != nil {
		return nil, fmt.Errorf("send %s request: %w", action, err)
	}

	_, payload, err := r.conn.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", action, err)
	}
	var resp remoteResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", action, err)
	}
	if resp.ID != req.ID {
		return nil, fmt.Errorf("%s response id %d does not match request %d", action, resp.ID, req.ID)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("decision service error on %s: %s", action, resp.Error)
	}
	return &resp, nil
}

func (r *Remote) Bid(ctx context.Context, state *euchre.DealState) (euchre.Bid, error) {
	resp, err := r.call(ctx, "bid", state)
	if err != nil {
		return euchre.Bid{}, err
	}
	if resp.Bid == nil {
		return euchre.Bid{}, fmt.Errorf("decision service returned no bid")
	}
	return *resp.Bid, nil
}

func (r *Remote) Discard(ctx context.Context, state *euchre.DealState) (euchre.Card, error) {
	resp, err := r.call(ctx, "discard", state)
	if err != nil {
		return euchre.Card{}, err
	}
	if resp.Card == nil {
		return euchre.Card{}, fmt.Errorf("decision service returned no discard")
	}
	return *resp.Card, nil
}

func (r *Remote) PlayCard(ctx context.Context, state *euchre.DealState) (euchre.Card, error) {
	resp, err := r.call(ctx, "play_card", state)
	if err != nil {
		return euchre.Card{}, err
	}
	if resp.Card == nil {
		return euchre.Card{}, fmt.Errorf("decision service returned no card")
	}
	return *resp.Card, nil
}

// Notify forwards lifecycle events fire-and-forget; a failed write is
// logged, not fatal, since events carry no reply.
func (r *Remote) Notify(event euchre.EventType, state *euchre.DealState) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctx := context.Background()
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	r.seq++
	data, err := json.Marshal(remoteRequest{ID: r.seq, Action: string(event), State: state})
	if err == nil {
		err = r.conn.Write(ctx, websocket.MessageText, data)
	}
	if err != nil {
		r.log.WithError(err).WithField("event", event).Warn("event notification failed")
	}
}

// Close shuts the connection down cleanly.
func (r *Remote) Close() error {
	return r.conn.Close(websocket.StatusNormalClosure, "done")
}
