package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/hytide/launcher/internal/logging"
	"github.com/hytide/launcher/internal/model"
)

const (
	dialTimeout  = 10 * time.Second
	writeTimeout = 10 * time.Second

	// eventBuffer bounds the push queue; events within it stay in arrival
	// order because a single reader goroutine feeds it.
	eventBuffer = 64
)

// rpcRequest is the wire envelope for a command call
type rpcRequest struct {
	ID     string `json:"id"`
	Method string `json:"method"`
	Params any    `json:"params,omitempty"`
}

// rpcEnvelope is every inbound frame: either a response (ID set) or an
// unsolicited push (Event set).
type rpcEnvelope struct {
	ID     string          `json:"id,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
	Event  string          `json:"event,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
}

type rpcResult struct {
	raw json.RawMessage
	err error
}

// Client speaks the backend bridge protocol over a single websocket: JSON
// request/response frames multiplexed with push events. It implements
// Gateway and exposes pushes via Events().
type Client struct {
	conn *websocket.Conn
	log  *logrus.Entry

	writeMu sync.Mutex

	pendingMu sync.Mutex
	pending   map[string]chan rpcResult

	events chan Event

	closeOnce sync.Once
	done      chan struct{}
}

// Dial connects to the backend bridge at the given websocket URL
func Dial(ctx context.Context, url string) (*Client, error) {
	dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial backend %s: %w", url, err)
	}

	c := &Client{
		conn:    conn,
		log:     logging.NewLogger("backend"),
		pending: make(map[string]chan rpcResult),
		events:  make(chan Event, eventBuffer),
		done:    make(chan struct{}),
	}

	go c.readLoop()
	return c, nil
}

// Events returns the push event channel. It is closed when the connection
// ends; deliveries preserve arrival order.
func (c *Client) Events() <-chan Event {
	return c.events
}

// Close tears down the connection and fails all in-flight calls
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		err = c.conn.Close()
	})
	return err
}

func (c *Client) readLoop() {
	defer func() {
		c.failPending(fmt.Errorf("backend connection closed"))
		close(c.events)
	}()

	for {
		var env rpcEnvelope
		if err := c.conn.ReadJSON(&env); err != nil {
			select {
			case <-c.done:
			default:
				c.log.WithError(err).Warn("backend read failed")
			}
			return
		}

		switch {
		case env.Event != "":
			payload := map[string]any{}
			if len(env.Data) > 0 {
				if err := json.Unmarshal(env.Data, &payload); err != nil {
					c.log.WithError(err).WithField("event", env.Event).Warn("unreadable event payload")
					payload = map[string]any{}
				}
			}
			select {
			case c.events <- Event{Name: env.Event, Payload: payload}:
			case <-c.done:
				return
			}

		case env.ID != "":
			c.resolve(env)

		default:
			c.log.Warn("dropping frame with neither id nor event")
		}
	}
}

func (c *Client) resolve(env rpcEnvelope) {
	c.pendingMu.Lock()
	ch, ok := c.pending[env.ID]
	delete(c.pending, env.ID)
	c.pendingMu.Unlock()

	if !ok {
		c.log.WithField("id", env.ID).Warn("response for unknown request")
		return
	}

	res := rpcResult{raw: env.Result}
	if env.Error != "" {
		res.err = fmt.Errorf("%s", env.Error)
	}
	ch <- res
}

func (c *Client) failPending(err error) {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	for id, ch := range c.pending {
		delete(c.pending, id)
		ch <- rpcResult{err: err}
	}
}

// call performs one request/response round trip. result may be nil for
// ack-only methods.
func (c *Client) call(ctx context.Context, method string, params, result any) error {
	id := uuid.NewString()
	ch := make(chan rpcResult, 1)

	c.pendingMu.Lock()
	c.pending[id] = ch
	c.pendingMu.Unlock()

	c.writeMu.Lock()
	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	err := c.conn.WriteJSON(rpcRequest{ID: id, Method: method, Params: params})
	c.writeMu.Unlock()

	if err != nil {
		c.pendingMu.Lock()
		delete(c.pending, id)
		c.pendingMu.Unlock()
		return fmt.Errorf("%s: %w", method, err)
	}

	select {
	case res := <-ch:
		if res.err != nil {
			return fmt.Errorf("%s: %w", method, res.err)
		}
		if result != nil && len(res.raw) > 0 {
			if err := json.Unmarshal(res.raw, result); err != nil {
				return fmt.Errorf("%s: decode result: %w", method, err)
			}
		}
		return nil

	case <-ctx.Done():
		c.pendingMu.Lock()
		delete(c.pending, id)
		c.pendingMu.Unlock()
		return fmt.Errorf("%s: %w", method, ctx.Err())

	case <-c.done:
		return fmt.Errorf("%s: backend connection closed", method)
	}
}

// GetIdentity implements Gateway
func (c *Client) GetIdentity(ctx context.Context) (string, error) {
	var res struct {
		Nickname string `json:"nickname"`
	}
	if err := c.call(ctx, "getIdentity", nil, &res); err != nil {
		return "", err
	}
	return res.Nickname, nil
}

// SetIdentity implements Gateway
func (c *Client) SetIdentity(ctx context.Context, nickname string) error {
	return c.call(ctx, "setIdentity", map[string]string{"nickname": nickname}, nil)
}

// GetInstanceInfo implements Gateway
func (c *Client) GetInstanceInfo(ctx context.Context) (InstanceInfo, error) {
	var info InstanceInfo
	err := c.call(ctx, "getInstanceInfo", nil, &info)
	return info, err
}

// GetVersions implements Gateway
func (c *Client) GetVersions(ctx context.Context, branch model.Branch) ([]string, error) {
	var res struct {
		Versions []string `json:"versions"`
		Error    string   `json:"error"`
	}
	if err := c.call(ctx, "getVersions", map[string]string{"branch": branch.String()}, &res); err != nil {
		return nil, err
	}
	if res.Error != "" {
		return nil, fmt.Errorf("getVersions: %s", res.Error)
	}
	return res.Versions, nil
}

// SetBranch implements Gateway
func (c *Client) SetBranch(ctx context.Context, branch model.Branch) error {
	return c.call(ctx, "setBranch", map[string]string{"branch": branch.String()}, nil)
}

// SetVersion implements Gateway
func (c *Client) SetVersion(ctx context.Context, version, instanceID string) error {
	params := map[string]string{"version": version, "instanceId": instanceID}
	return c.call(ctx, "setVersion", params, nil)
}

// Play implements Gateway. The call blocks until the backend finishes or
// rejects the whole download/install/launch pipeline; progress arrives as
// events in the meantime.
func (c *Client) Play(ctx context.Context, nickname, serverAddress string) error {
	params := map[string]string{"nickname": nickname}
	if serverAddress != "" {
		params["serverAddress"] = serverAddress
	}
	return c.call(ctx, "play", params, nil)
}

// RequestSelfUpdate implements Gateway
func (c *Client) RequestSelfUpdate(ctx context.Context) error {
	return c.call(ctx, "requestSelfUpdate", nil, nil)
}

// RunDiagnostics implements Gateway
func (c *Client) RunDiagnostics(ctx context.Context) (DiagnosticsReport, error) {
	var report DiagnosticsReport
	err := c.call(ctx, "runDiagnostics", nil, &report)
	return report, err
}

// GetLauncherVersion implements Gateway
func (c *Client) GetLauncherVersion(ctx context.Context) (string, error) {
	var res struct {
		Version string `json:"version"`
	}
	if err := c.call(ctx, "getLauncherVersion", nil, &res); err != nil {
		return "", err
	}
	return res.Version, nil
}

// GetNewsFeed implements Gateway
func (c *Client) GetNewsFeed(ctx context.Context) ([]model.NewsItem, error) {
	var res struct {
		Items []struct {
			Title          string `json:"title"`
			DestinationURL string `json:"destinationUrl"`
			Excerpt        string `json:"excerpt"`
			ImageRef       string `json:"imageRef"`
		} `json:"items"`
	}
	if err := c.call(ctx, "getNewsFeed", nil, &res); err != nil {
		return nil, err
	}

	items := make([]model.NewsItem, 0, len(res.Items))
	for _, it := range res.Items {
		items = append(items, model.NewsItem{
			Title:    it.Title,
			DestURL:  it.DestinationURL,
			Excerpt:  it.Excerpt,
			ImageRef: it.ImageRef,
		})
	}
	return items, nil
}
