package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/terra-clan/spacegom-engine/internal/dice"
	"github.com/terra-clan/spacegom-engine/internal/game"
	"github.com/terra-clan/spacegom-engine/internal/models"
	"github.com/terra-clan/spacegom-engine/internal/resolution"
	"github.com/terra-clan/spacegom-engine/internal/trade"
)

// Client is a Go SDK for the spacegom-engine API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures the client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new spacegom-engine client
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError is an error reported by the server envelope
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s: %s", e.Status, e.Code, e.Message)
}

// IsNotFound reports whether err is a 404 from the server
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == http.StatusNotFound
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ListOptions pages through games
type ListOptions struct {
	Limit  int
	Offset int
}

// GameList is one page of games
type GameList struct {
	Games []models.GameSummary `json:"games"`
	Total int                  `json:"total"`
}

// Games

// CreateGame starts a new game
func (c *Client) CreateGame(ctx context.Context, req game.NewGameParams) (*models.GameState, error) {
	var g models.GameState
	if err := c.do(ctx, http.MethodPost, "/api/v1/games", req, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// ListGames lists saved games, newest first
func (c *Client) ListGames(ctx context.Context, opts ListOptions) (*GameList, error) {
	params := url.Values{}
	if opts.Limit > 0 {
		params.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		params.Set("offset", strconv.Itoa(opts.Offset))
	}
	path := "/api/v1/games"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var list GameList
	if err := c.do(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetGame returns the full state of a game
func (c *Client) GetGame(ctx context.Context, id string) (*models.GameState, error) {
	var g models.GameState
	if err := c.do(ctx, http.MethodGet, gamePath(id, ""), nil, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// DeleteGame removes a game
func (c *Client) DeleteGame(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, gamePath(id, ""), nil, nil)
}

// Advance resolves the next scheduled event. hireDice optionally overrides
// the 2d6 of a hiring resolution, e.g. "6,5".
func (c *Client) Advance(ctx context.Context, id, hireDice string) (*game.AdvanceResult, error) {
	var res game.AdvanceResult
	body := map[string]string{}
	if hireDice != "" {
		body["hire_dice"] = hireDice
	}
	if err := c.do(ctx, http.MethodPost, gamePath(id, "/advance"), body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Logs returns the most recent log entries
func (c *Client) Logs(ctx context.Context, id string, limit int) ([]models.LogEntry, error) {
	path := gamePath(id, "/logs")
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var resp struct {
		Logs []models.LogEntry `json:"logs"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Logs, nil
}

// RollDice throws n dice, or records manual faces when given
func (c *Client) RollDice(ctx context.Context, id string, n int, manual, purpose string) (*dice.Roll, error) {
	req := map[string]interface{}{"num_dice": n}
	if manual != "" {
		req["dice"] = manual
	}
	if purpose != "" {
		req["purpose"] = purpose
	}
	var roll dice.Roll
	if err := c.do(ctx, http.MethodPost, gamePath(id, "/dice/roll"), req, &roll); err != nil {
		return nil, err
	}
	return &roll, nil
}

// Personnel

// ListPositions lists the positions hireable at the current planet
func (c *Client) ListPositions(ctx context.Context, id string) ([]models.Position, error) {
	var resp struct {
		Positions []models.Position `json:"positions"`
	}
	if err := c.do(ctx, http.MethodGet, gamePath(id, "/hire/positions"), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Positions, nil
}

// StartHireSearch queues a recruitment task for the hiring manager
func (c *Client) StartHireSearch(ctx context.Context, id, position, experience, manualDays string) (*models.Task, error) {
	req := map[string]string{
		"position":   position,
		"experience": experience,
	}
	if manualDays != "" {
		req["manual_days"] = manualDays
	}
	var task models.Task
	if err := c.do(ctx, http.MethodPost, gamePath(id, "/hire/search"), req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// EmployeeTasks lists the queue of one employee
func (c *Client) EmployeeTasks(ctx context.Context, id string, employeeID int) ([]models.Task, error) {
	var resp struct {
		Tasks []models.Task `json:"tasks"`
	}
	path := gamePath(id, fmt.Sprintf("/employees/%d/tasks", employeeID))
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

// Personnel returns the crew with its payroll totals
func (c *Client) Personnel(ctx context.Context, id string) (*game.PersonnelSummary, error) {
	var summary game.PersonnelSummary
	if err := c.do(ctx, http.MethodGet, gamePath(id, "/personnel"), nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// Missions

// ListMissions lists missions, optionally only the active ones
func (c *Client) ListMissions(ctx context.Context, id string, activeOnly bool) ([]models.Mission, error) {
	path := gamePath(id, "/missions")
	if activeOnly {
		path += "?active=true"
	}
	var resp struct {
		Missions []models.Mission `json:"missions"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Missions, nil
}

// CreateMission registers a mission and schedules its deadline
func (c *Client) CreateMission(ctx context.Context, id string, req game.MissionInput) (*models.Mission, error) {
	var m models.Mission
	if err := c.do(ctx, http.MethodPost, gamePath(id, "/missions"), req, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// ResolveMission closes a mission as a success or a failure
func (c *Client) ResolveMission(ctx context.Context, id string, missionID int, success bool) (*models.Mission, error) {
	var m models.Mission
	path := gamePath(id, fmt.Sprintf("/missions/%d/resolve", missionID))
	if err := c.do(ctx, http.MethodPost, path, map[string]bool{"success": success}, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Navigation and commerce

// MoveShip moves the ship to another planet
func (c *Client) MoveShip(ctx context.Context, id string, req game.MoveRequest) error {
	return c.do(ctx, http.MethodPost, gamePath(id, "/ship/move"), req, nil)
}

// TransportPassengers rolls passenger income for the current planet
func (c *Client) TransportPassengers(ctx context.Context, id, manual string) (*resolution.PassengerResult, error) {
	var res resolution.PassengerResult
	if err := c.do(ctx, http.MethodPost, gamePath(id, "/passengers/transport"), diceBody(manual), &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Market returns prices at the current planet
func (c *Client) Market(ctx context.Context, id string) (*trade.Market, error) {
	var m trade.Market
	if err := c.do(ctx, http.MethodGet, gamePath(id, "/trade/market"), nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Negotiate rolls a buy or sell negotiation
func (c *Client) Negotiate(ctx context.Context, id, action, manual string) (*resolution.Negotiation, error) {
	req := diceBody(manual)
	req["action"] = action
	var n resolution.Negotiation
	if err := c.do(ctx, http.MethodPost, gamePath(id, "/trade/negotiate"), req, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// BuyBatch buys several products in one transaction
func (c *Client) BuyBatch(ctx context.Context, id string, items []trade.Item) (*game.BatchBuyResult, error) {
	var res game.BatchBuyResult
	body := map[string]interface{}{"items": items}
	if err := c.do(ctx, http.MethodPost, gamePath(id, "/trade/buy-batch"), body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Sell closes an in-transit order at the given unit price
func (c *Client) Sell(ctx context.Context, id string, orderID, price int) (*trade.SellResult, error) {
	var res trade.SellResult
	body := map[string]int{"order_id": orderID, "sell_price": price}
	if err := c.do(ctx, http.MethodPost, gamePath(id, "/trade/sell"), body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Exploration

// RollPlanetCode rolls a 3d6 planet code, or uses the manual faces
func (c *Client) RollPlanetCode(ctx context.Context, id, manual string) (*game.PlanetCodeRoll, error) {
	var res game.PlanetCodeRoll
	if err := c.do(ctx, http.MethodPost, gamePath(id, "/planet-code/roll"), diceBody(manual), &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ExploreArea rolls the world density of the current area
func (c *Client) ExploreArea(ctx context.Context, id, manual string) (*game.AreaDensity, error) {
	var res game.AreaDensity
	if err := c.do(ctx, http.MethodPost, gamePath(id, "/explore"), diceBody(manual), &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// NextPlanet finds the catalog planet that follows code
func (c *Client) NextPlanet(ctx context.Context, code int) (*game.PlanetLookup, error) {
	var res game.PlanetLookup
	path := "/api/v1/catalog/planets/" + strconv.Itoa(code) + "/next"
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Events lists scheduled events, optionally of one type
func (c *Client) Events(ctx context.Context, id, eventType string) ([]models.Event, error) {
	path := gamePath(id, "/events")
	if eventType != "" {
		path += "?type=" + url.QueryEscape(eventType)
	}
	var resp struct {
		Events []models.Event `json:"events"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Events, nil
}

// Health checks the API health
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

func gamePath(id, suffix string) string {
	return "/api/v1/games/" + url.PathEscape(id) + suffix
}

func diceBody(manual string) map[string]interface{} {
	body := map[string]interface{}{}
	if manual != "" {
		body["dice"] = manual
	}
	return body
}

// do sends the request and decodes the envelope data into out, if non-nil
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	respBody, status, err := c.doRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		if status >= 400 {
			return &APIError{Status: status, Code: "http_error", Message: strings.TrimSpace(string(respBody))}
		}
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if status >= 400 || !env.Success {
		apiErr := &APIError{Status: status, Code: "unknown_error"}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		return apiErr
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to parse response data: %w", err)
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, body io.Reader) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response: %w", err)
	}

	return respBody, resp.StatusCode, nil
}
