package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jaajung-kjs/digital-sub000/internal/floorplan"
)

// Client talks to the plan service. Safe for concurrent use once the token
// is set.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
}

// NewClient returns a client rooted at baseURL, e.g. "http://localhost:8080".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken installs the bearer token sent with every subsequent request.
func (c *Client) SetToken(token string) {
	c.token = token
}

// UserDTO is the wire form of an account.
type UserDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type authResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

type savePlanRequest struct {
	PlanDTO
	DeletedElementIDs []string `json:"deletedElementIds"`
	DeletedRackIDs    []string `json:"deletedRackIds"`
}

// Register creates an account and installs its token on the client.
func (c *Client) Register(ctx context.Context, email, password, name string) (UserDTO, error) {
	var resp authResponse
	in := credentialsRequest{Email: email, Password: password, Name: name}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/register", in, &resp); err != nil {
		return UserDTO{}, err
	}
	c.token = resp.Token
	return resp.User, nil
}

// Login authenticates and installs the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (UserDTO, error) {
	var resp authResponse
	in := credentialsRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", in, &resp); err != nil {
		return UserDTO{}, err
	}
	c.token = resp.Token
	return resp.User, nil
}

// GetFloorPlan fetches the plan attached to a floor. ErrNotFound means the
// floor has no plan yet.
func (c *Client) GetFloorPlan(ctx context.Context, floorID string) (*floorplan.Plan, error) {
	var dto PlanDTO
	path := "/api/v1/floors/" + floorID + "/plan"
	if err := c.do(ctx, http.MethodGet, path, nil, &dto); err != nil {
		return nil, err
	}
	return DecodePlan(dto)
}

// CreateFloorPlan creates an empty plan for a floor. ErrConflict means one
// already exists.
func (c *Client) CreateFloorPlan(ctx context.Context, floorID, name string) (*floorplan.Plan, error) {
	var dto PlanDTO
	path := "/api/v1/floors/" + floorID + "/plan"
	in := map[string]string{"name": name}
	if err := c.do(ctx, http.MethodPost, path, in, &dto); err != nil {
		return nil, err
	}
	return DecodePlan(dto)
}

// UpdatePlan saves the full plan state along with the ids deleted since the
// last save. The response carries server-assigned ids for items sent with
// null ids, in the same order they were sent.
func (c *Client) UpdatePlan(ctx context.Context, planID string, plan *floorplan.Plan, deletedElementIDs, deletedRackIDs []string) (*floorplan.Plan, error) {
	encoded, err := EncodePlan(plan)
	if err != nil {
		return nil, err
	}
	in := savePlanRequest{
		PlanDTO:           encoded,
		DeletedElementIDs: deletedElementIDs,
		DeletedRackIDs:    deletedRackIDs,
	}
	var dto PlanDTO
	if err := c.do(ctx, http.MethodPut, "/api/v1/plans/"+planID, in, &dto); err != nil {
		return nil, err
	}
	return DecodePlan(dto)
}

// DeletePlan removes a plan and everything in it.
func (c *Client) DeletePlan(ctx context.Context, planID string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/plans/"+planID, nil, nil)
}

// ExportSVG fetches the server-side SVG rendering of a plan.
func (c *Client) ExportSVG(ctx context.Context, planID string) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/v1/plans/"+planID+"/export/svg", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("export svg: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, c.errorFrom(resp)
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return c.errorFrom(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// errorFrom turns a non-2xx response into a sentinel-wrapped error carrying
// the body's error message.
func (c *Client) errorFrom(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	msg := resp.Status
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		msg = body.Error
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, msg)
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrValidation, msg)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	default:
		return fmt.Errorf("server error (%d): %s", resp.StatusCode, msg)
	}
}
