package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"brewfinder.dev/BrewFinder/configs"
	"brewfinder.dev/BrewFinder/pkg/model"
)

var (
	ErrBadRequest = errors.New("bad request")
	ErrConflict   = errors.New("brewery already saved")
	ErrNotFound   = errors.New("favorite not found")
)

const defaultTimeout = 10 * time.Second

// Client talks to a running BrewFinder server.
type Client struct {
	baseURL string
	client  *http.Client
}

func New(conf configs.Client) *Client {
	timeout := time.Duration(conf.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: strings.TrimSuffix(conf.APIBaseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type createFavoritePayload struct {
	BreweryID   string  `json:"breweryId"`
	Name        string  `json:"name"`
	BreweryType *string `json:"breweryType"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	WebsiteURL  *string `json:"websiteUrl"`
	Note        *string `json:"note"`
}

type updateNotePayload struct {
	Note *string `json:"note"`
}

// NoteResult is the server's response to a note update.
type NoteResult struct {
	Note       *string   `json:"note"`
	UpdatedUtc time.Time `json:"updatedUtc"`
}

func (c *Client) GetFavorites(ctx context.Context) ([]model.Favorite, error) {
	var favorites []model.Favorite
	if err := c.do(ctx, http.MethodGet, "/api/favorites", nil, &favorites); err != nil {
		return nil, err
	}

	return favorites, nil
}

// CreateFavorite saves a brewery from the directory, snapshotting its fields.
func (c *Client) CreateFavorite(ctx context.Context, brewery model.Brewery, note *string) (*model.Favorite, error) {
	payload := createFavoritePayload{
		BreweryID:   brewery.ID,
		Name:        brewery.Name,
		BreweryType: brewery.BreweryType,
		City:        brewery.City,
		State:       brewery.State,
		WebsiteURL:  brewery.WebsiteURL,
		Note:        note,
	}

	favorite := &model.Favorite{}
	if err := c.do(ctx, http.MethodPost, "/api/favorites", payload, favorite); err != nil {
		return nil, err
	}

	return favorite, nil
}

func (c *Client) UpdateNote(ctx context.Context, breweryID string, note *string) (*NoteResult, error) {
	result := &NoteResult{}
	path := fmt.Sprintf("/api/favorites/%s/note", url.PathEscape(breweryID))

	if err := c.do(ctx, http.MethodPut, path, updateNotePayload{Note: note}, result); err != nil {
		return nil, err
	}

	return result, nil
}

func (c *Client) DeleteFavorite(ctx context.Context, breweryID string) error {
	return c.do(ctx, http.MethodDelete, "/api/favorites/"+url.PathEscape(breweryID), nil, nil)
}

func (c *Client) do(ctx context.Context, method string, path string, payload interface{}, out interface{}) error {
	var body io.Reader

	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}

		body = bytes.NewReader(data)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}

	request.Header.Set("Content-Type", "application/json")

	response, err := c.client.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode >= http.StatusBadRequest {
		return apiError(response)
	}

	if out == nil || response.StatusCode == http.StatusNoContent {
		return nil
	}

	return json.NewDecoder(response.Body).Decode(out)
}

func apiError(response *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}

	_ = json.NewDecoder(response.Body).Decode(&payload)

	var base error

	switch response.StatusCode {
	case http.StatusBadRequest:
		base = ErrBadRequest
	case http.StatusNotFound:
		base = ErrNotFound
	case http.StatusConflict:
		base = ErrConflict
	default:
		return fmt.Errorf("unexpected status %d: %s", response.StatusCode, payload.Error)
	}

	if payload.Error != "" {
		return fmt.Errorf("%w: %s", base, payload.Error)
	}

	return base
}
