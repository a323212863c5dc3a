package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/yair/eventscout/pkg/domain"
	"github.com/yair/eventscout/pkg/logging"
)

const defaultBaseURL = "https://app.ticketmaster.com/discovery/v2"

// TicketmasterClient talks to the Ticketmaster Discovery API. Every call is
// a single attempt: failures are returned to the caller, never retried.
type TicketmasterClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

type TicketmasterConfig struct {
	APIKey            string // Ticketmaster Discovery API key
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64 // zero disables pacing
	Logger            *log.Logger
}

func NewTicketmasterClient(config TicketmasterConfig) (*TicketmasterClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("ticketmaster API key is required")
	}
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if config.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RequestsPerSecond), 1)
	}

	return &TicketmasterClient{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		apiKey:     config.APIKey,
		httpClient: &http.Client{Timeout: config.Timeout},
		limiter:    limiter,
		logger:     logging.OrDiscard(config.Logger),
	}, nil
}

type ticketmasterEvent struct {
	Name       string              `json:"name"`
	ID         string              `json:"id"`
	URL        string              `json:"url"`
	Images     []ticketmasterImage `json:"images"`
	Dates      ticketmasterDates   `json:"dates"`
	Info       string              `json:"info,omitempty"`
	PleaseNote string              `json:"pleaseNote,omitempty"`
	Embedded   struct {
		Venues []ticketmasterVenue `json:"venues"`
	} `json:"_embedded"`
}

type ticketmasterImage struct {
	Ratio  string `json:"ratio"`
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ticketmasterDates struct {
	Start ticketmasterEventDate `json:"start"`
}

type ticketmasterEventDate struct {
	LocalDate string `json:"localDate"`
	LocalTime string `json:"localTime"`
}

type ticketmasterVenue struct {
	Name    string              `json:"name"`
	ID      string              `json:"id"`
	City    ticketmasterCity    `json:"city"`
	Country ticketmasterCountry `json:"country"`
}

type ticketmasterCity struct {
	Name string `json:"name"`
}

type ticketmasterCountry struct {
	Name        string `json:"name"`
	CountryCode string `json:"countryCode"`
}

type ticketmasterClassification struct {
	Segment *ticketmasterClassificationItem `json:"segment,omitempty"`
	Genre   *ticketmasterClassificationItem `json:"genre,omitempty"`
}

type ticketmasterClassificationItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ticketmasterEventsResponse struct {
	Embedded *struct {
		Events []ticketmasterEvent `json:"events"`
	} `json:"_embedded"`
	Page ticketmasterPage `json:"page"`
}

type ticketmasterClassificationsResponse struct {
	Embedded *struct {
		Classifications []ticketmasterClassification `json:"classifications"`
	} `json:"_embedded"`
}

type ticketmasterPage struct {
	Size          int `json:"size"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	Number        int `json:"number"`
}

// SearchEvents fetches one page of events. Blank filter fields are left out
// of the query so the catalog treats them as unconstrained.
func (c *TicketmasterClient) SearchEvents(ctx context.Context, filter domain.Filter, page int) ([]domain.Event, error) {
	if page < 0 {
		return nil, domain.ErrInvalidRequest
	}

	params := url.Values{}
	setIfPresent(params, "keyword", filter.Keyword)
	setIfPresent(params, "city", filter.City)
	setIfPresent(params, "segmentId", filter.SegmentID)
	params.Set("page", strconv.Itoa(page))
	params.Set("size", strconv.Itoa(domain.PageSize))

	var eventsResp ticketmasterEventsResponse
	if _, err := c.get(ctx, "search events", "/events.json", params, &eventsResp); err != nil {
		return nil, err
	}

	if eventsResp.Embedded == nil {
		return []domain.Event{}, nil
	}

	events := make([]domain.Event, 0, len(eventsResp.Embedded.Events))
	for _, tmEvent := range eventsResp.Embedded.Events {
		events = append(events, c.convertToEvent(tmEvent))
	}

	c.logger.Debug("catalog page fetched",
		"page", page,
		"events", len(events),
		"total_pages", eventsResp.Page.TotalPages,
	)

	return events, nil
}

func (c *TicketmasterClient) ListClassifications(ctx context.Context) ([]domain.Classification, error) {
	var classResp ticketmasterClassificationsResponse
	if _, err := c.get(ctx, "list classifications", "/classifications.json", url.Values{}, &classResp); err != nil {
		return nil, err
	}

	if classResp.Embedded == nil {
		return []domain.Classification{}, nil
	}

	classifications := make([]domain.Classification, 0, len(classResp.Embedded.Classifications))
	for _, tmClass := range classResp.Embedded.Classifications {
		var class domain.Classification
		if tmClass.Segment != nil {
			class.Segment = &domain.Segment{ID: tmClass.Segment.ID, Name: tmClass.Segment.Name}
		}
		if tmClass.Genre != nil {
			class.Genre = &domain.Genre{ID: tmClass.Genre.ID, Name: tmClass.Genre.Name}
		}
		classifications = append(classifications, class)
	}

	return classifications, nil
}

// GetGenre is a best-effort lookup. It never returns an error directly;
// failures are logged and carried in the result.
func (c *TicketmasterClient) GetGenre(ctx context.Context, id string) domain.GenreResult {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.GenreResult{Err: domain.ErrInvalidRequest}
	}

	var genre ticketmasterClassificationItem
	status, err := c.get(ctx, "get genre", "/classifications/genres/"+url.PathEscape(id)+".json", url.Values{}, &genre)
	if status == http.StatusNotFound {
		return domain.GenreResult{}
	}
	if err != nil {
		c.logger.Warn("genre lookup failed", "id", id, "err", err)
		return domain.GenreResult{Err: err}
	}

	return domain.GenreResult{
		Genre: domain.Genre{ID: genre.ID, Name: genre.Name},
		Found: true,
	}
}

func (c *TicketmasterClient) GetEvent(ctx context.Context, ticketmasterID string) (*domain.Event, error) {
	ticketmasterID = strings.TrimSpace(ticketmasterID)
	if ticketmasterID == "" {
		return nil, domain.ErrInvalidRequest
	}

	var tmEvent ticketmasterEvent
	status, err := c.get(ctx, "get event", "/events/"+url.PathEscape(ticketmasterID)+".json", url.Values{}, &tmEvent)
	if status == http.StatusNotFound {
		return nil, domain.ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}

	event := c.convertToEvent(tmEvent)
	return &event, nil
}

// get issues one GET and decodes a 200 body into out. The status code is
// returned alongside any error so callers can special-case 404.
func (c *TicketmasterClient) get(ctx context.Context, op, path string, params url.Values, out interface{}) (int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, &domain.RequestError{Op: op, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return 0, &domain.RequestError{Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	params.Set("apikey", c.apiKey)
	req.URL.RawQuery = params.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, &domain.RequestError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return resp.StatusCode, &domain.RequestError{Op: op, StatusCode: resp.StatusCode, Err: domain.ErrRateLimitExceeded}
	case resp.StatusCode == http.StatusNotFound:
		return resp.StatusCode, &domain.RequestError{Op: op, StatusCode: resp.StatusCode, Err: domain.ErrNotFound}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return resp.StatusCode, &domain.RequestError{Op: op, StatusCode: resp.StatusCode, Err: domain.ErrExternalAPIFailure}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, &domain.RequestError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return resp.StatusCode, nil
}

func (c *TicketmasterClient) convertToEvent(tmEvent ticketmasterEvent) domain.Event {
	event := domain.Event{
		ID:        tmEvent.ID,
		Name:      tmEvent.Name,
		StartDate: tmEvent.Dates.Start.LocalDate,
		Info:      PlainText(tmEvent.Info),
		URL:       tmEvent.URL,
	}
	if event.Info == "" {
		event.Info = PlainText(tmEvent.PleaseNote)
	}

	for _, img := range tmEvent.Images {
		event.Images = append(event.Images, domain.Image{
			URL:    img.URL,
			Ratio:  img.Ratio,
			Width:  img.Width,
			Height: img.Height,
		})
	}

	for _, tmVenue := range tmEvent.Embedded.Venues {
		event.Venues = append(event.Venues, domain.Venue{
			Name:    tmVenue.Name,
			City:    tmVenue.City.Name,
			Country: tmVenue.Country.Name,
		})
	}

	return event
}

func setIfPresent(params url.Values, key, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	params.Set(key, value)
}
