package playauto

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fr0stylo/orderlens/internal/app/domain"
	"github.com/fr0stylo/orderlens/internal/observability"
)

// Search window and paging are fixed.
const (
	searchLookbackDays  = 90
	searchLookaheadDays = 1
	searchPageSize      = 500
	searchDateType      = "wdate"
	searchMultiType     = "invoice_no"
	searchStatusAll     = "ALL"
	searchDayLayout     = "2006-01-02"
)

type searchRequest struct {
	StartDate       string   `json:"sdate"`
	EndDate         string   `json:"edate"`
	Start           int      `json:"start"`
	Length          int      `json:"length"`
	DateType        string   `json:"date_type"`
	Status          []string `json:"status"`
	MultiType       string   `json:"multi_type"`
	MultiSearchWord string   `json:"multi_search_word"`
}

func newSearchRequest(now time.Time, term string) searchRequest {
	return searchRequest{
		StartDate:       now.AddDate(0, 0, -searchLookbackDays).Format(searchDayLayout),
		EndDate:         now.AddDate(0, 0, searchLookaheadDays).Format(searchDayLayout),
		Start:           0,
		Length:          searchPageSize,
		DateType:        searchDateType,
		Status:          []string{searchStatusAll},
		MultiType:       searchMultiType,
		MultiSearchWord: term,
	}
}

// Search queries resource for records whose invoice number matches term.
// A 401 triggers one re-authentication and one retry of the same body.
func (c *Client) Search(ctx context.Context, resource, term string) (domain.SearchPayload, error) {
	resource = strings.Trim(strings.TrimSpace(resource), "/")
	if resource == "" {
		return domain.SearchPayload{}, errors.New("playauto: resource is required")
	}

	ctx, span := observability.StartUpstreamSpan(ctx, "search", resource)
	defer span.End()

	payload, err := c.search(ctx, span, resource, term)
	if err != nil {
		span.RecordError(err)
		return domain.SearchPayload{}, err
	}
	return payload, nil
}

func (c *Client) search(ctx context.Context, span observability.Span, resource, term string) (domain.SearchPayload, error) {
	token, err := c.authenticatedToken(ctx)
	if err != nil {
		return domain.SearchPayload{}, err
	}

	body, err := json.Marshal(newSearchRequest(c.now(), term))
	if err != nil {
		return domain.SearchPayload{}, fmt.Errorf("encode search request: %w", err)
	}

	status, payload, err := c.postSearch(ctx, resource, token, body)
	if err != nil {
		return domain.SearchPayload{}, err
	}

	if status == http.StatusUnauthorized {
		c.logger.InfoContext(ctx, "playauto token rejected, re-authenticating", slog.String("resource", resource))
		c.Expire()
		token, err = c.AcquireToken(ctx)
		if err != nil {
			return domain.SearchPayload{}, err
		}
		status, payload, err = c.postSearch(ctx, resource, token, body)
		if err != nil {
			return domain.SearchPayload{}, err
		}
	}
	span.SetStatusCode(status)

	if status != http.StatusOK {
		return domain.SearchPayload{}, &DataFetchError{Resource: resource, StatusCode: status}
	}
	return payload, nil
}

func (c *Client) postSearch(ctx context.Context, resource, token string, body []byte) (int, domain.SearchPayload, error) {
	endpoint := c.baseURL + "/" + url.PathEscape(resource)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, domain.SearchPayload{}, fmt.Errorf("create search request: %w", err)
	}
	c.setHeaders(req, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, domain.SearchPayload{}, fmt.Errorf("do search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, domain.SearchPayload{}, nil
	}

	var payload domain.SearchPayload
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return resp.StatusCode, domain.SearchPayload{}, fmt.Errorf("decode search response: %w", err)
	}
	return resp.StatusCode, payload, nil
}
