package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/platefeed/platefeed-sync/internal/errs"
	"github.com/platefeed/platefeed-sync/internal/types"
)

// HTTPSource talks to the record API over HTTP. The http.Client is owned by
// the caller so transport wrappers (auth, debug) apply here too.
type HTTPSource struct {
	HTTP    *http.Client
	BaseURL string
}

// NewHTTPSource wires a source against baseURL.
func NewHTTPSource(httpClient *http.Client, baseURL string) *HTTPSource {
	return &HTTPSource{HTTP: httpClient, BaseURL: baseURL}
}

type listResponse struct {
	Records []types.Record `json:"records"`
	Count   int            `json:"count"`
}

// Query implements Source.
func (s *HTTPSource) Query(ctx context.Context, q RecordQuery) ([]types.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateOwnerID(q.OwnerID); err != nil {
		return nil, err
	}
	if err := types.ValidateDate(q.Date); err != nil {
		return nil, err
	}

	params := url.Values{}
	if q.Date != "" {
		params.Set("date", q.Date)
	}
	if q.Cuisine != "" {
		params.Set("cuisine", q.Cuisine)
	}
	if q.DietaryRestriction != "" {
		params.Set("dietaryRestriction", q.DietaryRestriction)
	}
	if q.MachineGenerated != nil {
		params.Set("machineGenerated", strconv.FormatBool(*q.MachineGenerated))
	}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("limit", strconv.Itoa(q.PageSize))
	params.Set("order", "favorite.desc,id.desc")

	u := fmt.Sprintf("%s/api/owners/%s/records?%s", s.BaseURL, url.PathEscape(q.OwnerID), params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	stampRequest(req)

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return nil, errs.Network("query records", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errs.FromStatus("query records", resp.StatusCode, readBody(resp.Body))
	}
	var lr listResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, err
	}
	return lr.Records, nil
}

// SetFavorite implements Source.
func (s *HTTPSource) SetFavorite(ctx context.Context, ownerID, recordID string, favorite bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := types.ValidateOwnerID(ownerID); err != nil {
		return err
	}
	body, err := json.Marshal(map[string]bool{"favorite": favorite})
	if err != nil {
		return err
	}
	u := fmt.Sprintf("%s/api/owners/%s/records/%s/favorite",
		s.BaseURL, url.PathEscape(ownerID), url.PathEscape(recordID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, u, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	stampRequest(req)

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return errs.Network("set favorite", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return errs.FromStatus("set favorite", resp.StatusCode, readBody(resp.Body))
	}
	return nil
}

// DeleteByDate implements Source.
func (s *HTTPSource) DeleteByDate(ctx context.Context, ownerID, date string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := types.ValidateOwnerID(ownerID); err != nil {
		return err
	}
	if date == "" {
		return fmt.Errorf("date is required")
	}
	if err := types.ValidateDate(date); err != nil {
		return err
	}
	u := fmt.Sprintf("%s/api/owners/%s/records?date=%s",
		s.BaseURL, url.PathEscape(ownerID), url.QueryEscape(date))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return err
	}
	stampRequest(req)

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return errs.Network("delete records", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return errs.FromStatus("delete records", resp.StatusCode, readBody(resp.Body))
	}
	return nil
}

// Analyze implements Source.
func (s *HTTPSource) Analyze(ctx context.Context, ownerID, date, encodedImage string) (*AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateOwnerID(ownerID); err != nil {
		return nil, err
	}
	if err := types.ValidateDate(date); err != nil {
		return nil, err
	}
	if encodedImage == "" {
		return nil, fmt.Errorf("image payload is required")
	}
	body, err := json.Marshal(map[string]string{"image": encodedImage, "date": date})
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/api/owners/%s/analysis", s.BaseURL, url.PathEscape(ownerID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	stampRequest(req)

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return nil, errs.Network("analyze image", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, errs.FromStatus("analyze image", resp.StatusCode, readBody(resp.Body))
	}
	var ar AnalysisResult
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return nil, err
	}
	return &ar, nil
}

func stampRequest(req *http.Request) {
	req.Header.Set("X-Request-Id", uuid.NewString())
}

func readBody(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 4096))
	return string(b)
}
