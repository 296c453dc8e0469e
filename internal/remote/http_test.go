package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/platefeed/platefeed-sync/internal/errs"
	"github.com/platefeed/platefeed-sync/internal/types"
)

func TestHTTPSource_Query(t *testing.T) {
	var gotReq *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(listResponse{
			Records: []types.Record{{ID: "m1", Name: "soup"}},
			Count:   1,
		})
	}))
	defer srv.Close()

	s := NewHTTPSource(srv.Client(), srv.URL)
	tru := true
	recs, err := s.Query(context.Background(), RecordQuery{
		OwnerID:          "u1",
		Date:             "2026-08-28",
		Cuisine:          "thai",
		MachineGenerated: &tru,
		Page:             2,
		PageSize:         20,
	})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(recs) != 1 || recs[0].ID != "m1" {
		t.Fatalf("records = %+v", recs)
	}

	if gotReq.URL.Path != "/api/owners/u1/records" {
		t.Fatalf("path = %q", gotReq.URL.Path)
	}
	q := gotReq.URL.Query()
	if q.Get("date") != "2026-08-28" || q.Get("cuisine") != "thai" ||
		q.Get("machineGenerated") != "true" || q.Get("page") != "2" || q.Get("limit") != "20" {
		t.Fatalf("query params = %v", q)
	}
	if gotReq.Header.Get("X-Request-Id") == "" {
		t.Fatal("request id header missing")
	}
}

func TestHTTPSource_ErrorMapping(t *testing.T) {
	status := http.StatusUnauthorized
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	defer srv.Close()

	s := NewHTTPSource(srv.Client(), srv.URL)
	q := RecordQuery{OwnerID: "u1", PageSize: 20}

	if _, err := s.Query(context.Background(), q); !errors.Is(err, errs.ErrAuthRequired) {
		t.Fatalf("401: want ErrAuthRequired, got %v", err)
	}

	status = http.StatusInternalServerError
	_, err := s.Query(context.Background(), q)
	var re *errs.RemoteError
	if !errors.As(err, &re) || re.StatusCode != 500 {
		t.Fatalf("500: want *RemoteError, got %v", err)
	}
}

func TestHTTPSource_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	s := NewHTTPSource(http.DefaultClient, srv.URL)
	_, err := s.Query(context.Background(), RecordQuery{OwnerID: "u1", PageSize: 20})
	var ne *errs.NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("want *NetworkError, got %v", err)
	}
}

func TestHTTPSource_SetFavorite(t *testing.T) {
	var body map[string]bool
	var method, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	s := NewHTTPSource(srv.Client(), srv.URL)
	if err := s.SetFavorite(context.Background(), "u1", "m7", true); err != nil {
		t.Fatalf("SetFavorite: %v", err)
	}
	if method != http.MethodPatch || path != "/api/owners/u1/records/m7/favorite" {
		t.Fatalf("request = %s %s", method, path)
	}
	if !body["favorite"] {
		t.Fatalf("body = %v", body)
	}
}

func TestHTTPSource_DeleteByDate(t *testing.T) {
	var method, rawQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, rawQuery = r.Method, r.URL.RawQuery
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	s := NewHTTPSource(srv.Client(), srv.URL)
	if err := s.DeleteByDate(context.Background(), "u1", "2026-08-28"); err != nil {
		t.Fatalf("DeleteByDate: %v", err)
	}
	if method != http.MethodDelete || rawQuery != "date=2026-08-28" {
		t.Fatalf("request = %s ?%s", method, rawQuery)
	}

	if err := s.DeleteByDate(context.Background(), "u1", ""); err == nil {
		t.Fatal("empty date must be rejected")
	}
}

func TestHTTPSource_Analyze(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["image"] == "" || req["date"] == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(AnalysisResult{Name: "pasta", Calories: 520, RecordID: "derived_3"})
	}))
	defer srv.Close()

	s := NewHTTPSource(srv.Client(), srv.URL)
	res, err := s.Analyze(context.Background(), "u1", "2026-08-28", "base64data")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.Name != "pasta" || res.RecordID != "derived_3" {
		t.Fatalf("result = %+v", res)
	}

	if _, err := s.Analyze(context.Background(), "u1", "2026-08-28", ""); err == nil {
		t.Fatal("empty image must be rejected")
	}
}
