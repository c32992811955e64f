package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"courierdispatch/internal/domain"
)

type fakeRouter struct {
	route domain.Route
	miles float64
	err   error
}

func (f *fakeRouter) Route(ctx context.Context, start, end domain.Coord) (domain.Route, float64, error) {
	return f.route, f.miles, f.err
}

func postJSON(t *testing.T, handler http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func TestRouteHandlerSuccess(t *testing.T) {
	a := domain.Coord{LatText: "0.0", LonText: "0.0", Lat: 0, Lon: 0}
	b := domain.Coord{LatText: "1.0", LonText: "1.0", Lat: 1, Lon: 1}
	route := domain.Route{{Start: a, End: b, Name: "Main St"}}

	h := &RouteHandler{Router: &fakeRouter{route: route, miles: 3.5}}

	rr := postJSON(t, h.Route, "/route", `{"start":{"lat":"0.0","lon":"0.0"},"end":{"lat":"1.0","lon":"1.0"}}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Miles    float64 `json:"miles"`
		Segments []any   `json:"segments"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Miles != 3.5 {
		t.Errorf("miles = %f, want 3.5", resp.Miles)
	}
	if len(resp.Segments) != 1 {
		t.Errorf("segments = %d, want 1", len(resp.Segments))
	}
}

func TestRouteHandlerBadCoord(t *testing.T) {
	h := &RouteHandler{Router: &fakeRouter{err: domain.ErrBadCoord}}

	rr := postJSON(t, h.Route, "/route", `{"start":{"lat":"0.0","lon":"0.0"},"end":{"lat":"99.0","lon":"99.0"}}`)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rr.Code)
	}
}

func TestRouteHandlerNoRoute(t *testing.T) {
	h := &RouteHandler{Router: &fakeRouter{err: domain.ErrNoRoute}}

	rr := postJSON(t, h.Route, "/route", `{"start":{"lat":"0.0","lon":"0.0"},"end":{"lat":"1.0","lon":"1.0"}}`)

	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rr.Code)
	}
}

func TestRouteHandlerRejectsTrailingJSON(t *testing.T) {
	h := &RouteHandler{Router: &fakeRouter{}}

	rr := postJSON(t, h.Route, "/route", `{"start":{"lat":"0.0","lon":"0.0"},"end":{"lat":"1.0","lon":"1.0"}}{}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestRouteHandlerWrongMethod(t *testing.T) {
	h := &RouteHandler{Router: &fakeRouter{}}

	req := httptest.NewRequest(http.MethodGet, "/route", nil)
	rr := httptest.NewRecorder()
	h.Route(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rr.Code)
	}
}
