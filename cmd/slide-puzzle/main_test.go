package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGetCookieNew(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/api/state", nil)
	sid := getCookie(w, r)
	if !strings.HasPrefix(sid, "httpx-") {
		t.Errorf("New session ID is %q, expected httpx- prefix", sid)
	}
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != cookieName || cookies[0].Value != sid {
		t.Errorf("New session didn't set the cookie: %v", cookies)
	}
}

func TestGetCookieExisting(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/api/state", nil)
	r.AddCookie(&http.Cookie{Name: cookieName, Value: "httpx-abc123"})
	if sid := getCookie(w, r); sid != "httpx-abc123" {
		t.Errorf("Existing cookie gave session ID %q", sid)
	}
	if cookies := w.Result().Cookies(); len(cookies) != 0 {
		t.Errorf("Existing cookie was replaced: %v", cookies)
	}
}

// A cookie minted for one forwarded protocol must not carry a
// session across to the other.
func TestGetCookieProtocolMismatch(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/api/state", nil)
	r.Header.Set("X-Forwarded-Proto", "https")
	r.AddCookie(&http.Cookie{Name: cookieName, Value: "http-abc123"})
	sid := getCookie(w, r)
	if !strings.HasPrefix(sid, "https-") {
		t.Errorf("Cross-protocol cookie kept session ID %q", sid)
	}
	if cookies := w.Result().Cookies(); len(cookies) != 1 {
		t.Errorf("Cross-protocol request didn't set a new cookie")
	}
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	writeJSON(struct {
		Moves []int `json:"moves"`
	}{[]int{1, 2}}, http.StatusOK, w)
	if w.Code != http.StatusOK {
		t.Errorf("Status is %d, expected %d", w.Code, http.StatusOK)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content type is %q", ct)
	}
	var body struct {
		Moves []int `json:"moves"`
	}
	if e := json.NewDecoder(w.Body).Decode(&body); e != nil {
		t.Fatalf("Response didn't decode: %v", e)
	}
	if len(body.Moves) != 2 {
		t.Errorf("Response moves are %v", body.Moves)
	}
}
