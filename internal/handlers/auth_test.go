package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"walletapp/internal/service"
)

func postJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestSignUp_Success(t *testing.T) {
	auth := &mockAuth{signUpToken: "tok123"}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	w := postJSON(r, "/api/v1/user/signup",
		`{"username":"a@b.com","firstName":"A","lastName":"B","password":"p"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("signup status=%d, body=%s", w.Code, w.Body.String())
	}
	var m map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if m["token"] != "tok123" {
		t.Fatalf("expected token tok123, got %v", m["token"])
	}
	if m["message"] == "" {
		t.Fatalf("expected a confirmation message, got %v", m["message"])
	}
	if auth.lastSignUp.Username != "a@b.com" || auth.lastSignUp.Password != "p" {
		t.Fatalf("unexpected signup params: %+v", auth.lastSignUp)
	}
}

func TestSignUp_InvalidInput(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing fields", `{"username":"a@b.com"}`},
		{"username not an email", `{"username":"nope","firstName":"A","lastName":"B","password":"p"}`},
		{"wrong types", `{"username":1,"firstName":"A","lastName":"B","password":"p"}`},
		{"not json", `plain text`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := &mockAuth{signUpToken: "never"}
			r := newTestRouter(&service.Service{Authorization: auth})

			w := postJSON(r, "/api/v1/user/signup", tc.body)
			if w.Code != http.StatusLengthRequired {
				t.Fatalf("expected 411 for invalid signup body, got %d (body=%s)", w.Code, w.Body.String())
			}
			if auth.lastSignUp.Username != "" {
				t.Fatalf("service should not be called on invalid input")
			}
		})
	}
}

func TestSignUp_DuplicateUsername(t *testing.T) {
	auth := &mockAuth{signUpErr: service.ErrDuplicateUsername}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := postJSON(r, "/api/v1/user/signup",
		`{"username":"a@b.com","firstName":"A","lastName":"B","password":"p"}`)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate username, got %d", w.Code)
	}
}

func TestSignIn_Success(t *testing.T) {
	auth := &mockAuth{signInToken: "tok456"}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := postJSON(r, "/api/v1/user/signin", `{"username":"a@b.com","password":"p"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("signin status=%d, body=%s", w.Code, w.Body.String())
	}
	var m map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if m["token"] != "tok456" {
		t.Fatalf("expected token tok456, got %v", m["token"])
	}
	if auth.lastSignInUsername != "a@b.com" || auth.lastSignInPassword != "p" {
		t.Fatalf("unexpected signin args: %q/%q", auth.lastSignInUsername, auth.lastSignInPassword)
	}
}

func TestSignIn_InvalidInput(t *testing.T) {
	auth := &mockAuth{}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := postJSON(r, "/api/v1/user/signin", `{"username":"not-an-email","password":"p"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid signin body, got %d", w.Code)
	}
}

func TestSignIn_BadCredentials(t *testing.T) {
	auth := &mockAuth{signInErr: service.ErrInvalidCredentials}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := postJSON(r, "/api/v1/user/signin", `{"username":"a@b.com","password":"wrong"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad credentials, got %d", w.Code)
	}
	var out struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Error != errMsgBadCreds {
		t.Fatalf("error message: got %q, want %q", out.Error, errMsgBadCreds)
	}
}
