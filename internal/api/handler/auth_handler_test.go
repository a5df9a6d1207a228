package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/giftvault/catalog-api/internal/core/domain"
	"github.com/giftvault/catalog-api/internal/core/ports"
)

type stubAuthService struct {
	loginFn    func(ctx context.Context, login, password string) (*ports.LoginResult, error)
	registerFn func(ctx context.Context, login, password string) (*domain.User, error)
}

func (s *stubAuthService) Login(ctx context.Context, login, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, login, password)
}

func (s *stubAuthService) Register(ctx context.Context, login, password string) (*domain.User, error) {
	return s.registerFn(ctx, login, password)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, login, password string) (*ports.LoginResult, error) {
			if login != "alice" || password != "s3cret" {
				t.Fatalf("unexpected args: %s %s", login, password)
			}
			return &ports.LoginResult{Login: "alice", Token: "token123"}, nil
		},
	}
	h := NewAuthHandler(stub)

	req := jsonRequest(http.MethodPost, "/user/login", `{"login":"alice","password":"s3cret"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Login != "alice" || resp.Token != "token123" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Login_MissingPassword(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, login, password string) (*ports.LoginResult, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	req := jsonRequest(http.MethodPost, "/user/login", `{"login":"alice"}`)
	c := e.NewContext(req, httptest.NewRecorder())

	err := h.Login(c)
	var required domain.RequiredFieldError
	if !errors.As(err, &required) || required.Field != "password" {
		t.Fatalf("expected required password error, got %v", err)
	}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, login, password string) (*domain.User, error) {
			return &domain.User{
				ID:    10,
				Login: login,
				Roles: []domain.Role{{ID: 1, Name: domain.RoleUser}},
			}, nil
		},
	}
	h := NewAuthHandler(stub)

	req := jsonRequest(http.MethodPost, "/user", `{"login":"bob","password":"s3cret"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["login"] != "bob" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, ok := resp["passwordHash"]; ok {
		t.Fatal("password hash leaked into the response")
	}
	links, ok := resp["_links"].(map[string]any)
	if !ok || links["self"] != "/user/10" {
		t.Fatalf("missing self link: %+v", resp)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, login, password string) (*domain.User, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	req := jsonRequest(http.MethodPost, "/user", "not-json")
	c := e.NewContext(req, httptest.NewRecorder())

	err := h.Register(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}
