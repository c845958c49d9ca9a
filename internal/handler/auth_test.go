package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/tutorlens/tutorlens/internal/errs"
	"github.com/tutorlens/tutorlens/internal/validation"
)

func newProfileContext(body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPatch, "/api/auth/me", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestUpdateProfileRequest_valid(t *testing.T) {
	c := newProfileContext(`{"name":"Priya Sharma","phone":"+1 (555) 123-4567"}`)

	payload := new(updateProfileRequest)
	if err := validation.BindAndValidate(c, payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Name != "Priya Sharma" {
		t.Errorf("name = %q", payload.Name)
	}
}

func TestUpdateProfileRequest_phoneOptional(t *testing.T) {
	c := newProfileContext(`{"name":"Priya Sharma"}`)

	payload := new(updateProfileRequest)
	if err := validation.BindAndValidate(c, payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdateProfileRequest_rejectsMissingName(t *testing.T) {
	c := newProfileContext(`{"phone":"+15551234567"}`)

	payload := new(updateProfileRequest)
	err := validation.BindAndValidate(c, payload)
	if err == nil {
		t.Fatal("expected validation error")
	}

	httpErr, ok := err.(*errs.HTTPError)
	if !ok {
		t.Fatalf("expected *errs.HTTPError, got %T", err)
	}
	if httpErr.Status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", httpErr.Status)
	}
	if len(httpErr.Errors) != 1 || httpErr.Errors[0].Field != "name" {
		t.Errorf("field errors = %v, want one for name", httpErr.Errors)
	}
}
