package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/tutorlens/tutorlens/internal/errs"
)

type sampleRequest struct {
	Email string  `json:"email" validate:"required,email"`
	Name  string  `json:"name" validate:"required,min=2"`
	Score float64 `json:"score" validate:"gte=0,lte=100"`
}

func (r *sampleRequest) Validate() error {
	return Validator.Struct(r)
}

func newTestContext(body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestBindAndValidate_valid(t *testing.T) {
	c := newTestContext(`{"email":"tutor@example.com","name":"Priya","score":85}`)

	payload := new(sampleRequest)
	if err := BindAndValidate(c, payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Email != "tutor@example.com" {
		t.Errorf("email = %q", payload.Email)
	}
}

func TestBindAndValidate_missingFields(t *testing.T) {
	c := newTestContext(`{"score":40}`)

	payload := new(sampleRequest)
	err := BindAndValidate(c, payload)
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
	if len(httpErr.Errors) != 2 {
		t.Fatalf("field errors = %+v, want 2 entries", httpErr.Errors)
	}
	for _, fe := range httpErr.Errors {
		if fe.Error != "is required" {
			t.Errorf("field %q error = %q, want %q", fe.Field, fe.Error, "is required")
		}
	}
}

func TestBindAndValidate_rangeViolation(t *testing.T) {
	c := newTestContext(`{"email":"tutor@example.com","name":"Priya","score":120}`)

	payload := new(sampleRequest)
	err := BindAndValidate(c, payload)
	if err == nil {
		t.Fatal("expected validation error")
	}

	httpErr, ok := err.(*errs.HTTPError)
	if !ok {
		t.Fatalf("expected *errs.HTTPError, got %T", err)
	}
	if len(httpErr.Errors) != 1 {
		t.Fatalf("field errors = %+v", httpErr.Errors)
	}
	if httpErr.Errors[0].Field != "score" {
		t.Errorf("field = %q, want score", httpErr.Errors[0].Field)
	}
	if httpErr.Errors[0].Error != "must not exceed 100" {
		t.Errorf("error = %q", httpErr.Errors[0].Error)
	}
}

func TestBindAndValidate_malformedBody(t *testing.T) {
	c := newTestContext(`{"email":`)

	payload := new(sampleRequest)
	err := BindAndValidate(c, payload)
	if err == nil {
		t.Fatal("expected bind error")
	}

	httpErr, ok := err.(*errs.HTTPError)
	if !ok {
		t.Fatalf("expected *errs.HTTPError, got %T", err)
	}
	if httpErr.Message != "Invalid request payload" {
		t.Errorf("message = %q", httpErr.Message)
	}
}

func TestCustomValidationErrors(t *testing.T) {
	errsList := CustomValidationErrors{
		{Field: "deadline", Message: "must be in the future"},
	}

	msg, fieldErrors := validateStruct(customValidatable{err: errsList})
	if msg != "Validation failed" {
		t.Errorf("msg = %q", msg)
	}
	if len(fieldErrors) != 1 || fieldErrors[0].Field != "deadline" {
		t.Errorf("field errors = %+v", fieldErrors)
	}
}

type customValidatable struct {
	err error
}

func (c customValidatable) Validate() error {
	return c.err
}
