package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Test struct with validation tags
type TestRequest struct {
	Name       string `json:"productName" validate:"required,max=255"`
	Amount     *int   `json:"productAmount" validate:"required,gte=0"`
	CategoryID int    `json:"categoryId" validate:"required,gt=0"`
}

func newJSONRequest(body interface{}) *http.Request {
	reqBody, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", "/test", bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// Feature: catalog-manager, Property: Required field validation works
func TestProperty_RequiredFieldValidationWorks(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("missing required fields are rejected", prop.ForAll(
		func(includeName bool, includeAmount bool, includeCategory bool) bool {
			reqMap := make(map[string]interface{})

			if includeName {
				reqMap["productName"] = "Yellow bricks"
			}
			if includeAmount {
				reqMap["productAmount"] = 0
			}
			if includeCategory {
				reqMap["categoryId"] = 1
			}

			var testReq TestRequest
			err := DecodeAndValidate(newJSONRequest(reqMap), &testReq)

			if includeName && includeAmount && includeCategory {
				return err == nil
			}
			return err != nil
		},
		gen.Bool(),
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Feature: catalog-manager, Property: Negative amounts are rejected
func TestProperty_AmountRangeValidation(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("amount below zero is rejected", prop.ForAll(
		func(amount int) bool {
			var testReq TestRequest
			err := DecodeAndValidate(newJSONRequest(map[string]interface{}{
				"productName":   "Sand",
				"productAmount": amount,
				"categoryId":    3,
			}), &testReq)

			if amount >= 0 {
				return err == nil
			}
			return err != nil
		},
		gen.IntRange(-1000, 1000),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestValidationErrorsUseJSONNames(t *testing.T) {
	var testReq TestRequest
	err := DecodeAndValidate(newJSONRequest(map[string]interface{}{
		"productName":   strings.Repeat("x", 256),
		"productAmount": 1,
	}), &testReq)

	errs := FormatValidationErrors(err)
	fields := map[string]string{}
	for _, e := range errs {
		fields[e.Field] = e.Message
	}

	if fields["productName"] != "Value is too long" {
		t.Errorf("expected a length error on productName, got %v", errs)
	}
	if fields["categoryId"] != "This field is required" {
		t.Errorf("expected a required error on categoryId, got %v", errs)
	}
}

func TestRespondWithDecodeError(t *testing.T) {
	var testReq TestRequest
	req := httptest.NewRequest("POST", "/test", strings.NewReader("{not json"))
	err := DecodeAndValidate(req, &testReq)

	w := httptest.NewRecorder()
	RespondWithDecodeError(w, err)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var response ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if response.Error.Message != "invalid request body" {
		t.Errorf("unexpected message %q", response.Error.Message)
	}
}
