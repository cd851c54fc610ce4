// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

package validation

import (
	"strings"
	"testing"
)

type recommendRequest struct {
	ViewerID string `query:"viewer_id" validate:"required,entity_id"`
	Limit    int    `query:"limit" validate:"min=1,max=100"`
}

type trendingRequest struct {
	Window string `json:"window" validate:"oneof=1h 24h 7d"`
	Limit  int    `json:"limit" validate:"gte=1,lte=50"`
	Note   string `validate:"omitempty,max=5"`
}

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()
	if v1 == nil || v1 != v2 {
		t.Error("GetValidator() should return one non-nil instance")
	}
}

func TestValidateStruct_Valid(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
	}{
		{"uuid viewer", &recommendRequest{ViewerID: "0b9a6c1e-3f0e-4d7a-9a51-1c1f0c9f2d11", Limit: 10}},
		{"slug viewer", &recommendRequest{ViewerID: "user_42", Limit: 100}},
		{"trending", &trendingRequest{Window: "7d", Limit: 50}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateStruct(tt.input); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		input     interface{}
		wantField string
		wantTag   string
		wantMsg   string
	}{
		{"missing viewer", &recommendRequest{Limit: 5}, "viewer_id", "required", "viewer_id is required"},
		{"bad viewer chars", &recommendRequest{ViewerID: "a b", Limit: 5}, "viewer_id", "entity_id", "viewer_id must be"},
		{"limit too large", &recommendRequest{ViewerID: "u1", Limit: 101}, "limit", "max", "limit must be at most 100"},
		{"unknown window", &trendingRequest{Window: "30d", Limit: 10}, "window", "oneof", "window must be one of: 1h 24h 7d"},
		{"long note", &trendingRequest{Window: "1h", Limit: 1, Note: "toolong"}, "Note", "max", "Note must be at most 5 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.input)
			if err == nil {
				t.Fatal("expected validation error")
			}
			errs := err.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), err)
			}
			if errs[0].Field() != tt.wantField || errs[0].Tag() != tt.wantTag {
				t.Errorf("field/tag = %s/%s, want %s/%s", errs[0].Field(), errs[0].Tag(), tt.wantField, tt.wantTag)
			}
			if !strings.Contains(errs[0].Error(), tt.wantMsg) {
				t.Errorf("message %q does not contain %q", errs[0].Error(), tt.wantMsg)
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	err := ValidateStruct(&recommendRequest{Limit: 0})
	if err == nil {
		t.Fatal("expected validation error")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q", apiErr.Code)
	}
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Fatalf("Details = %v, want two fields", apiErr.Details)
	}
	if !strings.Contains(apiErr.Message, "viewer_id") || !strings.Contains(apiErr.Message, "limit") {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestToAPIError_Empty(t *testing.T) {
	apiErr := (&RequestValidationError{}).ToAPIError()
	if apiErr.Message != "Validation failed" || apiErr.Details != nil {
		t.Errorf("apiErr = %+v", apiErr)
	}
}
