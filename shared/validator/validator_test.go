package validator_test

import (
	"strings"
	"testing"

	"innkeep/shared/validator"
)

type bookingRequest struct {
	GuestName string `validate:"required"                          json:"guest_name"`
	Email     string `validate:"required,email"                    json:"email"`
	Guests    int    `validate:"gte=1,lte=10"                      json:"guests"`
	Status    string `validate:"oneof=pending confirmed cancelled" json:"status"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        *bookingRequest
		expectError bool
	}{
		{
			name: "valid struct",
			data: &bookingRequest{
				GuestName: "John Doe",
				Email:     "john@example.com",
				Guests:    2,
				Status:    "pending",
			},
			expectError: false,
		},
		{
			name: "missing required field",
			data: &bookingRequest{
				Email:  "john@example.com",
				Guests: 2,
				Status: "pending",
			},
			expectError: true,
		},
		{
			name: "invalid email",
			data: &bookingRequest{
				GuestName: "John Doe",
				Email:     "invalid-email",
				Guests:    2,
				Status:    "pending",
			},
			expectError: true,
		},
		{
			name: "guests above capacity",
			data: &bookingRequest{
				GuestName: "John Doe",
				Email:     "john@example.com",
				Guests:    15,
				Status:    "pending",
			},
			expectError: true,
		},
		{
			name: "invalid status",
			data: &bookingRequest{
				GuestName: "John Doe",
				Email:     "john@example.com",
				Guests:    2,
				Status:    "archived",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(tt.data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       interface{}
		tag         string
		expectError bool
	}{
		{
			name:        "valid required string",
			field:       "room-1",
			tag:         "required",
			expectError: false,
		},
		{
			name:        "empty required string",
			field:       "",
			tag:         "required",
			expectError: true,
		},
		{
			name:        "valid email",
			field:       "guest@example.com",
			tag:         "email",
			expectError: false,
		},
		{
			name:        "invalid email",
			field:       "invalid-email",
			tag:         "email",
			expectError: true,
		},
		{
			name:        "valid date",
			field:       "2025-12-24",
			tag:         "datetime=2006-01-02",
			expectError: false,
		},
		{
			name:        "invalid date",
			field:       "24/12/2025",
			tag:         "datetime=2006-01-02",
			expectError: true,
		},
		{
			name:        "valid oneof",
			field:       "confirmed",
			tag:         "oneof=pending confirmed cancelled",
			expectError: false,
		},
		{
			name:        "invalid oneof",
			field:       "archived",
			tag:         "oneof=pending confirmed cancelled",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{
			name:        "valid JSON",
			jsonBody:    `{"guest_name":"John Doe","email":"john@example.com","guests":2,"status":"pending"}`,
			expectError: false,
		},
		{
			name:        "invalid field value",
			jsonBody:    `{"guest_name":"John Doe","email":"invalid-email","guests":2,"status":"pending"}`,
			expectError: true,
		},
		{
			name:        "malformed JSON",
			jsonBody:    `{"guest_name":"John Doe","email":}`,
			expectError: true,
		},
		{
			name:        "empty JSON",
			jsonBody:    `{}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := strings.NewReader(tt.jsonBody)
			var data bookingRequest
			err := validator.Validate(reader, &data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidationMessages(t *testing.T) {
	data := &bookingRequest{}
	err := validator.ValidateStruct(data)

	if err == nil {
		t.Fatal("expected validation error for empty struct")
	}

	errorMsg := err.Error()

	if !strings.Contains(errorMsg, "required") {
		t.Errorf("expected descriptive error message containing 'required', got: %s", errorMsg)
	}
}
