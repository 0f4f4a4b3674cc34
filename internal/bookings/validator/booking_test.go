package validator

import (
	"strings"
	"testing"
	"time"

	"roomly/pkg/logger"
	"roomly/pkg/model"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
}

func validBooking(t *testing.T) *model.BookingRequest {
	t.Helper()
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	slot, err := model.NewTimeSlot(start, start.Add(time.Hour), 4)
	if err != nil {
		t.Fatalf("failed to build slot: %v", err)
	}
	return &model.BookingRequest{
		RoomID:            "65f1a0b2c3d4e5f6a7b8c9d0",
		TimeSlot:          slot,
		ParticipantEmails: []string{"alice@example.com", "bob@example.com"},
		Description:       "Quarterly planning",
		Status:            model.StatusDraft,
		CreatedBy:         "emp-1",
	}
}

func TestValidate(t *testing.T) {
	v := NewBookingValidator(testLogger())

	cases := []struct {
		name    string
		mutate  func(b *model.BookingRequest)
		wantErr bool
	}{
		{"valid booking", func(b *model.BookingRequest) {}, false},
		{"missing room id", func(b *model.BookingRequest) { b.RoomID = "" }, true},
		{"room id not object id", func(b *model.BookingRequest) { b.RoomID = "not-hex" }, true},
		{"no participants", func(b *model.BookingRequest) { b.ParticipantEmails = []string{} }, true},
		{"invalid email", func(b *model.BookingRequest) { b.ParticipantEmails = []string{"nope"} }, true},
		{"mixed emails one invalid", func(b *model.BookingRequest) {
			b.ParticipantEmails = []string{"alice@example.com", "nope"}
		}, true},
		{"missing description", func(b *model.BookingRequest) { b.Description = "" }, true},
		{"description too long", func(b *model.BookingRequest) { b.Description = strings.Repeat("x", 1001) }, true},
		{"description at limit", func(b *model.BookingRequest) { b.Description = strings.Repeat("x", 1000) }, false},
		{"unknown status", func(b *model.BookingRequest) { b.Status = "archived" }, true},
		{"missing created by", func(b *model.BookingRequest) { b.CreatedBy = "" }, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			booking := validBooking(t)
			tc.mutate(booking)
			err := v.Validate(booking)
			if tc.wantErr && err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidate_BlankDescriptionAfterTags(t *testing.T) {
	v := NewBookingValidator(testLogger())

	booking := validBooking(t)
	booking.Description = "   "
	if err := v.Validate(booking); err == nil {
		t.Fatal("expected whitespace-only description to fail")
	}
}
