package validation

import (
	"errors"
	"testing"
)

type sample struct {
	RoomID string `json:"roomId" validate:"required,mongodb"`
	Seats  int    `json:"seats" validate:"min=1,max=4"`
	Hidden string `json:"-" validate:"required"`
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	v := New[sample]()

	err := v.Validate(&sample{RoomID: "nope", Seats: 9})
	var errs Errors
	if !errors.As(err, &errs) {
		t.Fatalf("expected Errors, got %v", err)
	}

	want := map[string]string{
		"roomId": "roomId must be a valid MongoDB ObjectID",
		"seats":  "seats must be at most 4",
		"Hidden": "Hidden is required",
	}
	got := errs.Details()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for field, msg := range want {
		if got[field] != msg {
			t.Errorf("%s: got %q, want %q", field, got[field], msg)
		}
	}
}

func TestValidate_Valid(t *testing.T) {
	v := New[sample]()
	if err := v.Validate(&sample{RoomID: "507f1f77bcf86cd799439011", Seats: 2, Hidden: "x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDetailsOf(t *testing.T) {
	if got := DetailsOf(errors.New("boom")); got["error"] != "boom" {
		t.Errorf("plain error details = %v", got)
	}
	errs := Errors{{Field: "roomId", Message: "roomId is required"}}
	if got := DetailsOf(errs); got["roomId"] != "roomId is required" {
		t.Errorf("field details = %v", got)
	}
}
