package validator

import (
	"strings"
	"testing"
)

type lectureForm struct {
	LectureName string  `json:"lectureName" validate:"required,max=100"`
	Credit      float64 `json:"credit" validate:"gte=0.5,lte=6"`
	StartTime   string  `json:"startTime" validate:"required,datetime=15:04"`
}

func TestValidateStruct_Valid(t *testing.T) {
	form := lectureForm{LectureName: "Data Structures", Credit: 3, StartTime: "09:00"}
	if err := ValidateStruct(&form); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
}

func TestFormatValidationError_UsesJSONNames(t *testing.T) {
	form := lectureForm{Credit: 7, StartTime: "9am"}

	err := ValidateStruct(&form)
	if err == nil {
		t.Fatal("Expected validation error, got nil")
	}

	formatted := FormatValidationError(err)
	if len(formatted) != 3 {
		t.Fatalf("Expected 3 validation errors, got %d: %+v", len(formatted), formatted)
	}

	fields := map[string]string{}
	for _, e := range formatted {
		fields[e.Field] = e.Tag
	}
	if fields["lectureName"] != "required" {
		t.Errorf("Expected lectureName required error, got %q", fields["lectureName"])
	}
	if fields["credit"] != "lte" {
		t.Errorf("Expected credit lte error, got %q", fields["credit"])
	}
	if fields["startTime"] != "datetime" {
		t.Errorf("Expected startTime datetime error, got %q", fields["startTime"])
	}
}

func TestSummary(t *testing.T) {
	err := ValidateStruct(&lectureForm{Credit: 1, StartTime: "10:00"})
	if err == nil {
		t.Fatal("Expected validation error, got nil")
	}

	summary := Summary(err)
	if !strings.Contains(summary, "lectureName is required") {
		t.Errorf("Expected summary to mention lectureName, got %q", summary)
	}
}
