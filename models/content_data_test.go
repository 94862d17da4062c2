package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestValidateContentData_AllTypesAccept(t *testing.T) {
	tests := []struct {
		contentType string
		payload     string
	}{
		{TypeText, `{"text":"Hello"}`},
		{TypeImage, `{"imageUrl":"https://example.com/a.png","imageCaption":"cap"}`},
		{TypeImage, `{"imageUrl":"https://example.com/a.png"}`},
		{TypeVideo, `{"videoUrl":"https://example.com/v.mp4"}`},
		{TypeAudio, `{"audioUrl":"https://example.com/a.mp3"}`},
		{TypeCitation, `{"citationText":"x"}`},
		{TypeCitation, `{"citationText":"x","citationSource":"src"}`},
		{TypeLink, `{"linkUrl":"https://example.com","linkDescription":"d"}`},
	}

	for _, tt := range tests {
		out, err := ValidateContentData(tt.contentType, json.RawMessage(tt.payload))
		if err != nil {
			t.Fatalf("ValidateContentData(%s, %s): unexpected error %v", tt.contentType, tt.payload, err)
		}
		if len(out) == 0 {
			t.Fatalf("ValidateContentData(%s): empty canonical payload", tt.contentType)
		}
	}
}

func TestValidateContentData_Rejects(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		payload     string
		wantField   string
	}{
		{"missing text", TypeText, `{}`, "content.text"},
		{"empty text", TypeText, `{"text":""}`, "content.text"},
		{"bad image url", TypeImage, `{"imageUrl":"not-a-url"}`, "content.imageUrl"},
		{"relative image url", TypeImage, `{"imageUrl":"/local/path.png"}`, "content.imageUrl"},
		{"missing video url", TypeVideo, `{}`, "content.videoUrl"},
		{"missing audio url", TypeAudio, `{}`, "content.audioUrl"},
		{"missing citation text", TypeCitation, `{"citationSource":"src"}`, "content.citationText"},
		{"bad link url", TypeLink, `{"linkUrl":"::::"}`, "content.linkUrl"},
		{"not an object", TypeText, `"just a string"`, "content"},
	}

	for _, tt := range tests {
		_, err := ValidateContentData(tt.contentType, json.RawMessage(tt.payload))
		if err == nil {
			t.Fatalf("%s: expected validation error", tt.name)
		}
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: expected *ValidationError, got %T", tt.name, err)
		}
		found := false
		for _, issue := range verr.Issues {
			if issue.Field == tt.wantField {
				found = true
			}
		}
		if !found {
			t.Fatalf("%s: expected issue on %q, got %v", tt.name, tt.wantField, verr.Issues)
		}
	}
}

func TestValidateContentData_UnknownType(t *testing.T) {
	_, err := ValidateContentData("gallery", json.RawMessage(`{"text":"x"}`))
	if err == nil {
		t.Fatal("expected error for unrecognized type")
	}
	if !strings.Contains(err.Error(), "gallery") {
		t.Fatalf("expected type name in error, got %v", err)
	}
}

func TestValidateContentData_DropsUnknownKeys(t *testing.T) {
	out, err := ValidateContentData(TypeText, json.RawMessage(`{"text":"Hello","legacy":"dropped"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(string(out), "legacy") {
		t.Fatalf("expected unknown key to be dropped, got %s", out)
	}

	var data TextData
	if err := json.Unmarshal(out, &data); err != nil {
		t.Fatalf("canonical payload not decodable: %v", err)
	}
	if data.Text != "Hello" {
		t.Fatalf("expected text preserved, got %q", data.Text)
	}
}

func TestValidateContentData_CollectsAllIssues(t *testing.T) {
	// citation with neither field: exactly one required-field issue
	_, err := ValidateContentData(TypeCitation, json.RawMessage(`{}`))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if len(verr.Issues) != 1 {
		t.Fatalf("expected 1 issue, got %d: %v", len(verr.Issues), verr.Issues)
	}
}

func TestDayInRange(t *testing.T) {
	for _, day := range []int{1, 15, 30} {
		if !DayInRange(day) {
			t.Fatalf("expected day %d in range", day)
		}
	}
	for _, day := range []int{0, -1, 31, 100} {
		if DayInRange(day) {
			t.Fatalf("expected day %d out of range", day)
		}
	}
}
