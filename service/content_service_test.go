package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"stargrid/models"
)

func textUpdate(text string) models.ContentUpdate {
	return models.ContentUpdate{
		Type:    models.TypeText,
		Content: json.RawMessage(fmt.Sprintf(`{"text":%q}`, text)),
	}
}

func TestContentService_UpsertThenGet(t *testing.T) {
	svc := NewContentService(newTestDB(t))

	payloads := map[string]string{
		models.TypeText:     `{"text":"Hello"}`,
		models.TypeImage:    `{"imageUrl":"https://example.com/a.png"}`,
		models.TypeVideo:    `{"videoUrl":"https://example.com/v.mp4"}`,
		models.TypeAudio:    `{"audioUrl":"https://example.com/a.mp3"}`,
		models.TypeCitation: `{"citationText":"quoted"}`,
		models.TypeLink:     `{"linkUrl":"https://example.com"}`,
	}

	day := 1
	for contentType, payload := range payloads {
		_, err := svc.UpsertByDay(day, models.ContentUpdate{
			Title:   "A title",
			Type:    contentType,
			Content: json.RawMessage(payload),
		})
		if err != nil {
			t.Fatalf("UpsertByDay(%d, %s): %v", day, contentType, err)
		}

		got, err := svc.GetByDay(day)
		if err != nil {
			t.Fatalf("GetByDay(%d): %v", day, err)
		}
		if got.Type != contentType {
			t.Fatalf("expected type %s, got %s", contentType, got.Type)
		}

		var want, have map[string]any
		if err := json.Unmarshal([]byte(payload), &want); err != nil {
			t.Fatal(err)
		}
		if err := json.Unmarshal(got.Content, &have); err != nil {
			t.Fatalf("stored payload not decodable: %v", err)
		}
		for k, v := range want {
			if have[k] != v {
				t.Fatalf("day %d type %s: payload field %q = %v, want %v", day, contentType, k, have[k], v)
			}
		}
		day++
	}
}

func TestContentService_UpsertTwiceLastWriteWins(t *testing.T) {
	svc := NewContentService(newTestDB(t))

	first, err := svc.UpsertByDay(5, textUpdate("first"))
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second, err := svc.UpsertByDay(5, textUpdate("second"))
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	if second.ID != first.ID {
		t.Fatalf("expected surrogate id preserved across upserts: %d != %d", second.ID, first.ID)
	}

	all, err := svc.GetAll()
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected exactly one record for day 5, got %d", len(all))
	}

	var data models.TextData
	if err := json.Unmarshal(all[0].Content, &data); err != nil {
		t.Fatal(err)
	}
	if data.Text != "second" {
		t.Fatalf("expected last write to win, got %q", data.Text)
	}
}

func TestContentService_UpsertDefaultsTitle(t *testing.T) {
	svc := NewContentService(newTestDB(t))

	record, err := svc.UpsertByDay(7, textUpdate("x"))
	if err != nil {
		t.Fatalf("UpsertByDay: %v", err)
	}
	if record.Title != "Day 7" {
		t.Fatalf("expected default title %q, got %q", "Day 7", record.Title)
	}
}

func TestContentService_UpsertRejectsInvalidPayload(t *testing.T) {
	svc := NewContentService(newTestDB(t))

	_, err := svc.UpsertByDay(3, models.ContentUpdate{
		Type:    models.TypeImage,
		Content: json.RawMessage(`{"imageUrl":"not-a-url"}`),
	})
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}

	// Nothing persisted on validation failure
	if _, err := svc.GetByDay(3); !errors.Is(err, ErrContentNotFound) {
		t.Fatalf("expected ErrContentNotFound after rejected upsert, got %v", err)
	}
}

func TestContentService_DayBounds(t *testing.T) {
	svc := NewContentService(newTestDB(t))

	for _, day := range []int{0, 31, -4} {
		if _, err := svc.GetByDay(day); !errors.Is(err, ErrInvalidDay) {
			t.Fatalf("GetByDay(%d): expected ErrInvalidDay, got %v", day, err)
		}
		if _, err := svc.UpsertByDay(day, textUpdate("x")); !errors.Is(err, ErrInvalidDay) {
			t.Fatalf("UpsertByDay(%d): expected ErrInvalidDay, got %v", day, err)
		}
		if err := svc.DeleteByDay(day); !errors.Is(err, ErrInvalidDay) {
			t.Fatalf("DeleteByDay(%d): expected ErrInvalidDay, got %v", day, err)
		}
	}
}

func TestContentService_DeleteIdempotent(t *testing.T) {
	svc := NewContentService(newTestDB(t))

	if _, err := svc.UpsertByDay(2, textUpdate("keep")); err != nil {
		t.Fatalf("UpsertByDay: %v", err)
	}

	// Deleting a day with no record is a no-op
	if err := svc.DeleteByDay(9); err != nil {
		t.Fatalf("DeleteByDay on empty day: %v", err)
	}

	all, err := svc.GetAll()
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected untouched store after no-op delete, got %d records", len(all))
	}

	if err := svc.DeleteByDay(2); err != nil {
		t.Fatalf("DeleteByDay: %v", err)
	}
	if err := svc.DeleteByDay(2); err != nil {
		t.Fatalf("repeated DeleteByDay: %v", err)
	}
	if _, err := svc.GetByDay(2); !errors.Is(err, ErrContentNotFound) {
		t.Fatalf("expected ErrContentNotFound after delete, got %v", err)
	}
}

func TestContentService_GetAllSortedByDay(t *testing.T) {
	svc := NewContentService(newTestDB(t))

	for _, day := range []int{20, 3, 11, 1, 30} {
		if _, err := svc.UpsertByDay(day, textUpdate("x")); err != nil {
			t.Fatalf("UpsertByDay(%d): %v", day, err)
		}
	}

	all, err := svc.GetAll()
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("expected 5 records, got %d", len(all))
	}

	seen := map[int]bool{}
	for i := 1; i < len(all); i++ {
		if all[i-1].Day >= all[i].Day {
			t.Fatalf("expected ascending day order, got %d before %d", all[i-1].Day, all[i].Day)
		}
	}
	for _, r := range all {
		if seen[r.Day] {
			t.Fatalf("duplicate day %d in GetAll", r.Day)
		}
		seen[r.Day] = true
	}
}
