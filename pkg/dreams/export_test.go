package dreams

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestExportImportRoundTrip(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()

	ctx := context.Background()
	d1 := mustUpsert(t, ctx, testDB, makeTestDream("Exported One", "2024-03-01T06:00:00Z", MoodHappy, []string{"a", "b"}))
	d2 := mustUpsert(t, ctx, testDB, makeTestDream("Exported Two", "2024-03-02T06:00:00Z", MoodWeird, nil))

	snapshot, err := ExportJSON(ctx, testDB)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	// Pretty-printed and parseable.
	if !strings.Contains(snapshot, "\n  ") {
		t.Error("Expected indented export output")
	}
	var exported []Dream
	if err := json.Unmarshal([]byte(snapshot), &exported); err != nil {
		t.Fatalf("Export output is not valid JSON: %v", err)
	}
	if len(exported) != 2 {
		t.Fatalf("Expected 2 dreams in export, got %d", len(exported))
	}

	// Wipe and restore into a fresh store.
	freshDB := setupTestDB(t)
	defer freshDB.Close()

	imported, updated, err := ImportJSON(ctx, freshDB, snapshot)
	if err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}
	if imported != 2 || updated != 0 {
		t.Errorf("Expected (imported=2, updated=0), got (%d, %d)", imported, updated)
	}

	for _, want := range []Dream{d1, d2} {
		got, err := GetDream(ctx, freshDB, want.ID)
		if err != nil {
			t.Fatalf("GetDream after import failed for %s: %v", want.ID, err)
		}
		if got.Title != want.Title || got.Mood != want.Mood || len(got.Tags) != len(want.Tags) {
			t.Errorf("Imported dream doesn't match exported one: got %+v, want %+v", got, want)
		}
	}
}

func TestExportEmptyStoreIsEmptyArray(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()

	snapshot, err := ExportJSON(context.Background(), testDB)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}
	if strings.TrimSpace(snapshot) != "[]" {
		t.Errorf("Expected empty store to export as [], got %q", snapshot)
	}
}

func TestImportCounting(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()

	ctx := context.Background()

	// Two pre-existing records.
	existing1 := mustUpsert(t, ctx, testDB, makeTestDream("Existing One", "2024-03-01T06:00:00Z", MoodHappy, nil))
	existing2 := mustUpsert(t, ctx, testDB, makeTestDream("Existing Two", "2024-03-02T06:00:00Z", MoodSad, nil))

	// Payload of five: the two existing ids plus three new ones.
	payload := []Dream{
		existing1, existing2,
		makeTestDream("New One", "2024-03-03T06:00:00Z", MoodNeutral, nil),
		makeTestDream("New Two", "2024-03-04T06:00:00Z", MoodNeutral, nil),
		makeTestDream("New Three", "2024-03-05T06:00:00Z", MoodNeutral, nil),
	}
	payload[0].Title = "Existing One Revised"

	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Failed to marshal payload: %v", err)
	}

	imported, updated, err := ImportJSON(ctx, testDB, string(raw))
	if err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}
	if imported != 3 || updated != 2 {
		t.Errorf("Expected (imported=3, updated=2), got (%d, %d)", imported, updated)
	}

	// The revision landed.
	revised, err := GetDream(ctx, testDB, existing1.ID)
	if err != nil {
		t.Fatalf("GetDream failed: %v", err)
	}
	if revised.Title != "Existing One Revised" {
		t.Errorf("Import did not upsert existing record: %q", revised.Title)
	}

	// A subsequent export holds exactly the union of old and new ids.
	snapshot, err := ExportJSON(ctx, testDB)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}
	var all []Dream
	if err := json.Unmarshal([]byte(snapshot), &all); err != nil {
		t.Fatalf("Failed to parse export: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("Expected 5 dreams after import, got %d", len(all))
	}
	ids := map[string]bool{}
	for _, d := range all {
		ids[d.ID] = true
	}
	for _, d := range payload {
		if !ids[d.ID] {
			t.Errorf("Export missing id %s", d.ID)
		}
	}
}

func TestImportMalformedPayloadWritesNothing(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()

	ctx := context.Background()

	for _, payload := range []string{"not json", `{"id": "solo"}`, `[{"id": "x"`} {
		imported, updated, err := ImportJSON(ctx, testDB, payload)
		if err == nil {
			t.Errorf("Expected error for malformed payload %q", payload)
		}
		if imported != 0 || updated != 0 {
			t.Errorf("Expected zero counts for malformed payload, got (%d, %d)", imported, updated)
		}
	}

	count, err := CountDreams(ctx, testDB)
	if err != nil {
		t.Fatalf("CountDreams failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Malformed imports wrote %d rows, expected none", count)
	}
}

func TestImportIdempotentReplay(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()

	ctx := context.Background()
	payload := []Dream{
		makeTestDream("Replay One", "2024-03-01T06:00:00Z", MoodNeutral, nil),
		makeTestDream("Replay Two", "2024-03-02T06:00:00Z", MoodNeutral, nil),
	}
	raw, _ := json.Marshal(payload)

	imported, updated, err := ImportJSON(ctx, testDB, string(raw))
	if err != nil {
		t.Fatalf("First import failed: %v", err)
	}
	if imported != 2 || updated != 0 {
		t.Errorf("First import: expected (2, 0), got (%d, %d)", imported, updated)
	}

	// Replaying the same payload counts every record as updated.
	imported, updated, err = ImportJSON(ctx, testDB, string(raw))
	if err != nil {
		t.Fatalf("Second import failed: %v", err)
	}
	if imported != 0 || updated != 2 {
		t.Errorf("Second import: expected (0, 2), got (%d, %d)", imported, updated)
	}

	count, err := CountDreams(ctx, testDB)
	if err != nil {
		t.Fatalf("CountDreams failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 rows after replay, got %d", count)
	}
}
