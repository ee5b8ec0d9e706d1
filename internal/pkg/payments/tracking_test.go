package payments

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

var trackingIDPattern = regexp.MustCompile(`^CITY-\d{8}-[0-9A-F]{6}$`)

func TestGenerateTrackingID_Format(t *testing.T) {
	t.Parallel()

	id, err := GenerateTrackingID()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !trackingIDPattern.MatchString(id) {
		t.Fatalf("tracking id %q does not match expected format", id)
	}
}

func TestGenerateTrackingID_UsesUTCDate(t *testing.T) {
	t.Parallel()

	id, err := GenerateTrackingID()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parts := strings.Split(id, "-")
	if len(parts) != 3 {
		t.Fatalf("expected three segments, got %d in %q", len(parts), id)
	}
	today := time.Now().UTC().Format("20060102")
	if parts[1] != today {
		t.Fatalf("expected date segment %s, got %s", today, parts[1])
	}
}

func TestGenerateTrackingID_UniqueWithinSmallBatch(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})

	for i := 0; i < 100; i++ {
		id, err := GenerateTrackingID()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, exists := seen[id]; exists {
			t.Fatalf("duplicate tracking id generated in small batch: %s", id)
		}
		seen[id] = struct{}{}
	}
}
