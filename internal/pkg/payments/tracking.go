package payments

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

const trackingPrefix = "CITY"

// GenerateTrackingID mints a human-facing payment reference of the form
// CITY-YYYYMMDD-XXXXXX (UTC date, 6 uppercase hex chars from a CSPRNG). It is
// a display reference, not a security token; the collision probability within
// a day is accepted as negligible.
func GenerateTrackingID() (string, error) {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read secure random bytes: %w", err)
	}

	date := time.Now().UTC().Format("20060102")
	return fmt.Sprintf("%s-%s-%s", trackingPrefix, date, strings.ToUpper(hex.EncodeToString(b))), nil
}
