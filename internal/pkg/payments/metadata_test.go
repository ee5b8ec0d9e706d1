package payments

import (
	"errors"
	"testing"

	"github.com/tuser579/CityFix/app/models"
)

func TestParseSessionMetadata(t *testing.T) {
	tests := []struct {
		name    string
		md      map[string]string
		want    SessionMetadata
		wantErr error
	}{
		{
			name: "premium subscription",
			md: map[string]string{
				"userId":       "7",
				"userName":     "Rahim",
				"type":         models.ProductPremiumSubscription,
				"totalPayment": "500",
			},
			want: SessionMetadata{
				UserID:       7,
				UserName:     "Rahim",
				ProductType:  models.ProductPremiumSubscription,
				TotalPayment: 500,
			},
		},
		{
			name: "issue boost",
			md: map[string]string{
				"userId":       "7",
				"userName":     "Rahim",
				"type":         models.ProductBoostIssue,
				"totalPayment": "200",
				"issueId":      "42",
			},
			want: SessionMetadata{
				UserID:       7,
				UserName:     "Rahim",
				ProductType:  models.ProductBoostIssue,
				TotalPayment: 200,
				IssueID:      uintPtr(42),
			},
		},
		{
			name:    "non numeric user id",
			md:      map[string]string{"userId": "abc", "type": models.ProductPremiumSubscription},
			wantErr: ErrBadMetadata,
		},
		{
			name: "non numeric total payment",
			md: map[string]string{
				"userId":       "7",
				"type":         models.ProductPremiumSubscription,
				"totalPayment": "lots",
			},
			wantErr: ErrBadMetadata,
		},
		{
			name: "boost without issue id",
			md: map[string]string{
				"userId": "7",
				"type":   models.ProductBoostIssue,
			},
			wantErr: ErrBadMetadata,
		},
		{
			name: "boost with junk issue id",
			md: map[string]string{
				"userId":  "7",
				"type":    models.ProductBoostIssue,
				"issueId": "null",
			},
			wantErr: ErrBadMetadata,
		},
		{
			name: "junk issue id on non-boost product is ignored",
			md: map[string]string{
				"userId":  "7",
				"type":    models.ProductPremiumSubscription,
				"issueId": "null",
			},
			want: SessionMetadata{
				UserID:      7,
				ProductType: models.ProductPremiumSubscription,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSessionMetadata(tt.md)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.UserID != tt.want.UserID ||
				got.UserName != tt.want.UserName ||
				got.ProductType != tt.want.ProductType ||
				got.TotalPayment != tt.want.TotalPayment {
				t.Fatalf("parseSessionMetadata(%v) = %+v, want %+v", tt.md, got, tt.want)
			}
			if (got.IssueID == nil) != (tt.want.IssueID == nil) {
				t.Fatalf("issue id presence mismatch: got %v, want %v", got.IssueID, tt.want.IssueID)
			}
			if got.IssueID != nil && *got.IssueID != *tt.want.IssueID {
				t.Fatalf("issue id = %d, want %d", *got.IssueID, *tt.want.IssueID)
			}
		})
	}
}

func uintPtr(v uint) *uint { return &v }
