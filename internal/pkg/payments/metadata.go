package payments

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tuser579/CityFix/app/models"
)

// parseSessionMetadata converts the provider's string metadata map into the
// typed purchase context. A missing or non-numeric issueId is only an error
// for issue boosts; other products never carry one.
func parseSessionMetadata(md map[string]string) (SessionMetadata, error) {
	var out SessionMetadata

	userID, err := strconv.ParseUint(strings.TrimSpace(md["userId"]), 10, 32)
	if err != nil {
		return out, fmt.Errorf("%w: userId %q", ErrBadMetadata, md["userId"])
	}
	out.UserID = uint(userID)
	out.UserName = strings.TrimSpace(md["userName"])
	out.ProductType = strings.TrimSpace(md["type"])

	if raw := strings.TrimSpace(md["totalPayment"]); raw != "" {
		total, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return out, fmt.Errorf("%w: totalPayment %q", ErrBadMetadata, raw)
		}
		out.TotalPayment = total
	}

	if raw := strings.TrimSpace(md["issueId"]); raw != "" {
		issueID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			if out.ProductType == models.ProductBoostIssue {
				return out, fmt.Errorf("%w: issueId %q", ErrBadMetadata, raw)
			}
		} else {
			id := uint(issueID)
			out.IssueID = &id
		}
	}
	if out.ProductType == models.ProductBoostIssue && out.IssueID == nil {
		return out, fmt.Errorf("%w: issueId missing for issue boost", ErrBadMetadata)
	}

	return out, nil
}
