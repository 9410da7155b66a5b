package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolveRecordID accepts a full record ID or a unique prefix of one.
func resolveRecordID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("record ID is required")
	}

	var matches []string
	for _, r := range app.Ledger.Records(ctx) {
		if r.ID == input {
			return r.ID, nil
		}
		if strings.HasPrefix(r.ID, input) {
			matches = append(matches, r.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("record not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("record ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
