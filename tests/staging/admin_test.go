//go:build staging

package staging

import (
	"net/http"
	"os"
	"testing"
)

func TestAdminRoutesRequireAuth(t *testing.T) {
	if os.Getenv("ADMIN_TOKEN") != "" {
		t.Skip("ADMIN_TOKEN is set; unauthenticated check not applicable")
	}

	resp, _ := makeRequest(t, "POST", "/api/v1/admin/actions", map[string]interface{}{
		"type":   "MINT",
		"reason": "staging probe",
	})

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 401 without a token, got %d", resp.StatusCode)
	}
}
