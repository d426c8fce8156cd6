package adminauth

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/fmhgames/reward-service/internal/domain"
)

// Registry holds the operator identities authorized to issue balance
// actions. Built once at startup from configuration; immutable after,
// so lookups need no locking.
type Registry struct {
	users []domain.AdminUser
}

// NewRegistry creates a registry over the given identities
func NewRegistry(users []domain.AdminUser) *Registry {
	return &Registry{users: users}
}

// Lookup resolves a bearer token to its identity. Comparison is
// constant time per entry to avoid timing side channels.
func (r *Registry) Lookup(token string) (*domain.AdminUser, error) {
	if token == "" {
		return nil, domain.ErrUnknownAdminToken
	}
	for i := range r.users {
		if subtle.ConstantTimeCompare([]byte(r.users[i].Token), []byte(token)) == 1 {
			user := r.users[i]
			return &user, nil
		}
	}
	return nil, domain.ErrUnknownAdminToken
}

// ParseSeed parses the ADMIN_TOKENS seed string into identities.
// Format: "token:name:level:scope1|scope2" entries separated by commas.
func ParseSeed(seed string) ([]domain.AdminUser, error) {
	var users []domain.AdminUser
	for _, entry := range strings.Split(seed, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, ":")
		if len(parts) != 4 {
			return nil, fmt.Errorf("malformed admin token entry (want token:name:level:scopes): %q", redactEntry(entry))
		}
		level := domain.AdminLevel(parts[2])
		switch level {
		case domain.AdminLevelViewer, domain.AdminLevelOperator, domain.AdminLevelAdmin, domain.AdminLevelSuperadmin:
		default:
			return nil, fmt.Errorf("unknown admin level %q", parts[2])
		}
		users = append(users, domain.AdminUser{
			Token:       parts[0],
			Name:        parts[1],
			Level:       level,
			Permissions: strings.Split(parts[3], "|"),
		})
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("no admin identities configured")
	}
	return users, nil
}

// redactEntry keeps the token portion of a malformed entry out of error
// messages and logs
func redactEntry(entry string) string {
	if idx := strings.Index(entry, ":"); idx > 0 {
		return "[token]" + entry[idx:]
	}
	return "[token]"
}
