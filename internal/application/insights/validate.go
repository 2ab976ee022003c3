package insights

import (
	"fmt"
	"regexp"
	"strings"

	domain "github.com/datafloww/insights/internal/domain/insights"
)

// mutatingKeyword matches data-modifying statements anywhere in the query.
// Word boundaries keep column names like last_update from tripping it.
var mutatingKeyword = regexp.MustCompile(`(?i)\b(insert|update|delete|drop|alter)\b`)

// tenantEquality captures the quoted value of every equality predicate on the
// tenant column, qualified or not.
var tenantEquality = regexp.MustCompile(`(?i)\bclient_id\s*=\s*'([^']*)'`)

// tenantNonEquality matches tenant-column predicates that can widen the row
// set past one tenant: negations, IN lists, and pattern matches.
var tenantNonEquality = regexp.MustCompile(`(?i)\bclient_id\s*(<>|!=)|\bclient_id\s+(not\s+in|in|like)\b`)

// ValidateQuery rejects any synthesized query that is not a single read-only
// SELECT restricted to the asking tenant. This runs on every query regardless
// of how the synthesis prompt was worded; generation alone is never trusted.
func ValidateQuery(query, tenantID string) error {
	q := strings.TrimSpace(query)
	if q == "" {
		return fmt.Errorf("%w: empty query", domain.ErrUnsafeQuery)
	}

	if m := mutatingKeyword.FindString(q); m != "" {
		return fmt.Errorf("%w: contains %q", domain.ErrUnsafeQuery, strings.ToUpper(m))
	}

	// One statement only. A single trailing terminator is fine.
	if strings.Contains(strings.TrimSuffix(q, ";"), ";") {
		return fmt.Errorf("%w: multiple statements", domain.ErrUnsafeQuery)
	}

	lower := strings.ToLower(q)
	if !strings.HasPrefix(lower, "select") && !strings.HasPrefix(lower, "with") {
		return fmt.Errorf("%w: not a SELECT statement", domain.ErrUnsafeQuery)
	}

	// Execution-layer tenant guard: the only predicate allowed on the tenant
	// column is an equality against the asking tenant, and at least one must
	// be present. Merely containing the tenant ID is not enough; negated,
	// listed, or OR-ed predicates can still read other tenants' rows.
	if tenantID == "" {
		return fmt.Errorf("%w: query does not restrict rows to the tenant", domain.ErrUnsafeQuery)
	}
	if m := tenantNonEquality.FindString(q); m != "" {
		return fmt.Errorf("%w: tenant predicate must be an equality", domain.ErrUnsafeQuery)
	}
	eqs := tenantEquality.FindAllStringSubmatch(q, -1)
	if len(eqs) == 0 {
		return fmt.Errorf("%w: query does not restrict rows to the tenant", domain.ErrUnsafeQuery)
	}
	for _, m := range eqs {
		if m[1] != tenantID {
			return fmt.Errorf("%w: query references another tenant", domain.ErrUnsafeQuery)
		}
	}

	return nil
}
