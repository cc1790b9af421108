package sqlitestore

import (
	"context"
	"encoding/base64"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mlmd/store/internal/accessobject"
)

// listIDs runs a paginated id-only scan over table, honoring the
// subset of accessobject.ListOptions a SQL backend can express
// directly: result size, ordering, an offset carried inside the
// opaque continuation token, and a FilterQuery restricted to the
// `field = "value"` shape (field one of name, uri). The Access Object
// is an external component (spec.md §2); a full query-expression
// language is out of budget, so an unrecognized filter is treated as
// "match everything" rather than rejected.
func listIDs(ctx context.Context, q queryExecer, table string, opts accessobject.ListOptions) ([]int64, string, error) {
	offset, err := decodePageToken(opts.NextPageToken)
	if err != nil {
		return nil, "", fmt.Errorf("decode page token: %w", err)
	}

	orderBy := "id"
	if opts.OrderByField != "" {
		orderBy = sanitizeOrderByField(opts.OrderByField)
	}
	direction := "ASC"
	if !opts.IsAsc {
		direction = "DESC"
	}

	limit := opts.MaxResultSize
	if limit <= 0 {
		limit = 1000
	}

	where := ""
	args := []any{}
	if field, value, ok := parseEqualityFilter(opts.FilterQuery); ok && columnExists(table, field) {
		where = fmt.Sprintf(` WHERE %s = ?`, field)
		args = append(args, value)
	}

	query := fmt.Sprintf(`SELECT id FROM %s%s ORDER BY %s %s LIMIT ? OFFSET ?`, table, where, orderBy, direction)
	args = append(args, limit+1, offset)
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("list %s: %w", table, err)
	}
	ids, err := scanIDs(rows)
	if err != nil {
		return nil, "", err
	}

	var next string
	if int32(len(ids)) > limit {
		ids = ids[:limit]
		next = encodePageToken(offset + int64(limit))
	}
	return ids, next, nil
}

// filterQueryPattern recognizes `field = "value"` or `field = 'value'`,
// the MLMD simple-filter subset this backend supports.
var filterQueryPattern = regexp.MustCompile(`^\s*(\w+)\s*=\s*['"](.*)['"]\s*$`)

func parseEqualityFilter(filterQuery string) (field, value string, ok bool) {
	m := filterQueryPattern.FindStringSubmatch(filterQuery)
	if m == nil {
		return "", "", false
	}
	return strings.ToLower(m[1]), m[2], true
}

func columnExists(table, field string) bool {
	switch field {
	case "name":
		return true
	case "uri":
		return table == "artifacts"
	default:
		return false
	}
}

func encodePageToken(offset int64) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatInt(offset, 10)))
}

func decodePageToken(token string) (int64, error) {
	if token == "" {
		return 0, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(string(raw), 10, 64)
}

// sanitizeOrderByField allow-lists column names, since OrderByField is
// opaque client input spliced directly into SQL.
func sanitizeOrderByField(field string) string {
	switch strings.ToLower(field) {
	case "create_time_since_epoch", "last_update_time_since_epoch", "id", "name":
		return field
	default:
		return "id"
	}
}
