package store

import (
	"fmt"
	"strings"
)

const (
	defaultLimit = 50
	maxLimit     = 500

	orderByTitle     = "title"
	orderByModel     = "model"
	orderByFirstSeen = "first_seen_at"
)

// validOrderBy maps allowed OrderBy values to their SQL column expressions.
var validOrderBy = map[string]string{
	orderByTitle:     "title ASC",
	orderByModel:     "model ASC NULLS LAST, version ASC NULLS LAST",
	orderByFirstSeen: "first_seen_at DESC",
}

const defaultOrderBy = "first_seen_at DESC"

const baseProductsSelect = `SELECT identity_key, title, model, version, capacity_mb,
	colour, image_url, price,
	availability_text, is_available, shipping_text, shipping_date,
	source
FROM phone_products`

const countProductsSelect = "SELECT COUNT(*) FROM phone_products"

// EffectiveLimit returns the limit the query actually applies after
// defaulting and clamping. Handlers echo it back so pagination metadata
// matches the rows returned.
func (q *ProductQuery) EffectiveLimit() int {
	if q.Limit <= 0 {
		return defaultLimit
	}
	if q.Limit > maxLimit {
		return maxLimit
	}
	return q.Limit
}

// ToSQL builds the WHERE clause, ORDER BY, LIMIT, and OFFSET for a product
// query. It returns two SQL strings (one for the data query, one for the
// count query) and the positional parameters.
func (q *ProductQuery) ToSQL() (dataSQL, countSQL string, args []any) {
	var conditions []string
	paramIdx := 1

	if q.Model != nil {
		conditions = append(conditions, fmt.Sprintf("model = $%d", paramIdx))
		args = append(args, *q.Model)
		paramIdx++
	}

	if q.Version != nil {
		conditions = append(conditions, fmt.Sprintf("version = $%d", paramIdx))
		args = append(args, *q.Version)
		paramIdx++
	}

	if q.Colour != nil {
		conditions = append(conditions, fmt.Sprintf("colour = $%d", paramIdx))
		args = append(args, *q.Colour)
		paramIdx++
	}

	if q.Available != nil {
		conditions = append(conditions, fmt.Sprintf("is_available = $%d", paramIdx))
		args = append(args, *q.Available)
		paramIdx++
	}

	if q.Source != nil {
		conditions = append(conditions, fmt.Sprintf("source = $%d", paramIdx))
		args = append(args, *q.Source)
		paramIdx++
	}

	var whereClause string
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	orderClause := defaultOrderBy
	if q.OrderBy != "" {
		if col, ok := validOrderBy[q.OrderBy]; ok {
			orderClause = col
		}
	}

	limit := q.EffectiveLimit()
	offset := max(q.Offset, 0)

	dataSQL = fmt.Sprintf(
		"%s%s ORDER BY %s LIMIT %d OFFSET %d",
		baseProductsSelect, whereClause, orderClause, limit, offset,
	)

	countSQL = countProductsSelect + whereClause

	return dataSQL, countSQL, args
}
