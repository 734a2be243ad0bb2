package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	mailstats "mailsort-dashboard/internal/mailstats/domain"
)

// Repository reads the letters and business tables.
type Repository struct {
	db *sql.DB
}

// NewRepository constructs a repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// BinTotals returns count and weight per output BIN for letters in [dayStart, dayEnd).
func (r *Repository) BinTotals(ctx context.Context, dayStart, dayEnd time.Time, bins []int) ([]mailstats.BinTotal, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("mailstats repository: nil db")
	}
	if len(bins) == 0 {
		return nil, nil
	}
	outputs := make([]int64, 0, len(bins))
	for _, bin := range bins {
		outputs = append(outputs, int64(bin))
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT output, COUNT(*), COALESCE(SUM(weight), 0)
FROM letters
WHERE date_letter >= $1
	AND date_letter < $2
	AND output = ANY($3)
GROUP BY output
ORDER BY output`, dayStart, dayEnd, outputs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []mailstats.BinTotal
	for rows.Next() {
		var row mailstats.BinTotal
		if err := rows.Scan(&row.Bin, &row.Count, &row.Weight); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// BPTallies returns count and weight per BP code for letters in [dayStart, dayEnd).
func (r *Repository) BPTallies(ctx context.Context, dayStart, dayEnd time.Time) (map[string]mailstats.LetterTally, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("mailstats repository: nil db")
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT bp, COUNT(*), COALESCE(SUM(weight), 0)
FROM letters
WHERE date_letter >= $1
	AND date_letter < $2
	AND bp LIKE 'BP%'
GROUP BY bp`, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]mailstats.LetterTally)
	for rows.Next() {
		var (
			code   string
			count  int
			weight decimal.Decimal
		)
		if err := rows.Scan(&code, &count, &weight); err != nil {
			return nil, err
		}
		result[strings.TrimSpace(code)] = mailstats.LetterTally{Count: count, Weight: weight}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// BusinessRoutes returns the distinct routes that carry a prealert code.
func (r *Repository) BusinessRoutes(ctx context.Context) ([]mailstats.BusinessRoute, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("mailstats repository: nil db")
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT DISTINCT job, output, location, prealert_code
FROM business
WHERE prealert_code IS NOT NULL
ORDER BY prealert_code, job, output`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routes []mailstats.BusinessRoute
	for rows.Next() {
		var (
			route    mailstats.BusinessRoute
			location sql.NullString
		)
		if err := rows.Scan(&route.Job, &route.Output, &location, &route.PrealertCode); err != nil {
			return nil, err
		}
		if location.Valid {
			route.Location = location.String
		}
		routes = append(routes, route)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return routes, nil
}
