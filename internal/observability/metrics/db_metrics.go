package metrics

import (
	"database/sql"
	"log"

	"github.com/prometheus/client_golang/prometheus"
)

func registerDBMetrics(db *sql.DB, logger *log.Logger) {
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "letters_today",
			Help: "Letters processed since midnight (database time zone)",
		},
		func() float64 {
			return queryCount(db, logger, "SELECT COUNT(*) FROM letters WHERE date_letter >= date_trunc('day', now())")
		},
	))

	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "letters_without_datamatrix_today",
			Help: "Letters since midnight that carry no station code",
		},
		func() float64 {
			return queryCount(db, logger, "SELECT COUNT(*) FROM letters WHERE date_letter >= date_trunc('day', now()) AND (datamatrix IS NULL OR datamatrix = '')")
		},
	))
}

func queryCount(db *sql.DB, logger *log.Logger, query string) float64 {
	if db == nil {
		return 0
	}
	var count int64
	if err := db.QueryRow(query).Scan(&count); err != nil {
		if logger != nil {
			logger.Printf("metrics query failed: %v", err)
		}
		return 0
	}
	if count < 0 {
		return 0
	}
	return float64(count)
}
