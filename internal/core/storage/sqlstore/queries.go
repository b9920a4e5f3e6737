package sqlstore

// SQL shared by the PostgreSQL and SQLite adapters. Both engines accept
// $N placeholders; every statement references its parameters in ascending
// order so SQLite's first-appearance numbering matches.

const (
	queryDeleteRecords = `DELETE FROM vehicle_registrations`

	queryInsertRecord = `
		INSERT INTO vehicle_registrations (
			date, year, quarter, vehicle_category, manufacturer, registrations
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	querySelectRecords = `
		SELECT date, year, quarter, vehicle_category, manufacturer, registrations
		FROM vehicle_registrations
		ORDER BY id ASC
	`

	queryCategoryTotals = `
		SELECT
			vehicle_category,
			SUM(registrations) AS total_registrations,
			COUNT(DISTINCT manufacturer) AS manufacturer_count
		FROM vehicle_registrations
		GROUP BY vehicle_category
		ORDER BY total_registrations DESC, vehicle_category ASC
	`

	queryCategoryTotalsInRange = `
		SELECT
			vehicle_category,
			SUM(registrations) AS total_registrations,
			COUNT(DISTINCT manufacturer) AS manufacturer_count
		FROM vehicle_registrations
		WHERE year BETWEEN $1 AND $2
		GROUP BY vehicle_category
		ORDER BY total_registrations DESC, vehicle_category ASC
	`

	queryManufacturerTotals = `
		SELECT
			manufacturer,
			vehicle_category,
			SUM(registrations) AS total_registrations,
			AVG(registrations) AS avg_registrations
		FROM vehicle_registrations
		GROUP BY manufacturer, vehicle_category
		ORDER BY total_registrations DESC, manufacturer ASC, vehicle_category ASC
	`

	queryManufacturerTotalsInRange = `
		SELECT
			manufacturer,
			vehicle_category,
			SUM(registrations) AS total_registrations,
			AVG(registrations) AS avg_registrations
		FROM vehicle_registrations
		WHERE year BETWEEN $1 AND $2
		GROUP BY manufacturer, vehicle_category
		ORDER BY total_registrations DESC, manufacturer ASC, vehicle_category ASC
	`

	querySummary = `
		SELECT
			COUNT(*),
			COALESCE(SUM(registrations), 0),
			COUNT(DISTINCT manufacturer),
			COUNT(DISTINCT vehicle_category),
			COALESCE(MIN(year), 0),
			COALESCE(MAX(year), 0)
		FROM vehicle_registrations
	`

	// queryYoYPeriods aggregates the ledger to one row per (series, year, quarter)
	// and joins each row to the same quarter of the previous year.
	queryYoYPeriods = `
		WITH periods AS (
			SELECT manufacturer, vehicle_category, year, quarter,
				SUM(registrations) AS registrations
			FROM vehicle_registrations
			GROUP BY manufacturer, vehicle_category, year, quarter
		)
		SELECT
			c.manufacturer, c.vehicle_category, c.year, c.quarter,
			c.registrations, p.registrations
		FROM periods c
		LEFT JOIN periods p
			ON p.manufacturer = c.manufacturer
			AND p.vehicle_category = c.vehicle_category
			AND p.year = c.year - 1
			AND p.quarter = c.quarter
	`

	// queryQoQPeriods joins each quarter to the one before it. Q1 joins Q4 of
	// the previous year, never a quarter of its own year.
	queryQoQPeriods = `
		WITH periods AS (
			SELECT manufacturer, vehicle_category, year, quarter,
				SUM(registrations) AS registrations
			FROM vehicle_registrations
			GROUP BY manufacturer, vehicle_category, year, quarter
		)
		SELECT
			c.manufacturer, c.vehicle_category, c.year, c.quarter,
			c.registrations, p.registrations
		FROM periods c
		LEFT JOIN periods p
			ON p.manufacturer = c.manufacturer
			AND p.vehicle_category = c.vehicle_category
			AND (
				(c.quarter > 1 AND p.year = c.year AND p.quarter = c.quarter - 1)
				OR (c.quarter = 1 AND p.year = c.year - 1 AND p.quarter = 4)
			)
	`

	queryDeleteGrowth = `DELETE FROM growth_metrics`

	queryInsertGrowth = `
		INSERT INTO growth_metrics (
			run_id, manufacturer, vehicle_category, year, quarter,
			registrations, yoy_growth, qoq_growth, calculated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	querySelectGrowth = `
		SELECT manufacturer, vehicle_category, year, quarter, registrations, yoy_growth, qoq_growth
		FROM growth_metrics
	`

	queryTopByRegistrations = `
		SELECT
			manufacturer,
			SUM(registrations) AS total_registrations,
			COUNT(DISTINCT vehicle_category) AS categories_served
		FROM growth_metrics
		GROUP BY manufacturer
		ORDER BY total_registrations DESC, manufacturer ASC
		LIMIT $1
	`

	queryTopByYoY = `
		SELECT manufacturer, vehicle_category, yoy_growth
		FROM growth_metrics
		WHERE yoy_growth IS NOT NULL
	`

	queryTopByQoQ = `
		SELECT manufacturer, vehicle_category, qoq_growth
		FROM growth_metrics
		WHERE qoq_growth IS NOT NULL
	`
)
