package store

// SQL query constants organized by entity.
// All SQL lives here — PostgresStore methods reference these constants.

// Product queries.
const (
	queryUpsertProduct = `
		INSERT INTO phone_products (
			identity_key, title, model, version, capacity_mb,
			colour, image_url, price,
			availability_text, is_available, shipping_text, shipping_date,
			source, first_seen_at, updated_at
		) VALUES (
			@identity_key, @title, @model, @version, @capacity_mb,
			@colour, @image_url, @price,
			@availability_text, @is_available, @shipping_text, @shipping_date,
			@source, now(), now()
		)
		ON CONFLICT (identity_key) DO UPDATE SET
			title = EXCLUDED.title,
			image_url = EXCLUDED.image_url,
			price = EXCLUDED.price,
			availability_text = EXCLUDED.availability_text,
			is_available = EXCLUDED.is_available,
			shipping_text = EXCLUDED.shipping_text,
			shipping_date = EXCLUDED.shipping_date,
			source = EXCLUDED.source,
			updated_at = now()`

	queryGetProduct = `
		SELECT identity_key, title, model, version, capacity_mb,
			colour, image_url, price,
			availability_text, is_available, shipping_text, shipping_date,
			source
		FROM phone_products
		WHERE identity_key = $1`
)

// Scrape run queries.
const (
	queryInsertScrapeRun = `
		INSERT INTO scrape_runs (status, started_at)
		VALUES ('running', now())
		RETURNING id`

	queryCompleteScrapeRun = `
		UPDATE scrape_runs SET
			status = $2,
			pages_used = $3,
			products_found = $4,
			products_stored = $5,
			error_text = $6,
			finished_at = now()
		WHERE id = $1`

	queryListScrapeRuns = `
		SELECT id, status, pages_used, products_found, products_stored,
			COALESCE(error_text, ''), started_at, finished_at
		FROM scrape_runs
		ORDER BY started_at DESC
		LIMIT $1`
)
