package repository

import (
	"context"
	"fmt"

	"github.com/UnknownOlympus/loadmatch/internal/models"
)

// FetchLoadsForGeocoding retrieves open loads whose pickup has no coordinates yet.
// It returns loads with fewer than 5 geocoding attempts and at least a postal code or a state,
// oldest first, limited to the specified count.
//
// Parameters:
// - ctx: The context for the operation, allowing for cancellation and timeout.
// - limit: The maximum number of loads to retrieve.
//
// Returns:
// - A slice of models.LoadTask describing the pickup locations to resolve.
// - An error if the query fails or if there is an issue scanning the results.
func (r *Repository) FetchLoadsForGeocoding(ctx context.Context, limit int) ([]models.LoadTask, error) {
	var tasks []models.LoadTask
	query := `
		SELECT load_id, COALESCE(pickup_postal_code, ''), COALESCE(pickup_city, ''), COALESCE(pickup_state, '')
		FROM public.loads
		WHERE
			pickup_latitude IS NULL
			AND status = 'open'
			AND geocoding_attempts < 5
			AND (COALESCE(pickup_postal_code, '') <> '' OR COALESCE(pickup_state, '') <> '')
		ORDER BY created_at ASC
		LIMIT $1;
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query loads without pickup coordinates: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var task models.LoadTask
		errScan := rows.Scan(&task.ID, &task.Location.PostalCode, &task.Location.City, &task.Location.State)
		if errScan != nil {
			return nil, fmt.Errorf("failed to scan load without pickup coordinates: %w", errScan)
		}
		r.log.DebugContext(ctx, "A new load without pickup coordinates has been received.",
			"ID", task.ID, "postal_code", task.Location.PostalCode, "state", task.Location.State)
		tasks = append(tasks, task)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return tasks, nil
}

// UpdateLoadCoordinates stores the resolved pickup coordinate and its precision for a load
// and clears the geocoding_error field. It returns an error if the update fails.
func (r *Repository) UpdateLoadCoordinates(ctx context.Context, loadID int, coord models.Coordinate) error {
	query := `
		UPDATE public.loads
		SET
			pickup_latitude = $1,
			pickup_longitude = $2,
			pickup_precision = $3,
			geocoding_error = NULL
		WHERE
			load_id = $4;
	`

	_, err := r.db.Exec(ctx, query, coord.Latitude(), coord.Longitude(), string(coord.Precision()), loadID)
	if err != nil {
		return fmt.Errorf("failed to update load pickup coordinates: %w", err)
	}

	return nil
}

// IncrementFailureCount increments the geocoding attempt count for a load and records the error.
func (r *Repository) IncrementFailureCount(ctx context.Context, loadID int, errMsg string) error {
	query := `
		UPDATE public.loads
		SET
			geocoding_attempts = geocoding_attempts + 1,
			geocoding_error = $1
		WHERE load_id = $2;
	`

	_, err := r.db.Exec(ctx, query, errMsg, loadID)
	if err != nil {
		return fmt.Errorf("failed to update geocoding error and number of attempts: %w", err)
	}

	return nil
}

// FetchOpenLoads returns the most recently posted open loads that have pickup coordinates.
func (r *Repository) FetchOpenLoads(ctx context.Context, limit int) ([]models.OpenLoad, error) {
	var loads []models.OpenLoad
	query := `
		SELECT load_id, pickup_latitude, pickup_longitude, COALESCE(pickup_precision, ''), revenue
		FROM public.loads
		WHERE
			status = 'open'
			AND pickup_latitude IS NOT NULL
			AND pickup_longitude IS NOT NULL
		ORDER BY created_at DESC
		LIMIT $1;
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query open loads: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			load      models.OpenLoad
			precision string
		)
		if errScan := rows.Scan(
			&load.ID, &load.Latitude, &load.Longitude, &precision, &load.Revenue,
		); errScan != nil {
			return nil, fmt.Errorf("failed to scan open load: %w", errScan)
		}
		load.Precision = models.Precision(precision)
		loads = append(loads, load)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return loads, nil
}
