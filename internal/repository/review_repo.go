package repository

import (
	"context"
	"database/sql"

	"chargerelay/internal/models"
)

// ReviewRepository handles CRUD for the reviews table.
type ReviewRepository struct {
	db *sql.DB
}

// NewReviewRepository returns repository.
func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create inserts a review.
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	const query = `
		INSERT INTO reviews (user_id, station_id, rating, comments, date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query,
		review.UserID,
		review.StationID,
		review.Rating,
		review.Comments,
		review.Date,
	).Scan(&review.ID)
}

// ListByUser returns the user's reviews with joined names, newest first.
func (r *ReviewRepository) ListByUser(ctx context.Context, userID int64) ([]models.ReviewDetail, error) {
	const query = `
		SELECT rv.id, rv.user_id, rv.station_id, rv.rating, rv.comments, rv.date,
		       COALESCE(u.name, 'Anonymous'),
		       COALESCE(st.operator_name, 'Unknown'),
		       COALESCE(st.location, 'Unknown')
		FROM reviews rv
		LEFT JOIN users u ON u.id = rv.user_id
		LEFT JOIN charging_stations st ON st.id = rv.station_id
		WHERE rv.user_id = $1
		ORDER BY rv.date DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []models.ReviewDetail
	for rows.Next() {
		var rv models.ReviewDetail
		if err := rows.Scan(
			&rv.ID,
			&rv.UserID,
			&rv.StationID,
			&rv.Rating,
			&rv.Comments,
			&rv.Date,
			&rv.UserName,
			&rv.StationName,
			&rv.StationLocation,
		); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}

// ListAll returns every review with joined names, newest first.
func (r *ReviewRepository) ListAll(ctx context.Context) ([]models.ReviewDetail, error) {
	const query = `
		SELECT rv.id, rv.user_id, rv.station_id, rv.rating, rv.comments, rv.date,
		       COALESCE(u.name, 'Anonymous'),
		       COALESCE(st.operator_name, 'Unknown'),
		       COALESCE(st.location, 'Unknown')
		FROM reviews rv
		LEFT JOIN users u ON u.id = rv.user_id
		LEFT JOIN charging_stations st ON st.id = rv.station_id
		ORDER BY rv.date DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []models.ReviewDetail
	for rows.Next() {
		var rv models.ReviewDetail
		if err := rows.Scan(
			&rv.ID,
			&rv.UserID,
			&rv.StationID,
			&rv.Rating,
			&rv.Comments,
			&rv.Date,
			&rv.UserName,
			&rv.StationName,
			&rv.StationLocation,
		); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}

// AvgRatingByStation returns the average rating for every station that has reviews.
func (r *ReviewRepository) AvgRatingByStation(ctx context.Context) (map[int64]float64, error) {
	const query = `
		SELECT station_id, AVG(rating)
		FROM reviews
		GROUP BY station_id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ratings := make(map[int64]float64)
	for rows.Next() {
		var stationID int64
		var avg float64
		if err := rows.Scan(&stationID, &avg); err != nil {
			return nil, err
		}
		ratings[stationID] = avg
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ratings, nil
}
