package models

import "time"

// Review is a user rating of a station.
type Review struct {
	ID        int64     `db:"id" json:"review_id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	StationID int64     `db:"station_id" json:"station_id"`
	Rating    int       `db:"rating" json:"rating"`
	Comments  string    `db:"comments" json:"comments"`
	Date      time.Time `db:"date" json:"date"`
}

// ReviewDetail joins a review with user and station names.
type ReviewDetail struct {
	Review
	UserName        string `json:"user_name"`
	StationName     string `json:"station_name"`
	StationLocation string `json:"station_location"`
}
