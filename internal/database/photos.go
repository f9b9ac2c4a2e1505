package database

import (
	"context"
	"errors"

	"photo-gallery/internal/models"

	"github.com/jackc/pgx/v5"
)

const photoColumns = `id, filename, original_filename, description, user_id, uploaded_at`

func (q *Queries) CreatePhoto(ctx context.Context, arg CreatePhotoParams) (*models.Photo, error) {
	query := `
		INSERT INTO photos (filename, original_filename, description, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + photoColumns

	var photo models.Photo
	err := q.db.QueryRow(ctx, query, arg.Filename, arg.OriginalFilename, arg.Description, arg.UserID).Scan(
		&photo.ID,
		&photo.Filename,
		&photo.OriginalFilename,
		&photo.Description,
		&photo.UserID,
		&photo.UploadedAt,
	)
	if err != nil {
		return nil, err
	}

	return &photo, nil
}

func (q *Queries) GetPhotoByID(ctx context.Context, id int64) (*models.Photo, error) {
	query := `SELECT ` + photoColumns + ` FROM photos WHERE id = $1`

	var photo models.Photo
	err := q.db.QueryRow(ctx, query, id).Scan(
		&photo.ID,
		&photo.Filename,
		&photo.OriginalFilename,
		&photo.Description,
		&photo.UserID,
		&photo.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &photo, nil
}

func (q *Queries) ListPhotosByOwner(ctx context.Context, ownerID int64) ([]models.Photo, error) {
	query := `SELECT ` + photoColumns + ` FROM photos WHERE user_id = $1 ORDER BY id ASC`

	rows, err := q.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []models.Photo
	for rows.Next() {
		var photo models.Photo
		if err := rows.Scan(
			&photo.ID,
			&photo.Filename,
			&photo.OriginalFilename,
			&photo.Description,
			&photo.UserID,
			&photo.UploadedAt,
		); err != nil {
			return nil, err
		}
		photos = append(photos, photo)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if photos == nil {
		return []models.Photo{}, nil
	}

	return photos, nil
}

func (q *Queries) DeletePhoto(ctx context.Context, id int64, ownerID int64) (bool, error) {
	query := `DELETE FROM photos WHERE id = $1 AND user_id = $2`
	res, err := q.db.Exec(ctx, query, id, ownerID)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}
