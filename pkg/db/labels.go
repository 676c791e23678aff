package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dtnitsch/screensift/models"
)

// Label is one ground-truth entry of the labelled corpus.
type Label struct {
	LabelID   int64
	ImagePath string
	TrueLabel models.ItemType
	ImageHash string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UpsertLabel inserts or updates the label for an image path. imageHash may
// be empty when the image could not be hashed.
func (db *DB) UpsertLabel(imagePath string, trueLabel models.ItemType, imageHash string) error {
	_, err := db.Exec(`
		INSERT INTO labels (image_path, true_label, image_hash)
		VALUES (?, ?, NULLIF(?, ''))
		ON CONFLICT(image_path) DO UPDATE SET
			true_label = excluded.true_label,
			image_hash = COALESCE(excluded.image_hash, labels.image_hash),
			updated_at = CURRENT_TIMESTAMP`,
		imagePath, trueLabel.String(), imageHash)
	if err != nil {
		return fmt.Errorf("failed to upsert label for %s: %w", imagePath, err)
	}
	return nil
}

// GetLabel returns the label for an image path, or (nil, nil) when unlabelled.
func (db *DB) GetLabel(imagePath string) (*Label, error) {
	row := db.QueryRow(`
		SELECT label_id, image_path, true_label, COALESCE(image_hash, ''), created_at, updated_at
		FROM labels WHERE image_path = ?`, imagePath)

	label, err := scanLabel(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get label for %s: %w", imagePath, err)
	}
	return label, nil
}

// ListLabels returns labels ordered by insertion. When filter is non-nil only
// that category is returned.
func (db *DB) ListLabels(filter *models.ItemType) ([]Label, error) {
	query := `
		SELECT label_id, image_path, true_label, COALESCE(image_hash, ''), created_at, updated_at
		FROM labels`
	args := []any{}
	if filter != nil {
		query += " WHERE true_label = ?"
		args = append(args, filter.String())
	}
	query += " ORDER BY label_id"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	defer rows.Close()

	var labels []Label
	for rows.Next() {
		label, err := scanLabel(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan label: %w", err)
		}
		labels = append(labels, *label)
	}
	return labels, rows.Err()
}

// CountLabels returns the number of labelled images per category.
func (db *DB) CountLabels() (map[models.ItemType]int, error) {
	rows, err := db.Query("SELECT true_label, COUNT(*) FROM labels GROUP BY true_label")
	if err != nil {
		return nil, fmt.Errorf("failed to count labels: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.ItemType]int)
	for rows.Next() {
		var labelStr string
		var count int
		if err := rows.Scan(&labelStr, &count); err != nil {
			return nil, fmt.Errorf("failed to scan label count: %w", err)
		}
		label, err := models.ParseItemType(labelStr)
		if err != nil {
			return nil, err
		}
		counts[label] = count
	}
	return counts, rows.Err()
}

// DeleteLabel removes the label for an image path. Returns true if a row was
// deleted.
func (db *DB) DeleteLabel(imagePath string) (bool, error) {
	res, err := db.Exec("DELETE FROM labels WHERE image_path = ?", imagePath)
	if err != nil {
		return false, fmt.Errorf("failed to delete label for %s: %w", imagePath, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLabel(row rowScanner) (*Label, error) {
	var label Label
	var labelStr string
	if err := row.Scan(&label.LabelID, &label.ImagePath, &labelStr, &label.ImageHash,
		&label.CreatedAt, &label.UpdatedAt); err != nil {
		return nil, err
	}
	trueLabel, err := models.ParseItemType(labelStr)
	if err != nil {
		return nil, err
	}
	label.TrueLabel = trueLabel
	return &label, nil
}
