package services

import (
	"context"

	"gorm.io/gorm"
)

const createSubmissionsTable = `CREATE TABLE IF NOT EXISTS submissions (
	id BIGINT NOT NULL AUTO_INCREMENT,
	shop_name VARCHAR(255) NULL,
	phone_number VARCHAR(64) NULL,
	drop_off_type VARCHAR(64) NULL,
	vehicle_year INT NULL,
	vehicle_make VARCHAR(128) NULL,
	vehicle_model VARCHAR(128) NULL,
	vehicle_issue_description TEXT NULL,
	module_count INT NULL,
	single_stage_count INT NULL,
	dual_stage_count INT NULL,
	three_stage_count INT NULL,
	buckle_count INT NULL,
	is_done TINYINT(1) NOT NULL DEFAULT 0,
	is_printed TINYINT(1) NOT NULL DEFAULT 0,
	submitted_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	done_at DATETIME(3) NULL,
	printed_at DATETIME(3) NULL,
	PRIMARY KEY (id),
	KEY idx_submissions_submitted_at (submitted_at),
	KEY idx_submissions_is_done (is_done)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

// EnsureSchema creates the submissions table if it does not exist yet.
// Existing tables are left exactly as they are.
func EnsureSchema(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return storageErr("ensure schema", errNoDatabase)
	}
	if err := db.WithContext(ctx).Exec(createSubmissionsTable).Error; err != nil {
		return storageErr("ensure schema", err)
	}
	return nil
}

// Ping checks that the database answers.
func Ping(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return storageErr("ping", errNoDatabase)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return storageErr("ping", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return storageErr("ping", err)
	}
	return nil
}
