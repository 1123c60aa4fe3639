package database

import (
	"context"
	"database/sql"
)

// Migrate applies the schema at startup. Statements are idempotent
// (CREATE TABLE IF NOT EXISTS) so repeated boots are safe. Tags and
// interests live in child tables instead of serialized arrays so that the
// recommendation selector can express tag intersection as a JOIN.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			name          VARCHAR(150)  NOT NULL,
			email         VARCHAR(255)  NOT NULL,
			password_hash VARCHAR(100)  NOT NULL,
			role          VARCHAR(20)   NOT NULL DEFAULT 'user',
			created_at    DATETIME      NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uq_users_email (email)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS user_interests (
			user_id BIGINT UNSIGNED NOT NULL,
			tag     VARCHAR(100)    NOT NULL,
			PRIMARY KEY (user_id, tag),
			KEY idx_user_interests_tag (tag)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS contents (
			id               BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			title            VARCHAR(150)  NOT NULL,
			description      TEXT          NOT NULL,
			type             VARCHAR(20)   NOT NULL,
			url              VARCHAR(2048) NOT NULL DEFAULT '',
			file_path        VARCHAR(1024) NOT NULL DEFAULT '',
			duration_minutes INT UNSIGNED  NULL,
			created_by       BIGINT UNSIGNED NOT NULL DEFAULT 0,
			view_count       BIGINT UNSIGNED NOT NULL DEFAULT 0,
			completion_count BIGINT UNSIGNED NOT NULL DEFAULT 0,
			created_at       DATETIME      NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at       DATETIME      NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			KEY idx_contents_type (type),
			KEY idx_contents_created_at (created_at)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS content_tags (
			content_id BIGINT UNSIGNED NOT NULL,
			tag        VARCHAR(100)    NOT NULL,
			PRIMARY KEY (content_id, tag),
			KEY idx_content_tags_tag (tag)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS interaction_logs (
			id               BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			user_id          BIGINT UNSIGNED NOT NULL,
			content_id       BIGINT UNSIGNED NOT NULL,
			interaction_type VARCHAR(20)     NOT NULL,
			rating_value     DOUBLE          NULL,
			comment_text     TEXT            NULL,
			search_query     VARCHAR(512)    NULL,
			details          JSON            NULL,
			created_at       DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP,
			KEY idx_logs_user (user_id),
			KEY idx_logs_content (content_id),
			KEY idx_logs_type (interaction_type),
			KEY idx_logs_user_created (user_id, created_at)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}
