package db

import (
	"context"
	"database/sql"
)

const bootstrapMigration = `
CREATE EXTENSION IF NOT EXISTS "pgcrypto";

CREATE TABLE IF NOT EXISTS profiles (
    id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
    student_number text NOT NULL,
    email text NOT NULL DEFAULT '',
    name text NOT NULL DEFAULT '',
    avatar_url text NOT NULL DEFAULT '',
    phone text NOT NULL DEFAULT '',
    faculty text NOT NULL DEFAULT '',
    student_group text NOT NULL DEFAULT '',
    course text NOT NULL DEFAULT '',
    education_form text NOT NULL DEFAULT '',
    specialty text NOT NULL DEFAULT '',
    gpa text NOT NULL DEFAULT '',
    role text NOT NULL DEFAULT 'USER',
    organization_id text NOT NULL DEFAULT '',
    hemis_token text NOT NULL DEFAULT '',
    hemis_token_issued_at timestamptz,
    hemis_token_expires_in bigint NOT NULL DEFAULT 0,
    last_synced_at timestamptz,
    created_at timestamptz NOT NULL DEFAULT NOW(),
    updated_at timestamptz NOT NULL DEFAULT NOW(),
    CONSTRAINT profiles_student_number_unique UNIQUE (student_number)
);

CREATE INDEX IF NOT EXISTS profiles_email_idx
ON profiles (LOWER(email));

CREATE TABLE IF NOT EXISTS credentials (
    id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
    user_id uuid NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
    password_hash text NOT NULL,
    hash_version text NOT NULL,
    created_at timestamptz NOT NULL DEFAULT NOW(),
    updated_at timestamptz NOT NULL DEFAULT NOW(),
    CONSTRAINT credentials_user_unique UNIQUE (user_id)
);
`

// RunBootstrapMigration creates the schema on startup. Every
// statement is idempotent, so re-running on deploy is safe.
func RunBootstrapMigration(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, bootstrapMigration)
	return err
}
