// slide-puzzle - a web-based sliding-tile puzzle game and solver.
// Copyright (C) 2016 Daniel C. Brotsky.
//
// This program is free software; you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation; either version 2 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License along
// with this program; if not, write to the Free Software Foundation, Inc.,
// 51 Franklin Street, Fifth Floor, Boston, MA 02110-1301 USA.
// Licensed under the LGPL v3.  See the LICENSE file for details

package dbprep

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// The schema migrations ship inside the binary, so deployed
// servers can prepare their own database.
//
//go:embed migrations/*.sql
var migrationFiles embed.FS

// getMigrateURL figures out the migration target.  The migrate
// pgx driver registers under its own URL scheme, so the usual
// postgres:// prefix of DATABASE_URL gets rewritten.
func getMigrateURL() string {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		url = "postgres://localhost/slidepuzzle?sslmode=disable"
	}
	if strings.HasPrefix(url, "postgres://") {
		url = "pgx5://" + strings.TrimPrefix(url, "postgres://")
	}
	return url
}

// newMigrator assembles a migrator over the embedded migrations.
// Callers own the Close.
func newMigrator() (*migrate.Migrate, error) {
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("Couldn't read embedded migrations: %v", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, getMigrateURL())
	if err != nil {
		return nil, fmt.Errorf("Couldn't open migration target: %v", err)
	}
	return m, nil
}

// SchemaUp creates the database with the right schema
func SchemaUp() error {
	m, err := newMigrator()
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("Table creation had errors: %v", err)
	}
	return nil
}

// SchemaDown tears down the database
func SchemaDown() error {
	m, err := newMigrator()
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Down(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("Table deletion had errors: %v", err)
	}
	return nil
}

// SchemaVersion returns the version of the database
func SchemaVersion() (uint, error) {
	m, err := newMigrator()
	if err != nil {
		return 0, err
	}
	defer m.Close()
	version, _, err := m.Version()
	if err == migrate.ErrNilVersion {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return version, nil
}
