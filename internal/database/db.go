package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME/DATE -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates the two tables on first boot. The unique indexes are not
// decoration: they are the authority on mobile/plate/pass uniqueness, so a
// race between two concurrent inserts is settled by the database and
// surfaced to the application as error 1062.
func Migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
			id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			name          VARCHAR(120)  NOT NULL,
			mobile        VARCHAR(20)   NOT NULL,
			password_hash VARCHAR(100)  NOT NULL,
			role          VARCHAR(20)   NOT NULL,
			designation   VARCHAR(120)  NOT NULL,
			address       VARCHAR(255)  NOT NULL,
			email         VARCHAR(255)  NOT NULL DEFAULT '',
			created_at    TIMESTAMP     NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at    TIMESTAMP     NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			PRIMARY KEY (id),
			UNIQUE KEY uq_accounts_mobile (mobile)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS vehicles (
			id                 BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			vehicle_number     VARCHAR(20)  NOT NULL,
			pass_number        VARCHAR(40)  NOT NULL,
			vehicle_type       VARCHAR(40)  NOT NULL DEFAULT '',
			owner_name         VARCHAR(120) NOT NULL,
			flat_number        VARCHAR(20)  NOT NULL,
			dl_or_rc_number    VARCHAR(40)  NOT NULL,
			owner_contact      VARCHAR(20)  NOT NULL,
			alternate_contact  VARCHAR(20)  NOT NULL DEFAULT '',
			email              VARCHAR(255) NOT NULL DEFAULT '',
			permanent_address  VARCHAR(255) NOT NULL,
			flat_owner_name    VARCHAR(120) NOT NULL,
			flat_owner_contact VARCHAR(20)  NOT NULL DEFAULT '',
			valid_till         DATE         NOT NULL,
			created_at         TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at         TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			PRIMARY KEY (id),
			UNIQUE KEY uq_vehicles_number (vehicle_number),
			UNIQUE KEY uq_vehicles_pass (pass_number)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}
