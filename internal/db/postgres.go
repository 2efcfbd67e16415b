package db

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Postgres caps identifiers at 63 bytes; prefixed table names must not
// silently collide past that limit.
const maxIdentifierLen = 63

// NewPostgres returns a connected GORM DB instance. When creds is non-nil
// the cached store credential is fetched and used as the DSN password,
// which is how managed deployments that mint short-lived per-project
// tokens authenticate.
func NewPostgres(ctx context.Context, dsn, tablePrefix string, creds *CredentialCache) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database URL is empty")
	}

	if creds != nil {
		token, err := creds.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("resolve store credential: %w", err)
		}
		dsn, err = withPassword(dsn, token)
		if err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		NamingStrategy: prefixNamer{schema.NamingStrategy{TablePrefix: NormalizePrefix(tablePrefix)}},
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// NormalizePrefix lowercases a deployment table prefix and ensures it ends
// with a single underscore. Empty input disables prefixing.
func NormalizePrefix(prefix string) string {
	if prefix == "" {
		return ""
	}
	prefix = strings.ToLower(prefix)
	if !strings.HasSuffix(prefix, "_") {
		prefix += "_"
	}
	return prefix
}

// prefixNamer applies the deployment prefix and truncates generated names
// to the Postgres identifier limit.
type prefixNamer struct {
	schema.NamingStrategy
}

func (n prefixNamer) TableName(table string) string {
	name := n.NamingStrategy.TableName(table)
	if len(name) > maxIdentifierLen {
		name = name[:maxIdentifierLen]
	}
	return name
}

func withPassword(dsn, password string) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("parse database URL: %w", err)
	}
	username := ""
	if u.User != nil {
		username = u.User.Username()
	}
	u.User = url.UserPassword(username, password)
	return u.String(), nil
}
