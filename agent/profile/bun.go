package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	contractx "github.com/worldwise-ai/worldwise/agent/contract"
)

// Config is the Postgres profile-store configuration.
type Config struct {
	DSN          string        `envconfig:"DSN" split_words:"true" required:"true"`
	MaxOpenConns int           `envconfig:"MAX_OPEN_CONNS" split_words:"true" default:"4"`
	Timeout      time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"5s"`
}

type profileRow struct {
	bun.BaseModel `bun:"table:user_profiles"`

	Namespace string            `bun:"namespace,pk"`
	UserID    string            `bun:"user_id,pk"`
	Profile   contractx.Profile `bun:"profile,type:jsonb"`
	UpdatedAt time.Time         `bun:"updated_at,notnull"`
}

// BunStore persists user profiles in Postgres, one JSON document per
// (namespace, user) pair.
type BunStore struct {
	db      *bun.DB
	timeout time.Duration
}

func NewBunStore(cfg Config) (*BunStore, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("%w: profile store dsn is required", contractx.ErrValidation)
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN)))
	sqldb.SetMaxOpenConns(cfg.MaxOpenConns)

	return &BunStore{
		db:      bun.NewDB(sqldb, pgdialect.New()),
		timeout: cfg.Timeout,
	}, nil
}

// EnsureSchema creates the backing table when it does not exist yet.
func (s *BunStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*profileRow)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create user_profiles table: %w", err)
	}
	return nil
}

func (s *BunStore) Save(ctx context.Context, namespace, userID string, p contractx.Profile) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	row := &profileRow{
		Namespace: namespace,
		UserID:    userID,
		Profile:   p,
		UpdatedAt: time.Now().UTC(),
	}
	_, err := s.db.NewInsert().
		Model(row).
		On("CONFLICT (namespace, user_id) DO UPDATE").
		Set("profile = EXCLUDED.profile").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("save profile %s/%s: %w", namespace, userID, err)
	}
	return nil
}

func (s *BunStore) Load(ctx context.Context, namespace, userID string) (contractx.Profile, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	row := new(profileRow)
	err := s.db.NewSelect().
		Model(row).
		Where("namespace = ?", namespace).
		Where("user_id = ?", userID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return contractx.Profile{}, false, nil
	}
	if err != nil {
		return contractx.Profile{}, false, fmt.Errorf("load profile %s/%s: %w", namespace, userID, err)
	}
	return row.Profile, true, nil
}

func (s *BunStore) Close() error {
	return s.db.Close()
}
