// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/lootforge/lootforge/lib/config"
	"github.com/lootforge/lootforge/lib/envelope"
	"github.com/lootforge/lootforge/lib/partsdb"
)

// ConfigOptions is an embeddable struct that adds --config. Commands
// that read settings call [ConfigOptions.LoadConfig].
type ConfigOptions struct {
	ConfigPath string `json:"-" flag:"config" desc:"config file (default: $LOOTFORGE_CONFIG, else built-in defaults)"`
}

// LoadConfig resolves and validates the configuration.
func (o *ConfigOptions) LoadConfig() (*config.Config, error) {
	cfg, err := config.Resolve(o.ConfigPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// PartsOptions is an embeddable struct that adds --parts and
// --category for naming part tokens.
type PartsOptions struct {
	PartsPath string `json:"-" flag:"parts" desc:"parts database: JSON, TSV, or a directory of per-category TSVs (default: parts_database from config)"`
	Category  int64  `json:"-" flag:"category" desc:"part category used to name part tokens (-1 for none)" default:"-1"`
}

// Database loads the parts database named by --parts or the config.
// It returns nil without error when neither names one.
func (o *PartsOptions) Database(cfg *config.Config, logger *slog.Logger) (*partsdb.Database, error) {
	path := o.PartsPath
	if path == "" {
		path = cfg.PartsDatabase
	}
	if path == "" {
		return nil, nil
	}
	database, err := partsdb.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded parts database", "path", path, "parts", database.Len())
	return database, nil
}

// CategoryID returns --category as a table key. Negative values mean
// no category was chosen.
func (o *PartsOptions) CategoryID() (uint64, bool) {
	if o.Category < 0 {
		return 0, false
	}
	return uint64(o.Category), true
}

// Namer returns the part namer for --category, or nil when names are
// unavailable.
func (o *PartsOptions) Namer(database *partsdb.Database) func(index uint16) (string, bool) {
	category, ok := o.CategoryID()
	if database == nil || !ok {
		return nil
	}
	return database.Namer(category)
}

// PlayerOptions is an embeddable struct that adds --player-id for
// commands that read or write save files.
type PlayerOptions struct {
	PlayerID string `json:"-" flag:"player-id,p" desc:"numeric account id that keys the save (default: player_id from config)"`
}

// Envelope returns the save envelope for --player-id, falling back to
// the config.
func (o *PlayerOptions) Envelope(cfg *config.Config) (*envelope.Envelope, error) {
	playerID := o.PlayerID
	if playerID == "" {
		playerID = cfg.PlayerID
	}
	if playerID == "" {
		return nil, errors.New("no player id: pass --player-id or set player_id in the config file")
	}
	return envelope.New(playerID, envelope.WithCompressionLevel(cfg.Save.CompressionLevel))
}

// WrongKeyHint annotates envelope errors with what they usually mean:
// bad padding points at the player id, a failed inflate at the file.
func WrongKeyHint(err error) error {
	switch {
	case envelope.IsWrongKey(err):
		return fmt.Errorf("%w (is the player id correct for this save?)", err)
	case envelope.IsCorrupt(err):
		return fmt.Errorf("%w (the file is corrupt or not a save file)", err)
	}
	return err
}
