// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package parts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lootforge/lootforge/cmd/lootforge/cli"
	"github.com/lootforge/lootforge/lib/partsdb"
	"github.com/lootforge/lootforge/lib/reference"
	"github.com/spf13/pflag"
)

// Command returns the "parts" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "parts",
		Summary: "Browse the parts database",
		Description: `List and search the parts database that maps (category, index) pairs
in part tokens to part names.

The database path comes from --parts or parts_database in the config.
It may be a JSON file, a TSV file with a category/index/name header, or
a directory of per-category TSV files named like "jakobs_pistol-3.tsv".`,
		Subcommands: []*cli.Command{
			listCommand(),
			searchCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "List categories",
				Command:     "lootforge parts list --parts parts.json",
			},
			{
				Description: "Show the parts of every category labeled like a Jakobs pistol",
				Command:     "lootforge parts list --weapon 'jakobs pistol'",
			},
			{
				Description: "Find parts by name",
				Command:     "lootforge parts search barrel_01",
			},
		},
	}
}

type listParams struct {
	cli.JSONOutput
	cli.Verbosity
	cli.ConfigOptions
	cli.PartsOptions
	Weapon string `json:"-" flag:"weapon,w" desc:"show the categories whose label contains this text"`
}

func listCommand() *cli.Command {
	var params listParams

	return &cli.Command{
		Name:    "list",
		Summary: "List categories, or the parts of one category",
		Usage:   "lootforge parts list [--category N | --weapon name] [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("list", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument %q", args[0])
			}
			database, err := loadDatabase(&params.ConfigOptions, &params.PartsOptions, logger)
			if err != nil {
				return err
			}

			var categories []uint64
			category, hasCategory := params.CategoryID()
			switch {
			case params.Weapon != "":
				categories = database.FindCategory(params.Weapon)
				if len(categories) == 0 {
					return fmt.Errorf("no category label matches %q", params.Weapon)
				}
			case hasCategory:
				categories = []uint64{category}
			default:
				if done, err := params.EmitJSON(database.Categories()); done {
					return err
				}
				return writeCategories(os.Stdout, database.Categories())
			}

			listings := listCategories(database, categories)
			if done, err := params.EmitJSON(listings); done {
				return err
			}
			return writeListings(os.Stdout, listings)
		},
	}
}

type searchParams struct {
	cli.JSONOutput
	cli.Verbosity
	cli.ConfigOptions
	cli.PartsOptions
}

func searchCommand() *cli.Command {
	var params searchParams

	return &cli.Command{
		Name:    "search",
		Summary: "Find parts whose name contains a string",
		Usage:   "lootforge parts search <query> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("search", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return errors.New("search takes exactly one query")
			}
			database, err := loadDatabase(&params.ConfigOptions, &params.PartsOptions, logger)
			if err != nil {
				return err
			}
			matches := database.Search(args[0])
			if category, ok := params.CategoryID(); ok {
				matches = inCategory(matches, category)
			}
			if done, err := params.EmitJSON(matches); done {
				return err
			}
			return writeMatches(os.Stdout, matches)
		},
	}
}

func loadDatabase(configOptions *cli.ConfigOptions, partsOptions *cli.PartsOptions, logger *slog.Logger) (*partsdb.Database, error) {
	cfg, err := configOptions.LoadConfig()
	if err != nil {
		return nil, err
	}
	database, err := partsOptions.Database(cfg, logger)
	if err != nil {
		return nil, err
	}
	if database == nil {
		return nil, errors.New("no parts database: pass --parts or set parts_database in the config file")
	}
	return database, nil
}

// listing is one category's parts grouped by type.
type listing struct {
	Category    uint64              `json:"category"`
	Label       string              `json:"label,omitempty"`
	Description string              `json:"description,omitempty"`
	Groups      []partsdb.TypeGroup `json:"groups"`
}

func listCategories(database *partsdb.Database, categories []uint64) []listing {
	labels := make(map[uint64]string)
	for _, category := range database.Categories() {
		labels[category.ID] = category.Label
	}
	listings := make([]listing, 0, len(categories))
	for _, category := range categories {
		parts := database.InCategory(category)
		entry := listing{
			Category: category,
			Label:    labels[category],
			Groups:   partsdb.GroupByType(parts),
		}
		if len(parts) > 0 {
			entry.Description = reference.Describe(parts[0].Name).String()
		}
		listings = append(listings, entry)
	}
	return listings
}

func inCategory(parts []partsdb.Part, category uint64) []partsdb.Part {
	var filtered []partsdb.Part
	for _, part := range parts {
		if part.Category == category {
			filtered = append(filtered, part)
		}
	}
	return filtered
}

func writeCategories(w io.Writer, categories []partsdb.Category) error {
	var builder strings.Builder
	for _, category := range categories {
		fmt.Fprintf(&builder, "%6d  %5d parts", category.ID, category.Parts)
		if category.Label != "" {
			fmt.Fprintf(&builder, "  %s", category.Label)
		}
		builder.WriteByte('\n')
	}
	fmt.Fprintf(&builder, "\nCategories:  %d\n", len(categories))
	_, err := io.WriteString(w, builder.String())
	return err
}

func writeListings(w io.Writer, listings []listing) error {
	var builder strings.Builder
	for _, entry := range listings {
		fmt.Fprintf(&builder, "Category %d", entry.Category)
		switch {
		case entry.Label != "":
			fmt.Fprintf(&builder, ": %s", entry.Label)
		case entry.Description != "":
			fmt.Fprintf(&builder, ": %s", entry.Description)
		}
		builder.WriteByte('\n')
		if len(entry.Groups) == 0 {
			builder.WriteString("  (no parts)\n")
		}
		for _, group := range entry.Groups {
			fmt.Fprintf(&builder, "  %s:\n", group.Type)
			for _, part := range group.Parts {
				fmt.Fprintf(&builder, "    {%d} %s\n", part.Index, part.Name)
			}
		}
		builder.WriteByte('\n')
	}
	_, err := io.WriteString(w, builder.String())
	return err
}

func writeMatches(w io.Writer, matches []partsdb.Part) error {
	var builder strings.Builder
	for _, part := range matches {
		fmt.Fprintf(&builder, "%6d  {%d} %s\n", part.Category, part.Index, part.Name)
	}
	fmt.Fprintf(&builder, "\nMatches:     %d\n", len(matches))
	_, err := io.WriteString(w, builder.String())
	return err
}
