package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/Aleph-Alpha/qbe/v1/config"
	"github.com/Aleph-Alpha/qbe/v1/metadata"
	"github.com/Aleph-Alpha/qbe/v1/postgres"
	"github.com/Aleph-Alpha/qbe/v1/predicate"
	"github.com/Aleph-Alpha/qbe/v1/qbe"
	"github.com/Aleph-Alpha/qbe/v1/qdrant"
	"github.com/Aleph-Alpha/qbe/v1/sqlite"
)

// builtPredicate is the output of the build subcommands.
type builtPredicate struct {
	Entity    string              `json:"entity"`
	Predicate predicate.Predicate `json:"predicate"`
	Text      string              `json:"text"`
	Backend   string              `json:"backend"`
	Query     any                 `json:"query"`
}

type sqliteQuery struct {
	SQL  string `json:"sql"`
	Args []any  `json:"args"`
}

func newBuildCmd(c *cli) *cobra.Command {
	build := &cobra.Command{
		Use:   "build",
		Short: "Print the predicate for an example or a pattern without running it",
	}

	var (
		entity  string
		example string
	)

	exampleCmd := &cobra.Command{
		Use:   "example",
		Short: "Build the predicate matching records that resemble a JSON example",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, err := c.entity(entity)
			if err != nil {
				return err
			}
			record, err := decodeExample(entity, example)
			if err != nil {
				return err
			}
			p, err := qbe.ByExample(meta, record)
			if err != nil {
				return err
			}
			return c.printPredicate(cmd, meta, p)
		},
	}
	exampleCmd.Flags().StringVarP(&entity, "entity", "e", "", "entity the example belongs to")
	exampleCmd.Flags().StringVarP(&example, "json", "j", "{}", "example record as a JSON object")
	_ = exampleCmd.MarkFlagRequired("entity")

	patternCmd := &cobra.Command{
		Use:   "pattern [text]",
		Short: "Build the predicate matching records containing text in any text attribute",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, err := c.entity(entity)
			if err != nil {
				return err
			}
			p, err := qbe.ByPattern(meta, args[0])
			if err != nil {
				return err
			}
			return c.printPredicate(cmd, meta, p)
		},
	}
	patternCmd.Flags().StringVarP(&entity, "entity", "e", "", "entity to search")
	_ = patternCmd.MarkFlagRequired("entity")

	build.AddCommand(exampleCmd, patternCmd)
	return build
}

func (c *cli) printPredicate(cmd *cobra.Command, meta metadata.EntityMetadata, p predicate.Predicate) error {
	query, err := renderQuery(c.cfg, meta, p)
	if err != nil {
		return err
	}
	return printJSON(cmd, builtPredicate{
		Entity:    meta.Entity(),
		Predicate: p,
		Text:      p.String(),
		Backend:   c.cfg.Backend,
		Query:     query,
	})
}

// renderQuery shows what the configured backend would run for p.
func renderQuery(cfg *config.Config, meta metadata.EntityMetadata, p predicate.Predicate) (any, error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		return postgres.RenderSQL(meta, p, qbe.Page{})
	case config.BackendSQLite:
		sql, args := sqlite.SelectSQL(meta, p, qbe.Page{})
		return sqliteQuery{SQL: sql, Args: args}, nil
	case config.BackendQdrant:
		filter, err := qdrant.Filter(p, metadata.Columns(meta))
		if err != nil {
			return nil, err
		}
		if filter == nil {
			return nil, nil
		}
		data, err := protojson.Marshal(filter)
		if err != nil {
			return nil, fmt.Errorf("failed to encode filter: %w", err)
		}
		return json.RawMessage(data), nil
	}
	return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}
