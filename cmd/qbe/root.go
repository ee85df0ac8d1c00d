package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Aleph-Alpha/qbe/v1/config"
	"github.com/Aleph-Alpha/qbe/v1/metadata"
	"github.com/Aleph-Alpha/qbe/v1/qbe"
)

const configEnv = "QBE_CONFIG"

// cli holds the state shared by the subcommands of one invocation.
type cli struct {
	configPath string
	cfg        *config.Config
	registry   *metadata.Registry
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "qbe",
		Short: "Query-by-example predicate builder",
		Long: `Builds search predicates from example records or free-text patterns
and runs them against the configured backend (postgres, sqlite or qdrant).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.load()
		},
	}

	defaultPath := os.Getenv(configEnv)
	if defaultPath == "" {
		defaultPath = "qbe.yaml"
	}
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", defaultPath,
		"path to the configuration file (env "+configEnv+")")

	root.AddCommand(newBuildCmd(c), newSearchCmd(c))
	return root
}

func (c *cli) load() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	registry, err := cfg.Registry()
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.registry = registry
	return nil
}

func (c *cli) entity(name string) (metadata.EntityMetadata, error) {
	meta, ok := c.registry.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", qbe.ErrUnknownEntity, name)
	}
	return meta, nil
}

// decodeExample parses a JSON object into a record of entity. Numbers keep
// their literal form so integers and decimals compare exactly. null and
// trailing data after the object are rejected.
func decodeExample(entity, raw string) (metadata.Record, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()

	var values map[string]any
	if err := dec.Decode(&values); err != nil {
		return metadata.Record{}, fmt.Errorf("%w: example must be a JSON object: %w", qbe.ErrInvalidArgument, err)
	}
	if values == nil {
		return metadata.Record{}, fmt.Errorf("%w: example is null", qbe.ErrInvalidArgument)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return metadata.Record{}, fmt.Errorf("%w: unexpected data after the example object", qbe.ErrInvalidArgument)
	}
	return metadata.Record{Entity: entity, Values: values}, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
