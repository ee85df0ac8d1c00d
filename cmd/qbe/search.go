package main

import (
	"github.com/spf13/cobra"

	"github.com/Aleph-Alpha/qbe/v1/search"
)

func newSearchCmd(c *cli) *cobra.Command {
	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "Run an example or pattern search against the configured backend",
	}

	var (
		entity  string
		example string
		limit   int
		offset  int
	)

	exampleCmd := &cobra.Command{
		Use:   "example",
		Short: "Find records that resemble a JSON example",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := decodeExample(entity, example)
			if err != nil {
				return err
			}
			return withService(cmd.Context(), c.cfg, func(svc *search.Service) error {
				var rows []map[string]any
				if err := svc.FindByExample(cmd.Context(), record, &rows, search.WithLimit(limit), search.WithOffset(offset)); err != nil {
					return err
				}
				return printJSON(cmd, rows)
			})
		},
	}
	exampleCmd.Flags().StringVarP(&entity, "entity", "e", "", "entity the example belongs to")
	exampleCmd.Flags().StringVarP(&example, "json", "j", "{}", "example record as a JSON object")
	_ = exampleCmd.MarkFlagRequired("entity")

	patternCmd := &cobra.Command{
		Use:   "pattern [text]",
		Short: "Find records containing text in any text attribute",
		Long: `Find records containing text in any text attribute.
Without --entity every configured entity is searched and the rows are keyed by entity.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), c.cfg, func(svc *search.Service) error {
				opts := []search.Option{search.WithLimit(limit), search.WithOffset(offset)}
				if entity == "" {
					results, err := svc.SearchAll(cmd.Context(), args[0], opts...)
					if err != nil {
						return err
					}
					return printJSON(cmd, results)
				}

				var rows []map[string]any
				if err := svc.Search(cmd.Context(), entity, args[0], &rows, opts...); err != nil {
					return err
				}
				return printJSON(cmd, rows)
			})
		},
	}
	patternCmd.Flags().StringVarP(&entity, "entity", "e", "", "entity to search (default: all)")

	for _, cmd := range []*cobra.Command{exampleCmd, patternCmd} {
		cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of rows per entity (0: backend default)")
		cmd.Flags().IntVar(&offset, "offset", 0, "number of rows to skip per entity")
	}

	searchCmd.AddCommand(exampleCmd, patternCmd)
	return searchCmd
}
