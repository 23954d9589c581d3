package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/claes/quizweb/internal/archive"
	"github.com/claes/quizweb/internal/catalog"
	"github.com/claes/quizweb/internal/store"
)

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed FILE",
		Short: "Import archive days from a JSON seed file",
		Long: `Imports a JSON seed file of the form
  {"SIGNAL_DECODING": ["2024-01-15", "2024-01-16"]}
into the archive store. Hub slugs (g1, g2, g3) are accepted as keys.
Days already present are left untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := store.LoadSeed(args[0])
			if err != nil {
				return err
			}
			cat, err := catalog.Load(a.cfg.CatalogPath)
			if err != nil {
				return err
			}
			st, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			n, err := st.Import(cmd.Context(), normalizeSeed(cat, seed))
			if err != nil {
				return err
			}
			a.logger.Info("seed imported", zap.String("file", args[0]), zap.Int("added", n))
			fmt.Fprintf(cmd.OutOrStdout(), "added %d days\n", n)
			return nil
		},
	}
}

// normalizeSeed rewrites slug keys to provider keys, merging duplicates.
func normalizeSeed(cat *catalog.Catalog, seed store.Seed) store.Seed {
	out := make(store.Seed, len(seed))
	for k, dates := range seed {
		if key, err := cat.KeyOf(k); err == nil {
			k = key
		}
		out[k] = append(out[k], dates...)
	}
	return out
}

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Write every archive day to a JSON seed file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			seed, err := st.Export(cmd.Context())
			if err != nil {
				return err
			}
			if err := store.SaveSeed(args[0], seed); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d games\n", len(seed))
			return nil
		},
	}
}

func newDatesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dates GAME",
		Short: "Print a game's archive days, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load(a.cfg.CatalogPath)
			if err != nil {
				return err
			}
			key := args[0]
			if k, err := cat.KeyOf(key); err == nil {
				key = k
			}
			st, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			structure, err := st.ArchiveStructure(cmd.Context(), key)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, d := range archive.Flatten(structure) {
				fmt.Fprintf(out, "%s\t%s\n", d, archive.Label(d))
			}
			return nil
		},
	}
}
