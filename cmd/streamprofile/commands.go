package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chrissnell/streamprofile/internal/constants"
	"github.com/chrissnell/streamprofile/pkg/profile"
)

func newFeaturesCmd(a *app) *cobra.Command {
	var label string

	cmd := &cobra.Command{
		Use:   "features <survey-file>",
		Short: "List the morphological features of a survey",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			morph, err := parseLabel(label)
			if err != nil {
				return err
			}
			p, err := a.readProfile(args[0])
			if err != nil {
				return err
			}
			return renderFeatures(cmd.OutOrStdout(), a.cfg.Output.Format, p, morph)
		},
	}
	cmd.Flags().StringVar(&a.name, "name", "", "Profile name (default: file name)")
	cmd.Flags().StringVar(&label, "label", "", "Only list features of this morphology")
	return cmd
}

func newStationsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stations <survey-file>",
		Short: "Print the survey with stationing and filled elevations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.readProfile(args[0])
			if err != nil {
				return err
			}
			return renderTable(cmd.OutOrStdout(), a.cfg.Output.Format, p.Table())
		},
	}
	cmd.Flags().StringVar(&a.name, "name", "", "Profile name (default: file name)")
	return cmd
}

func newSaveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save <survey-file>",
		Short: "Build a profile and save it to the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.readProfile(args[0])
			if err != nil {
				return err
			}

			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			id, err := store.SaveProfile(cmd.Context(), p)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
	cmd.Flags().StringVar(&a.name, "name", "", "Profile name (default: file name)")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			summaries, err := store.ListProfiles(cmd.Context())
			if err != nil {
				return err
			}
			return renderSummaries(cmd.OutOrStdout(), a.cfg.Output.Format, summaries)
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	var label string

	cmd := &cobra.Command{
		Use:   "show <profile-id>",
		Short: "List the features of a saved profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			morph, err := parseLabel(label)
			if err != nil {
				return err
			}
			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			stored, err := store.LoadProfile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			p, err := stored.Profile(profile.WithLogger(a.logger))
			if err != nil {
				return err
			}
			return renderFeatures(cmd.OutOrStdout(), a.cfg.Output.Format, p, morph)
		},
	}
	cmd.Flags().StringVar(&label, "label", "", "Only list features of this morphology")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <profile-id>",
		Short: "Remove a saved profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			return store.DeleteProfile(cmd.Context(), args[0])
		},
	}
}

// parseLabel matches a --label value to a morphology, ignoring case. An
// empty value selects every label.
func parseLabel(label string) (profile.Morphology, error) {
	if label == "" {
		return "", nil
	}
	names := make([]string, 0, len(profile.Morphologies))
	for _, m := range profile.Morphologies {
		if strings.EqualFold(label, string(m)) {
			return m, nil
		}
		names = append(names, string(m))
	}
	return "", fmt.Errorf("unknown morphology %q (expected one of %s)", label, strings.Join(names, ", "))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "streamprofile %s\n", constants.Version)
		},
	}
}
