package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"wow-campus/internal/app"
	"wow-campus/internal/i18n"

	"github.com/spf13/cobra"
)

type matchOptions struct {
	jobseekerID int64
	jobID       int64
	lang        string
}

func (o matchOptions) validate() error {
	switch {
	case o.jobseekerID > 0 && o.jobID > 0:
		return errors.New("use either --jobseeker or --job, not both")
	case o.jobseekerID <= 0 && o.jobID <= 0:
		return errors.New("one of --jobseeker or --job is required")
	}
	return nil
}

func newMatchCommand(opts *rootOptions) *cobra.Command {
	var mo matchOptions

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Print ranked matches for a jobseeker or a job posting as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := mo.validate(); err != nil {
				return err
			}
			loc := i18n.New(i18n.Resolve(mo.lang, "", ""))

			cfg, log, err := opts.setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ctx, stop := signalContext(cmd.Context())
			defer stop()

			c, err := app.NewContainer(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer c.Close()

			var out any
			if mo.jobseekerID > 0 {
				out, err = c.Usecases.Matching.MatchJobsForSeeker(ctx, mo.jobseekerID, loc)
			} else {
				out, err = c.Usecases.Matching.MatchSeekersForJob(ctx, mo.jobID, loc)
			}
			if err != nil {
				return fmt.Errorf("match: %w", err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	cmd.Flags().Int64Var(&mo.jobseekerID, "jobseeker", 0, "jobseeker id to find jobs for")
	cmd.Flags().Int64Var(&mo.jobID, "job", 0, "job posting id to find jobseekers for")
	cmd.Flags().StringVar(&mo.lang, "lang", string(i18n.Default), "language for match reasons (ko, en, ja, vi, zh)")
	return cmd
}
