package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/noah-isme/gema-reportcard/internal/config"
	"github.com/noah-isme/gema-reportcard/internal/console"
	"github.com/noah-isme/gema-reportcard/internal/dto"
	"github.com/noah-isme/gema-reportcard/internal/export"
	"github.com/noah-isme/gema-reportcard/internal/scoring"
	"github.com/noah-isme/gema-reportcard/internal/service"
)

func runMenu(c *cli.Context, rt *session) error {
	menu := console.NewMenu(rt.service, os.Stdin, c.App.Writer, rt.logger)
	return menu.Run(c.Context)
}

func addCommand(cfg config.Config, logger zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "compute a report card and save it",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Usage: "student name", Required: true},
			&cli.StringFlag{Name: "roll", Usage: "roll number", Required: true},
			&cli.Float64Flag{Name: "midterm", Usage: "midterm marks (out of 50)"},
			&cli.Float64Flag{Name: "endterm", Usage: "end term marks (out of 100)"},
			&cli.Float64Flag{Name: "internal", Usage: "internal marks (out of 100)"},
			&cli.BoolFlag{Name: "dry-run", Usage: "print the report card without saving"},
		},
		Action: withSession(cfg, logger, func(c *cli.Context, rt *session) error {
			for _, component := range scoring.Components {
				if !c.IsSet(string(component)) {
					return cli.Exit(fmt.Sprintf("%s marks are required!", service.ComponentLabel(component)), 2)
				}
			}

			req := dto.ReportCardRequest{
				Name:       c.String("name"),
				RollNumber: c.String("roll"),
				Midterm:    c.Float64("midterm"),
				Endterm:    c.Float64("endterm"),
				Internal:   c.Float64("internal"),
			}

			card, err := rt.service.Prepare(c.Context, req)
			if err != nil {
				return cli.Exit(err.Error(), 2)
			}
			console.RenderReportCard(c.App.Writer, card)

			if c.Bool("dry-run") {
				return nil
			}

			saved, err := rt.service.Save(c.Context, req)
			switch {
			case errors.Is(err, service.ErrDuplicateRollNumber):
				return cli.Exit("This roll number already exists in the database!", 3)
			case err != nil:
				return err
			}

			fmt.Fprintf(c.App.Writer, "Record %d saved for roll number %s.\n", saved.ID, saved.RollNumber)
			return nil
		}),
	}
}

func listCommand(cfg config.Config, logger zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "show all saved records, newest first",
		Action: withSession(cfg, logger, func(c *cli.Context, rt *session) error {
			records, err := rt.service.List(c.Context)
			if err != nil {
				return err
			}
			console.RenderRecords(c.App.Writer, records, nil)
			return nil
		}),
	}
}

func showCommand(cfg config.Config, logger zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "print the saved report card for one roll number",
		ArgsUsage: "<roll-number>",
		Action: withSession(cfg, logger, func(c *cli.Context, rt *session) error {
			if c.NArg() != 1 {
				return cli.Exit("show requires exactly one roll number", 2)
			}

			record, err := rt.service.Find(c.Context, c.Args().First())
			switch {
			case errors.Is(err, service.ErrRecordNotFound):
				return cli.Exit(fmt.Sprintf("No record found for roll number %s.", c.Args().First()), 4)
			case service.IsValidationError(err):
				return cli.Exit(err.Error(), 2)
			case err != nil:
				return err
			}

			console.RenderReportCard(c.App.Writer, record.ReportCard)
			return nil
		}),
	}
}

func exportCommand(cfg config.Config, logger zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "write all saved records to an .xlsx workbook",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Usage: "output file", Value: "student_records.xlsx"},
		},
		Action: withSession(cfg, logger, func(c *cli.Context, rt *session) error {
			records, err := rt.service.List(c.Context)
			if err != nil {
				return err
			}

			path := c.String("out")
			file, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", path, err)
			}

			if err := export.WriteWorkbook(file, records); err != nil {
				_ = file.Close()
				return err
			}
			if err := file.Close(); err != nil {
				return fmt.Errorf("failed to close %s: %w", path, err)
			}

			rt.logger.Info().Str("path", path).Int("records", len(records)).Msg("records exported")
			fmt.Fprintf(c.App.Writer, "Exported %d records to %s.\n", len(records), path)
			return nil
		}),
	}
}
