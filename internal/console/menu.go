// Package console drives the interactive report card menu on top of the service layer.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-reportcard/internal/dto"
	"github.com/noah-isme/gema-reportcard/internal/scoring"
	"github.com/noah-isme/gema-reportcard/internal/service"
)

// Menu is the add / view / exit loop.
type Menu struct {
	svc      service.ReportCardService
	in       *lineReader
	out      io.Writer
	logger   zerolog.Logger
	location *time.Location
}

// NewMenu wires a menu reading from in and writing prompts to out.
func NewMenu(svc service.ReportCardService, in io.Reader, out io.Writer, logger zerolog.Logger) *Menu {
	return &Menu{
		svc:      svc,
		in:       newLineReader(in),
		out:      out,
		logger:   logger.With().Str("component", "console_menu").Logger(),
		location: time.Local,
	}
}

// Run shows the menu until the user exits or input ends. A cancelled context
// returns its error; end of input returns nil.
func (m *Menu) Run(ctx context.Context) error {
	defer m.in.stop()

	for {
		banner(m.out, "MAIN MENU", narrowRule)
		fmt.Fprintln(m.out, "1. Add new student marks")
		fmt.Fprintln(m.out, "2. View all records")
		fmt.Fprintln(m.out, "3. Exit")
		fmt.Fprintln(m.out, strings.Repeat("=", narrowRule))

		choice, err := m.prompt(ctx, "Enter your choice (1-3): ")
		if err != nil {
			return m.finish(ctx, err)
		}

		switch strings.TrimSpace(choice) {
		case "1":
			if err := m.addRecord(ctx); err != nil {
				if errors.Is(err, ErrCancelled) || errors.Is(err, io.EOF) {
					fmt.Fprintln(m.out, "\nOperation cancelled!")
					continue
				}
				return err
			}
		case "2":
			m.viewRecords(ctx)
		case "3":
			fmt.Fprintln(m.out, "Thank you for using the system. Goodbye!")
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid choice! Please enter 1, 2, or 3.")
		}
	}
}

func (m *Menu) finish(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// addRecord collects one student's marks, shows the card and saves it on confirmation.
// Nothing is persisted unless every input is valid and the user confirms.
func (m *Menu) addRecord(ctx context.Context) error {
	banner(m.out, "STUDENT REPORT CARD ENTRY SYSTEM", narrowRule)

	name, err := m.prompt(ctx, "Enter student name: ")
	if err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		fmt.Fprintln(m.out, "Error: Name cannot be empty!")
		return nil
	}

	roll, err := m.prompt(ctx, "Enter roll number: ")
	if err != nil {
		return err
	}
	if strings.TrimSpace(roll) == "" {
		fmt.Fprintln(m.out, "Error: Roll number cannot be empty!")
		return nil
	}

	marks := make(map[scoring.Component]float64, len(scoring.Components))
	for _, component := range scoring.Components {
		value, err := m.promptMark(ctx, component)
		if err != nil {
			return err
		}
		marks[component] = value
	}

	req := dto.ReportCardRequest{
		Name:       name,
		RollNumber: roll,
		Midterm:    marks[scoring.ComponentMidterm],
		Endterm:    marks[scoring.ComponentEndterm],
		Internal:   marks[scoring.ComponentInternal],
	}

	card, err := m.svc.Prepare(ctx, req)
	if err != nil {
		if service.IsValidationError(err) {
			fmt.Fprintf(m.out, "Error: %v\n", err)
			return nil
		}
		return err
	}
	RenderReportCard(m.out, card)

	answer, err := m.prompt(ctx, "Do you want to save this record? (yes/no): ")
	if err != nil {
		return err
	}
	if !isYes(answer) {
		return nil
	}

	if _, err := m.svc.Save(ctx, req); err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateRollNumber):
			fmt.Fprintln(m.out, "✗ Error: This roll number already exists in the database!")
		default:
			m.logger.Error().Err(err).Msg("save failed")
			fmt.Fprintf(m.out, "✗ Database error: %v\n", err)
		}
		return nil
	}

	fmt.Fprintln(m.out, "✓ Record saved to database successfully!")
	return nil
}

func (m *Menu) promptMark(ctx context.Context, component scoring.Component) (float64, error) {
	label := fmt.Sprintf("Enter %s marks (out of %g): ", strings.ToLower(service.ComponentLabel(component)), scoring.MaxMarks(component))
	for {
		raw, err := m.prompt(ctx, label)
		if err != nil {
			return 0, err
		}

		value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			fmt.Fprintln(m.out, "Please enter a valid number!")
			continue
		}
		value = scoring.Unsigned(value)

		if err := m.svc.ValidateMark(component, value); err != nil {
			fmt.Fprintln(m.out, err.Error())
			continue
		}

		return value, nil
	}
}

func (m *Menu) viewRecords(ctx context.Context) {
	records, err := m.svc.List(ctx)
	if err != nil {
		m.logger.Error().Err(err).Msg("list failed")
		fmt.Fprintf(m.out, "✗ Database error: %v\n", err)
		return
	}
	RenderRecords(m.out, records, m.location)
}

func (m *Menu) prompt(ctx context.Context, label string) (string, error) {
	fmt.Fprint(m.out, label)
	return m.in.readLine(ctx)
}

func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "yes", "y":
		return true
	default:
		return false
	}
}
