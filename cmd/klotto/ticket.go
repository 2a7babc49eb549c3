package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/twbeatles/klotto-generator/internal/model"
	"github.com/twbeatles/klotto-generator/internal/qr"
)

// NewTicketCmd creates the ticket command.
func NewTicketCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ticket [url]",
		Short: "Decode a purchased ticket's QR URL and check it",
		Long: `Ticket decodes the URL behind the QR code on a paper Lotto slip.

The URL carries the purchased round and up to five games. When that
round is already in the local database, every game is checked against
the official numbers and the prize rank is reported. Otherwise only
the decoded games are shown; run 'klotto sync' after the drawing and
check again.

Examples:
  klotto ticket 'https://m.dhlottery.co.kr/qr.do?v=1105m031118243644n051223303542'

  # Machine-readable result
  klotto ticket --json 'https://...'`,
		Args: cobra.ExactArgs(1),
		RunE: runTicketCmd,
	}

	addReportFlags(cmd)

	return cmd
}

// runTicketCmd executes the ticket command.
func runTicketCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildBaseConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyReportFlags(cmd, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	ticket, err := qr.ParseTicketURL(args[0])
	if err != nil {
		return err
	}

	check := &model.TicketCheck{Ticket: ticket}

	db, err := openDrawDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck // Read-only usage

	draw, err := db.GetDraw(cmd.Context(), ticket.DrawNo)
	if err != nil {
		return err
	}
	if draw == nil {
		logger.Debug("ticket round not stored yet", "draw_no", ticket.DrawNo)
	} else {
		check.Draw = draw
		check.Results = make([]model.MatchResult, 0, len(ticket.Games))
		for _, game := range ticket.Games {
			check.Results = append(check.Results, draw.Match(game))
		}
	}

	rep := model.NewReport()
	rep.Ticket = check
	return outputReport(cfg, rep)
}
