package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/printdesk/printdesk/internal/config"
	"github.com/printdesk/printdesk/internal/domain"
	"github.com/printdesk/printdesk/internal/logging"
)

func newAskCmd() *cobra.Command {
	var (
		sessionID string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "ask <message>",
		Short: "Run one chat turn from the command line",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(paths.Config)
			if err != nil {
				return err
			}
			log = logging.NewStyled(resolveLogging(cfg, logLevel))
			if cfg.Session.Store == "" || cfg.Session.Store == "sqlite" {
				if err := paths.EnsureDirs(); err != nil {
					return fmt.Errorf("creating data directories: %w", err)
				}
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			rt, err := buildRuntime(ctx, cfg)
			if err != nil {
				return err
			}
			defer rt.cleanup()

			resp := rt.orch.Turn(ctx, domain.TurnRequest{
				SessionID: sessionID,
				Messages: []domain.ChatMessage{{
					ID:        uuid.NewString(),
					Role:      domain.RoleUser,
					Content:   strings.Join(args, " "),
					Timestamp: time.Now().UTC(),
				}},
			})

			if asJSON {
				out, err := json.MarshalIndent(resp, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
			if resp.RichData != nil {
				out, err := json.MarshalIndent(resp.RichData, "", "  ")
				if err == nil {
					fmt.Fprintln(cmd.OutOrStdout(), string(out))
				}
			}
			if resp.SessionID != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "session: %s\n", resp.SessionID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "continue an existing session")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full response as JSON")
	return cmd
}
