package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/printdesk/printdesk/internal/config"
	"github.com/printdesk/printdesk/internal/logging"
)

func newOpsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "List the registered chat operations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(paths.Config)
			if err != nil {
				cfg = config.Defaults()
			}
			log = logging.NewStyled(resolveLogging(cfg, logLevel))
			reg := buildRegistry(cfg)

			for _, name := range reg.Names() {
				d, _ := reg.Describe(name)
				required := ""
				if len(d.Required) > 0 {
					required = " (requires " + strings.Join(d.Required, ", ") + ")"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s %s%s\n", name, d.Description, required)
			}
			return nil
		},
	}
}
