package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ogurasousui/staffing-grpc-clean-arch/internal/adapters/snapshotfile"
	"github.com/ogurasousui/staffing-grpc-clean-arch/internal/core/staffing"
)

func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <snapshot.yaml>",
		Short: "Check that a snapshot file is structurally valid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := snapshotfile.NewSource(args[0]).LoadRecords(cmd.Context())
			if err != nil {
				return err
			}

			snap, err := staffing.NewSnapshot(records, staffing.VacancyMode(c.mode))
			if err != nil {
				return err
			}

			s := snap.Summary()
			_, err = fmt.Fprintf(c.out, "ok: departments=%d positions=%d bindings=%d employees=%d relations=%d links=%d\n",
				s.Departments, s.Positions, s.Bindings, s.Employees, s.Relations, s.Links)
			return err
		},
	}
}
