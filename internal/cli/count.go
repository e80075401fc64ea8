package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	staffingpb "github.com/ogurasousui/staffing-grpc-clean-arch/internal/adapters/grpc/api/staffing/v1"
	"github.com/ogurasousui/staffing-grpc-clean-arch/internal/adapters/snapshotfile"
	"github.com/ogurasousui/staffing-grpc-clean-arch/internal/core/staffing"
)

type countOptions struct {
	file         string
	addr         string
	departmentID int64
	positionID   int64
	directOnly   bool
	direct       bool
	output       string
	timeout      time.Duration
}

func (c *CLI) countCommand() *cobra.Command {
	opts := countOptions{}

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count total, occupied and vacant positions",
		Long: `Count total, occupied and vacant positions for a department, a position,
a (department, position) pair or the whole organization.

Records come from a YAML snapshot (--file) or a running staffing service (--addr).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (opts.file == "") == (opts.addr == "") {
				return errors.New("exactly one of --file or --addr is required")
			}
			switch opts.output {
			case "text", "json":
			default:
				return fmt.Errorf("unsupported --output %q", opts.output)
			}

			req := staffingpb.VacancyCountRequest{DirectOnly: opts.directOnly}
			if cmd.Flags().Changed("department") {
				req.DepartmentID = &opts.departmentID
			}
			if cmd.Flags().Changed("position") {
				req.PositionID = &opts.positionID
			}

			var (
				resp staffingpb.VacancyCountResponse
				err  error
			)
			if opts.file != "" {
				resp, err = c.countFromFile(cmd.Context(), opts, req)
			} else {
				resp, err = c.countFromServer(cmd.Context(), opts, req)
			}
			if err != nil {
				return err
			}
			return c.printCount(opts.output, resp)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "YAML snapshot file")
	cmd.Flags().StringVar(&opts.addr, "addr", "", "address of a running staffing service")
	cmd.Flags().Int64Var(&opts.departmentID, "department", 0, "department id")
	cmd.Flags().Int64Var(&opts.positionID, "position", 0, "position id")
	cmd.Flags().BoolVar(&opts.directOnly, "direct-only", false, "skip position relations and links")
	cmd.Flags().BoolVar(&opts.direct, "direct", false, "count only the (department, position) pair")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "text", "output format: text or json")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 5*time.Second, "request timeout for --addr")

	return cmd
}

func (c *CLI) countFromFile(ctx context.Context, opts countOptions, req staffingpb.VacancyCountRequest) (staffingpb.VacancyCountResponse, error) {
	svc := staffing.NewService(snapshotfile.NewSource(opts.file), nil, staffing.VacancyMode(c.mode), c.logger)

	var (
		result *staffing.VacancyCountResult
		err    error
	)
	if opts.direct {
		result, err = svc.GetDirectVacancyCount(ctx, staffing.GetDirectVacancyCountInput{
			DepartmentID: valueOrZero(req.DepartmentID),
			PositionID:   valueOrZero(req.PositionID),
		})
	} else {
		result, err = svc.GetVacancyCount(ctx, staffing.GetVacancyCountInput{
			DepartmentID: req.DepartmentID,
			PositionID:   req.PositionID,
			DirectOnly:   req.DirectOnly,
		})
	}
	if err != nil {
		return staffingpb.VacancyCountResponse{}, err
	}

	return staffingpb.VacancyCountResponse{
		Total:       int64(result.Count.Total),
		Occupied:    int64(result.Count.Occupied),
		Vacant:      int64(result.Count.Vacant),
		Departments: int64(result.Count.Departments),
		Strategy:    string(result.Strategy),
	}, nil
}

func (c *CLI) countFromServer(ctx context.Context, opts countOptions, req staffingpb.VacancyCountRequest) (staffingpb.VacancyCountResponse, error) {
	conn, err := grpc.NewClient(opts.addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return staffingpb.VacancyCountResponse{}, fmt.Errorf("dial %s: %w", opts.addr, err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	return remoteCount(ctx, staffingpb.NewStaffingServiceClient(conn), opts.direct, req)
}

func remoteCount(ctx context.Context, client staffingpb.StaffingServiceClient, direct bool, req staffingpb.VacancyCountRequest) (staffingpb.VacancyCountResponse, error) {
	call := client.GetVacancyCount
	if direct {
		call = client.GetDirectVacancyCount
	}

	out, err := call(ctx, req.ToStruct())
	if err != nil {
		return staffingpb.VacancyCountResponse{}, err
	}
	return staffingpb.ParseVacancyCountResponse(out)
}

func (c *CLI) printCount(output string, resp staffingpb.VacancyCountResponse) error {
	if output == "json" {
		enc := json.NewEncoder(c.out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"total":       resp.Total,
			"occupied":    resp.Occupied,
			"vacant":      resp.Vacant,
			"departments": resp.Departments,
			"strategy":    resp.Strategy,
		})
	}

	_, err := fmt.Fprintf(c.out, "total=%d occupied=%d vacant=%d departments=%d strategy=%s\n",
		resp.Total, resp.Occupied, resp.Vacant, resp.Departments, resp.Strategy)
	return err
}

func valueOrZero(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
