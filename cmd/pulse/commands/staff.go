package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dyluth/pulse/internal/printer"
	"github.com/dyluth/pulse/internal/staff"
	"github.com/dyluth/pulse/pkg/board"
)

var (
	staffAddName     string
	staffAddPassword string
	staffAddRate     float64
	staffAddStations []string
	staffRateValue   float64
)

var staffCmd = &cobra.Command{
	Use:   "staff",
	Short: "Manage the facility's employee directory",
	Long: `Manage the facility's employee directory: the roster the floor
screens show, workstation training, and pay rates.

System accounts (records that only exist to hold access roles) are kept
out of the roster views.

All staff commands require the 'staffmanager' role. Pay rates are only
displayed to holders of 'viewpayrate'.`,
}

var staffListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the employee roster",
	RunE:  runStaffList,
}

var staffSearchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Search the roster by name",
	Long: `Search the roster for employees whose name contains QUERY,
case-insensitively.

Examples:
  pulse staff search jane
  pulse staff search "van der"`,
	Args: cobra.ExactArgs(1),
	RunE: runStaffSearch,
}

var staffAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an employee or update an existing record",
	Long: `Add an employee, or update the record of an existing one.

Only the flags you pass change; everything else keeps its stored value.
Names are matched case-insensitively, so 'jane doe' updates 'Jane Doe'.

Examples:
  pulse staff add --name "Jane Doe" --password secret --rate 17.50
  pulse staff add --name "Jane Doe" --stations "PRINT-1,PACKING"`,
	RunE: runStaffAdd,
}

var staffRemoveCmd = &cobra.Command{
	Use:   "remove NAME",
	Short: "Remove an employee record",
	Args:  cobra.ExactArgs(1),
	RunE:  runStaffRemove,
}

var staffRateCmd = &cobra.Command{
	Use:   "rate NAME",
	Short: "Set an employee's hourly rate",
	Long: `Set an employee's hourly rate.

Rates are stored to two decimal places. Setting the rate an employee
already has changes nothing.`,
	Args: cobra.ExactArgs(1),
	RunE: runStaffRate,
}

func init() {
	staffAddCmd.Flags().StringVar(&staffAddName, "name", "", "Employee name (required)")
	staffAddCmd.Flags().StringVar(&staffAddPassword, "password", "", "Login password")
	staffAddCmd.Flags().Float64Var(&staffAddRate, "rate", 0, "Hourly rate")
	staffAddCmd.Flags().StringSliceVar(&staffAddStations, "stations", nil, "Comma-separated trained stations")
	staffAddCmd.MarkFlagRequired("name")

	staffRateCmd.Flags().Float64Var(&staffRateValue, "rate", 0, "Hourly rate (required)")
	staffRateCmd.MarkFlagRequired("rate")

	staffCmd.AddCommand(staffListCmd)
	staffCmd.AddCommand(staffSearchCmd)
	staffCmd.AddCommand(staffAddCmd)
	staffCmd.AddCommand(staffRemoveCmd)
	staffCmd.AddCommand(staffRateCmd)
	rootCmd.AddCommand(staffCmd)
}

func runStaffList(cmd *cobra.Command, args []string) error {
	return staffQuery(func(ctx context.Context, dir *staff.Directory) ([]*board.Employee, error) {
		return dir.List(ctx, false)
	})
}

func runStaffSearch(cmd *cobra.Command, args []string) error {
	return staffQuery(func(ctx context.Context, dir *staff.Directory) ([]*board.Employee, error) {
		return dir.Search(ctx, args[0])
	})
}

// staffQuery runs a roster read and prints the results as a table.
func staffQuery(query func(context.Context, *staff.Directory) ([]*board.Employee, error)) error {
	ctx := context.Background()

	e, err := newEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	actor, err := e.requireAccess(ctx, board.AccessStaffManager)
	if err != nil {
		return err
	}

	employees, err := query(ctx, staff.NewDirectory(e.client))
	if err != nil {
		return printer.Error("failed to read the roster", err.Error(), nil)
	}

	if len(employees) == 0 {
		printer.Println("No employees found.")
		return nil
	}

	printStaffTable(employees, actor.HasAccess(board.AccessViewPayRate))
	return nil
}

func printStaffTable(employees []*board.Employee, showRates bool) {
	if showRates {
		printer.Printf("%-25s %-10s %s\n", "NAME", "RATE", "STATIONS")
	} else {
		printer.Printf("%-25s %s\n", "NAME", "STATIONS")
	}

	for _, emp := range employees {
		stations := strings.Join(emp.Workstations, ", ")
		if stations == "" {
			stations = "-"
		}
		if showRates {
			printer.Printf("%-25s %-10.2f %s\n", emp.Name, emp.HourlyRate, stations)
		} else {
			printer.Printf("%-25s %s\n", emp.Name, stations)
		}
	}
}

func runStaffAdd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, err := newEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	if _, err := e.requireAccess(ctx, board.AccessStaffManager); err != nil {
		return err
	}

	dir := staff.NewDirectory(e.client)

	// Start from the stored record when one exists, so unset flags keep
	// their current values.
	employee, err := dir.Get(ctx, staffAddName)
	if err != nil {
		if !board.IsNotFound(err) {
			return printer.Error("failed to load employee record", err.Error(), nil)
		}
		employee = &board.Employee{Name: staffAddName}
	}

	if cmd.Flags().Changed("password") {
		employee.Password = staffAddPassword
	}
	if cmd.Flags().Changed("rate") {
		employee.HourlyRate = staffAddRate
	}
	if cmd.Flags().Changed("stations") {
		employee.Workstations = staffAddStations
	}

	if err := dir.AddOrUpdate(ctx, employee); err != nil {
		return printer.Error("failed to store employee record", err.Error(), nil)
	}

	printer.Success("Stored record for %s\n", employee.Name)
	return nil
}

func runStaffRemove(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, err := newEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	if _, err := e.requireAccess(ctx, board.AccessStaffManager); err != nil {
		return err
	}

	if err := staff.NewDirectory(e.client).Remove(ctx, args[0]); err != nil {
		return printer.Error("failed to remove employee", err.Error(), nil)
	}

	printer.Success("Removed %s\n", args[0])
	return nil
}

func runStaffRate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, err := newEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	if _, err := e.requireAccess(ctx, board.AccessStaffManager); err != nil {
		return err
	}

	if err := staff.NewDirectory(e.client).SetRate(ctx, args[0], staffRateValue); err != nil {
		if board.IsNotFound(err) {
			return printer.Error(
				"employee not found",
				"No record exists for "+args[0]+".",
				[]string{"Check the name with 'pulse staff list'"},
			)
		}
		return printer.Error("failed to set rate", err.Error(), nil)
	}

	printer.Success("Set rate for %s\n", args[0])
	return nil
}
