package commands

import (
	"context"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dyluth/pulse/internal/facility"
	"github.com/dyluth/pulse/internal/printer"
	"github.com/dyluth/pulse/pkg/board"
)

var facilityCmd = &cobra.Command{
	Use:   "facility",
	Short: "Manage workstations and employee training",
	Long: `Manage the facility's workstations and which employees are trained
(eligible) to run each of them.

All facility commands require the 'facilitymanager' role.`,
}

var facilityStationsCmd = &cobra.Command{
	Use:   "stations",
	Short: "List workstations and the employees trained on each",
	RunE:  runFacilityStations,
}

var facilityAddStationCmd = &cobra.Command{
	Use:   "add-station STATION",
	Short: "Register a workstation",
	Args:  cobra.ExactArgs(1),
	RunE:  runFacilityAddStation,
}

var facilityRemoveStationCmd = &cobra.Command{
	Use:   "remove-station STATION",
	Short: "Remove a workstation",
	Long: `Remove a workstation from the facility.

A station with employees still trained on it cannot be removed; untrain
them first.`,
	Args: cobra.ExactArgs(1),
	RunE: runFacilityRemoveStation,
}

var facilityTrainCmd = &cobra.Command{
	Use:   "train EMPLOYEE STATION",
	Short: "Mark an employee as trained on a station",
	Args:  cobra.ExactArgs(2),
	RunE:  runFacilityTrain,
}

var facilityUntrainCmd = &cobra.Command{
	Use:   "untrain EMPLOYEE STATION",
	Short: "Remove an employee's training for a station",
	Args:  cobra.ExactArgs(2),
	RunE:  runFacilityUntrain,
}

func init() {
	facilityCmd.AddCommand(facilityStationsCmd)
	facilityCmd.AddCommand(facilityAddStationCmd)
	facilityCmd.AddCommand(facilityRemoveStationCmd)
	facilityCmd.AddCommand(facilityTrainCmd)
	facilityCmd.AddCommand(facilityUntrainCmd)
	rootCmd.AddCommand(facilityCmd)
}

// facilityEnv is the shared prologue of every facility subcommand.
func facilityEnv(ctx context.Context) (*env, *facility.Manager, error) {
	e, err := newEnv(ctx)
	if err != nil {
		return nil, nil, err
	}

	if _, err := e.requireAccess(ctx, board.AccessFacilityManager); err != nil {
		e.Close()
		return nil, nil, err
	}

	return e, facility.NewManager(e.client), nil
}

func runFacilityStations(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, mgr, err := facilityEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	eligibility, err := mgr.EligibilityByStation(ctx)
	if err != nil {
		return printer.Error("failed to read stations", err.Error(), nil)
	}

	if len(eligibility) == 0 {
		printer.Println("No workstations registered.")
		printer.Println()
		printer.Println("Run 'pulse facility add-station NAME' to register one.")
		return nil
	}

	stations := make([]string, 0, len(eligibility))
	for station := range eligibility {
		stations = append(stations, station)
	}
	sort.Strings(stations)

	printer.Printf("%-20s %s\n", "STATION", "TRAINED EMPLOYEES")
	for _, station := range stations {
		names := strings.Join(eligibility[station], ", ")
		if names == "" {
			names = "-"
		}
		printer.Printf("%-20s %s\n", station, names)
	}
	return nil
}

func runFacilityAddStation(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, mgr, err := facilityEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	if err := mgr.AddStation(ctx, args[0]); err != nil {
		return printer.Error("failed to add station", err.Error(), nil)
	}

	printer.Success("Added station %s\n", args[0])
	return nil
}

func runFacilityRemoveStation(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, mgr, err := facilityEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	if err := mgr.RemoveStation(ctx, args[0]); err != nil {
		return printer.Error(
			"failed to remove station",
			err.Error(),
			[]string{"Untrain the remaining employees with 'pulse facility untrain'"},
		)
	}

	printer.Success("Removed station %s\n", args[0])
	return nil
}

func runFacilityTrain(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, mgr, err := facilityEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	if err := mgr.Train(ctx, args[0], args[1]); err != nil {
		return printer.Error("failed to record training", err.Error(), nil)
	}

	printer.Success("%s is now trained on %s\n", args[0], args[1])
	return nil
}

func runFacilityUntrain(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, mgr, err := facilityEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	if err := mgr.Untrain(ctx, args[0], args[1]); err != nil {
		return printer.Error("failed to remove training", err.Error(), nil)
	}

	printer.Success("%s is no longer trained on %s\n", args[0], args[1])
	return nil
}
