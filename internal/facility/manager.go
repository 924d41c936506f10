// Package facility manages a site's workstations and which employees are
// trained on them. Training lives on the employee record; the station set
// is board-wide.
package facility

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dyluth/pulse/pkg/board"
)

// Manager reads and mutates one facility's station layout.
type Manager struct {
	client *board.Client
}

// NewManager creates a manager over the given board client.
func NewManager(client *board.Client) *Manager {
	return &Manager{client: client}
}

// Stations returns the facility's stations, sorted.
func (m *Manager) Stations(ctx context.Context) ([]string, error) {
	return m.client.Stations(ctx)
}

// AddStation registers a new station. Adding an existing station is a
// no-op.
func (m *Manager) AddStation(ctx context.Context, station string) error {
	return m.client.AddStation(ctx, station)
}

// RemoveStation deletes a station. The removal is refused while any
// employee is still trained on it, naming the employees in the error.
func (m *Manager) RemoveStation(ctx context.Context, station string) error {
	trained, err := m.trainedOn(ctx, station)
	if err != nil {
		return err
	}
	if len(trained) > 0 {
		return fmt.Errorf("station %s still has trained employees (%s); untrain them first",
			station, strings.Join(trained, ", "))
	}
	return m.client.RemoveStation(ctx, station)
}

// Train records that an employee is trained on a station. The station must
// exist. Training twice is a no-op.
func (m *Manager) Train(ctx context.Context, employeeName, station string) error {
	stations, err := m.client.Stations(ctx)
	if err != nil {
		return err
	}
	if !contains(stations, station) {
		return fmt.Errorf("unknown station: %s", station)
	}

	employee, err := m.client.GetEmployee(ctx, employeeName)
	if err != nil {
		return fmt.Errorf("failed to load employee %s: %w", employeeName, err)
	}
	if contains(employee.Workstations, station) {
		return nil
	}

	employee.Workstations = append(employee.Workstations, station)
	sort.Strings(employee.Workstations)
	return m.client.PutEmployee(ctx, employee)
}

// Untrain removes a station from an employee's training record. Untraining
// a station the employee never had is a no-op.
func (m *Manager) Untrain(ctx context.Context, employeeName, station string) error {
	employee, err := m.client.GetEmployee(ctx, employeeName)
	if err != nil {
		return fmt.Errorf("failed to load employee %s: %w", employeeName, err)
	}

	kept := employee.Workstations[:0]
	removed := false
	for _, ws := range employee.Workstations {
		if ws == station {
			removed = true
			continue
		}
		kept = append(kept, ws)
	}
	if !removed {
		return nil
	}

	employee.Workstations = kept
	return m.client.PutEmployee(ctx, employee)
}

// EligibilityByStation maps every station to the sorted names of employees
// trained on it. Stations nobody is trained on map to an empty slice.
func (m *Manager) EligibilityByStation(ctx context.Context) (map[string][]string, error) {
	stations, err := m.client.Stations(ctx)
	if err != nil {
		return nil, err
	}
	employees, err := m.client.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	eligibility := make(map[string][]string, len(stations))
	for _, station := range stations {
		eligibility[station] = []string{}
	}
	for _, e := range employees {
		for _, station := range e.Workstations {
			if _, ok := eligibility[station]; ok {
				eligibility[station] = append(eligibility[station], e.Name)
			}
		}
	}
	for station := range eligibility {
		sort.Strings(eligibility[station])
	}
	return eligibility, nil
}

// AvailableFor returns the stations the employee is not yet trained on,
// sorted.
func (m *Manager) AvailableFor(ctx context.Context, employeeName string) ([]string, error) {
	stations, err := m.client.Stations(ctx)
	if err != nil {
		return nil, err
	}
	employee, err := m.client.GetEmployee(ctx, employeeName)
	if err != nil {
		return nil, fmt.Errorf("failed to load employee %s: %w", employeeName, err)
	}

	available := make([]string, 0, len(stations))
	for _, station := range stations {
		if !contains(employee.Workstations, station) {
			available = append(available, station)
		}
	}
	return available, nil
}

func (m *Manager) trainedOn(ctx context.Context, station string) ([]string, error) {
	employees, err := m.client.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	var trained []string
	for _, e := range employees {
		if contains(e.Workstations, station) {
			trained = append(trained, e.Name)
		}
	}
	return trained, nil
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
