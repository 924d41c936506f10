package staff

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dyluth/pulse/pkg/board"
)

func setupDirectory(t *testing.T) *Directory {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := board.NewClient(&redis.Options{Addr: mr.Addr()}, "northgate")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return NewDirectory(client)
}

func seed(t *testing.T, d *Directory, employees ...*board.Employee) {
	t.Helper()
	for _, e := range employees {
		require.NoError(t, d.AddOrUpdate(context.Background(), e))
	}
}

func TestListFiltersSystemAccounts(t *testing.T) {
	d := setupDirectory(t)
	ctx := context.Background()
	seed(t, d,
		&board.Employee{Name: "Jane Doe", HourlyRate: 14.5},
		&board.Employee{Name: "Bob Smith", HourlyRate: 13},
		&board.Employee{Name: "scanner-gateway", PulseAccess: []board.AccessRole{board.AccessTrackingTool}},
		&board.Employee{Name: "Site Admin", PulseAccess: []board.AccessRole{board.AccessAll}},
	)

	visible, err := d.List(ctx, false)
	require.NoError(t, err)
	names := employeeNames(visible)
	assert.Equal(t, []string{"Bob Smith", "Jane Doe", "Site Admin"}, names,
		"roled accounts without the all role stay off the roster")

	everyone, err := d.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, everyone, 4)
}

func TestSearch(t *testing.T) {
	d := setupDirectory(t)
	ctx := context.Background()
	seed(t, d,
		&board.Employee{Name: "Jane Doe"},
		&board.Employee{Name: "Janet Lane"},
		&board.Employee{Name: "Bob Smith"},
	)

	t.Run("case-insensitive substring", func(t *testing.T) {
		found, err := d.Search(ctx, "jan")
		require.NoError(t, err)
		assert.Equal(t, []string{"Jane Doe", "Janet Lane"}, employeeNames(found))
	})

	t.Run("empty query matches everyone", func(t *testing.T) {
		found, err := d.Search(ctx, "  ")
		require.NoError(t, err)
		assert.Len(t, found, 3)
	})

	t.Run("no matches", func(t *testing.T) {
		found, err := d.Search(ctx, "zelda")
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}

func TestAddOrUpdateNormalizesRate(t *testing.T) {
	d := setupDirectory(t)
	ctx := context.Background()

	require.NoError(t, d.AddOrUpdate(ctx, &board.Employee{Name: "Jane Doe", HourlyRate: 14.556}))

	stored, err := d.Get(ctx, "Jane Doe")
	require.NoError(t, err)
	assert.Equal(t, 14.56, stored.HourlyRate)
}

func TestAddOrUpdateRejectsInvalid(t *testing.T) {
	d := setupDirectory(t)
	err := d.AddOrUpdate(context.Background(), &board.Employee{Name: "", HourlyRate: 10})
	assert.Error(t, err)
}

func TestRemove(t *testing.T) {
	d := setupDirectory(t)
	ctx := context.Background()
	seed(t, d, &board.Employee{Name: "Jane Doe"})

	require.NoError(t, d.Remove(ctx, "Jane Doe"))
	_, err := d.Get(ctx, "Jane Doe")
	assert.True(t, board.IsNotFound(err))

	assert.NoError(t, d.Remove(ctx, "Jane Doe"), "removing an unknown name is a no-op")
}

func TestSetRate(t *testing.T) {
	d := setupDirectory(t)
	ctx := context.Background()
	seed(t, d, &board.Employee{Name: "Jane Doe", HourlyRate: 14.5})

	t.Run("updates and rounds", func(t *testing.T) {
		require.NoError(t, d.SetRate(ctx, "Jane Doe", 15.998))
		stored, err := d.Get(ctx, "Jane Doe")
		require.NoError(t, err)
		assert.Equal(t, 16.0, stored.HourlyRate)
	})

	t.Run("unchanged rate is a no-op", func(t *testing.T) {
		require.NoError(t, d.SetRate(ctx, "Jane Doe", 16.0))
	})

	t.Run("negative rate rejected", func(t *testing.T) {
		assert.Error(t, d.SetRate(ctx, "Jane Doe", -1))
	})

	t.Run("unknown employee", func(t *testing.T) {
		err := d.SetRate(ctx, "Nobody", 12)
		require.Error(t, err)
		assert.True(t, board.IsNotFound(err))
	})
}

func employeeNames(employees []*board.Employee) []string {
	names := make([]string, len(employees))
	for i, e := range employees {
		names[i] = e.Name
	}
	return names
}
