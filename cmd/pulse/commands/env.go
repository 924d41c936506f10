package commands

import (
	"context"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/dyluth/pulse/internal/config"
	"github.com/dyluth/pulse/internal/printer"
	"github.com/dyluth/pulse/internal/session"
	"github.com/dyluth/pulse/pkg/board"
)

// env is the shared setup every subcommand needs: the loaded pulse.yml
// and a board client scoped to its facility.
type env struct {
	cfg    *config.PulseConfig
	client *board.Client
}

// newEnv loads pulse.yml and connects the board client. Callers own the
// returned env and must Close it.
func newEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, printer.Error(
			"failed to load configuration",
			err.Error(),
			[]string{
				"Run from the directory containing pulse.yml",
				"Pass --config with the file's path",
			},
		)
	}

	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, printer.Error(
			"invalid Redis URL",
			err.Error(),
			[]string{"Check the redis.url value in pulse.yml"},
		)
	}

	client, err := board.NewClient(redisOpts, cfg.Facility.Name)
	if err != nil {
		return nil, printer.Error("failed to create board client", err.Error(), nil)
	}

	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, printer.ErrorWithContext(
			"Redis is not reachable",
			err.Error(),
			map[string]string{"URL": cfg.Redis.URL},
			[]string{"Check that Redis is running and the redis.url in pulse.yml is correct"},
		)
	}

	return &env{cfg: cfg, client: client}, nil
}

// Close releases the board connection.
func (e *env) Close() error {
	return e.client.Close()
}

// sessions returns the session service configured from pulse.yml.
func (e *env) sessions() *session.Service {
	return session.NewService(e.client, e.cfg.SessionTTL())
}

// token resolves the session token from --session or $PULSE_SESSION.
func token() string {
	if sessionToken != "" {
		return sessionToken
	}
	return os.Getenv("PULSE_SESSION")
}

// requireAccess resolves the current session and checks it holds the role.
// The failure output tells the operator how to log in.
func (e *env) requireAccess(ctx context.Context, role board.AccessRole) (*board.Employee, error) {
	tok := token()
	if tok == "" {
		return nil, printer.Error(
			"not logged in",
			"This command needs an active session.",
			[]string{
				"Run 'pulse login --name YOU --password ...' and export PULSE_SESSION",
				"Pass --session with an existing token",
			},
		)
	}

	employee, err := e.sessions().RequireAccess(ctx, tok, role)
	if err != nil {
		return nil, printer.ErrorWithContext(
			"access denied",
			err.Error(),
			map[string]string{"Required role": string(role)},
			[]string{"Log in as an account holding the role (or the 'all' role)"},
		)
	}
	return employee, nil
}
