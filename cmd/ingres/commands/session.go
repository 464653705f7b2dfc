package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"

	ingresdb "github.com/satishbabariya/ingres-go/internal/adapters/database/ingres"
	"github.com/satishbabariya/ingres-go/internal/core/introspection/ingres"
	"github.com/satishbabariya/ingres-go/internal/debug"
)

// session is an open connection with an introspector on top of it.
type session struct {
	adapter      *ingresdb.Adapter
	introspector *ingres.Introspector
}

func (s *session) Close() {
	if err := s.adapter.Disconnect(context.Background()); err != nil {
		debug.Warn("failed to close connection", "error", err)
	}
}

// withTimeout bounds a command by the configured timeout.
func (a *app) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.cfg.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.cfg.Timeout)
}

// connect opens a session for the loaded configuration.
func (a *app) connect(ctx context.Context) (*session, error) {
	if err := a.promptPassword(); err != nil {
		return nil, err
	}

	adapter, err := ingresdb.NewAdapter(a.cfg.Settings(), a.cfg.DatabaseConfig())
	if err != nil {
		return nil, err
	}
	if err := adapter.Connect(ctx); err != nil {
		return nil, err
	}

	opts := []ingres.Option{
		ingres.WithUser(a.cfg.User),
		ingres.WithDataSource(adapter.DataSource()),
	}
	if a.cfg.Schema != "" {
		opts = append(opts, ingres.WithSchema(a.cfg.Schema))
	}

	return &session{
		adapter:      adapter,
		introspector: ingres.New(adapter.DB(), opts...),
	}, nil
}

// promptPassword asks for the password on an interactive terminal when
// none is configured.
func (a *app) promptPassword() error {
	if a.cfg.Password != "" || a.cfg.DataSourceName != "" {
		return nil
	}
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return nil
	}

	var password string
	prompt := &survey.Password{Message: "Password for " + a.cfg.User + ":"}
	if err := survey.AskOne(prompt, &password); err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	a.cfg.Password = password
	return nil
}
