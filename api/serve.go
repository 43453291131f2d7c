package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	. "github.com/jimiolaniyan/microboard"
	"github.com/jimiolaniyan/microboard/auth"
	"github.com/jimiolaniyan/microboard/internal/config"
	"github.com/jimiolaniyan/microboard/internal/logging"
	"github.com/jimiolaniyan/microboard/internal/mongodb"
	"github.com/jimiolaniyan/microboard/internal/sqldb"
)

func newServeCmd(cfgFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(cmd.Flags(), *cfgFile)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, c)
		},
	}
	addConfigFlags(cmd.Flags())
	return cmd
}

func addConfigFlags(f *pflag.FlagSet) {
	d := config.Defaults()
	f.String("server.addr", d["server.addr"].(string), "listen address")
	f.String("store.driver", d["store.driver"].(string), "memory, sqlite, postgres, mysql or mongo")
	f.String("store.dsn", d["store.dsn"].(string), "data source name or mongo uri")
	f.String("store.database", d["store.database"].(string), "mongo database name")
	f.String("credentials.scheme", d["credentials.scheme"].(string), "plain or bcrypt")
	f.Bool("debug", false, "enable debug logging")
}

func serve(ctx context.Context, c config.Config) error {
	logging.SetDebug(c.Debug)

	scheme, err := auth.SchemeByName(c.Credentials.Scheme)
	if err != nil {
		return err
	}

	accountRepo, messageRepo, closer, err := openRepositories(ctx, c.Store)
	if err != nil {
		return err
	}
	defer closer.Close()

	accounts := auth.NewService(accountRepo, scheme)
	messages := NewService(messageRepo, accounts)

	srv := &http.Server{Addr: c.Server.Addr, Handler: NewRouter(accounts, messages)}

	errc := make(chan error, 1)
	go func() {
		logging.Infof("Server started. Listening on %s (store: %s)", c.Server.Addr, c.Store.Driver)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logging.Infof("Server stopped")
	return nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func openRepositories(ctx context.Context, s config.Store) (auth.Repository, Repository, io.Closer, error) {
	switch s.Driver {
	case "memory":
		return auth.NewAccountRepository(), NewMessageRepository(), closerFunc(func() error { return nil }), nil

	case "mongo":
		client, err := mongodb.Connect(ctx, s.DSN)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connecting to mongo: %w", err)
		}
		db := client.Database(s.Database)
		closer := closerFunc(func() error { return client.Disconnect(context.Background()) })

		a, err := auth.NewMongoAccountRepository(ctx, db)
		if err != nil {
			_ = closer.Close()
			return nil, nil, nil, err
		}
		m, err := NewMongoMessageRepository(ctx, db)
		if err != nil {
			_ = closer.Close()
			return nil, nil, nil, err
		}
		return a, m, closer, nil

	default:
		db, err := sqldb.Open(s.Driver, s.DSN)
		if err != nil {
			return nil, nil, nil, err
		}

		a, err := auth.NewSQLAccountRepository(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, nil, nil, err
		}
		m, err := NewSQLMessageRepository(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, nil, nil, err
		}
		return a, m, db, nil
	}
}
