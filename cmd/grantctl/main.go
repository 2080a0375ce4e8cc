// Command grantctl inspects and revokes the grants persisted in MongoDB.
//
// Usage:
//
//	grantctl list --subject alice --client app1 -o yaml
//	grantctl revoke --subject alice --client app1 --type refresh_token
//	grantctl inspect --type reference_token --handle 7A3F...
//
// The connection is configured through the GRANTCTL_* environment variables.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/luikyv/go-oidc-grants/pkg/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type app struct {
	cfg config
}

type commands struct {
	List    listCmd    `command:"list" description:"List the grants matching a filter"`
	Revoke  revokeCmd  `command:"revoke" description:"Delete the grants matching a filter"`
	Inspect inspectCmd `command:"inspect" description:"Show the grant identified by a handle"`
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	a := &app{cfg: cfg}
	cmds := &commands{
		List:    listCmd{app: a},
		Revoke:  revokeCmd{app: a},
		Inspect: inspectCmd{app: a},
	}

	parser := flags.NewParser(cmds, flags.Default)
	if _, err := parser.ParseArgs(os.Args[1:]); err != nil {
		// go-flags already printed the error.
		os.Exit(1)
	}
}

// withManager connects to the database, runs f and disconnects.
func (a *app) withManager(f func(context.Context, mongodb.PersistedGrantManager) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Timeout)
	defer cancel()

	logger := newLogger(a.cfg)
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(a.cfg.MongoURI))
	if err != nil {
		return fmt.Errorf("could not connect to mongodb: %w", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Warn("could not disconnect from mongodb", "error", err)
		}
	}()

	manager := mongodb.NewPersistedGrantManager(
		client.Database(a.cfg.Database),
		mongodb.WithCollection(a.cfg.Collection),
	)
	logger.Debug("connected to mongodb", "database", a.cfg.Database, "collection", a.cfg.Collection)
	return f(ctx, manager)
}
