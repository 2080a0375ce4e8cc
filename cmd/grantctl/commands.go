package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/luikyv/go-oidc-grants/pkg/goidc"
	"github.com/luikyv/go-oidc-grants/pkg/grantstore"
	"github.com/luikyv/go-oidc-grants/pkg/mongodb"
	"gopkg.in/yaml.v3"
)

const (
	outputJSON = "json"
	outputYAML = "yaml"
)

type FilterFlags struct {
	Subject string `long:"subject" description:"Subject identifier"`
	Client  string `long:"client" description:"Client identifier"`
	Session string `long:"session" description:"Session identifier"`
	Type    string `long:"type" description:"Grant type, e.g. refresh_token"`
}

func (f FilterFlags) filter() goidc.PersistedGrantFilter {
	return goidc.PersistedGrantFilter{
		SubjectID: f.Subject,
		SessionID: f.Session,
		ClientID:  f.Client,
		Type:      goidc.GrantType(f.Type),
	}
}

type listCmd struct {
	FilterFlags
	Output string `long:"output" short:"o" default:"json" choice:"json" choice:"yaml" description:"Output format"`
	app    *app
	out    io.Writer
}

func (c *listCmd) Execute(_ []string) error {
	return c.app.withManager(func(ctx context.Context, manager mongodb.PersistedGrantManager) error {
		grants, err := manager.PersistedGrants(ctx, c.filter())
		if err != nil {
			return err
		}
		return writeGrants(c.writer(), c.Output, grants)
	})
}

func (c *listCmd) writer() io.Writer {
	if c.out == nil {
		return os.Stdout
	}
	return c.out
}

// writeGrants prints one document per grant, as JSON lines or as a YAML
// stream. Payloads are left out since they may contain sensitive claims.
func writeGrants(w io.Writer, output string, grants []*goidc.PersistedGrant) error {
	var encode func(v any) error
	switch output {
	case "", outputJSON:
		encode = json.NewEncoder(w).Encode
	case outputYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		encode = enc.Encode
	default:
		return fmt.Errorf("unknown output format %q", output)
	}

	for _, grant := range grants {
		g := *grant
		g.Data = ""
		if err := encode(g); err != nil {
			return err
		}
	}
	return nil
}

type revokeCmd struct {
	FilterFlags
	app *app
}

func (c *revokeCmd) Execute(_ []string) error {
	return c.app.withManager(func(ctx context.Context, manager mongodb.PersistedGrantManager) error {
		filter := c.filter()
		if err := manager.DeleteAll(ctx, filter); err != nil {
			return err
		}
		newLogger(c.app.cfg).Info("grants revoked",
			slog.String("subject_id", filter.SubjectID),
			slog.String("client_id", filter.ClientID),
			slog.String("session_id", filter.SessionID),
			slog.String("type", string(filter.Type)))
		return nil
	})
}

type inspectCmd struct {
	Type    string `long:"type" required:"true" description:"Grant type of the handle"`
	Handle  string `long:"handle" required:"true" description:"Handle returned to the client"`
	Blake2b bool   `long:"blake2b" description:"Keys were derived with BLAKE2b instead of SHA-256"`
	app     *app
	out     io.Writer
}

type inspection struct {
	Grant   *goidc.PersistedGrant `json:"grant"`
	Payload json.RawMessage       `json:"payload,omitempty"`
}

func (c *inspectCmd) Execute(_ []string) error {
	return c.app.withManager(func(ctx context.Context, manager mongodb.PersistedGrantManager) error {
		return c.inspect(ctx, manager)
	})
}

func (c *inspectCmd) inspect(ctx context.Context, manager goidc.PersistedGrantManager) error {
	opts := []grantstore.Option{
		grantstore.WithPersistedGrantManager(manager),
		grantstore.WithLogger(newLogger(c.app.cfg)),
	}
	if c.Blake2b {
		opts = append(opts, grantstore.WithKeyHashFunc(grantstore.KeyHashBlake2b))
	}

	store, err := grantstore.New[json.RawMessage](goidc.GrantType(c.Type), opts...)
	if err != nil {
		return err
	}

	grant, err := store.Grant(ctx, c.Handle)
	if err != nil {
		return err
	}
	if grant == nil {
		return errors.New("grant not found")
	}

	result := inspection{Grant: grant}
	if payload, err := store.Item(ctx, c.Handle); err == nil && payload != nil {
		result.Payload = *payload
	}
	result.Grant.Data = ""

	w := c.out
	if w == nil {
		w = os.Stdout
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("could not encode the grant: %w", err)
	}
	return nil
}
