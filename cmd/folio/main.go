package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tunjipaul/folio/internal/browser"
	"github.com/tunjipaul/folio/internal/config"
	"github.com/tunjipaul/folio/internal/logging"
	"github.com/tunjipaul/folio/internal/tui"
	"github.com/tunjipaul/folio/pkg/client"
	"github.com/tunjipaul/folio/pkg/domain"
	"github.com/tunjipaul/folio/pkg/session"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdout)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// cli holds everything a subcommand needs.
type cli struct {
	cfg     *config.Config
	storage *session.FileStorage
	store   *session.Store
	client  *client.Client
	log     zerolog.Logger
	out     io.Writer
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) > 0 {
		switch args[0] {
		case "--version", "version", "-v":
			fmt.Fprintln(out, "folio "+version)
			return nil
		case "help", "--help", "-h":
			printHelp(out)
			return nil
		}
	}

	c, closeLog, err := setup(out)
	if err != nil {
		return err
	}
	defer closeLog.Close() //nolint:errcheck

	if len(args) == 0 {
		return c.dashboard(ctx, "")
	}
	switch args[0] {
	case "login":
		return c.login(ctx, args[1:])
	case "logout":
		return c.logout()
	case "status":
		return c.status()
	case "upload":
		return c.upload(ctx, args[1:])
	case "download":
		return c.download(ctx, args[1:])
	case "delete":
		return c.remove(ctx, args[1:])
	case "site":
		return c.openSite()
	default:
		return fmt.Errorf("unknown command %q, run `folio help`", args[0])
	}
}

func setup(out io.Writer) (*cli, io.Closer, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log, closer, err := logging.Setup(cfg.LogLevel, cfg.LogPath())
	if err != nil {
		return nil, nil, err
	}

	storage := session.NewFileStorage(cfg.SessionPath())
	store := session.NewStore(storage)
	c := &cli{
		cfg:     cfg,
		storage: storage,
		store:   store,
		log:     log,
		out:     out,
	}
	c.client = client.New(cfg.APIURL, store,
		client.WithTimeout(cfg.Timeout),
		client.WithLogger(log),
		client.WithLogoutHook(func() {
			fmt.Fprintln(out, "Session ended. Run `folio login` to sign in again.")
		}),
	)
	return c, closer, nil
}

func (c *cli) dashboard(ctx context.Context, email string) error {
	c.log.Info().Str("version", version).Str("api", c.cfg.APIURL).Msg("dashboard start")
	return tui.Run(ctx, c.client, c.storage, tui.Options{
		Version: version,
		SiteURL: c.cfg.SiteURL,
		Email:   email,
	}, c.log)
}

// parseLoginArgs accepts `--email E` and `--email=E`.
func parseLoginArgs(args []string) (string, error) {
	var email string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--email" || arg == "-e":
			if i+1 >= len(args) {
				return "", fmt.Errorf("%s requires a value", arg)
			}
			i++
			email = args[i]
		case strings.HasPrefix(arg, "--email="):
			email = strings.TrimPrefix(arg, "--email=")
		default:
			return "", fmt.Errorf("unexpected argument %q", arg)
		}
	}
	return strings.TrimSpace(email), nil
}

// login signs in non-interactively when FOLIO_PASSWORD is set, and
// otherwise opens the dashboard on its login view.
func (c *cli) login(ctx context.Context, args []string) error {
	email, err := parseLoginArgs(args)
	if err != nil {
		return err
	}
	rec, err := c.store.Load()
	if err != nil {
		c.log.Warn().Err(err).Msg("unreadable session, ignoring")
	}
	if email == "" {
		email = rec.AdminEmail
	}

	password := os.Getenv("FOLIO_PASSWORD")
	if password == "" {
		if rec.AuthenticatedAt(c.store.Now()) {
			fmt.Fprintf(c.out, "Already logged in as %s. Run `folio logout` first to switch accounts.\n", rec.AdminEmail)
			return nil
		}
		return c.dashboard(ctx, email)
	}
	if email == "" {
		return errors.New("login: --email is required when FOLIO_PASSWORD is set")
	}

	grant, err := c.client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	rec, err = c.store.Load()
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Authenticated as %s\n", grant.Email)
	if exp, ok := rec.Expiry(); ok {
		fmt.Fprintf(c.out, "Session expires %s\n", exp.Local().Format(time.RFC1123))
	}
	return nil
}

func (c *cli) logout() error {
	rec, err := c.store.Load()
	if err == nil && rec.Empty() {
		fmt.Fprintln(c.out, "Already logged out.")
		return nil
	}
	if err := c.store.Clear(); err != nil {
		return err
	}
	c.log.Info().Str("email", rec.AdminEmail).Msg("logged out")
	fmt.Fprintln(c.out, "Logged out.")
	return nil
}

func (c *cli) status() error {
	rec, err := c.store.Load()
	if err != nil {
		return err
	}
	printStatus(c.out, rec, c.store.Now(), c.cfg.APIURL)
	return nil
}

func (c *cli) upload(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: folio upload <resume|cv> <file.pdf>")
	}
	t, err := domain.ParseDocType(args[0])
	if err != nil {
		return err
	}
	f, err := os.Open(args[1])
	if err != nil {
		return fmt.Errorf("open %s: %w", args[1], err)
	}
	defer f.Close() //nolint:errcheck

	res, err := c.client.UploadDocument(ctx, t, filepath.Base(args[1]), f)
	if err != nil {
		return err
	}
	msg := res.Message
	if msg == "" {
		msg = "Uploaded " + string(t)
	}
	fmt.Fprintln(c.out, msg)
	return nil
}

func (c *cli) download(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.New("usage: folio download <resume|cv> [dest]")
	}
	t, err := domain.ParseDocType(args[0])
	if err != nil {
		return err
	}
	dest := "."
	if len(args) == 2 {
		dest = args[1]
	}
	path, err := c.client.SaveDocument(ctx, t, dest)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Saved %s\n", path)
	return nil
}

func (c *cli) remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: folio delete <resume|cv>")
	}
	t, err := domain.ParseDocType(args[0])
	if err != nil {
		return err
	}
	if err := c.client.DeleteDocument(ctx, t); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Deleted %s.\n", t)
	return nil
}

func (c *cli) openSite() error {
	if err := browser.Open(c.cfg.SiteURL); err != nil {
		fmt.Fprintln(c.out, c.cfg.SiteURL)
	}
	return nil
}
