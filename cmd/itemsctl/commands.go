package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/foxxcyber/itemdesk/internal/client"
	"github.com/foxxcyber/itemdesk/internal/config"
	"github.com/foxxcyber/itemdesk/internal/services"
	"github.com/foxxcyber/itemdesk/internal/tui"
)

// AppContext carries the global flags to every command
type AppContext struct {
	ConfigPath string
}

// Runner is one itemsctl subcommand
type Runner interface {
	Name() string
	Init(args []string, ctx *AppContext) error
	Run() error
}

func loadConfig(path string, requireStorage bool) (*config.ConsoleConfig, error) {
	cfg, err := config.LoadConsole(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(requireStorage); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newClient(cfg *config.ConsoleConfig) *client.Client {
	var opts []client.Option
	if cfg.Token != "" {
		opts = append(opts, client.WithBearerToken(cfg.Token))
	}
	return client.New(cfg.APIURL, opts...)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// TUICommand runs the interactive console
type TUICommand struct {
	fs  *flag.FlagSet
	cfg *config.ConsoleConfig
}

func CreateTUICommand() *TUICommand {
	return &TUICommand{fs: flag.NewFlagSet("tui", flag.ExitOnError)}
}

func (c *TUICommand) Name() string {
	return c.fs.Name()
}

func (c *TUICommand) Init(args []string, ctx *AppContext) error {
	if err := c.fs.Parse(args); err != nil {
		return err
	}
	cfg, err := loadConfig(ctx.ConfigPath, false)
	if err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

func (c *TUICommand) Run() error {
	// The terminal belongs to the UI, so log lines go to a file
	if c.cfg.LogFile != "" {
		f, err := tea.LogToFile(c.cfg.LogFile, "itemsctl")
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
	}

	ctx, cancel := signalContext()
	defer cancel()

	log.Printf("Console started against %s", c.cfg.APIURL)
	return tui.Run(ctx, newClient(c.cfg))
}

// ExportCommand uploads a snapshot of the collection to object storage
type ExportCommand struct {
	fs      *flag.FlagSet
	cfg     *config.ConsoleConfig
	linkTTL time.Duration
}

func CreateExportCommand() *ExportCommand {
	c := &ExportCommand{fs: flag.NewFlagSet("export", flag.ExitOnError)}
	c.fs.DurationVar(&c.linkTTL, "link-ttl", time.Hour, "Lifetime of the printed download link (0 disables it)")
	return c
}

func (c *ExportCommand) Name() string {
	return c.fs.Name()
}

func (c *ExportCommand) Init(args []string, ctx *AppContext) error {
	if err := c.fs.Parse(args); err != nil {
		return err
	}
	cfg, err := loadConfig(ctx.ConfigPath, true)
	if err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

func (c *ExportCommand) Run() error {
	ctx, cancel := signalContext()
	defer cancel()

	store, err := services.NewSnapshotStore(c.cfg.Storage)
	if err != nil {
		return err
	}
	exporter, err := services.NewExporter(newClient(c.cfg), store, c.cfg.Storage.KeyTemplate)
	if err != nil {
		return err
	}
	if err := store.EnsureBucket(ctx); err != nil {
		return err
	}

	result, err := exporter.Export(ctx)
	if err != nil {
		return err
	}
	log.Printf("Exported %d item(s) to %s/%s (%d bytes)", result.Items, c.cfg.Storage.Bucket, result.Key, result.Size)

	if c.linkTTL > 0 {
		url, err := store.PresignedURL(ctx, result.Key, c.linkTTL)
		if err != nil {
			log.Printf("Warning: could not create download link: %v", err)
			return nil
		}
		fmt.Println(url)
	}
	return nil
}

// TokenCommand mints a bearer token signed with JWT_SECRET
type TokenCommand struct {
	fs      *flag.FlagSet
	cfg     *config.ConsoleConfig
	subject string
	ttl     time.Duration
}

func CreateTokenCommand() *TokenCommand {
	c := &TokenCommand{fs: flag.NewFlagSet("token", flag.ExitOnError)}
	c.fs.StringVar(&c.subject, "sub", "itemsctl", "Token subject")
	c.fs.DurationVar(&c.ttl, "ttl", 24*time.Hour, "Token lifetime")
	return c
}

func (c *TokenCommand) Name() string {
	return c.fs.Name()
}

func (c *TokenCommand) Init(args []string, ctx *AppContext) error {
	if err := c.fs.Parse(args); err != nil {
		return err
	}
	cfg, err := config.LoadConsole(ctx.ConfigPath)
	if err != nil {
		return err
	}
	if cfg.Secret == "" {
		return fmt.Errorf("JWT_SECRET must be set to sign tokens")
	}
	c.cfg = cfg
	return nil
}

func (c *TokenCommand) Run() error {
	tokens, err := services.NewTokenService(c.cfg.Secret, c.ttl)
	if err != nil {
		return err
	}
	token, err := tokens.Issue(c.subject)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
