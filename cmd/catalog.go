package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/packdex/internal/formatter"
	"github.com/desertthunder/packdex/internal/models"
	"github.com/desertthunder/packdex/internal/shared"
	"github.com/desertthunder/packdex/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Search queries the catalog and prints the result set.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := r.controller.BuildQuery(
		cmd.StringArg("query"),
		cmd.String("exclude"),
		cmd.String("min"),
		cmd.String("max"),
	)

	if _, err := r.controller.Search(ctx, query); err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	store := r.controller.Store()
	packs, q, exclude := store.Current()

	if cmd.Bool("json") {
		return r.writeJSON(packs, cmd.Bool("pretty"))
	}

	r.writePlainHeader(formatter.AdminCountText(len(packs), q, exclude))

	if len(packs) == 0 {
		r.writePlainln("%s", formatter.AdminEmptyText(q))
		return nil
	}

	now := time.Now()
	for _, pack := range packs {
		r.writePlainln("%s", formatter.CardText(pack, false, now))
	}

	return nil
}

// Status reports backend connectivity once, or keeps polling with --watch.
func (r *Runner) Status(ctx context.Context, cmd *cli.Command) error {
	poller := tasks.NewStatusPoller(r.svc, r.logger, time.Duration(r.config.API.PollSeconds)*time.Second)

	if !cmd.Bool("watch") {
		update := poller.Poll(ctx)
		return r.printStatus(update, cmd.Bool("json"))
	}

	updates := make(chan tasks.StatusUpdate, 1)
	go poller.Run(ctx, updates)

	for update := range updates {
		if err := r.printStatus(update, cmd.Bool("json")); err != nil {
			return err
		}
	}

	return nil
}

func (r *Runner) printStatus(update tasks.StatusUpdate, asJSON bool) error {
	if asJSON && update.Err == nil {
		return r.writeJSON(update.Status, true)
	}

	switch {
	case update.Err != nil:
		r.writePlain("✗ Servidor Desconectado (%v)\n", update.Err)
	case !update.Connected():
		r.writePlain("○ Esperando Login...\n")
	default:
		cacheInfo := ""
		if update.Status.CachedPacks > 0 {
			cacheInfo = fmt.Sprintf(" (%d packs)", update.Status.CachedPacks)
		}
		r.writePlain("● Conectado%s\n", cacheInfo)
	}

	return nil
}

// Copy places a pack's formatted text on the system clipboard.
func (r *Runner) Copy(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: pack id", shared.ErrMissingArgument)
	}

	pack, err := r.findPack(ctx, id)
	if err != nil {
		return err
	}

	if err := shared.CopyToClipboard(formatter.CopyPayload(pack)); err != nil {
		return err
	}

	// Confirmation prints only once the clipboard write completed.
	r.writePlain("✅ Copiado!\n")
	return nil
}

// Share prints (and optionally opens) the WhatsApp deep link for a pack.
func (r *Runner) Share(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: pack id", shared.ErrMissingArgument)
	}

	link := formatter.BuildWhatsAppLink(r.config.Catalog.WhatsAppNumber, id)
	r.writePlain("%s\n", link)

	if cmd.Bool("open") {
		return openBrowser(link)
	}

	return nil
}

// ConfigInit writes the example configuration to disk.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("path")
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}
	r.writePlain("Wrote %s\n", path)
	return nil
}

// findPack loads the catalog when needed and resolves a pack by id.
func (r *Runner) findPack(ctx context.Context, id string) (pack models.Pack, err error) {
	store := r.controller.Store()
	if store.Empty() {
		if err := r.controller.LoadAll(ctx); err != nil {
			return pack, err
		}
	}

	pack, ok := store.Find(id)
	if !ok {
		return pack, fmt.Errorf("%w: %s", shared.ErrPackNotFound, id)
	}
	return pack, nil
}
