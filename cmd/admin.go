package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/desertthunder/packdex/internal/shared"
	"github.com/urfave/cli/v3"
)

// Refresh asks the backend to rescan source messages and rebuild the
// pack list. A 401 opens the admin login page instead of erroring; no
// catalog load happens in that case.
func (r *Runner) Refresh(ctx context.Context, cmd *cli.Command) error {
	count := int(cmd.Int("count"))
	if count <= 0 {
		count = r.config.Catalog.FullRefresh
		if cmd.Bool("quick") {
			count = r.config.Catalog.QuickRefresh
		}
	}

	r.writePlain("Escaneando los últimos %d mensajes...\n", count)

	found, err := r.svc.Refresh(ctx, count)
	if errors.Is(err, shared.ErrNotAuthenticated) {
		r.writePlain("Sesión expirada, abriendo %s\n", r.config.LoginURL())
		return openBrowser(r.config.LoginURL())
	}
	if err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	r.writePlain("✅ Lista renovada: %d packs encontrados\n", found)
	return nil
}

// CoverSet sets a manual cover for one pack.
func (r *Runner) CoverSet(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	coverURL := strings.TrimSpace(cmd.StringArg("url"))
	if id == "" || coverURL == "" {
		return fmt.Errorf("%w: usage: covers set <id> <url>", shared.ErrMissingArgument)
	}

	if err := r.svc.SetCover(ctx, id, &coverURL); err != nil {
		return fmt.Errorf("error guardando portada: %w", err)
	}

	r.writePlain("Portada actualizada para %s\n", id)
	return nil
}

// CoverClear removes a manual cover, restoring the automatic one.
func (r *Runner) CoverClear(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: pack id", shared.ErrMissingArgument)
	}

	if !cmd.Bool("yes") && !r.confirm("¿Borrar portada manual y volver a la automática?") {
		r.writePlain("Cancelado\n")
		return nil
	}

	if err := r.svc.SetCover(ctx, id, nil); err != nil {
		return fmt.Errorf("error borrando portada: %w", err)
	}

	r.writePlain("Portada manual eliminada para %s\n", id)
	return nil
}

// CoverBulk reads an "ID URL" per-line block from a file (or stdin with
// "-") and submits the parsed entries. Blocks with zero valid lines are
// rejected before any request is made.
func (r *Runner) CoverBulk(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("file")
	if path == "" {
		return fmt.Errorf("%w: file path (or - for stdin)", shared.ErrMissingArgument)
	}

	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(r.input)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("failed to read cover list: %w", err)
	}

	result, err := r.covers.BulkSetCovers(ctx, string(data))
	if err != nil {
		return fmt.Errorf("error guardando masivo: %w", err)
	}

	r.writePlain("Actualizados %d packs correctamente.\n", result.Updated)
	return nil
}

// PackDelete removes a pack after a blocking confirmation.
func (r *Runner) PackDelete(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: pack id", shared.ErrMissingArgument)
	}

	prompt := fmt.Sprintf("¿Estás seguro de ELIMINAR el pack %s? Esta acción no se puede deshacer.", id)
	if !cmd.Bool("yes") && !r.confirm(prompt) {
		r.writePlain("Cancelado\n")
		return nil
	}

	if err := r.svc.DeletePack(ctx, id); err != nil {
		return fmt.Errorf("error al eliminar: %w", err)
	}

	r.writePlain("Pack %s eliminado\n", id)
	return nil
}
