// package tasks implements the background operations behind both front
// ends: status polling and bulk cover updates.
//
// Long-running operations emit updates via channels for non-blocking
// status reporting to the CLI/UI layers.
package tasks

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/packdex/internal/models"
	"github.com/desertthunder/packdex/internal/services"
	"github.com/desertthunder/packdex/internal/shared"
)

// StatusUpdate is one observation of backend connectivity. A non-nil Err
// means "disconnected"; polling errors are reported here, never thrown.
type StatusUpdate struct {
	Status *models.ServiceStatus // Status is nil when Err is set
	Err    error                 // Err is the network or parse failure, if any
	At     time.Time             // At is when the observation completed
}

// Connected reports whether the backend answered and is logged in.
func (u StatusUpdate) Connected() bool {
	return u.Err == nil && u.Status != nil && u.Status.TelegramConnected
}

// StatusPoller queries connectivity state on a fixed interval. Polls run
// strictly one at a time: each tick awaits completion or timeout before
// the next request fires, so requests never pile up.
type StatusPoller struct {
	svc      services.CatalogService
	logger   *log.Logger
	interval time.Duration
	timeout  time.Duration
}

// NewStatusPoller creates a poller. The interval defaults to 5s and each
// poll is capped at the interval so a slow backend cannot stack requests.
func NewStatusPoller(svc services.CatalogService, logger *log.Logger, interval time.Duration) *StatusPoller {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &StatusPoller{svc: svc, logger: logger, interval: interval, timeout: interval}
}

// Run polls until ctx is cancelled, sending every observation to updates.
// The first poll fires immediately. Run closes updates on return.
func (p *StatusPoller) Run(ctx context.Context, updates chan<- StatusUpdate) {
	defer close(updates)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		update := p.Poll(ctx)
		select {
		case updates <- update:
		case <-ctx.Done():
			return
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}

// Poll performs a single status query with the poller's timeout.
func (p *StatusPoller) Poll(ctx context.Context) StatusUpdate {
	pollCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	status, err := p.svc.Status(pollCtx)
	if err != nil {
		p.logger.Debug("status poll failed", "err", err)
		return StatusUpdate{Err: err, At: time.Now()}
	}

	return StatusUpdate{Status: status, At: time.Now()}
}
