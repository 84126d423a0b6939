package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/packdex/internal/models"
	tu "github.com/desertthunder/packdex/internal/testing"
)

func TestStatusUpdate(t *testing.T) {
	t.Run("Connected", func(t *testing.T) {
		update := StatusUpdate{Status: &models.ServiceStatus{TelegramConnected: true}}
		if !update.Connected() {
			t.Error("expected connected")
		}
	})

	t.Run("Answered But Logged Out", func(t *testing.T) {
		update := StatusUpdate{Status: &models.ServiceStatus{TelegramConnected: false}}
		if update.Connected() {
			t.Error("expected waiting-for-login to not count as connected")
		}
	})

	t.Run("Errored", func(t *testing.T) {
		update := StatusUpdate{Err: errors.New("timeout")}
		if update.Connected() {
			t.Error("expected errored poll to not count as connected")
		}
	})
}

func TestStatusPoller(t *testing.T) {
	t.Run("Poll", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			mock := &tu.MockCatalog{StatusResp: models.ServiceStatus{TelegramConnected: true, CachedPacks: 7}}
			poller := NewStatusPoller(mock, nil, time.Second)

			update := poller.Poll(context.Background())
			if update.Err != nil {
				t.Fatalf("expected no error, got %v", update.Err)
			}
			if update.Status.CachedPacks != 7 {
				t.Errorf("expected 7 cached packs, got %d", update.Status.CachedPacks)
			}
			if update.At.IsZero() {
				t.Error("expected observation timestamp")
			}
		})

		t.Run("Failure Is Reported Not Thrown", func(t *testing.T) {
			mock := &tu.MockCatalog{StatusErr: errors.New("connection refused")}
			poller := NewStatusPoller(mock, nil, time.Second)

			update := poller.Poll(context.Background())
			if update.Err == nil {
				t.Error("expected error in the update")
			}
			if update.Status != nil {
				t.Error("expected nil status on failure")
			}
		})
	})

	t.Run("Run", func(t *testing.T) {
		t.Run("Polls Immediately Then On Interval", func(t *testing.T) {
			mock := &tu.MockCatalog{StatusResp: models.ServiceStatus{TelegramConnected: true}}
			poller := NewStatusPoller(mock, nil, 10*time.Millisecond)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			updates := make(chan StatusUpdate)
			go poller.Run(ctx, updates)

			var received int
			for update := range updates {
				if update.Err != nil {
					t.Fatalf("expected no error, got %v", update.Err)
				}
				received++
				if received == 3 {
					cancel()
				}
			}

			if received < 3 {
				t.Errorf("expected at least 3 updates, got %d", received)
			}
		})

		t.Run("Closes Channel On Cancel", func(t *testing.T) {
			mock := &tu.MockCatalog{}
			poller := NewStatusPoller(mock, nil, time.Hour)

			ctx, cancel := context.WithCancel(context.Background())
			updates := make(chan StatusUpdate, 1)
			done := make(chan struct{})
			go func() {
				poller.Run(ctx, updates)
				close(done)
			}()

			<-updates
			cancel()

			select {
			case <-done:
			case <-time.After(time.Second):
				t.Fatal("expected Run to return after cancellation")
			}
		})
	})
}
