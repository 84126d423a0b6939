package main

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/packdex/internal/models"
	"github.com/desertthunder/packdex/internal/shared"
	"github.com/desertthunder/packdex/internal/tasks"
	tu "github.com/desertthunder/packdex/internal/testing"
	"github.com/desertthunder/packdex/internal/ui"
)

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			svc := &tu.MockCatalog{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Service:    svc,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.svc != svc {
				t.Error("expected service to be set")
			}
			if runner.controller == nil {
				t.Error("expected controller to be built")
			}
			if runner.covers == nil {
				t.Error("expected cover engine to be built")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Service: &tu.MockCatalog{}})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Service: &tu.MockCatalog{}})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Service: &tu.MockCatalog{}, Output: output})

			err := runner.writeJSON(map[string]string{"key": "value"}, true)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Service: &tu.MockCatalog{}, Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(output.String(), `{"key":"value"}`) {
				t.Errorf("expected compact JSON, got %s", output.String())
			}
		})

		t.Run("propagates writer errors", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Service: &tu.MockCatalog{}, Output: &tu.FWriter{}})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err == nil {
				t.Error("expected write error to surface")
			}
		})
	})

	t.Run("confirm", func(t *testing.T) {
		tests := []struct {
			name   string
			answer string
			want   bool
		}{
			{"yes", "y\n", true},
			{"yes word", "yes\n", true},
			{"spanish si", "si\n", true},
			{"spanish s", "s\n", true},
			{"no", "n\n", false},
			{"empty", "\n", false},
			{"eof", "", false},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				output := &bytes.Buffer{}
				runner := NewRunner(RunnerOpts{
					Service: &tu.MockCatalog{},
					Output:  output,
					Input:   strings.NewReader(tt.answer),
				})

				if got := runner.confirm("¿Seguro?"); got != tt.want {
					t.Errorf("expected %v for answer %q, got %v", tt.want, tt.answer, got)
				}
				if !strings.Contains(output.String(), "¿Seguro?") {
					t.Error("expected prompt in output")
				}
			})
		}
	})

	t.Run("printStatus", func(t *testing.T) {
		t.Run("connected with packs", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Service: &tu.MockCatalog{}, Output: output})

			update := tasks.StatusUpdate{
				Status: &models.ServiceStatus{TelegramConnected: true, CachedPacks: 12},
				At:     time.Now(),
			}
			if err := runner.printStatus(update, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(output.String(), "Conectado (12 packs)") {
				t.Errorf("expected connected line with pack count, got %q", output.String())
			}
		})

		t.Run("waiting for login", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Service: &tu.MockCatalog{}, Output: output})

			update := tasks.StatusUpdate{Status: &models.ServiceStatus{}, At: time.Now()}
			if err := runner.printStatus(update, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(output.String(), "Esperando Login") {
				t.Errorf("expected login wait line, got %q", output.String())
			}
		})
	})

	t.Run("findPack", func(t *testing.T) {
		t.Run("loads catalog on first use", func(t *testing.T) {
			mock := &tu.MockCatalog{SearchResp: []models.Pack{{ID: "AB12", FormattedText: "texto"}}}
			runner := NewRunner(RunnerOpts{Service: mock, Output: &bytes.Buffer{}})

			pack, err := runner.findPack(context.Background(), "AB12")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if pack.ID != "AB12" {
				t.Errorf("expected pack AB12, got %s", pack.ID)
			}
			if mock.SearchCalls != 1 {
				t.Errorf("expected one catalog load, got %d", mock.SearchCalls)
			}

			// Second lookup should hit the store, not the backend.
			if _, err := runner.findPack(context.Background(), "AB12"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if mock.SearchCalls != 1 {
				t.Errorf("expected cached lookup, got %d search calls", mock.SearchCalls)
			}
		})

		t.Run("unknown id", func(t *testing.T) {
			mock := &tu.MockCatalog{SearchResp: []models.Pack{{ID: "AB12"}}}
			runner := NewRunner(RunnerOpts{Service: mock, Output: &bytes.Buffer{}})

			if _, err := runner.findPack(context.Background(), "missing"); err == nil {
				t.Error("expected error for unknown pack id")
			}
		})
	})

	t.Run("controllerFor", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Service: &tu.MockCatalog{}})

		t.Run("admin mode uses the admin limit", func(t *testing.T) {
			controller := runner.controllerFor(ui.AdminMode)
			if got := controller.BuildQuery("", "", "", "").Limit; got != 500 {
				t.Errorf("expected admin searches capped at 500, got %d", got)
			}
			if controller == runner.controller {
				t.Error("expected a dedicated admin controller")
			}
		})

		t.Run("catalog mode shares the runner controller", func(t *testing.T) {
			controller := runner.controllerFor(ui.CatalogMode)
			if controller != runner.controller {
				t.Error("expected the shared catalog controller")
			}
			if got := controller.BuildQuery("", "", "", "").Limit; got != 1000 {
				t.Errorf("expected catalog searches capped at 1000, got %d", got)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Service: &tu.MockCatalog{}})
		commands := runner.register()

		want := []string{"search", "status", "refresh", "covers", "packs", "copy", "share", "config", "tui"}
		if len(commands) != len(want) {
			t.Fatalf("expected %d commands, got %d", len(want), len(commands))
		}
		for i, name := range want {
			if commands[i].Name != name {
				t.Errorf("expected command %q at position %d, got %q", name, i, commands[i].Name)
			}
		}
	})
}
