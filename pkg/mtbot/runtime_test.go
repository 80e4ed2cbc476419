package mtbot

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gotd/td/tg"
)

func TestOptionsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    Options
		wantErr []string
	}{
		{
			name: "valid",
			opts: Options{AppID: 1, AppHash: "hash", BotToken: "1:token"},
		},
		{
			name:    "all missing",
			opts:    Options{},
			wantErr: []string{"app id", "app hash", "bot token"},
		},
		{
			name:    "blank token",
			opts:    Options{AppID: 1, AppHash: "hash", BotToken: "  "},
			wantErr: []string{"bot token"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.opts.validate()
			if len(tt.wantErr) == 0 {
				if err != nil {
					t.Fatalf("validate() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("validate() error = nil")
			}
			for _, want := range tt.wantErr {
				if !strings.Contains(err.Error(), want) {
					t.Fatalf("validate() error = %q, want mention of %q", err, want)
				}
			}
		})
	}
}

func TestNewRuntimeRejectsInvalidOptions(t *testing.T) {
	t.Parallel()

	if _, err := NewRuntime(Options{AppID: 1}); err == nil {
		t.Fatal("NewRuntime() error = nil")
	}
	if _, err := NewRuntime(Options{AppID: 1, AppHash: "h", BotToken: "t", ServerAddress: "no-port"}); err == nil {
		t.Fatal("NewRuntime() with bad server address error = nil")
	}
}

func TestServerDCList(t *testing.T) {
	t.Parallel()

	list, err := serverDCList("149.154.167.40:443", true)
	if err != nil {
		t.Fatalf("serverDCList() error = %v", err)
	}
	if !list.Test || len(list.Options) != 1 {
		t.Fatalf("serverDCList() = %+v", list)
	}
	option := list.Options[0]
	if option.ID != defaultDC || option.IPAddress != "149.154.167.40" || option.Port != 443 || !option.Static {
		t.Fatalf("dc option = %+v", option)
	}

	for _, address := range []string{"149.154.167.40", "host:0", "host:http"} {
		if _, err := serverDCList(address, false); err == nil {
			t.Fatalf("serverDCList(%q) error = nil", address)
		}
	}
}

func TestDCAPIFallsBackToMainConnection(t *testing.T) {
	t.Parallel()

	dialed := make(chan int, 1)
	client, _ := newTestClient(t, nil, WithDCDialer(func(_ context.Context, dc int) (tg.Invoker, error) {
		dialed <- dc
		return nil, errors.New("dc unreachable")
	}))

	api, err := client.dcAPI(context.Background(), 0)
	if err != nil || api != client.API() {
		t.Fatalf("dcAPI(0) = %p, %v; want main client", api, err)
	}
	if _, err := client.dcAPI(context.Background(), 4); err == nil {
		t.Fatal("dcAPI(4) must surface dial failures")
	}
	if dc := <-dialed; dc != 4 {
		t.Fatalf("dialed dc = %d, want 4", dc)
	}
}
