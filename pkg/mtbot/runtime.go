package mtbot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gotd/td/bin"
	"github.com/gotd/td/session"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/dcs"
	"github.com/gotd/td/telegram/updates"
	"github.com/gotd/td/tg"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

// defaultDC is the data center used to bootstrap a new session.
const defaultDC = 2

// Options configures a Runtime.
type Options struct {
	AppID    int
	AppHash  string
	BotToken string
	// Session persists the MTProto authorization key. Nil keeps it in memory.
	Session session.Storage
	// TestDC connects to the Telegram test environment.
	TestDC bool
	// ServerAddress overrides the bootstrap data center address (host:port).
	ServerAddress string
	Logger        *slog.Logger
	Metrics       prometheus.Registerer
	// UpdateBuffer bounds the pending update queue.
	UpdateBuffer int
	// ClientOptions are applied to the forwarder after the runtime defaults.
	ClientOptions []Option
}

func (o Options) validate() error {
	var errs []error
	if o.AppID <= 0 {
		errs = append(errs, fmt.Errorf("app id must be > 0"))
	}
	if strings.TrimSpace(o.AppHash) == "" {
		errs = append(errs, fmt.Errorf("app hash is required"))
	}
	if strings.TrimSpace(o.BotToken) == "" {
		errs = append(errs, fmt.Errorf("bot token is required"))
	}

	return errors.Join(errs...)
}

// Runtime owns the MTProto connection, bot login, gap recovery and the
// forwarder bound to them.
type Runtime struct {
	opts    Options
	logger  *slog.Logger
	tg      *telegram.Client
	manager *updates.Manager
	gate    *gatedInvoker
	client  *Client

	mu  sync.Mutex
	dcs map[int]telegram.CloseInvoker
}

// NewRuntime builds a runtime. Nothing connects until Run.
func NewRuntime(opts Options) (*Runtime, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("new mtbot runtime: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	queue := NewUpdateQueue(opts.UpdateBuffer)
	manager := updates.New(updates.Config{Handler: queue})

	tgOptions := telegram.Options{
		UpdateHandler:  manager,
		SessionStorage: opts.Session,
		DC:             defaultDC,
	}
	if opts.TestDC {
		tgOptions.DCList = dcs.Test()
	}
	if opts.ServerAddress != "" {
		list, err := serverDCList(opts.ServerAddress, opts.TestDC)
		if err != nil {
			return nil, fmt.Errorf("new mtbot runtime: %w", err)
		}
		tgOptions.DCList = list
	}

	runtime := &Runtime{
		opts:    opts,
		logger:  logger,
		tg:      telegram.NewClient(opts.AppID, opts.AppHash, tgOptions),
		manager: manager,
		dcs:     make(map[int]telegram.CloseInvoker),
	}
	runtime.gate = &gatedInvoker{next: runtime.tg}

	clientOptions := []Option{
		WithLogger(logger),
		WithMetrics(opts.Metrics),
		WithUpdateQueue(queue),
		WithDCDialer(runtime.dialDC),
	}
	client, err := New(runtime.gate, append(clientOptions, opts.ClientOptions...)...)
	if err != nil {
		return nil, fmt.Errorf("new mtbot runtime: %w", err)
	}
	runtime.client = client

	return runtime, nil
}

// serverDCList pins the bootstrap data center to address.
func serverDCList(address string, test bool) (dcs.List, error) {
	host, rawPort, err := net.SplitHostPort(address)
	if err != nil {
		return dcs.List{}, fmt.Errorf("parse server address %q: %w", address, err)
	}
	port, err := strconv.Atoi(rawPort)
	if err != nil || port <= 0 || port > 65535 {
		return dcs.List{}, fmt.Errorf("parse server address %q: invalid port", address)
	}

	return dcs.List{
		Options: []tg.DCOption{{ID: defaultDC, IPAddress: host, Port: port, Static: true}},
		Test:    test,
	}, nil
}

// Client returns the forwarder. Calls fail with ErrNotStarted until Run has
// logged in.
func (r *Runtime) Client() *Client {
	return r.client
}

// Run connects, logs in with the bot token, starts gap recovery and calls fn.
// It returns when fn returns or ctx ends.
func (r *Runtime) Run(ctx context.Context, fn func(ctx context.Context, client *Client) error) error {
	if fn == nil {
		return fmt.Errorf("run mtbot runtime: nil callback")
	}
	defer r.closeDCs()

	err := r.tg.Run(ctx, func(ctx context.Context) error {
		if err := r.authenticate(ctx); err != nil {
			return err
		}
		self, err := r.tg.Self(ctx)
		if err != nil {
			return fmt.Errorf("get self: %w", err)
		}
		r.client.SetSelfID(self.ID)
		r.gate.open()
		defer r.gate.close()
		r.logger.InfoContext(ctx, "bot authorized", "bot_id", self.ID, "username", self.Username)

		runCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		var fnErr error
		group, groupCtx := errgroup.WithContext(runCtx)
		group.Go(func() error {
			return r.manager.Run(groupCtx, r.tg.API(), self.ID, updates.AuthOptions{
				IsBot: true,
				OnStart: func(ctx context.Context) {
					r.logger.InfoContext(ctx, "update recovery started")
				},
			})
		})
		group.Go(func() error {
			defer cancel()
			fnErr = fn(groupCtx, r.client)
			return fnErr
		})

		err = group.Wait()
		if fnErr != nil {
			return fnErr
		}
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("run update manager: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("run mtbot runtime: %w", err)
	}

	return nil
}

func (r *Runtime) authenticate(ctx context.Context) error {
	status, err := r.tg.Auth().Status(ctx)
	if err != nil {
		return fmt.Errorf("check auth status: %w", err)
	}
	if status.Authorized {
		r.logger.InfoContext(ctx, "session restored")
		return nil
	}
	if _, err := r.tg.Auth().Bot(ctx, r.opts.BotToken); err != nil {
		return fmt.Errorf("authenticate bot: %w", err)
	}

	return nil
}

// dialDC returns an invoker bound to data center dc, reusing one connection
// per data center for the lifetime of Run.
func (r *Runtime) dialDC(ctx context.Context, dc int) (tg.Invoker, error) {
	if dc == r.tg.Config().ThisDC {
		return r.tg, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if invoker, ok := r.dcs[dc]; ok {
		return invoker, nil
	}
	invoker, err := r.tg.DC(ctx, dc, 1)
	if err != nil {
		return nil, fmt.Errorf("connect dc %d: %w", dc, err)
	}
	r.dcs[dc] = invoker

	return invoker, nil
}

func (r *Runtime) closeDCs() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for dc, invoker := range r.dcs {
		if err := invoker.Close(); err != nil {
			r.logger.Warn("close dc connection", "dc", dc, "error", err)
		}
		delete(r.dcs, dc)
	}
}

// gatedInvoker rejects calls while the runtime is not logged in.
type gatedInvoker struct {
	next  tg.Invoker
	ready atomic.Bool
}

func (g *gatedInvoker) open()  { g.ready.Store(true) }
func (g *gatedInvoker) close() { g.ready.Store(false) }

func (g *gatedInvoker) Invoke(ctx context.Context, input bin.Encoder, output bin.Decoder) error {
	if !g.ready.Load() {
		return ErrNotStarted
	}

	return g.next.Invoke(ctx, input, output)
}
