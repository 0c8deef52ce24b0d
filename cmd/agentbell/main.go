// agentbell is invoked by the agent host as a hook command: one raw event in
// on stdin, at most one notification out through the configured backend.
//
// The process always exits 0. A broken notifier must never fail the host's
// hook dispatch, so every error ends at a log line on stderr.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"agentbell/internal/backend"
	"agentbell/internal/config"
	"agentbell/internal/eventbus"
	"agentbell/internal/host"
	"agentbell/internal/pipeline"
	logx "agentbell/pkg/logx"
)

func main() {
	var (
		backendKey string
		cfgPath    string
		hostAPI    string
		logLevel   string
	)
	flag.StringVar(&backendKey, "backend", "log", "backend key (log, webhook, ntfy, telegram)")
	flag.StringVar(&cfgPath, "config", "", "config path (default: config dir resolved from the backend key)")
	flag.StringVar(&hostAPI, "host-api", os.Getenv("AGENT_HOST_API"), "base URL of the host session API")
	flag.StringVar(&logLevel, "log-level", "warn", "log level (trace..error)")
	flag.Parse()

	log := logx.NewConsole(logx.Stderr(), logLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	run(ctx, log, backendKey, cfgPath, hostAPI)
}

func run(ctx context.Context, log logx.Logger, backendKey, cfgPath, hostAPI string) {
	if cfgPath == "" {
		cfgPath = config.Path(backendKey)
	}
	cfg, err := config.Load(cfgPath)
	switch {
	case errors.Is(err, config.ErrNotFound):
		// Missing file means all defaults; cfg is already usable.
		log.Debug("no config file; using defaults", logx.String("path", cfgPath))
	case err != nil:
		log.Error("config load failed", logx.String("path", cfgPath), logx.Err(err))
		return
	}

	raw, err := host.DecodeRawEvent(os.Stdin)
	if err != nil {
		log.Error("bad host event", logx.Err(err))
		return
	}

	sink, err := backend.New(backendKey, cfg.Backend, log)
	if err != nil {
		log.Error("backend init failed", logx.String("backend", backendKey), logx.Err(err))
		return
	}

	var lookup host.SessionLookup
	if hostAPI != "" {
		lookup = host.NewAPILookup(hostAPI)
	}

	bus := eventbus.New()
	decisions, unsub := bus.Subscribe(4)
	defer unsub()

	workdir, _ := os.Getwd()
	p := pipeline.New(cfg, sink, pipeline.Deps{
		Lookup:  lookup,
		Runner:  host.ShellRunner{},
		Workdir: workdir,
		Bus:     bus,
		Log:     log,
	})

	outcome := p.Handle(ctx, raw)

	// Drain whatever the pipeline published for debug visibility.
drain:
	for {
		select {
		case d := <-decisions:
			log.Debug("pipeline decision", logx.String("type", d.Type), logx.Any("data", d.Data))
		default:
			break drain
		}
	}
	log.Debug("done", logx.String("outcome", string(outcome)), logx.String("event", raw.Name))
}
