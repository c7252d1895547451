package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"klondike/communication"
	"klondike/communication/broker"
	"klondike/communication/client"
	"klondike/communication/server"
	"klondike/config"
	"klondike/deal"
	"klondike/engine"
	"klondike/experiments"
	"klondike/placement"
	"klondike/searcher"
	"klondike/watch"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const usage = `usage: klondike [-config file] <command> [flags]

commands:
  suggest     suggest moves for a placement file
  serve       run the HTTP advisor
  broker      answer suggestion requests over NATS
  ask         send a placement file to a NATS advisor
  watch       follow a placement file and print a move on every change
  deal        print a random opening as a placement file
  experiment  record category statistics over random deals
`

func main() {
	configPath := flag.String("config", "", "YAML or TOML config file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := cfg.Log.SetupLogging(os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	args := flag.Args()[1:]
	switch flag.Arg(0) {
	case "suggest":
		err = runSuggest(ctx, cfg, args)
	case "serve":
		err = runServe(ctx, cfg, args)
	case "broker":
		err = runBroker(ctx, cfg, args)
	case "ask":
		err = runAsk(ctx, cfg, args)
	case "watch":
		err = runWatch(ctx, cfg, args)
	case "deal":
		err = runDeal(args)
	case "experiment":
		err = runExperiment(cfg, args)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s failed", flag.Arg(0))
	}
}

func runSuggest(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("suggest", flag.ExitOnError)
	file := fs.String("f", "placement.json", "placement file")
	another := fs.Int("another", 0, "number of further moves to ask for")
	serverURL := fs.String("server", "", "ask a running advisor instead of suggesting locally")
	_ = fs.Parse(args)

	in, err := placement.ReadFile(*file)
	if err != nil {
		return err
	}

	var advisor communication.Advisor = localAdvisor{engine.NewSession()}
	if *serverURL != "" {
		c := client.New(*serverURL)
		if err := c.Open(ctx); err != nil {
			return err
		}
		defer func() { _ = c.Close(context.Background()) }()
		advisor = c
	}

	s, err := advisor.Suggest(ctx, in)
	if err != nil {
		return err
	}
	printSuggestion(s)
	for i := 0; i < *another && s.Found(); i++ {
		if s, err = advisor.Another(ctx); err != nil {
			return err
		}
		printSuggestion(s)
	}
	return nil
}

func runServe(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", cfg.Server.Addr, "listen address")
	_ = fs.Parse(args)

	sr := searcher.New()
	options := []server.Option{
		server.WithSearcher(sr),
		server.WithSessions(engine.NewSessions(engine.WithSearcher(sr), engine.WithHistory(cfg.Server.History))),
	}
	if cfg.Server.RateLimit > 0 {
		options = append(options, server.WithRateLimit(rate.Limit(cfg.Server.RateLimit), cfg.Server.Burst))
	}
	return server.New(options...).Run(ctx, *addr)
}

func runBroker(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("broker", flag.ExitOnError)
	url := fs.String("url", cfg.Broker.URL, "NATS server")
	_ = fs.Parse(args)

	nc, err := broker.Connect(*url, cfg.Broker.Name)
	if err != nil {
		return err
	}
	defer nc.Close()

	b := broker.New(nc,
		broker.WithSubject(cfg.Broker.Subject),
		broker.WithQueue(cfg.Broker.Queue),
		broker.WithSessions(engine.NewSessions(engine.WithHistory(cfg.Server.History))),
	)
	return b.Run(ctx)
}

func runAsk(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	url := fs.String("url", cfg.Broker.URL, "NATS server")
	file := fs.String("f", "placement.json", "placement file")
	session := fs.String("session", "", "session name shared between requests")
	another := fs.Bool("another", false, "ask for the next move on the session's position")
	_ = fs.Parse(args)

	req := communication.SuggestRequest{Session: *session, Another: *another}
	if !*another {
		in, err := placement.ReadFile(*file)
		if err != nil {
			return err
		}
		req.Input = in
	}

	nc, err := broker.Connect(*url, cfg.Broker.Name+"-client")
	if err != nil {
		return err
	}
	defer nc.Close()

	s, err := broker.Request(ctx, nc, cfg.Broker.Subject, req)
	if err != nil {
		return err
	}
	printSuggestion(s)
	return nil
}

func runWatch(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	file := fs.String("f", cfg.Watch.Path, "placement file to follow")
	_ = fs.Parse(args)

	w := watch.New(*file, func(_ placement.Input, s searcher.Suggestion) {
		printSuggestion(s)
	}, watch.WithDebounce(cfg.GetDebounce()))
	return w.Run(ctx)
}

func runDeal(args []string) error {
	fs := flag.NewFlagSet("deal", flag.ExitOnError)
	seed := fs.Uint64("seed", 1, "shuffle seed")
	draws := fs.Int("draws", 0, "cards turned from the stock")
	_ = fs.Parse(args)

	in, err := deal.New(*seed).Position(*draws)
	if err != nil {
		return err
	}
	gs, err := placement.Translate(in)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, gs)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(in)
}

func runExperiment(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("experiment", flag.ExitOnError)
	deals := fs.Int("deals", cfg.Experiment.Deals, "number of random deals")
	seed := fs.Uint64("seed", cfg.Experiment.Seed, "seed of the first deal")
	out := fs.String("out", cfg.Experiment.OutDir, "output directory")
	throughput := fs.Bool("throughput", false, "measure suggestions per second instead")
	_ = fs.Parse(args)

	ecfg := experiments.Config{Deals: *deals, Seed: *seed, OutDir: *out}
	run := experiments.RunCategoryExperiment
	if *throughput {
		run = experiments.RunThroughputExperiment
	}
	dir, err := run(ecfg)
	if err != nil {
		return err
	}
	log.Info().Msgf("results written to %s", dir)
	return nil
}

func printSuggestion(s searcher.Suggestion) {
	fmt.Printf("[%d %s] %s\n", s.Category, s.Category, s.Message)
}

// localAdvisor adapts a session to the Advisor interface.
type localAdvisor struct {
	session *engine.Session
}

func (a localAdvisor) Suggest(_ context.Context, in placement.Input) (searcher.Suggestion, error) {
	return a.session.Suggest(in)
}

func (a localAdvisor) Another(context.Context) (searcher.Suggestion, error) {
	return a.session.Another()
}

func (a localAdvisor) Reset(context.Context) error {
	a.session.Reset()
	return nil
}
