package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"taskview/actions"
	"taskview/collector"
	"taskview/config"
	"taskview/logging"
	"taskview/tui"
	"taskview/view"

	"github.com/alecthomas/kingpin/v2"
)

// Build info
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	_ tui.Source     = (*collector.Collector)(nil)
	_ tui.Controller = (*actions.Controller)(nil)
)

type cli struct {
	app *kingpin.Application
	cfg *config.Config

	ui   *kingpin.CmdClause
	list *kingpin.CmdClause
	kill *kingpin.CmdClause
	stop *kingpin.CmdClause

	snapshotDir string

	listKind     string
	listSort     string
	listDesc     bool
	listFilter   string
	listSample   time.Duration
	listMarkdown bool

	killPID int32

	stopName      string
	stopContainer bool
}

// newCLI declares the command line. Defaults come from cfg, so flags
// override the environment.
func newCLI(cfg *config.Config) *cli {
	c := &cli{cfg: cfg}
	app := kingpin.New("taskview", "View and end processes, services and containers.")
	app.Version(fmt.Sprintf("%s (%s) built on %s", version, commit, date))
	app.HelpFlag.Short('h')

	app.Flag("refresh", "Auto refresh interval in seconds.").Short('n').
		Default(strconv.Itoa(cfg.RefreshSeconds)).IntVar(&cfg.RefreshSeconds)
	app.Flag("auto", "Start with auto refresh on.").
		Default(strconv.FormatBool(cfg.AutoRefresh)).BoolVar(&cfg.AutoRefresh)
	app.Flag("view", "Initial view: processes, services or containers.").
		Default(cfg.View).StringVar(&cfg.View)
	app.Flag("docker", "Offer the containers view when a docker daemon is reachable.").
		Default(strconv.FormatBool(cfg.Docker)).BoolVar(&cfg.Docker)
	app.Flag("log-file", "Log file path.").Default(cfg.LogFile).StringVar(&cfg.LogFile)
	app.Flag("log-level", "Log level.").Default(cfg.LogLevel).StringVar(&cfg.LogLevel)
	app.Flag("snapshot-dir", "Directory for exported snapshots.").Default(".").StringVar(&c.snapshotDir)

	c.ui = app.Command("ui", "Run the interactive task manager.").Default()

	c.list = app.Command("list", "Print one snapshot and exit.")
	c.list.Arg("kind", "processes, services or containers.").Default(config.ViewProcesses).
		EnumVar(&c.listKind, config.ViewProcesses, config.ViewServices, config.ViewContainers)
	c.list.Flag("sort", "Column to sort by, by title or index.").StringVar(&c.listSort)
	c.list.Flag("desc", "Sort descending.").BoolVar(&c.listDesc)
	c.list.Flag("filter", "Filter rows, optionally column:value.").StringVar(&c.listFilter)
	c.list.Flag("sample", "CPU sampling window for processes.").Default("500ms").DurationVar(&c.listSample)
	c.list.Flag("markdown", "Print a markdown table.").BoolVar(&c.listMarkdown)

	c.kill = app.Command("kill", "Terminate a process.")
	c.kill.Arg("pid", "Process id.").Required().Int32Var(&c.killPID)

	c.stop = app.Command("stop", "Stop a service.")
	c.stop.Arg("name", "Service name, or container id with --container.").Required().StringVar(&c.stopName)
	c.stop.Flag("container", "Stop a docker container instead.").BoolVar(&c.stopContainer)

	c.app = app
	return c
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "taskview: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg := config.Load()
	c := newCLI(cfg)
	command := kingpin.MustParse(c.app.Parse(args))
	cfg.Normalize()

	closer, err := logging.Init(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	log := logging.WithComponent("main")
	log.Infof("taskview %s (%s) built on %s", version, commit, date)
	if !cfg.EnvFileLoaded {
		log.Info("No .env file found, using environment variables")
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	col := collector.New(collector.WithDocker(cfg.Docker))
	defer col.Close()

	caps := collector.DetectCapabilities()
	var docker actions.ContainerStopper
	if dc, err := col.DockerClient(); err == nil {
		docker = dc
	}
	ctl := actions.NewController(caps.HasSystemd, docker)

	switch command {
	case c.ui.FullCommand():
		kind, _ := view.ParseKind(cfg.View)
		err = tui.Run(ctx, col, ctl, tui.Options{
			View:        kind,
			AutoRefresh: cfg.AutoRefresh,
			Interval:    cfg.RefreshSeconds,
			SnapshotDir: c.snapshotDir,
		})
	case c.list.FullCommand():
		err = c.runList(ctx, os.Stdout, col)
	case c.kill.FullCommand():
		if err = ctl.TerminateProcess(ctx, c.killPID); err == nil {
			fmt.Printf("Terminated process with PID: %d\n", c.killPID)
		}
	case c.stop.FullCommand():
		if c.stopContainer {
			err = ctl.StopContainer(ctx, c.stopName)
		} else {
			err = ctl.StopService(ctx, c.stopName)
		}
		if err == nil {
			fmt.Printf("Stopped %s\n", c.stopName)
		}
	}

	if err != nil {
		log.WithError(err).Errorf("%s failed", command)
	}
	log.Info("Shutting down...")
	return err
}
