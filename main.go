package main

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"

	"contestmon/config"
	"contestmon/device/udp"
	"contestmon/metrics"
	"contestmon/state"
	"contestmon/ui/contact"
	"contestmon/ui/footer"
	"contestmon/ui/header"
	"contestmon/ui/radios"
	"contestmon/ui/serial"
	"contestmon/ui/spots"
)

var version = "dev"

// stateChangedMsg is sent when the store has new data to show
type stateChangedMsg struct{}

// model holds the application's state
type model struct {
	width  int
	height int
	store  *state.Store
	done   <-chan struct{} // closed when the program exits

	headerModel  header.Model
	radiosModel  radios.Model
	serialModel  serial.Model
	contactModel contact.Model
	spotsModel   spots.Model
	footerModel  footer.Model

	err error
}

// initialModel creates the starting model
func initialModel(conf config.Config, store *state.Store, done <-chan struct{}) model {
	addr := net.JoinHostPort(conf.Listener.Address, strconv.Itoa(conf.Listener.Port))

	m := model{
		width:        80,
		height:       24,
		store:        store,
		done:         done,
		headerModel:  header.New(conf.Display.Title, addr),
		radiosModel:  radios.New(),
		serialModel:  serial.New(),
		contactModel: contact.New(),
		spotsModel:   spots.New(store.SpotCapacity()),
		footerModel:  footer.New(),
	}
	m.refresh()

	return m
}

// waitForChange is a tea.Cmd that blocks until the store changes or the
// program exits. The listener never touches the UI; all rendering state is
// updated here, on the bubbletea goroutine.
func (m model) waitForChange() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.store.Changes():
			return stateChangedMsg{}
		case <-m.done:
			return nil
		}
	}
}

// refresh copies a fresh snapshot into the sub-models
func (m *model) refresh() {
	snap := m.store.Snapshot()

	m.radiosModel.SetRadios(snap.Radios)
	m.serialModel.SetText(snap.SerialText())
	m.contactModel.SetContact(snap.LastContact, snap.HasContact)
	m.spotsModel.SetSpots(snap.Spots)
	m.footerModel.SetUnrecognized(snap.Unrecognized, snap.LastUnrecognized)
}

func (m model) Init() tea.Cmd {
	return m.waitForChange()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.err != nil {
		if _, ok := msg.(tea.KeyMsg); ok {
			return m, tea.Quit
		}
		return m, nil
	}

	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case stateChangedMsg:
		m.refresh()
		cmds = append(cmds, m.waitForChange())

	case error:
		m.err = msg
		slog.Error("listener stopped", slog.Any("error", msg))
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		sized := tea.WindowSizeMsg{Width: m.width, Height: m.height}
		m.headerModel, _ = m.headerModel.Update(sized)
		m.radiosModel, _ = m.radiosModel.Update(sized)
		m.serialModel, _ = m.serialModel.Update(sized)
		m.contactModel, _ = m.contactModel.Update(sized)
		m.spotsModel, _ = m.spotsModel.Update(sized)
		m.footerModel, _ = m.footerModel.Update(sized)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	}

	return m, tea.Batch(cmds...)
}

func (m model) View() string {
	if m.err != nil {
		errorStyle := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Border(lipgloss.DoubleBorder(), true).
			BorderForeground(lipgloss.Color("9")).
			Padding(1).
			Align(lipgloss.Center, lipgloss.Center)
		return errorStyle.Render(
			"Error:\n\n" + m.err.Error() +
				"\n\nPress any key to quit.",
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerModel.View(),
		m.radiosModel.View(),
		m.serialModel.View(),
		m.contactModel.View(),
		m.spotsModel.View(),
		m.footerModel.View(),
	)
}

// options are the command line flags
type options struct {
	configPath  string
	address     string
	port        int
	maxDatagram int
	spots       int
	logFile     string
	metricsAddr string
	debug       bool
	version     bool
	help        bool

	flags *pflag.FlagSet
}

func parseFlags(args []string) (*options, error) {
	o := &options{}

	fs := pflag.NewFlagSet("contestmon", pflag.ContinueOnError)
	fs.StringVarP(&o.configPath, "config", "c", "", "path to config file (default: "+config.DefaultPath+")")
	fs.StringVar(&o.address, "address", "", "address to listen on")
	fs.IntVarP(&o.port, "port", "p", 0, "UDP port to listen on")
	fs.IntVar(&o.maxDatagram, "max-datagram", 0, "receive buffer size in bytes")
	fs.IntVar(&o.spots, "spots", 0, "number of recent spots to keep")
	fs.StringVar(&o.logFile, "log-file", "", "file to write logs to")
	fs.StringVar(&o.metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")
	fs.BoolVar(&o.debug, "debug", false, "log every frame")
	fs.BoolVar(&o.version, "version", false, "print version and exit")
	fs.BoolVarP(&o.help, "help", "h", false, "show help")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	o.flags = fs

	return o, nil
}

// apply overrides conf with flags that were set explicitly
func (o *options) apply(conf *config.Config) {
	if o.flags.Changed("address") {
		conf.Listener.Address = o.address
	}
	if o.flags.Changed("port") {
		conf.Listener.Port = o.port
	}
	if o.flags.Changed("max-datagram") {
		conf.Listener.MaxDatagramSize = o.maxDatagram
	}
	if o.flags.Changed("spots") {
		conf.Display.SpotCapacity = o.spots
	}
	if o.flags.Changed("log-file") {
		conf.Log.File = o.logFile
	}
	if o.flags.Changed("metrics-addr") {
		conf.Metrics.Address = o.metricsAddr
	}
	if o.debug {
		conf.Log.Level = "debug"
	}
}

func run(args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}
	if opts.help {
		fmt.Println("Usage: contestmon [flags]")
		opts.flags.PrintDefaults()
		return nil
	}
	if opts.version {
		fmt.Println("contestmon " + version)
		return nil
	}

	conf, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	opts.apply(&conf)
	if err := conf.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// stdout belongs to the TUI, so logs go to a file
	logFile, err := tea.LogToFile(conf.Log.File, "contestmon")
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	level, _ := config.ParseLevel(conf.Log.Level)
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	conn, err := udp.Bind(conf.Listener.Address, conf.Listener.Port)
	if err != nil {
		return err
	}
	defer conn.Close()

	var metricsServer *metrics.Server
	if conf.Metrics.Address != "" {
		metricsServer = metrics.NewServer(conf.Metrics.Address, logger.With("component", "metrics"))
		go func() { _ = metricsServer.Listen() }()
	}

	store := state.New(conf.Display.SpotCapacity)

	listener := udp.NewListener(conn, store, udp.Options{
		MaxDatagramSize: conf.Listener.MaxDatagramSize,
		PollInterval:    conf.Listener.PollInterval(),
	}, logger.With("component", "listener"))
	listener.Start()

	done := make(chan struct{})
	p := tea.NewProgram(initialModel(conf, store, done), tea.WithAltScreen())

	// report a dead socket to the UI
	go func() {
		if err := listener.Wait(); err != nil {
			p.Send(err)
		}
	}()

	_, runErr := p.Run()
	close(done)

	listener.RequestStop()
	if metricsServer != nil {
		if err := metricsServer.Shutdown(); err != nil {
			logger.Warn("metrics server shutdown", slog.Any("error", err))
		}
	}
	if err := listener.Wait(); err != nil {
		logger.Error("listener ended with transport error", slog.Any("error", err))
	}

	logger.Info("shutdown complete")

	return runErr
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
