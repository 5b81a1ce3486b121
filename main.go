package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/term"

	"benchtop/adapters"
	"benchtop/config"
	"benchtop/console"
	"benchtop/instrument"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	args := config.ParseCommandLineArgs()

	cfg, err := config.LoadConfig(args.ConfigFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.ApplyCommandLineArgs(args)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logFile, err := setupLogger(cfg.Log.Filename, cfg.Debug)
	if err != nil {
		return err
	}
	defer logFile.Close()

	writeDelay, err := cfg.WriteDelay()
	if err != nil {
		return err
	}
	timeout, err := cfg.Timeout()
	if err != nil {
		return err
	}

	transport, err := openTransport(cfg, timeout)
	if err != nil {
		return fmt.Errorf("open transport: %w", err)
	}

	inst := instrument.NewSCPI(cfg.Instrument.Name, adapters.New(transport))
	inst.SetWriteDelay(writeDelay)
	slog.Info("instrument ready",
		"name", cfg.Instrument.Name,
		"transport", cfg.Instrument.Transport,
		"address", cfg.Instrument.Address,
		"write_delay", writeDelay)

	return instrument.With(inst.Instrument, func(*instrument.Instrument) error {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			console.Run(inst)
			return nil
		}
		return runScript(inst)
	})
}

func openTransport(cfg *config.Config, timeout time.Duration) (adapters.Transport, error) {
	switch cfg.Instrument.Transport {
	case "fake":
		return adapters.NewFakeTransport(), nil
	case "tcp":
		return adapters.DialTCP(cfg.Instrument.Address, adapters.TCPOptions{Timeout: timeout})
	case "websocket":
		return adapters.DialWebSocket(cfg.Instrument.Address)
	}
	return nil, fmt.Errorf("unknown transport %q", cfg.Instrument.Transport)
}

// runScript executes commands from a non-interactive stdin, one per line.
func runScript(c console.Controller) error {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		cmd, err := console.ParseCommand(scanner.Text())
		if err != nil {
			return err
		}
		if cmd == nil {
			continue
		}
		if console.Execute(c, cmd) {
			return nil
		}
	}
	return scanner.Err()
}
