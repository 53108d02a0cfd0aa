package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/vburojevic/pirtimer/internal/config"
	"github.com/vburojevic/pirtimer/internal/hal"
	"github.com/vburojevic/pirtimer/internal/hal/rpi"
	"github.com/vburojevic/pirtimer/internal/hal/serlcd"
	"github.com/vburojevic/pirtimer/internal/output"
	"github.com/vburojevic/pirtimer/internal/tmux"
)

// Display kinds
const (
	displayGrove  = "grove"
	displaySerial = "serial"
	displayTmux   = "tmux"
)

// displayFlags are shared by the hardware commands
type displayFlags struct {
	Display      string `default:"${config_display}" enum:"grove,serial,tmux" help:"Where the LCD frames go (grove, serial, tmux)"`
	SerialDevice string `default:"${config_serial_device}" help:"Serial LCD backpack device"`
	TmuxSession  string `default:"${config_tmux_session}" help:"tmux session mirroring the LCD"`
	EventsDir    string `default:"${config_events_dir}" help:"Write one NDJSON events file per session into this directory"`
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}

// hardware is an opened board with everything that must be closed after use
type hardware struct {
	board   *hal.Board
	closers []io.Closer
}

func (h *hardware) Close() error {
	var errs []error
	for i := len(h.closers) - 1; i >= 0; i-- {
		errs = append(errs, h.closers[i].Close())
	}
	return errors.Join(errs...)
}

func rpiConfig(cfg *config.Config, withLCD bool) rpi.Config {
	return rpi.Config{
		Buttons:     cfg.Hardware.Buttons,
		PIRPin:      cfg.Hardware.PIRPin,
		BuzzerPin:   cfg.Hardware.BuzzerPin,
		I2CBus:      cfg.Hardware.I2CBus,
		GrovePiAddr: uint16(cfg.Hardware.GrovePiAddr),
		WithLCD:     withLCD,
	}
}

// openHardware opens the Pi and attaches the chosen display
func openHardware(globals *Globals, flags displayFlags, log *zap.Logger) (*hardware, error) {
	cfg := globals.Config
	dev, err := rpi.Open(rpiConfig(cfg, flags.Display == displayGrove), nil, log)
	if err != nil {
		return nil, outputErrorCommon(globals, "HARDWARE_UNAVAILABLE", err.Error(), "run 'pirtimer sim' to try the timer without a Raspberry Pi")
	}
	hw := &hardware{board: dev.Board, closers: []io.Closer{dev}}

	switch flags.Display {
	case displaySerial:
		d, err := serlcd.Open(serlcd.Config{Device: flags.SerialDevice, Baud: cfg.Display.SerialBaud})
		if err != nil {
			hw.Close()
			return nil, outputErrorCommon(globals, "DISPLAY_UNAVAILABLE", err.Error(), "check --serial-device")
		}
		hw.board.Display = d
		hw.closers = append(hw.closers, d)

	case displayTmux:
		mgr, err := tmux.NewManager(tmux.Config{SessionName: flags.TmuxSession})
		if err == nil {
			err = mgr.Setup()
		}
		if err != nil {
			hw.Close()
			return nil, outputErrorCommon(globals, "DISPLAY_UNAVAILABLE", err.Error(), "install tmux or choose another --display")
		}
		hw.board.Display = mgr
		hw.closers = append(hw.closers, mgr)
		announceTmux(globals, mgr)
	}

	if err := hw.board.Validate(); err != nil {
		hw.Close()
		return nil, outputErrorCommon(globals, "HARDWARE_UNAVAILABLE", err.Error())
	}
	return hw, nil
}

func announceTmux(globals *Globals, mgr *tmux.Manager) {
	if globals.Quiet {
		return
	}
	if globals.Format == "ndjson" {
		output.NewNDJSONWriter(globals.Stdout).WriteInfo("LCD mirrored to tmux: "+mgr.AttachCommand(), displayTmux, mgr.SessionName())
		return
	}
	fmt.Fprintf(globals.Stdout, "Tmux session: %s\n", mgr.SessionName())
	fmt.Fprintf(globals.Stdout, "Attach with: %s\n", mgr.AttachCommand())
}

// eventSink builds where session events go: stdout in the chosen format
// unless quiet, plus per-session files when eventsDir is set. The returned
// close func flushes the files.
func eventSink(globals *Globals, eventsDir string, log *zap.Logger) (output.Sink, func() error) {
	var tee output.Tee
	if !globals.Quiet {
		if globals.Format == "ndjson" {
			tee = append(tee, output.NewNDJSONWriter(globals.Stdout))
		} else {
			tee = append(tee, output.NewTextWriter(globals.Stdout))
		}
	}
	if eventsDir == "" {
		return tee, func() error { return nil }
	}
	files := newRotatingSink(eventsDir, func(path string) {
		log.Info("events file opened", zap.String("path", path))
	})
	tee = append(tee, files)
	return tee, files.Close
}
