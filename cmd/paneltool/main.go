// go-dsipanel
// Copyright (c) 2025 The Zaparoo Project Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-dsipanel.
//
// go-dsipanel is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-dsipanel is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-dsipanel; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

// paneltool drives a panel described by a YAML board file through its
// lifecycle, or decodes a binary command sequence for inspection.
package main

import (
	"flag"
	"fmt"
	"os"

	dsipanel "github.com/ZaparooProject/go-dsipanel"
	"github.com/ZaparooProject/go-dsipanel/channel/serial"
	"github.com/ZaparooProject/go-dsipanel/config"
	"github.com/ZaparooProject/go-dsipanel/line/gpio"
)

type cliConfig struct {
	boardPath  *string
	decodePath *string
	powerOff   *bool
	cycle      *bool
	debug      *bool
}

func parseFlags() *cliConfig {
	cfg := &cliConfig{
		boardPath:  flag.String("board", "", "Path to the YAML board file"),
		decodePath: flag.String("decode", "", "Decode a binary command sequence file and exit"),
		powerOff:   flag.Bool("off", false, "Power the panel down instead of up"),
		cycle:      flag.Bool("cycle", false, "Power the panel up, then back down"),
		debug:      flag.Bool("debug", false, "Enable debug output"),
	}
	flag.Parse()

	if *cfg.debug {
		dsipanel.SetDebugLogging(true)
	}

	return cfg
}

func main() {
	cfg := parseFlags()

	if *cfg.decodePath != "" {
		if err := decodeSequenceFile(*cfg.decodePath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *cfg.boardPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -board or -decode is required")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// decodeSequenceFile parses a raw sequence file and dumps its records.
func decodeSequenceFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read sequence file: %w", err)
	}

	seq, err := dsipanel.ParseSequence(raw)
	if err != nil {
		return err
	}

	fmt.Printf("%d commands, %d bytes\n", seq.Len(), seq.Size())
	for i, cmd := range seq.Commands() {
		fmt.Printf("%3d: type=0x%02X wait=%3dms payload=% X\n", i, cmd.Type, cmd.Wait, cmd.Payload)
	}
	return nil
}

// buildPanel assembles a panel from the board description.
func buildPanel(board *config.Board) (*dsipanel.Panel, func(), error) {
	rail, err := gpio.NewRail(board.Power.Rail, board.Power.ActiveLow)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up power rail: %w", err)
	}

	opts := []dsipanel.Option{}
	cleanup := func() {}

	if board.Pins.Reset != "" {
		line, err := gpio.NewLine(board.Pins.Reset)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to set up reset line: %w", err)
		}
		opts = append(opts, dsipanel.WithResetLine(line))
	}

	if board.Pins.Enable != "" {
		line, err := gpio.NewLine(board.Pins.Enable)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to set up enable line: %w", err)
		}
		opts = append(opts, dsipanel.WithEnableLine(line))
	}

	if board.Serial.Port != "" {
		chOpts := []serial.Option{}
		if board.Serial.BaudRate > 0 {
			chOpts = append(chOpts, serial.WithBaudRate(board.Serial.BaudRate))
		}
		ch, err := serial.New(board.Serial.Port, chOpts...)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open command channel: %w", err)
		}
		cleanup = func() { _ = ch.Close() }
		opts = append(opts, dsipanel.WithChannel(ch))
	}

	on, err := board.OnSequence()
	if err != nil {
		return nil, nil, err
	}
	if on != nil {
		opts = append(opts, dsipanel.WithOnSequence(on))
	}

	off, err := board.OffSequence()
	if err != nil {
		return nil, nil, err
	}
	if off != nil {
		opts = append(opts, dsipanel.WithOffSequence(off))
	}

	panel, err := dsipanel.NewPanel(board.Descriptor(), rail, opts...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	return panel, cleanup, nil
}

func run(cfg *cliConfig) error {
	board, err := config.Load(*cfg.boardPath)
	if err != nil {
		return err
	}

	if err := dsipanel.RegisterDescriptor(board.Panel.Name, board.Descriptor()); err != nil {
		return err
	}

	panel, cleanup, err := buildPanel(board)
	if err != nil {
		return err
	}
	defer cleanup()

	powerUp := func() error {
		if err := panel.Prepare(); err != nil {
			return err
		}
		if err := panel.Enable(); err != nil {
			return err
		}
		fmt.Printf("Panel %s: %s\n", board.Panel.Name, panel.State())
		return nil
	}

	powerDown := func() error {
		if err := panel.Disable(); err != nil {
			return err
		}
		if err := panel.Unprepare(); err != nil {
			return err
		}
		fmt.Printf("Panel %s: %s\n", board.Panel.Name, panel.State())
		return nil
	}

	switch {
	case *cfg.cycle:
		if err := powerUp(); err != nil {
			return err
		}
		return powerDown()
	case *cfg.powerOff:
		return powerDown()
	default:
		return powerUp()
	}
}
