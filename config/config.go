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

// Package config loads YAML board files describing a panel: its
// descriptor, its control pins, its command channel, and the raw on/off
// command sequences. It is the configuration-side replacement for the
// static board tables a kernel driver would carry.
package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	dsipanel "github.com/ZaparooProject/go-dsipanel"
	"github.com/ZaparooProject/go-dsipanel/pmconfig"
	"gopkg.in/yaml.v3"
)

// DelayConfig holds the six lifecycle delays, in milliseconds.
type DelayConfig struct {
	ResetMS     uint `yaml:"reset_ms"`
	InitMS      uint `yaml:"init_ms"`
	PrepareMS   uint `yaml:"prepare_ms"`
	EnableMS    uint `yaml:"enable_ms"`
	DisableMS   uint `yaml:"disable_ms"`
	UnprepareMS uint `yaml:"unprepare_ms"`
}

// PanelConfig describes one panel model.
type PanelConfig struct {
	Name        string      `yaml:"name"`
	OnSequence  string      `yaml:"on_sequence"`
	OffSequence string      `yaml:"off_sequence"`
	Delays      DelayConfig `yaml:"delays"`
	BusFormat   uint32      `yaml:"bus_format"`
	WidthMM     uint        `yaml:"width_mm"`
	HeightMM    uint        `yaml:"height_mm"`
	ResetLevel  int         `yaml:"reset_level"`
	PowerInvert bool        `yaml:"power_invert"`
}

// PinConfig names the panel's control lines by their periph.io pin names.
// Empty names mean the line is absent on this board.
type PinConfig struct {
	Reset  string `yaml:"reset"`
	Enable string `yaml:"enable"`
}

// PowerConfig names the pin switching the panel's power rail.
type PowerConfig struct {
	Rail      string `yaml:"rail"`
	ActiveLow bool   `yaml:"active_low"`
}

// SerialConfig describes the serial command bridge, if the board has one.
type SerialConfig struct {
	Port     string `yaml:"port"`
	BaudRate int    `yaml:"baud_rate"`
}

// Board is the top-level board description.
type Board struct {
	Suspend *pmconfig.Config `yaml:"suspend"`
	Panel   PanelConfig      `yaml:"panel"`
	Pins    PinConfig        `yaml:"pins"`
	Power   PowerConfig      `yaml:"power"`
	Serial  SerialConfig     `yaml:"serial"`
}

// Load reads and validates a board file.
func Load(path string) (*Board, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read board file: %w", err)
	}
	return Parse(raw)
}

// Parse decodes and validates board YAML.
func Parse(raw []byte) (*Board, error) {
	var b Board
	if err := yaml.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("failed to parse board file: %w", err)
	}
	if err := b.validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

func (b *Board) validate() error {
	if b.Panel.Name == "" {
		return fmt.Errorf("board file: panel.name is required")
	}
	if b.Panel.ResetLevel != 0 && b.Panel.ResetLevel != 1 {
		return fmt.Errorf("board file: panel.reset_level must be 0 or 1, got %d", b.Panel.ResetLevel)
	}
	if b.Power.Rail == "" {
		return fmt.Errorf("board file: power.rail is required")
	}
	// Sequences must decode and parse now, not at first use.
	for _, seq := range []struct {
		name string
		blob string
	}{
		{"on_sequence", b.Panel.OnSequence},
		{"off_sequence", b.Panel.OffSequence},
	} {
		data, err := DecodeSequence(seq.blob)
		if err != nil {
			return fmt.Errorf("board file: panel.%s: %w", seq.name, err)
		}
		if _, err := dsipanel.ParseSequence(data); err != nil {
			return fmt.Errorf("board file: panel.%s: %w", seq.name, err)
		}
	}
	return nil
}

// Descriptor converts the panel section into a dsipanel.Descriptor.
func (b *Board) Descriptor() dsipanel.Descriptor {
	return dsipanel.Descriptor{
		BusFormat:   b.Panel.BusFormat,
		WidthMM:     b.Panel.WidthMM,
		HeightMM:    b.Panel.HeightMM,
		ResetLevel:  b.Panel.ResetLevel,
		PowerInvert: b.Panel.PowerInvert,
		Delay: dsipanel.Delays{
			Reset:     b.Panel.Delays.ResetMS,
			Init:      b.Panel.Delays.InitMS,
			Prepare:   b.Panel.Delays.PrepareMS,
			Enable:    b.Panel.Delays.EnableMS,
			Disable:   b.Panel.Delays.DisableMS,
			Unprepare: b.Panel.Delays.UnprepareMS,
		},
	}
}

// OnSequence returns the decoded raw on-sequence bytes, nil when absent.
func (b *Board) OnSequence() ([]byte, error) {
	return DecodeSequence(b.Panel.OnSequence)
}

// OffSequence returns the decoded raw off-sequence bytes, nil when absent.
func (b *Board) OffSequence() ([]byte, error) {
	return DecodeSequence(b.Panel.OffSequence)
}

// DecodeSequence decodes a hex blob into raw sequence bytes. Whitespace,
// including newlines between records, is ignored; an empty blob yields
// nil. This mirrors how board files carry panel-init-sequence properties.
func DecodeSequence(blob string) ([]byte, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		default:
			return r
		}
	}, blob)

	if cleaned == "" {
		return nil, nil
	}

	data, err := hex.DecodeString(cleaned)
	if err != nil {
		return nil, fmt.Errorf("invalid sequence hex: %w", err)
	}
	return data, nil
}
