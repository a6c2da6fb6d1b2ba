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

// Package pmconfig forwards board suspend/wake configuration words to the
// platform firmware, one shot at startup. The firmware call mechanism
// itself stays behind the Firmware interface.
package pmconfig

import (
	"errors"
	"fmt"

	"github.com/ZaparooProject/go-dsipanel/internal/log"
)

// InvalidGPIO terminates the power-control GPIO list handed to firmware.
const InvalidGPIO = 0xFFFF

// maxPowerCtrlGPIOs bounds the power-control list the firmware accepts.
const maxPowerCtrlGPIOs = 10

// Firmware is the platform suspend-configuration interface. Each call
// forwards one configuration word.
type Firmware interface {
	SetSuspendMode(mode uint32) error
	SetWakeupSources(sources uint32) error
	SetPWMRegulator(config uint32) error
	SetPowerControlGPIO(index int, gpio uint32) error
	SetSuspendDebug(enable uint32) error
	SetAPIOSuspend(config uint32) error
}

// Config carries the board's suspend configuration words. Nil fields were
// not set by the board and are skipped with a warning, matching the
// optional devicetree properties this mirrors.
type Config struct {
	SleepMode      *uint32  `yaml:"sleep_mode_config"`
	WakeupSources  *uint32  `yaml:"wakeup_config"`
	PWMRegulator   *uint32  `yaml:"pwm_regulator_config"`
	SleepDebug     *uint32  `yaml:"sleep_debug_en"`
	APIOSuspend    *uint32  `yaml:"apios_suspend"`
	PowerCtrlGPIOs []uint32 `yaml:"power_ctrl_gpios"`
}

// Apply forwards every configured word to fw. Forwarding is best-effort:
// a failed call is reported and the remaining words are still sent; the
// accumulated failures are returned at the end.
func Apply(cfg *Config, fw Firmware) error {
	if cfg == nil || fw == nil {
		return errors.New("pmconfig: config and firmware are required")
	}

	var errs []error
	forward := func(what string, val *uint32, set func(uint32) error) {
		if val == nil {
			log.Info("suspend config not set", "what", what)
			return
		}
		if err := set(*val); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", what, err))
		}
	}

	forward("sleep-mode-config", cfg.SleepMode, fw.SetSuspendMode)
	forward("wakeup-config", cfg.WakeupSources, fw.SetWakeupSources)
	forward("pwm-regulator-config", cfg.PWMRegulator, fw.SetPWMRegulator)

	// The GPIO list is forwarded entry by entry and always terminated with
	// the invalid-GPIO sentinel, even when empty or oversized.
	terminator := 0
	if n := len(cfg.PowerCtrlGPIOs); n > 0 && n < maxPowerCtrlGPIOs {
		for i, g := range cfg.PowerCtrlGPIOs {
			if err := fw.SetPowerControlGPIO(i, g); err != nil {
				errs = append(errs, fmt.Errorf("power-ctrl gpio %d: %w", i, err))
				break
			}
			terminator = i + 1
		}
	} else if n := len(cfg.PowerCtrlGPIOs); n >= maxPowerCtrlGPIOs {
		log.Info("too many power-ctrl gpios, list ignored", "count", n)
	}
	if err := fw.SetPowerControlGPIO(terminator, InvalidGPIO); err != nil {
		errs = append(errs, fmt.Errorf("power-ctrl terminator: %w", err))
	}

	forward("sleep-debug-en", cfg.SleepDebug, fw.SetSuspendDebug)
	forward("apios-suspend", cfg.APIOSuspend, fw.SetAPIOSuspend)

	return errors.Join(errs...)
}
