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

package pmconfig

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockFirmware records every forwarded word as a formatted call string.
type mockFirmware struct {
	failOn string
	calls  []string
}

func (m *mockFirmware) record(call string) error {
	m.calls = append(m.calls, call)
	if m.failOn != "" && call == m.failOn {
		return errors.New("smc fault")
	}
	return nil
}

func (m *mockFirmware) SetSuspendMode(mode uint32) error {
	return m.record(fmt.Sprintf("mode=%#x", mode))
}

func (m *mockFirmware) SetWakeupSources(sources uint32) error {
	return m.record(fmt.Sprintf("wakeup=%#x", sources))
}

func (m *mockFirmware) SetPWMRegulator(config uint32) error {
	return m.record(fmt.Sprintf("pwm=%#x", config))
}

func (m *mockFirmware) SetPowerControlGPIO(index int, gpio uint32) error {
	return m.record(fmt.Sprintf("gpio[%d]=%#x", index, gpio))
}

func (m *mockFirmware) SetSuspendDebug(enable uint32) error {
	return m.record(fmt.Sprintf("debug=%#x", enable))
}

func (m *mockFirmware) SetAPIOSuspend(config uint32) error {
	return m.record(fmt.Sprintf("apios=%#x", config))
}

func u32(v uint32) *uint32 { return &v }

func TestApply_ForwardsConfiguredWords(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		SleepMode:      u32(0x1),
		WakeupSources:  u32(0x84),
		PowerCtrlGPIOs: []uint32{0x2a, 0x2b},
		SleepDebug:     u32(0x1),
	}
	fw := &mockFirmware{}

	require.NoError(t, Apply(cfg, fw))

	want := []string{
		"mode=0x1",
		"wakeup=0x84",
		"gpio[0]=0x2a",
		"gpio[1]=0x2b",
		"gpio[2]=0xffff",
		"debug=0x1",
	}
	assert.Equal(t, want, fw.calls)
}

func TestApply_EmptyListStillTerminated(t *testing.T) {
	t.Parallel()

	fw := &mockFirmware{}
	require.NoError(t, Apply(&Config{}, fw))

	// Nothing configured: only the GPIO list terminator goes out.
	assert.Equal(t, []string{"gpio[0]=0xffff"}, fw.calls)
}

func TestApply_OversizedListIgnored(t *testing.T) {
	t.Parallel()

	cfg := &Config{PowerCtrlGPIOs: make([]uint32, maxPowerCtrlGPIOs)}
	fw := &mockFirmware{}

	require.NoError(t, Apply(cfg, fw))
	assert.Equal(t, []string{"gpio[0]=0xffff"}, fw.calls)
}

func TestApply_BestEffortOnFailure(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		SleepMode:     u32(0x1),
		WakeupSources: u32(0x84),
		APIOSuspend:   u32(0x2),
	}
	fw := &mockFirmware{failOn: "mode=0x1"}

	err := Apply(cfg, fw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sleep-mode-config")

	// Later words were still forwarded.
	assert.Contains(t, fw.calls, "wakeup=0x84")
	assert.Contains(t, fw.calls, "apios=0x2")
}

func TestApply_RequiresConfigAndFirmware(t *testing.T) {
	t.Parallel()

	require.Error(t, Apply(nil, &mockFirmware{}))
	require.Error(t, Apply(&Config{}, nil))
}
