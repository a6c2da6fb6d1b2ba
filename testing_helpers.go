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

package dsipanel

import "fmt"

// EventRecorder collects a single ordered trace of hardware interactions
// across the mock rail, lines, channel, and sleep function, so tests can
// assert cross-capability ordering.
type EventRecorder struct {
	Events []string
}

// Record appends one formatted event to the trace.
func (r *EventRecorder) Record(format string, args ...any) {
	if r == nil {
		return
	}
	r.Events = append(r.Events, fmt.Sprintf(format, args...))
}

// Sleep returns a SleepFunc that records waits instead of serving them.
func (r *EventRecorder) Sleep() SleepFunc {
	return func(ms uint) {
		r.Record("sleep %dms", ms)
	}
}

// MockWrite is one write recorded by MockChannel.
type MockWrite struct {
	Class   string // "generic" or "dcs"
	Payload []byte
}

// MockChannel is a Channel for testing. It records every write and can be
// scripted to fail specific writes by index or all writes at once.
type MockChannel struct {
	FailAt   map[int]error // write index -> error
	FailAll  error         // returned by every write when set
	Recorder *EventRecorder
	Writes   []MockWrite
	Closed   bool
}

// NewMockChannel creates an empty mock channel.
func NewMockChannel() *MockChannel {
	return &MockChannel{FailAt: make(map[int]error)}
}

// GenericWrite records a generic-class write.
func (m *MockChannel) GenericWrite(payload []byte) error {
	return m.write("generic", payload)
}

// DCSWrite records a DCS-class write.
func (m *MockChannel) DCSWrite(payload []byte) error {
	return m.write("dcs", payload)
}

func (m *MockChannel) write(class string, payload []byte) error {
	idx := len(m.Writes)
	m.Writes = append(m.Writes, MockWrite{
		Class:   class,
		Payload: append([]byte(nil), payload...),
	})
	m.Recorder.Record("%s-write %d", class, idx)
	if m.FailAll != nil {
		return m.FailAll
	}
	if err, ok := m.FailAt[idx]; ok {
		return err
	}
	return nil
}

// Close marks the channel closed.
func (m *MockChannel) Close() error {
	m.Closed = true
	return nil
}

// Type returns ChannelMock.
func (*MockChannel) Type() ChannelType {
	return ChannelMock
}

// MockRail is a Rail for testing. It tracks the rail state and can be
// scripted to fail any operation.
type MockRail struct {
	EnableErr    error
	DisableErr   error
	StatusErr    error
	Recorder     *EventRecorder
	EnableCalls  int
	DisableCalls int
	On           bool
}

// NewMockRail creates a rail in the given initial state.
func NewMockRail(on bool) *MockRail {
	return &MockRail{On: on}
}

// Enable turns the rail on.
func (m *MockRail) Enable() error {
	m.EnableCalls++
	if m.EnableErr != nil {
		return m.EnableErr
	}
	m.On = true
	m.Recorder.Record("rail on")
	return nil
}

// Disable turns the rail off.
func (m *MockRail) Disable() error {
	m.DisableCalls++
	if m.DisableErr != nil {
		return m.DisableErr
	}
	m.On = false
	m.Recorder.Record("rail off")
	return nil
}

// IsEnabled reports the rail state.
func (m *MockRail) IsEnabled() (bool, error) {
	if m.StatusErr != nil {
		return false, m.StatusErr
	}
	return m.On, nil
}

// MockLine is a Line for testing. It records every level transition.
type MockLine struct {
	SetErr   error
	Name     string
	Recorder *EventRecorder
	Levels   []int
}

// NewMockLine creates a named mock line.
func NewMockLine(name string) *MockLine {
	return &MockLine{Name: name}
}

// SetLevel records the requested level.
func (m *MockLine) SetLevel(level int) error {
	if m.SetErr != nil {
		return m.SetErr
	}
	m.Levels = append(m.Levels, level)
	m.Recorder.Record("%s=%d", m.Name, level)
	return nil
}

// Level returns the most recent level, or -1 if the line was never driven.
func (m *MockLine) Level() int {
	if len(m.Levels) == 0 {
		return -1
	}
	return m.Levels[len(m.Levels)-1]
}

// Interface checks
var (
	_ Channel = (*MockChannel)(nil)
	_ Rail    = (*MockRail)(nil)
	_ Line    = (*MockLine)(nil)
)
