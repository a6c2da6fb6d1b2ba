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

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRailController(t *testing.T) {
	t.Parallel()

	tests := []struct {
		op        func(*railController) error
		name      string
		inverted  bool
		startOn   bool
		wantOn    bool
		wantCalls bool // whether the rail handle should see any call beyond IsEnabled
	}{
		{
			name:      "enable turns rail on",
			op:        (*railController).enable,
			startOn:   false,
			wantOn:    true,
			wantCalls: true,
		},
		{
			name:      "disable turns rail off",
			op:        (*railController).disable,
			startOn:   true,
			wantOn:    false,
			wantCalls: true,
		},
		{
			name:      "inverted enable forces rail off",
			op:        (*railController).enable,
			inverted:  true,
			startOn:   true,
			wantOn:    false,
			wantCalls: true,
		},
		{
			name:      "inverted enable leaves off rail alone",
			op:        (*railController).enable,
			inverted:  true,
			startOn:   false,
			wantOn:    false,
			wantCalls: false,
		},
		{
			name:      "inverted disable forces rail on",
			op:        (*railController).disable,
			inverted:  true,
			startOn:   false,
			wantOn:    true,
			wantCalls: true,
		},
		{
			name:      "inverted disable leaves on rail alone",
			op:        (*railController).disable,
			inverted:  true,
			startOn:   true,
			wantOn:    true,
			wantCalls: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rail := NewMockRail(tt.startOn)
			rc := newRailController(rail, tt.inverted)

			require.NoError(t, tt.op(rc))
			assert.Equal(t, tt.wantOn, rail.On)
			if !tt.wantCalls {
				assert.Zero(t, rail.EnableCalls)
				assert.Zero(t, rail.DisableCalls)
			}
		})
	}
}

func TestRailController_Errors(t *testing.T) {
	t.Parallel()

	railErr := errors.New("regulator fault")

	t.Run("Enable_Failure_Surfaces", func(t *testing.T) {
		t.Parallel()

		rail := NewMockRail(false)
		rail.EnableErr = railErr
		rc := newRailController(rail, false)

		err := rc.enable()
		require.Error(t, err)
		assert.ErrorIs(t, err, railErr)

		var rerr *RailError
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, "enable", rerr.Op)
	})

	t.Run("Inverted_Status_Failure_Surfaces", func(t *testing.T) {
		t.Parallel()

		rail := NewMockRail(false)
		rail.StatusErr = railErr
		rc := newRailController(rail, true)

		err := rc.enable()
		require.Error(t, err)
		assert.ErrorIs(t, err, railErr)
	})
}
