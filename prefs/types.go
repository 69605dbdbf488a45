// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

package prefs

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync/atomic"
)

// Value represents the actual Go preference value.
type Value any

// types supported by the prefs system must implement the pref interface.
type pref interface {
	fmt.Stringer
	Set(value Value) error
	Get() Value
	Reset() error
}

// hooks are shared by all pref types. the pre hook can veto a new value by
// returning an error.
type hooks struct {
	hookPre  func(value Value) error
	hookPost func(value Value) error
}

// SetHookPre sets the callback function to be called just before the prefs
// value is updated. Note that even if the value hasn't changed, the callback
// will be executed.
func (h *hooks) SetHookPre(f func(value Value) error) {
	h.hookPre = f
}

// SetHookPost sets the callback function to be called just after the prefs
// value is updated. Note that even if the value hasn't changed, the callback
// will be executed.
func (h *hooks) SetHookPost(f func(value Value) error) {
	h.hookPost = f
}

func (h *hooks) store(nv Value, store func()) error {
	if h.hookPre != nil {
		if err := h.hookPre(nv); err != nil {
			return err
		}
	}

	store()

	if h.hookPost != nil {
		if err := h.hookPost(nv); err != nil {
			return err
		}
	}

	return nil
}

// Bool implements a boolean type in the prefs system.
type Bool struct {
	hooks
	value atomic.Bool
}

func (p *Bool) String() string {
	return fmt.Sprintf("%v", p.value.Load())
}

// Set new value to Bool type. New value must be of type bool or string. A
// string value of anything other than "true" (case insensitive) will set the
// value to false.
func (p *Bool) Set(v Value) error {
	var nv bool
	switch v := v.(type) {
	case bool:
		nv = v
	case string:
		nv = strings.ToLower(strings.TrimSpace(v)) == "true"
	default:
		return fmt.Errorf("set: cannot convert %T to prefs.Bool", v)
	}
	return p.store(nv, func() { p.value.Store(nv) })
}

// Get returns the raw pref value.
func (p *Bool) Get() Value {
	return p.value.Load()
}

// Reset sets the boolean value to false.
func (p *Bool) Reset() error {
	return p.Set(false)
}

// String implements a string type in the prefs system.
type String struct {
	hooks
	value atomic.Value // string
}

func (p *String) String() string {
	ov := p.value.Load()
	if ov == nil {
		return ""
	}
	return ov.(string)
}

// Set new value to String type. New value is formatted with the %v verb.
func (p *String) Set(v Value) error {
	nv := fmt.Sprintf("%v", v)
	return p.store(nv, func() { p.value.Store(nv) })
}

// Get returns the raw pref value.
func (p *String) Get() Value {
	return p.String()
}

// Reset sets the string value to the empty string.
func (p *String) Reset() error {
	return p.Set("")
}

// Int implements an integer type in the prefs system.
type Int struct {
	hooks
	value atomic.Int64
}

func (p *Int) String() string {
	return fmt.Sprintf("%d", p.value.Load())
}

// Set new value to Int type. New value can be an int or string.
func (p *Int) Set(v Value) error {
	var nv int
	switch v := v.(type) {
	case int64:
		nv = int(v)
	case int32:
		nv = int(v)
	case int:
		nv = v
	case string:
		var err error
		nv, err = strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("set: cannot convert %T to prefs.Int: %w", v, err)
		}
	default:
		return fmt.Errorf("set: cannot convert %T to prefs.Int", v)
	}
	return p.store(nv, func() { p.value.Store(int64(nv)) })
}

// Get returns the raw pref value.
func (p *Int) Get() Value {
	return int(p.value.Load())
}

// Reset sets the int value to zero.
func (p *Int) Reset() error {
	return p.Set(0)
}

// Float implements a floating point type in the prefs system.
type Float struct {
	hooks
	value atomic.Uint64 // float64 bits
}

func (p *Float) String() string {
	return fmt.Sprintf("%.3f", p.Get().(float64))
}

// Set new value to Float type. New value can be a float, an int or a string.
func (p *Float) Set(v Value) error {
	var nv float64
	switch v := v.(type) {
	case float64:
		nv = v
	case float32:
		nv = float64(v)
	case int:
		nv = float64(v)
	case string:
		var err error
		nv, err = strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("set: cannot convert %T to prefs.Float: %w", v, err)
		}
	default:
		return fmt.Errorf("set: cannot convert %T to prefs.Float", v)
	}
	return p.store(nv, func() { p.value.Store(math.Float64bits(nv)) })
}

// Get returns the raw pref value.
func (p *Float) Get() Value {
	return math.Float64frombits(p.value.Load())
}

// Reset sets the float value to zero.
func (p *Float) Reset() error {
	return p.Set(0.0)
}
