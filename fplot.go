// Package fplot is a function graphing engine: a small expression compiler,
// an RPN evaluator, a viewport model and a curve sampler which detects
// asymptotes, roots and intersections.
//
// License
//
// Governed by a 3-Clause BSD license. License file may be found in the root
// folder of this module.
//
// Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
//
package fplot

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/knadh/koanf"
)

// Configuration holds global configuration values. We use koanf.
var Configuration *koanf.Koanf

// Tracefile is the file we write our log output, if not nil.
var Tracefile io.WriteCloser

// SignalContext is a global context for terminating the application by an interrupt
// signal.
var SignalContext context.Context

// Exit exits the application. It gracefully shuts down all resources.
func Exit(errcode int) {
	if Tracefile != nil {
		Tracefile.Close()
	}
	os.Exit(errcode)
}

// ConfigInt returns an integer configuration value, or dflt if either no
// configuration has been loaded or the key is not set.
func ConfigInt(key string, dflt int) int {
	if Configuration == nil || !Configuration.Exists(key) {
		return dflt
	}
	return Configuration.Int(key)
}

// ConfigFloat returns a float configuration value, or dflt.
func ConfigFloat(key string, dflt float64) float64 {
	if Configuration == nil || !Configuration.Exists(key) {
		return dflt
	}
	return Configuration.Float64(key)
}

// ConfigBool returns a boolean configuration value, or dflt.
func ConfigBool(key string, dflt bool) bool {
	if Configuration == nil || !Configuration.Exists(key) {
		return dflt
	}
	return Configuration.Bool(key)
}

// ConfigString returns a string configuration value, or dflt.
func ConfigString(key string, dflt string) string {
	if Configuration == nil || !Configuration.Exists(key) {
		return dflt
	}
	return Configuration.String(key)
}

// ConditionGuiStarted is a condition variable for waiting/announcing that a window
// has been opened and therefore the GUI subsystem has been ramped up.
//
// Wait for this condition with `ConditionGuiStarted.Wait()` and announce it with
// `ConditionGuiStarted.Broadcast()`.
//
var ConditionGuiStarted = newCondition("guiStarted")

type condition struct {
	condition *sync.Cond // we use a condition variable
	mu        sync.Mutex // guards the condition
	variable  bool       // the condition to guard
	name      string     // identifies this condition
}

func newCondition(name string) *condition {
	c := &condition{
		mu:   sync.Mutex{},
		name: name,
	}
	c.condition = sync.NewCond(&c.mu)
	return c
}

func (c *condition) Wait() {
	c.condition.L.Lock()
	for !c.variable {
		c.condition.Wait()
	}
	c.condition.L.Unlock()
}

func (c *condition) Broadcast() {
	c.condition.L.Lock()
	c.variable = true
	c.condition.Broadcast()
	c.condition.L.Unlock()
}
