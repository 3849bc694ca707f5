package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tally/internal/prof"
	"tally/internal/trace"
)

type stateKey struct{}

// runState lives in the command context between PersistentPreRunE and
// PersistentPostRun.
type runState struct {
	settings settings
	cleanup  func()
	span     *trace.Span
	done     bool
}

func stateFrom(cmd *cobra.Command) *runState {
	if st, ok := cmd.Context().Value(stateKey{}).(*runState); ok {
		return st
	}
	return &runState{cleanup: func() {}}
}

func setupCommand(cmd *cobra.Command, _ []string) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	profile, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	stopTrace, err := setupTracing(cmd, s)
	if err != nil {
		_ = profile.Stop()
		return err
	}
	cleanup := func() {
		stopTrace()
		if err := profile.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "profile: %v\n", err)
		}
	}
	tracer := trace.FromContext(cmd.Context())
	span := trace.Begin(tracer, trace.ScopeRun, cmd.Name(), 0)
	if s.configPath != "" {
		span.Set("config", s.configPath)
	}
	ctx := trace.WithSpan(cmd.Context(), span)
	ctx = context.WithValue(ctx, stateKey{}, &runState{settings: s, cleanup: cleanup, span: span})
	cmd.SetContext(ctx)
	return nil
}

// teardownCommand runs at most once per command. cobra skips
// PersistentPostRun when RunE fails, so main calls it again.
func teardownCommand(cmd *cobra.Command, _ []string) {
	st := stateFrom(cmd)
	if st.done {
		return
	}
	st.done = true
	if st.span != nil {
		st.span.End("")
	}
	st.cleanup()
}

// setupProfiling starts the profilers requested by --cpu-profile,
// --mem-profile and --runtime-trace.
func setupProfiling(cmd *cobra.Command) (*prof.Session, error) {
	flags := cmd.Flags()
	var cfg prof.Config
	cfg.CPUProfile, _ = flags.GetString("cpu-profile")
	cfg.MemProfile, _ = flags.GetString("mem-profile")
	cfg.RuntimeTrace, _ = flags.GetString("runtime-trace")
	if !cfg.Enabled() {
		return nil, nil
	}
	return prof.Start(cfg)
}

// setupTracing creates the tracer described by flags and settings and
// attaches it to the command context. The returned cleanup flushes it.
func setupTracing(cmd *cobra.Command, s settings) (func(), error) {
	flags := cmd.Flags()

	level, err := trace.ParseLevel(s.traceLevel)
	if err != nil {
		return nil, err
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}

	modeStr, _ := flags.GetString("trace-mode")
	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, err
	}
	formatStr, _ := flags.GetString("trace-format")
	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return nil, err
	}
	ringSize, _ := flags.GetInt("trace-ring-size")
	heartbeatInterval, _ := flags.GetDuration("trace-heartbeat")

	cfg := trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: s.traceOutput,
		RingSize:   ringSize,
	}
	if cfg.OutputPath == "" || cfg.OutputPath == "-" {
		cfg.Output = cmd.ErrOrStderr()
	}
	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))

	stopHeartbeat := trace.Heartbeat(tracer, heartbeatInterval)

	return func() {
		stopHeartbeat()
		// в ring-режиме события выводятся только в конце
		if ring, ok := tracer.(*trace.Ring); ok {
			if err := ring.Dump(cmd.ErrOrStderr(), format); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "trace: dump error: %v\n", err)
			}
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}, nil
}
