package toolexecutor

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/ankr/toolhub/internal/tracing"
)

const tracerName = "github.com/ankr/toolhub/pkg/toolexecutor"

// Recorder receives one observation per finished tool call
type Recorder interface {
	ObserveToolExecution(tool string, success bool, duration time.Duration)
}

// Option configures an Executor
type Option func(*Executor)

// WithRecorder sets the metrics recorder
func WithRecorder(rec Recorder) Option {
	return func(e *Executor) { e.recorder = rec }
}

// WithParamValidation toggles JSON Schema validation of call parameters
func WithParamValidation(enabled bool) Option {
	return func(e *Executor) { e.validate = enabled }
}

// Executor dispatches calls against a Registry.
// It never returns an error or lets a handler panic escape: every failure is a ToolResult.
type Executor struct {
	registry *Registry
	recorder Recorder
	validate bool
}

// NewExecutor creates an executor over registry
func NewExecutor(registry *Registry, opts ...Option) *Executor {
	e := &Executor{
		registry: registry,
		validate: true,
	}
	for _, opt := range opts {
		opt(e)
	}

	log.Info().Bool("validate_params", e.validate).Msg("Tool executor initialized")

	return e
}

// Registry returns the registry the executor reads from
func (e *Executor) Registry() *Registry {
	return e.registry
}

// ExecuteOne runs a single tool by exact name
func (e *Executor) ExecuteOne(ctx context.Context, name string, params map[string]interface{}) ToolResult {
	if ctx == nil {
		ctx = context.Background()
	}

	tool, ok := e.registry.lookup(name)
	if !ok {
		log.Warn().Str("tool", name).Msg("Tool not found")
		e.observe(name, false, 0)
		return ToolResult{
			Success: false,
			Error:   fmt.Sprintf("Tool not found: %s", name),
			Metadata: map[string]interface{}{
				MetaTool:       name,
				MetaDurationMS: int64(0),
			},
		}
	}

	if params == nil {
		params = map[string]interface{}{}
	}

	executionID := uuid.New().String()
	ctx, span := tracing.StartSpan(ctx, tracerName, "tool.execute",
		attribute.String("tool.name", name),
		attribute.String("tool.execution_id", executionID),
	)
	defer span.End()

	metadata := map[string]interface{}{
		MetaTool:        name,
		MetaExecutionID: executionID,
	}

	startTime := time.Now()

	if e.validate {
		if err := validateParameters(tool.schema, params); err != nil {
			duration := time.Since(startTime)
			metadata[MetaDurationMS] = duration.Milliseconds()
			log.Warn().Str("tool", name).Err(err).Msg("Parameter validation failed")
			span.SetStatus(codes.Error, "parameter validation failed")
			e.observe(name, false, duration)
			return ToolResult{
				Success:  false,
				Error:    fmt.Sprintf("parameter validation failed: %v", err),
				Metadata: metadata,
			}
		}
	}

	log.Debug().
		Str("tool", name).
		Str("execution_id", executionID).
		Str("trace_id", tracing.GetTraceID(ctx)).
		Str("request_id", tracing.GetRequestID(ctx)).
		Msg("Executing tool")

	execCtx := ContextWithExecContext(ctx, &ExecutionContext{ExecutionID: executionID, Tool: name})
	output, err := invoke(execCtx, tool.def.Handler, params)
	duration := time.Since(startTime)
	metadata[MetaDurationMS] = duration.Milliseconds()

	if err != nil {
		f := describeFailure(name, err)
		if f.panicked {
			metadata[MetaPanic] = true
		}
		if f.unconfigured {
			metadata[MetaUnconfigured] = true
		}

		log.Error().
			Str("tool", name).
			Dur("duration", duration).
			Str("error", f.message).
			Msg("Tool execution failed")

		span.RecordError(errors.New(f.message))
		span.SetStatus(codes.Error, f.message)
		e.observe(name, false, duration)

		return ToolResult{
			Success:  false,
			Error:    f.message,
			Metadata: metadata,
		}
	}

	log.Debug().
		Str("tool", name).
		Dur("duration", duration).
		Msg("Tool execution completed")

	e.observe(name, true, duration)

	return ToolResult{
		Success:  true,
		Data:     output,
		Metadata: metadata,
	}
}

// ExecuteMany runs every call concurrently. result[i] always answers calls[i];
// a failing call does not affect its siblings.
func (e *Executor) ExecuteMany(ctx context.Context, calls []Call) []ToolResult {
	results := make([]ToolResult, len(calls))
	if len(calls) == 0 {
		return results
	}

	var g errgroup.Group
	for i, call := range calls {
		g.Go(func() error {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error().
						Str("tool", call.Tool).
						Interface("panic", rec).
						Bytes("stack", debug.Stack()).
						Msg("Recovered panic in batch call")
					results[i] = ToolResult{
						Success: false,
						Error:   fmt.Sprintf("tool %s failed: %v", call.Tool, rec),
						Metadata: map[string]interface{}{
							MetaTool:       call.Tool,
							MetaDurationMS: int64(0),
							MetaPanic:      true,
						},
					}
				}
			}()
			results[i] = e.ExecuteOne(ctx, call.Tool, call.Params)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if !r.Success {
			failed++
		}
	}
	log.Debug().Int("calls", len(calls)).Int("failed", failed).Msg("Batch execution completed")

	return results
}

func (e *Executor) observe(name string, success bool, duration time.Duration) {
	if e.recorder != nil {
		e.recorder.ObserveToolExecution(name, success, duration)
	}
}

type panicError struct {
	value interface{}
}

func (p *panicError) Error() string {
	return fmt.Sprintf("tool panicked: %v", p.value)
}

// invoke calls the handler, converting a panic into an error
func invoke(ctx context.Context, handler Handler, params map[string]interface{}) (output interface{}, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("Recovered panic in tool handler")
			output = nil
			err = &panicError{value: rec}
		}
	}()
	return handler.Execute(ctx, params)
}

type failure struct {
	message      string
	panicked     bool
	unconfigured bool
}

// describeFailure renders a handler error. Error values with broken methods
// (a typed nil pointer, for one) still produce a non-empty message.
func describeFailure(tool string, err error) (f failure) {
	defer func() {
		if rec := recover(); rec != nil {
			f.message = fmt.Sprintf("tool %s failed: %T error could not be rendered: %v", tool, err, rec)
		}
	}()

	var panicked *panicError
	f.panicked = errors.As(err, &panicked)
	f.unconfigured = errors.Is(err, ErrUnconfigured)
	f.message = err.Error()
	if strings.TrimSpace(f.message) == "" {
		f.message = fmt.Sprintf("tool %s failed (%T)", tool, err)
	}
	return f
}
