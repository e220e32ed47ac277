package daemon

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/ankr/toolhub/internal/app"
	"github.com/ankr/toolhub/internal/tracing"
	"github.com/ankr/toolhub/pkg/skills"
)

// Daemon runs the long-lived parts of toolhub: the metrics endpoint, the skill
// watcher and the scheduled skill cache reset.
type Daemon struct {
	app       *app.App
	lifecycle *LifecycleManager

	metricsServer *http.Server
	metricsAddr   string
	watcher       *skills.Watcher
	scheduler     *cron.Cron

	wg        sync.WaitGroup
	startTime time.Time
	running   bool
	mu        sync.RWMutex
}

// Status describes a running daemon
type Status struct {
	Running     bool
	Uptime      time.Duration
	StartTime   time.Time
	MetricsAddr string
}

// New creates a daemon around an initialized app
func New(a *app.App) (*Daemon, error) {
	if a == nil {
		return nil, errors.New("app is required")
	}
	d := &Daemon{app: a}
	d.lifecycle = NewLifecycleManager(d)
	return d, nil
}

// Start starts the metrics server, the skill watcher and the cache reset schedule
func (d *Daemon) Start() error {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return fmt.Errorf("daemon is already running")
	}
	d.running = true
	d.startTime = time.Now()
	d.mu.Unlock()

	cfg := d.app.Config
	logger := log.With().Str("trace_id", tracing.NewTraceID()).Logger()
	logger.Info().Msg("Starting toolhub daemon")

	if err := d.lifecycle.Start(); err != nil {
		d.setStopped()
		return fmt.Errorf("failed to start lifecycle manager: %w", err)
	}

	if cfg.Metrics.Addr != "" {
		if err := d.startMetrics(cfg.Metrics.Addr); err != nil {
			_ = d.lifecycle.Stop()
			d.setStopped()
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
		logger.Info().Str("addr", d.metricsAddr).Msg("Metrics server started")
	}

	if cfg.Skills.Watch {
		watcher, err := skills.NewWatcher(skills.WatcherConfig{
			Store:        d.app.Skills.Store(),
			OnInvalidate: func(name string) { d.app.Skills.Invalidate(name) },
		})
		if err == nil {
			if err = watcher.Start(); err != nil {
				_ = watcher.Stop()
			}
		}
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to start skill watcher")
		} else {
			d.watcher = watcher
		}
	}

	if cfg.Skills.CacheResetCron != "" {
		d.scheduler = cron.New()
		if _, err := d.scheduler.AddFunc(cfg.Skills.CacheResetCron, d.app.Skills.ClearCache); err != nil {
			logger.Warn().Err(err).Str("schedule", cfg.Skills.CacheResetCron).Msg("Failed to schedule skill cache reset")
			d.scheduler = nil
		} else {
			d.scheduler.Start()
			logger.Info().Str("schedule", cfg.Skills.CacheResetCron).Msg("Skill cache reset scheduled")
		}
	}

	logger.Info().
		Str("tier", string(d.app.Catalog.Tier)).
		Int("tools", d.app.Registry.Count()).
		Msg("Daemon started")

	return nil
}

func (d *Daemon) startMetrics(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", d.app.Metrics.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"status":"ok","tier":%q,"tools":%d}`, d.app.Catalog.Tier, d.app.Registry.Count())
	})

	d.metricsServer = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	d.metricsAddr = ln.Addr().String()

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := d.metricsServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Metrics server stopped unexpectedly")
		}
	}()
	return nil
}

// Stop stops everything Start started
func (d *Daemon) Stop() error {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return fmt.Errorf("daemon is not running")
	}
	d.running = false
	d.mu.Unlock()

	logger := log.With().Str("trace_id", tracing.NewTraceID()).Logger()
	logger.Info().Msg("Stopping toolhub daemon")

	if d.scheduler != nil {
		<-d.scheduler.Stop().Done()
		d.scheduler = nil
	}

	if d.watcher != nil {
		if err := d.watcher.Stop(); err != nil {
			logger.Error().Err(err).Msg("Failed to stop skill watcher")
		}
		d.watcher = nil
	}

	if d.metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.metricsServer.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("Failed to stop metrics server")
		}
		cancel()
		d.wg.Wait()
		d.metricsServer = nil
	}

	if err := d.lifecycle.Stop(); err != nil {
		logger.Error().Err(err).Msg("Failed to stop lifecycle manager")
	}

	logger.Info().Msg("Daemon stopped")
	return nil
}

func (d *Daemon) setStopped() {
	d.mu.Lock()
	d.running = false
	d.mu.Unlock()
}

// Status returns the daemon status
func (d *Daemon) Status() Status {
	d.mu.RLock()
	defer d.mu.RUnlock()

	status := Status{
		Running:     d.running,
		MetricsAddr: d.metricsAddr,
	}
	if d.running {
		status.Uptime = time.Since(d.startTime)
		status.StartTime = d.startTime
	}
	return status
}

// Wait blocks until SIGINT or SIGTERM and then stops the daemon
func (d *Daemon) Wait() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Received signal")

	if err := d.Stop(); err != nil {
		log.Error().Err(err).Msg("Failed to stop daemon")
	}
}
