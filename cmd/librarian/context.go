package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/gofrs/flock"

	"librarian/internal/catalog"
	"librarian/internal/config"
	"librarian/internal/logging"
	"librarian/internal/pipeline"
	"librarian/internal/remote"
	"librarian/internal/rules"
	"librarian/internal/services/classify"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// loadConfig reads the configuration fresh, preserving where it came from
// and whether the file existed. Commands that report on the configuration
// itself use this instead of the cached ensureConfig result.
func (c *commandContext) loadConfig() (*config.Config, string, bool, error) {
	var path string
	if c.configFlag != nil {
		path = strings.TrimSpace(*c.configFlag)
	}
	return config.Load(path)
}

// runtime bundles the collaborators a processing command needs. Close
// releases them in reverse acquisition order.
type runtime struct {
	cfg    *config.Config
	store  *catalog.Store
	remote remote.Store
	rules  *rules.Set
	logger *slog.Logger

	lock *flock.Flock
}

// openRuntime assembles the shared collaborators. When withLock is set it
// also takes the single-instance lock so two batches cannot interleave
// writes to the same work directory.
func (c *commandContext) openRuntime(withLock bool) (*runtime, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("configure logging: %w", err)
	}

	rt := &runtime{cfg: cfg, logger: logger}

	if withLock {
		lock := flock.New(cfg.LockPath())
		ok, err := lock.TryLock()
		if err != nil {
			return nil, fmt.Errorf("acquire lock: %w", err)
		}
		if !ok {
			return nil, errors.New("another librarian instance is already running")
		}
		rt.lock = lock
	}

	store, err := catalog.Open(cfg)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	rt.store = store

	dropbox, err := remote.NewDropbox(cfg)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.remote = dropbox

	set, err := rules.Load(cfg.Paths.RulesFile)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("load rules: %w", err)
	}
	rt.rules = set

	return rt, nil
}

func (rt *runtime) Close() {
	if rt.store != nil {
		_ = rt.store.Close()
		rt.store = nil
	}
	if rt.lock != nil {
		_ = rt.lock.Unlock()
		rt.lock = nil
	}
}

func (rt *runtime) newPipeline(opts ...pipeline.Option) *pipeline.Pipeline {
	classifier := classify.NewClient(rt.cfg.LLM, rt.logger)
	return pipeline.New(rt.cfg, rt.store, rt.remote, classifier, rt.rules, rt.logger, opts...)
}
