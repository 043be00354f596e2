package configwatcher

import (
	"context"
	"learning_center_backend/internal/config"
	"learning_center_backend/pkg/logger"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const debounce = time.Second

// ConfigReloader receives every successfully reloaded config.
type ConfigReloader func(cfg *config.Config)

// ApplyLogLevel is the reloader used by the server: only the log level is
// safe to change while running.
func ApplyLogLevel(cfg *config.Config) {
	lvl := logger.LevelFor(cfg)
	logger.SetLevel(lvl)
	logger.Log.Info("Config reloaded", zap.Stringer("level", lvl))
}

// Watch reloads configPath after writes settle and hands the result to
// reloader. It blocks until ctx is done or the watcher fails to start.
func Watch(ctx context.Context, configPath string, reloader ConfigReloader) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create config watcher")
	}
	defer watcher.Close()

	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return errors.Wrap(err, "resolve config path")
	}

	// Editors often replace the file, so watch the directory instead.
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return errors.Wrap(err, "watch config dir")
	}

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != absPath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				timer.Reset(debounce)
			}
		case <-timer.C:
			newCfg, err := config.LoadConfig(filepath.Dir(absPath))
			if err != nil {
				logger.Log.Error("Failed to reload config", zap.Error(err))
				continue
			}
			reloader(newCfg)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Log.Error("Config watcher error", zap.Error(err))
		}
	}
}
