package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/pausa/internal/backup"
	"github.com/julianstephens/pausa/internal/config"
	"github.com/julianstephens/pausa/internal/logger"
	"github.com/julianstephens/pausa/internal/models"
	"github.com/julianstephens/pausa/internal/records"
	"github.com/julianstephens/pausa/internal/storage"
	"github.com/julianstephens/pausa/internal/summary"
)

type Context struct {
	Store        storage.Provider
	Config       *config.Config
	SettingsPath string

	// Out receives command output; nil means stdout
	Out io.Writer
}

func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Stdout(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Stdout(), args...)
}

// Records wraps the loaded store with the check-in collection
func (c *Context) Records() *records.Store {
	return records.NewStore(c.Store)
}

func (c *Context) Settings() *config.Config {
	if c.Config == nil {
		c.Config = config.Default()
	}
	return c.Config
}

// Summaries builds the text renderer from the configured templates
func (c *Context) Summaries() (*summary.Renderer, error) {
	cfg := c.Settings()
	return summary.New(summary.Options{
		SummaryPath: cfg.Templates.Summary,
		SharePath:   cfg.Templates.Share,
	})
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if !c.Settings().Backup.Auto || c.Store.GetConfigPath() == ":memory:" {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// LoadOrInit loads the store, creating it first when it does not exist yet
func (c *Context) LoadOrInit() error {
	err := c.Store.Load()
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrNotInitialized) {
		return err
	}
	logger.Info("storage not found, initializing", "path", c.Store.GetConfigPath())
	return c.Store.Init()
}

// Confirm asks a yes/no question. assumeYes skips the prompt.
func Confirm(title string, assumeYes bool) (bool, error) {
	if assumeYes {
		return true, nil
	}
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Sim").
		Negative("Não").
		Value(&ok).
		Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}

// FindRecord resolves a full id or a unique id prefix against the stored records
func FindRecord(recs *records.Store, ref string) (models.CheckinRecord, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return models.CheckinRecord{}, fmt.Errorf("record id is required")
	}
	if rec, ok := recs.GetByID(ref); ok {
		return rec, nil
	}

	var matches []models.CheckinRecord
	for _, rec := range recs.GetAll() {
		if strings.HasPrefix(rec.ID, ref) {
			matches = append(matches, rec)
		}
	}
	switch len(matches) {
	case 0:
		return models.CheckinRecord{}, fmt.Errorf("check-in %q not found", ref)
	case 1:
		return matches[0], nil
	default:
		return models.CheckinRecord{}, fmt.Errorf("id prefix %q is ambiguous (%d matches)", ref, len(matches))
	}
}

// ShortID is the id prefix shown in listings
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
