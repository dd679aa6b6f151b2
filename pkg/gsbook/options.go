// Package gsbook derives pivot tables from the Event tab of a spreadsheet
// and writes them back as Summary, Standard and Individual tabs.
package gsbook

import (
	"github.com/jethrolam/gsbook/pkg/gsbook/models"
	"github.com/jethrolam/gsbook/pkg/gsbook/transform"
	"go.uber.org/zap"
)

// Options configures an update run.
type Options struct {
	// EventTab is the tab holding the event records. Defaults to "Event".
	EventTab string
	// Tags selects the derived tables to compute and write, in write order.
	// If empty, all of Summary, Standard and Individual are used.
	Tags []string
	// RoundNumbers rounds numeric cells to integers on write.
	RoundNumbers bool
	// DryRun computes the derived tables without writing any tab.
	DryRun bool
	// Logger receives status messages. If nil, logging is disabled.
	Logger *zap.Logger
}

// DefaultOptions returns default update options.
func DefaultOptions() Options {
	return Options{
		EventTab: models.TabEvent,
		Tags:     transform.Tags(),
	}
}

// eventTab returns the event tab title.
func (o Options) eventTab() string {
	if o.EventTab != "" {
		return o.EventTab
	}
	return models.TabEvent
}

// tags returns the derived table tags to produce.
func (o Options) tags() []string {
	if len(o.Tags) > 0 {
		return o.Tags
	}
	return transform.Tags()
}

// logger returns the configured logger or a no-op logger.
func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}
