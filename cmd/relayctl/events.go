package main

import (
	"github.com/cuemby/relay/pkg/event"
)

// pageScope addresses a page by ID, the scoped half of the demo cohort.
type pageScope struct {
	ID string `scope:"id"`
}

// demoSpecs returns the event catalog relayctl ships as a working example:
// a static heartbeat with no scope, and a scoped page-updated notification.
// Both carry a title and description so `relayctl list` has something worth
// printing.
func demoSpecs() ([]event.AnySpec, error) {
	heartbeat, err := heartbeatSpec()
	if err != nil {
		return nil, err
	}
	pageUpdated, err := pageUpdatedSpec()
	if err != nil {
		return nil, err
	}
	return []event.AnySpec{heartbeat, pageUpdated}, nil
}

func heartbeatSpec() (*event.Spec[event.Empty, string, event.Empty, event.Empty], error) {
	return event.NewStaticSpec[string, event.Empty, event.Empty](
		"system.heartbeat",
		"system.heartbeat",
		event.WithTitle("Heartbeat"),
		event.WithDescription("Liveness ping published on a fixed interval by relayctl run."),
	)
}

func pageUpdatedSpec() (*event.Spec[pageScope, string, event.Empty, event.Empty], error) {
	return event.NewSpec[pageScope, string, event.Empty, event.Empty](
		"page.updated",
		"pages.{id}.updated",
		event.WithTitle("Page Updated"),
		event.WithDescription("Fired when a page's content changes."),
	)
}
