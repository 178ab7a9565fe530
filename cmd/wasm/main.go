//go:build js && wasm

// Command wasm is the browser side of the search form. Build with
// GOOS=js GOARCH=wasm and serve the result from --assets-dir.
package main

import (
	"github.com/secmon-lab/fieldswitch/pkg/adapter/dom"
	"github.com/secmon-lab/fieldswitch/pkg/domain/model"
	"github.com/secmon-lab/fieldswitch/pkg/switcher"
	"github.com/secmon-lab/fieldswitch/pkg/utils/logging"
)

// payloadID must match the element rendered by the search page template
const payloadID = "property-list"

func main() {
	doc := dom.New()

	doc.OnReady(func() {
		reg, err := doc.Registry(payloadID)
		if err != nil {
			logging.Default().Error("failed to load field registry", "error", err)
			return
		}

		sw, err := switcher.New(reg, model.FallbackFieldID, doc, doc.Selector(model.PropertySelectorID))
		if err != nil {
			logging.Default().Error("failed to create field switcher", "error", err)
			return
		}

		doc.Show(model.PropertySelectorID)
		state := sw.Init()
		if _, err := doc.Bind(sw, model.PropertySelectorID); err != nil {
			logging.Default().Error("failed to bind property selector", "error", err)
			return
		}
		logging.Default().Debug("search field switcher ready",
			"fields", reg.Len(),
			"active", state.Active())
	})

	select {}
}
