// Demonstrates registry misuse patterns: plugin code that registers
// listeners per document build and never removes them. Run it to watch
// registrations accumulate; the tests in this module measure the damage.
package main

import (
	"fmt"

	"github.com/loomdoc/hookline"
)

type buildEvent struct {
	Page string
}

func main() {
	hooks := hookline.New[buildEvent, string]()

	// Anti-pattern: a fresh listener per build, handle discarded.
	for build := 0; build < 1000; build++ {
		hooks.On("page.begin", func(e buildEvent) string {
			return "seen " + e.Page
		})
		hooks.Emit("page.begin", buildEvent{Page: fmt.Sprintf("page-%d.html", build)})

		if build%200 == 0 {
			m := hooks.Metrics()
			fmt.Printf("build %4d: %d registrations, %d listeners fired\n",
				build, m.RegisteredHooks, m.ListenersFired)
		}
	}

	m := hooks.Metrics()
	fmt.Printf("\nfinal: %d leaked registrations after %d emissions\n",
		m.RegisteredHooks, m.Emissions)
	fmt.Println("fix: keep the Hook handle and Remove it, or use Once for per-build listeners")
}
