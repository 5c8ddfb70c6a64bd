// Package loader provides the plugin-like feature loading system.
//
// It allows the application to register and initialize features (modules)
// dynamically. Each feature implements the Feature interface, which defines
// its lifecycle hooks and surface registration logic.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router, commands *bot.Router) error
//	}
//
// A feature registers whichever surfaces it serves: HTTP routes on the
// Fiber router, chat commands on the bot router, or both.
//
// # Manager
//
// The Manager struct holds the registry of available features. It handles:
//   - Registration of features via Register()
//   - Initialization and loading of enabled features via LoadAll()
//
// This architecture promotes modularity, allowing features like 'attendance',
// 'dkp' or future modules to be developed and tested in isolation.
package loader
