// Package registry maps game mode IDs to factories.
// Modes register themselves in init(), so the CLI, menu and SSH server can
// offer every mode without importing its package directly.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-lander/internal/core"
)

// Game is what the platform drives each frame.
// Implementations hold no terminal state; input arrives as abstract actions
// and output goes into a core.Screen.
type Game interface {
	// ID is the mode key used by the CLI and the scores database
	// (e.g. "lander", "lander_drift").
	ID() string

	// Title is the name shown in menus.
	Title() string

	// Reset starts a fresh session for the given terminal size and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances one presentation frame with the actions collected since
	// the previous frame.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into dst. dst is cleared first.
	Render(dst *core.Screen)

	State() core.GameState
}

// GameInfo describes a registered mode.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new game instance.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a factory under id. It panics on duplicate IDs.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns all registered modes sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates the mode registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
