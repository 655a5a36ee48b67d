package commands

import (
	"fmt"
	"slices"
	"strings"
)

// Registry maps command names and aliases to commands. Commands register
// from init functions, so it is not safe for concurrent mutation.
type Registry struct {
	lookup   map[string]Command
	commands []Command // sorted by Name
}

func NewRegistry() *Registry {
	return &Registry{lookup: make(map[string]Command)}
}

// Register fails without changing the registry when any of the command's
// names is taken.
func (r *Registry) Register(c Command) error {
	keys := commandKeys(c)
	for _, k := range keys {
		if prev, taken := r.lookup[k]; taken {
			return fmt.Errorf("%q is already used by %q", k, prev.Name())
		}
	}
	for _, k := range keys {
		r.lookup[k] = c
	}

	i, _ := slices.BinarySearchFunc(r.commands, c.Name(), func(e Command, name string) int {
		return strings.Compare(e.Name(), name)
	})
	r.commands = slices.Insert(r.commands, i, c)
	return nil
}

// Find resolves a name or alias. Case is ignored.
func (r *Registry) Find(name string) (Command, bool) {
	c, ok := r.lookup[strings.ToLower(name)]
	return c, ok
}

// All lists each command once, ordered by name.
func (r *Registry) All() []Command {
	return slices.Clone(r.commands)
}

func commandKeys(c Command) []string {
	keys := make([]string, 0, 1+len(c.Aliases()))
	for _, n := range append([]string{c.Name()}, c.Aliases()...) {
		keys = append(keys, strings.ToLower(n))
	}
	return keys
}

// DefaultRegistry holds every built-in command.
var DefaultRegistry = NewRegistry()

// Register adds c to DefaultRegistry and panics on a name clash.
func Register(c Command) {
	if err := DefaultRegistry.Register(c); err != nil {
		panic("commands: " + err.Error())
	}
}
