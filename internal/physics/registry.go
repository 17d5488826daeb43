package physics

import (
	"fmt"
	"sort"

	"github.com/san-kum/attractor/internal/dynamo"
)

var systems = map[string]func(dynamo.Params) dynamo.System{
	"lorenz":  func(p dynamo.Params) dynamo.System { return FromParams(p) },
	"rossler": func(dynamo.Params) dynamo.System { return NewRossler() },
}

// New returns the named system. Lorenz takes its coefficients from p;
// Rossler uses its textbook defaults.
func New(name string, p dynamo.Params) (dynamo.System, error) {
	fn, ok := systems[name]
	if !ok {
		return nil, fmt.Errorf("unknown system: %s", name)
	}
	return fn(p), nil
}

// Names lists the registered systems in sorted order.
func Names() []string {
	names := make([]string, 0, len(systems))
	for n := range systems {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
