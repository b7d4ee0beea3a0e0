package keybinds

import (
	"fmt"
	"sort"
	"strings"
)

// sequenceLead starts every multi-key sequence the matcher collects
const sequenceLead = "g"

// Binding is one key of one context
type Binding struct {
	Key     string
	Action  Action
	Context Context
}

// Registry maps keys to actions per context. A key not bound in a context
// falls through to the global context.
type Registry struct {
	bindings map[Context]map[string]Action

	// pending holds the lead key of a sequence per context
	pending map[Context]string
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{
		bindings: make(map[Context]map[string]Action),
		pending:  make(map[Context]string),
	}
}

// Register binds key to action in context, replacing any previous action
func (r *Registry) Register(context Context, key string, action Action) {
	keys, ok := r.bindings[context]
	if !ok {
		keys = make(map[string]Action)
		r.bindings[context] = keys
	}
	keys[key] = action
}

// RegisterMultiple binds every key to the same action
func (r *Registry) RegisterMultiple(context Context, keys []string, action Action) {
	for _, key := range keys {
		r.Register(context, key, action)
	}
}

// Unbind removes key from a context
func (r *Registry) Unbind(context Context, key string) {
	delete(r.bindings[context], key)
}

// UnbindAction removes every key bound to action in a context
func (r *Registry) UnbindAction(context Context, action Action) {
	for key, bound := range r.bindings[context] {
		if bound == action {
			delete(r.bindings[context], key)
		}
	}
}

// Match resolves key in context, then in the global context
func (r *Registry) Match(context Context, key string) (Action, bool) {
	for _, c := range lookupOrder(context) {
		if action, ok := r.bindings[c][key]; ok {
			return action, true
		}
	}
	return "", false
}

// MatchMultiKey resolves key while collecting "g" sequences such as "gg".
// It reports the action, whether it matched, and whether the key only
// started a sequence. When the collected sequence is not bound the key is
// matched on its own, so "g" followed by "esc" still closes a modal.
func (r *Registry) MatchMultiKey(context Context, key string) (Action, bool, bool) {
	if lead, ok := r.pending[context]; ok {
		delete(r.pending, context)
		if action, ok := r.Match(context, lead+key); ok {
			return action, true, false
		}
		if key == sequenceLead {
			r.pending[context] = key
			return "", false, true
		}
		action, ok := r.Match(context, key)
		return action, ok, false
	}

	if key == sequenceLead {
		r.pending[context] = key
		return "", false, true
	}

	action, ok := r.Match(context, key)
	return action, ok, false
}

// CancelSequence drops a half-typed sequence in context. Call it when the
// view changes under the user, so the next key starts fresh.
func (r *Registry) CancelSequence(context Context) {
	delete(r.pending, context)
}

// Pending reports whether context holds a half-typed sequence
func (r *Registry) Pending(context Context) bool {
	_, ok := r.pending[context]
	return ok
}

// GetBinding returns the sorted keys bound to action in context. Global
// keys are returned only when the context binds none.
func (r *Registry) GetBinding(context Context, action Action) []string {
	for _, c := range lookupOrder(context) {
		if keys := r.keysFor(c, action); len(keys) > 0 {
			return keys
		}
	}
	return nil
}

// GetBindingString joins GetBinding for display
func (r *Registry) GetBindingString(context Context, action Action) string {
	keys := r.GetBinding(context, action)
	if len(keys) == 0 {
		return "unbound"
	}
	return strings.Join(keys, ", ")
}

// ListBindings returns the bindings visible in context: its own first,
// then global, each sorted by key
func (r *Registry) ListBindings(context Context) []Binding {
	var out []Binding
	for _, c := range lookupOrder(context) {
		keys := make([]string, 0, len(r.bindings[c]))
		for key := range r.bindings[c] {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			out = append(out, Binding{Key: key, Action: r.bindings[c][key], Context: c})
		}
	}
	return out
}

// requiredActions must keep a key in their context, otherwise the mode
// can be entered but never left
var requiredActions = []requirement{
	{ContextGlobal, ActionQuitForce},
	{ContextSearch, ActionTextCancel},
	{ContextTextInput, ActionTextSubmit},
	{ContextTextInput, ActionTextCancel},
	{ContextModal, ActionCloseModal},
	{ContextConfirm, ActionConfirm},
	{ContextConfirm, ActionCancel},
}

type requirement struct {
	context Context
	action  Action
}

func (r *Registry) missingActions() []requirement {
	var missing []requirement
	for _, req := range requiredActions {
		if len(r.GetBinding(req.context, req.action)) == 0 {
			missing = append(missing, req)
		}
	}
	return missing
}

// Validate reports every required action left without a key
func (r *Registry) Validate() error {
	missing := r.missingActions()
	if len(missing) == 0 {
		return nil
	}
	names := make([]string, len(missing))
	for i, req := range missing {
		names[i] = fmt.Sprintf("%s/%s", req.context, req.action)
	}
	return fmt.Errorf("no key bound for %s", strings.Join(names, ", "))
}

func (r *Registry) keysFor(context Context, action Action) []string {
	var keys []string
	for key, bound := range r.bindings[context] {
		if bound == action {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

func lookupOrder(context Context) []Context {
	if context == ContextGlobal {
		return []Context{ContextGlobal}
	}
	return []Context{context, ContextGlobal}
}
