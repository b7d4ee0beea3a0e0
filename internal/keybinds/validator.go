package keybinds

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Issue types
const (
	IssueMissing  = "missing"  // Required action has no key
	IssueConflict = "conflict" // Binding can never fire
	IssueInvalid  = "invalid"  // Config rejected outright
	IssueWarning  = "warning"
)

// ValidationError is one problem found in a set of bindings
type ValidationError struct {
	Type    string
	Context Context
	Key     string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s in context '%s': %s", e.Type, e.Key, e.Context, e.Message)
}

// ValidationResult splits issues into errors, which make the file
// unusable, and warnings
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors returns true if there are any errors
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any warnings
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

func (r *ValidationResult) String() string {
	if !r.HasErrors() && !r.HasWarnings() {
		return "No issues found"
	}

	var sb strings.Builder
	section := func(title string, issues []ValidationError) {
		if len(issues) == 0 {
			return
		}
		fmt.Fprintf(&sb, "%s (%d):\n", title, len(issues))
		for _, issue := range issues {
			fmt.Fprintf(&sb, "  - %s\n", issue.Error())
		}
	}
	section("Errors", r.Errors)
	section("Warnings", r.Warnings)
	return sb.String()
}

// sequenceContexts are matched with MatchMultiKey by the TUI. Every other
// context matches single keys only.
var sequenceContexts = map[Context]bool{
	ContextNormal: true,
	ContextModal:  true,
}

// Validator checks bindings against how the TUI dispatches keys
type Validator struct {
	// reservedKeys should stay on force quit
	reservedKeys map[string]bool
}

// NewValidator creates a new keybinding validator
func NewValidator() *Validator {
	return &Validator{
		reservedKeys: map[string]bool{"ctrl+c": true},
	}
}

// ValidateRegistry collects every issue in registry
func (v *Validator) ValidateRegistry(registry *Registry) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}

	for _, req := range registry.missingActions() {
		result.Errors = append(result.Errors, ValidationError{
			Type:    IssueMissing,
			Context: req.context,
			Key:     string(req.action),
			Message: "required action has no key",
		})
	}
	result.Errors = append(result.Errors, FindConflicts(registry)...)

	v.checkReservedKeys(registry, result)
	v.checkSequences(registry, result)
	v.checkShadowing(registry, result)

	sortIssues(result.Errors)
	sortIssues(result.Warnings)
	return result
}

// ValidateConfig validates config as the TUI would load it: applied over
// the default bindings
func (v *Validator) ValidateConfig(config *Config) *ValidationResult {
	registry := NewDefaultRegistry()
	if err := ApplyConfig(registry, config); err != nil {
		return &ValidationResult{
			Errors: []ValidationError{{Type: IssueInvalid, Message: err.Error()}},
		}
	}
	return v.ValidateRegistry(registry)
}

// FindConflicts returns the bindings the TUI can never dispatch: a lone
// "g" in a sequence context (it always waits for a second key), and keys
// the global force quit claims before any context sees them.
func FindConflicts(registry *Registry) []ValidationError {
	var conflicts []ValidationError

	forceQuit := make(map[string]bool)
	for _, key := range registry.keysFor(ContextGlobal, ActionQuitForce) {
		forceQuit[key] = true
	}

	for context, bindings := range registry.bindings {
		if context == ContextGlobal {
			continue
		}
		for key, action := range bindings {
			switch {
			case sequenceContexts[context] && key == sequenceLead && action != ActionGoToTopPrepare:
				conflicts = append(conflicts, ValidationError{
					Type:    IssueConflict,
					Context: context,
					Key:     key,
					Message: fmt.Sprintf("%s never fires, %q starts a key sequence", action, key),
				})
			case forceQuit[key]:
				conflicts = append(conflicts, ValidationError{
					Type:    IssueConflict,
					Context: context,
					Key:     key,
					Message: fmt.Sprintf("%s never fires, key is taken by global %s", action, ActionQuitForce),
				})
			}
		}
	}

	sortIssues(conflicts)
	return conflicts
}

// checkReservedKeys warns when ctrl+c stops force quitting
func (v *Validator) checkReservedKeys(registry *Registry, result *ValidationResult) {
	for key, action := range registry.bindings[ContextGlobal] {
		if v.reservedKeys[key] && action != ActionQuitForce {
			result.Warnings = append(result.Warnings, ValidationError{
				Type:    IssueWarning,
				Context: ContextGlobal,
				Key:     key,
				Message: "reserved key rebound (may cause issues)",
			})
		}
	}
}

// checkSequences warns about sequences the matcher never collects
func (v *Validator) checkSequences(registry *Registry, result *ValidationResult) {
	for context, bindings := range registry.bindings {
		for key := range bindings {
			if !isSequence(key) {
				continue
			}
			var reason string
			switch {
			case !strings.HasPrefix(key, sequenceLead):
				reason = "multi-key sequence never matches (only g-prefixed sequences are supported)"
			case !sequenceContexts[context]:
				reason = "multi-key sequence never matches in this context"
			default:
				continue
			}
			result.Warnings = append(result.Warnings, ValidationError{
				Type:    IssueWarning,
				Context: context,
				Key:     key,
				Message: reason,
			})
		}
	}
}

// isSequence reports whether key is typed as several keystrokes
func isSequence(key string) bool {
	if strings.Contains(key, "+") || len([]rune(key)) < 2 {
		return false
	}
	switch key {
	case "up", "down", "left", "right", "enter", "esc", "tab", "backspace",
		"delete", "home", "end", "pgup", "pgdown", "space", "insert":
		return false
	}
	// f1 through f12
	if key[0] == 'f' {
		if n, err := strconv.Atoi(key[1:]); err == nil && n >= 1 && n <= 12 {
			return false
		}
	}
	return true
}

// checkShadowing warns when a context hides a global binding. Keys taken
// by force quit are conflicts instead.
func (v *Validator) checkShadowing(registry *Registry, result *ValidationResult) {
	global := registry.bindings[ContextGlobal]
	for context, bindings := range registry.bindings {
		if context == ContextGlobal {
			continue
		}
		for key, action := range bindings {
			globalAction, ok := global[key]
			if !ok || globalAction == action || globalAction == ActionQuitForce {
				continue
			}
			result.Warnings = append(result.Warnings, ValidationError{
				Type:    IssueWarning,
				Context: context,
				Key:     key,
				Message: fmt.Sprintf("shadows global binding (%s -> %s)", globalAction, action),
			})
		}
	}
}

func sortIssues(issues []ValidationError) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Context != issues[j].Context {
			return issues[i].Context < issues[j].Context
		}
		return issues[i].Key < issues[j].Key
	})
}

// ValidateKey rejects empty keys and bare modifiers
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}
	for _, mod := range []string{"ctrl+", "alt+", "shift+", "super+"} {
		if key == mod {
			return fmt.Errorf("modifier without key: %s", key)
		}
	}
	return nil
}

// ValidateAction accepts known actions and "none"
func ValidateAction(actionStr string) error {
	if actionStr == "" {
		return fmt.Errorf("action cannot be empty")
	}
	if actionStr != Unbound && !IsKnownAction(Action(actionStr)) {
		return fmt.Errorf("unknown action: %s", actionStr)
	}
	return nil
}
