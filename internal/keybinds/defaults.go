package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerNormalModeBindings(r)
	registerSearchBindings(r)
	registerTextInputBindings(r)
	registerModalBindings(r)
	registerConfirmBindings(r)

	return r
}

// registerGlobalBindings sets up bindings available in all modes
func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
}

// registerNavigationBindings sets up the list and viewer movement keys
func registerNavigationBindings(r *Registry, context Context) {
	r.RegisterMultiple(context, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(context, []string{"down", "j"}, ActionNavigateDown)
	r.RegisterMultiple(context, []string{"pgup", "ctrl+u"}, ActionPageUp)
	r.RegisterMultiple(context, []string{"pgdown", "ctrl+d"}, ActionPageDown)
	r.Register(context, "g", ActionGoToTopPrepare)
	r.RegisterMultiple(context, []string{"gg", "home"}, ActionGoToTop)
	r.RegisterMultiple(context, []string{"G", "end"}, ActionGoToBottom)
}

// registerNormalModeBindings sets up the file list
func registerNormalModeBindings(r *Registry) {
	registerNavigationBindings(r, ContextNormal)

	r.RegisterMultiple(ContextNormal, []string{"enter", "a"}, ActionApply)
	r.Register(ContextNormal, "p", ActionPreview)
	r.Register(ContextNormal, "d", ActionDeleteFile)
	r.Register(ContextNormal, "r", ActionRefreshFiles)
	r.Register(ContextNormal, "f", ActionSelectFolder)
	r.Register(ContextNormal, "i", ActionImportTemplate)
	r.Register(ContextNormal, "c", ActionClearTemplate)
	r.Register(ContextNormal, "y", ActionCopyPath)

	r.Register(ContextNormal, "/", ActionOpenSearch)
	r.Register(ContextNormal, "n", ActionSearchNext)
	r.Register(ContextNormal, "N", ActionSearchPrev)

	r.Register(ContextNormal, "l", ActionOpenLog)
	r.Register(ContextNormal, "?", ActionOpenHelp)
	r.Register(ContextNormal, "q", ActionQuit)
}

// registerSearchBindings sets up the search prompt
func registerSearchBindings(r *Registry) {
	r.Register(ContextSearch, "enter", ActionTextSubmit)
	r.Register(ContextSearch, "esc", ActionTextCancel)
	r.Register(ContextSearch, "ctrl+v", ActionTextPaste)
}

// registerTextInputBindings sets up the path inputs
func registerTextInputBindings(r *Registry) {
	r.Register(ContextTextInput, "enter", ActionTextSubmit)
	r.Register(ContextTextInput, "esc", ActionTextCancel)
	r.RegisterMultiple(ContextTextInput, []string{"ctrl+v", "shift+insert"}, ActionTextPaste)
}

// registerModalBindings sets up scrollable modals
func registerModalBindings(r *Registry) {
	registerNavigationBindings(r, ContextModal)
	r.RegisterMultiple(ContextModal, []string{"esc", "q"}, ActionCloseModal)
}

// registerConfirmBindings sets up yes/no prompts
func registerConfirmBindings(r *Registry) {
	r.RegisterMultiple(ContextConfirm, []string{"y", "Y"}, ActionConfirm)
	r.RegisterMultiple(ContextConfirm, []string{"n", "N", "esc"}, ActionCancel)
}
