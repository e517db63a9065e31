package tui

// recordDeletedMsg reports the outcome of a delete.
type recordDeletedMsg struct {
	err error
	id  int64
}

// themeSavedMsg reports whether the theme preference was stored.
type themeSavedMsg struct {
	err   error
	theme string
}

// clearStatusMsg removes a status message once it has been shown long enough.
type clearStatusMsg struct {
	seq int
}
