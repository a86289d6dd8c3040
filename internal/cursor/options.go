package cursor

type saveConfig struct {
	suppressMoveTo bool
	forceOverwrite bool
	attempted      Position
	hasAttempted   bool
}

// SaveOption configures a single Save call.
type SaveOption func(*saveConfig)

// SuppressMoveTo keeps the cursor where it is after the save. Saving a NEW
// record with this option leaves the cursor at NEW over a fresh, empty
// uncommitted record, even though the saved data now lives at the returned
// index.
func SuppressMoveTo() SaveOption {
	return func(c *saveConfig) {
		c.suppressMoveTo = true
	}
}

// ForceOverwrite skips the compare-and-swap and writes unconditionally.
func ForceOverwrite() SaveOption {
	return func(c *saveConfig) {
		c.forceOverwrite = true
	}
}

// Attempted supplies the position the caller was heading for when the save
// was triggered; it is carried as the target of a BeforeOverwrite
// notification so listeners can resume the move after resolving the
// conflict. Without it, BeforeOverwrite carries the cursor's own position.
func Attempted(p Position) SaveOption {
	return func(c *saveConfig) {
		c.attempted = p
		c.hasAttempted = true
	}
}
