// Package guard runs Lua veto hooks for a cursor's cancellable
// notifications.
//
// A guard script defines any of the global functions
//
//	function before_discard(ev)   return true end
//	function before_overwrite(ev) return true end
//	function before_save(ev)      return true end
//
// Each receives a table describing the pending operation (type, position,
// target, the working record and the loaded snapshot) and vetoes it by
// returning false. Any other result, including nil or a script error, lets
// the operation proceed; hooks fail open.
//
// The Lua state is sandboxed: file, OS and code-loading primitives are
// removed before the script runs.
package guard
