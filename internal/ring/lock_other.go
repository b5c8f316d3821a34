//go:build !linux

package ring

// LockMemory is a no-op on platforms without mlock-style page pinning.
func (r *Ring) LockMemory() error { return nil }

// UnlockMemory is a no-op on platforms without mlock-style page pinning.
func (r *Ring) UnlockMemory() error { return nil }
