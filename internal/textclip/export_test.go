package textclip

// SetUnsupported overrides host tool detection for the duration of a test.
func SetUnsupported(v bool) (restore func()) {
	old := unsupported
	unsupported = func() bool { return v }
	return func() { unsupported = old }
}
