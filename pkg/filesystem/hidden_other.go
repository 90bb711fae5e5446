//go:build !windows

package filesystem

// setHidden is a no-op: a leading dot already hides a file here.
func setHidden(string) error {
	return nil
}
