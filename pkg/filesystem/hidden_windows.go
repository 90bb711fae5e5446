//go:build windows

package filesystem

import (
	"golang.org/x/sys/windows"
)

// setHidden sets the hidden attribute, keeping the other attributes.
func setHidden(name string) error {
	p, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return err
	}
	attrs, err := windows.GetFileAttributes(p)
	if err != nil {
		return err
	}
	return windows.SetFileAttributes(p, attrs|windows.FILE_ATTRIBUTE_HIDDEN)
}
