// Released under an MIT license. See LICENSE.

//go:build !(aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris)

package terminal

func width(uintptr) (int, bool) {
	return 0, false
}
