package ioctl

import (
	"fmt"
	"reflect"

	"golang.org/x/sys/unix"
)

// Mode is the IOCTL mode.
type Mode uint8

// Modes
const (
	None Mode = iota
	Write
	Read
)

// Command to be sent over ioctl.
type Command uintptr

func (c Command) String() string {
	var (
		mode = Mode(c >> 30 & 0x03)
		size = c >> 16 & 0x3fff
		cmd  = c & 0xffff
		str  string
	)
	if mode&Write > 0 {
		str += " write"
	}
	if mode&Read > 0 {
		str += " read "
	}
	return fmt.Sprintf("ioctl%s (%d bytes) 0x%04x", str, size, uintptr(cmd))
}

// Error is a failed ioctl call. It unwraps to the [unix.Errno] so callers can
// match it against fs.ErrNotExist, fs.ErrPermission and friends.
type Error struct {
	Command Command
	Errno   unix.Errno
}

func (err *Error) Error() string {
	return fmt.Sprintf("%s failed: %v", err.Command, err.Errno)
}

func (err *Error) Unwrap() error {
	return err.Errno
}

// Do executes the ioctl call with a pointer argument.
func Do(fd uintptr, command Command, ptr interface{}) error {
	var p uintptr
	if ptr != nil {
		p = reflect.ValueOf(ptr).Pointer()
	}
	return Call(fd, uintptr(command), p)
}

// Call does a plain ioctl system call.
func Call(fd, command, arg uintptr) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, command, arg)
	if errno != 0 {
		return &Error{Command: Command(command), Errno: errno}
	}
	return nil
}

// Encode an ioctl command.
func Encode(mode Mode, size uint16, cmd uintptr) Command {
	return Command(mode)<<30 | Command(size)<<16 | Command(cmd)
}

// Pointer to a value.
func Pointer(mode Mode, ref interface{}, cmd uintptr) Command {
	size := uint16(reflect.TypeOf(ref).Elem().Size())
	return Encode(mode, size, cmd)
}
