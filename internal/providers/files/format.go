package files

import (
	"fmt"
	"io/fs"
	"time"
)

// FormatSize formats a byte count for display. Sizes below 1 KiB are shown
// as integer bytes, below 1 MiB as one-decimal KB, everything else as
// one-decimal MB. There is no GB tier.
func FormatSize(size int64) string {
	switch {
	case size < 1024:
		return fmt.Sprintf("%d B", size)
	case size < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(size)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(size)/(1024*1024))
	}
}

// FormatPermissions renders the classic 10-character symbolic mode string,
// e.g. "-rwxr-xr-x" or "drwxr-xr-x". Setuid, setgid, and sticky overlay
// the execute slots as s/S and t/T, matching strmode(3).
func FormatPermissions(mode fs.FileMode) string {
	var buf [10]byte
	switch {
	case mode.IsDir():
		buf[0] = 'd'
	case mode&fs.ModeSymlink != 0:
		buf[0] = 'l'
	case mode&fs.ModeNamedPipe != 0:
		buf[0] = 'p'
	case mode&fs.ModeSocket != 0:
		buf[0] = 's'
	case mode&fs.ModeCharDevice != 0:
		buf[0] = 'c'
	case mode&fs.ModeDevice != 0:
		buf[0] = 'b'
	default:
		buf[0] = '-'
	}

	const rwx = "rwxrwxrwx"
	perm := mode.Perm()
	for i := 0; i < 9; i++ {
		if perm&(1<<uint(8-i)) != 0 {
			buf[i+1] = rwx[i]
		} else {
			buf[i+1] = '-'
		}
	}

	if mode&fs.ModeSetuid != 0 {
		buf[3] = overlayExec(buf[3], 's', 'S')
	}
	if mode&fs.ModeSetgid != 0 {
		buf[6] = overlayExec(buf[6], 's', 'S')
	}
	if mode&fs.ModeSticky != 0 {
		buf[9] = overlayExec(buf[9], 't', 'T')
	}

	return string(buf[:])
}

// overlayExec picks the lowercase form when the execute bit is set and
// the uppercase form when it is not.
func overlayExec(c, withExec, withoutExec byte) byte {
	if c == 'x' {
		return withExec
	}
	return withoutExec
}

// FormatTimestamp renders a modification time in the local timezone as
// "YYYY-MM-DD HH:MM:SS".
func FormatTimestamp(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}
