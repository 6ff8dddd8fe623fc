package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type backupMode int

const (
	backupNone backupMode = iota
	backupSimple
	backupNumbered
	backupExisting
)

// parseBackupMode accepts the GNU version control names.
func parseBackupMode(s string) (backupMode, error) {
	switch s {
	case "", "none", "off":
		return backupNone, nil
	case "simple", "never":
		return backupSimple, nil
	case "numbered", "t":
		return backupNumbered, nil
	case "existing", "nil":
		return backupExisting, nil
	}
	return 0, fmt.Errorf("unknown backup mode %q", s)
}

func (m backupMode) String() string {
	switch m {
	case backupSimple:
		return "simple"
	case backupNumbered:
		return "numbered"
	case backupExisting:
		return "existing"
	}
	return "none"
}

// backupFile moves file out of the way and returns the backup name, ""
// if no backup was made. A missing file needs no backup.
func backupFile(file string, mode backupMode) (string, error) {
	if mode == backupNone {
		return "", nil
	}
	if _, err := os.Stat(file); os.IsNotExist(err) {
		return "", nil
	}
	name, err := backupName(file, mode)
	if err != nil {
		return "", err
	}
	if err := os.Rename(file, name); err != nil {
		return "", err
	}
	return name, nil
}

func backupName(file string, mode backupMode) (string, error) {
	next, err := nextBackup(file)
	if err != nil {
		return "", err
	}
	switch {
	case mode == backupSimple:
		return file + "~", nil
	case mode == backupExisting && next == 0:
		return file + "~", nil
	}
	return file + "~" + strconv.Itoa(next), nil
}

// nextBackup returns one past the highest N of the numbered backups
// file~N, 0 when there are none.
func nextBackup(file string) (int, error) {
	matches, err := filepath.Glob(globEscape(file) + "~*")
	if err != nil {
		return 0, err
	}
	next := 0
	for _, m := range matches {
		digits := strings.TrimPrefix(m, file+"~")
		if digits == "" || strings.TrimLeft(digits, "0123456789") != "" {
			continue
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			continue
		}
		next = max(next, n+1)
	}
	return next, nil
}

func globEscape(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(`*?[\`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
