package utils

import (
	"github.com/fatih/color"
)

var blkColor = func(is ...interface{}) string {
	return CanColorize(color.New(color.FgHiCyan).SprintFunc())(is...)
}
var levelColor = func(is ...interface{}) string {
	return CanColorize(color.New(color.FgHiWhite, color.Faint).SprintFunc())(is...)
}

// BlockString colorizes the name of a CFG block.
func BlockString(name string) string {
	return blkColor(name)
}

// LevelString colorizes auxiliary level/number annotations in tree dumps.
func LevelString(str string) string {
	return levelColor(str)
}

// CompareNumeric orders strings treating embedded digit runs as numbers,
// such that "n_9" precedes "n_10". Digit runs that differ only in leading
// zeros are equal, so "n_007" and "n_7" compare as 0.
func CompareNumeric(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ca, cb := a[i], b[j]
		if isDigit(ca) && isDigit(cb) {
			// Compare the two digit runs as numbers.
			si, sj := i, j
			for i < len(a) && isDigit(a[i]) {
				i++
			}
			for j < len(b) && isDigit(b[j]) {
				j++
			}
			da, db := trimZeros(a[si:i]), trimZeros(b[sj:j])
			if len(da) != len(db) {
				if len(da) < len(db) {
					return -1
				}
				return 1
			}
			for k := 0; k < len(da); k++ {
				if da[k] != db[k] {
					if da[k] < db[k] {
						return -1
					}
					return 1
				}
			}
			continue
		}

		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
		i++
		j++
	}

	switch {
	case len(a)-i < len(b)-j:
		return -1
	case len(a)-i > len(b)-j:
		return 1
	}
	return 0
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func trimZeros(s string) string {
	for len(s) > 1 && s[0] == '0' {
		s = s[1:]
	}
	return s
}
