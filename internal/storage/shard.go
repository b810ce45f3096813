package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"path"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"serwer-tabel/internal/models"
)

var ErrInvalidFilename = errors.New("invalid file name")

var (
	unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)
	windowsDeviceNames  = map[string]bool{
		"CON": true, "PRN": true, "AUX": true, "NUL": true,
		"COM1": true, "COM2": true, "COM3": true, "COM4": true,
		"LPT1": true, "LPT2": true, "LPT3": true,
	}
)

// SanitizeFilename reduces an uploaded name to a flat ASCII name that is
// safe to use as the last element of a storage key. It returns "" when
// nothing usable is left.
func SanitizeFilename(name string) string {
	decomposed := norm.NFKD.String(name)

	var b strings.Builder
	for _, r := range decomposed {
		if r < 0x80 {
			b.WriteRune(r)
		}
	}
	ascii := strings.NewReplacer("/", " ", `\`, " ").Replace(b.String())

	joined := strings.Join(strings.Fields(ascii), "_")
	clean := strings.Trim(unsafeFilenameChars.ReplaceAllString(joined, ""), "._")

	if clean != "" && windowsDeviceNames[strings.ToUpper(strings.Split(clean, ".")[0])] {
		clean = "_" + clean
	}
	return clean
}

// Digest is the lowercase hex sha256 of s.
func Digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// ShardDir returns the slash-separated directory, relative to the storage
// root, that holds filename for the given owner and scope:
//
//	private/<sha256(owner)>/<h[0:2]>/<h[2:4]>
//	public/<h[0:2]>/<h[2:4]>
//
// where h is the digest of the sanitized filename. Two hex levels bound the
// fan-out at 256x256 directories per scope.
func ShardDir(owner string, visibility models.Visibility, filename string) (string, error) {
	clean := SanitizeFilename(filename)
	if clean == "" {
		return "", ErrInvalidFilename
	}
	h := Digest(clean)

	switch visibility {
	case models.VisibilityPrivate:
		if owner == "" {
			return "", errors.New("private storage requires an owner")
		}
		return path.Join("private", Digest(owner), h[0:2], h[2:4]), nil
	case models.VisibilityPublic:
		return path.Join("public", h[0:2], h[2:4]), nil
	default:
		return "", errors.New("unknown visibility " + string(visibility))
	}
}

// ObjectKey is ShardDir plus the sanitized filename.
func ObjectKey(owner string, visibility models.Visibility, filename string) (string, error) {
	dir, err := ShardDir(owner, visibility, filename)
	if err != nil {
		return "", err
	}
	return path.Join(dir, SanitizeFilename(filename)), nil
}

func validKey(key string) bool {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, `\`) {
		return false
	}
	if path.Clean(key) != key {
		return false
	}
	for _, part := range strings.Split(key, "/") {
		if part == ".." {
			return false
		}
	}
	return strings.HasPrefix(key, "private/") || strings.HasPrefix(key, "public/")
}
