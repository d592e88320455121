package processor

import (
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// namer hands out "<field>_<unix-ms>" bases. Stamps only move forward, so
// two uploads in the same millisecond still get distinct names.
type namer struct {
	now  func() time.Time
	last atomic.Int64
}

func newNamer() *namer {
	return &namer{now: time.Now}
}

func (n *namer) base(field string) string {
	for {
		last := n.last.Load()

		ms := n.now().UnixMilli()
		if ms <= last {
			ms = last + 1
		}

		if n.last.CompareAndSwap(last, ms) {
			return field + "_" + strconv.FormatInt(ms, 10)
		}
	}
}

var mimeExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
	"image/tiff": ".tiff",
}

func originalExt(filename, mimeType string) string {
	ext := strings.ToLower(filepath.Ext(filename))

	if len(ext) >= 2 && len(ext) <= 6 && isAlnum(ext[1:]) {
		return ext
	}

	if ext, ok := mimeExt[mimeType]; ok {
		return ext
	}

	return ".img"
}

func isAlnum(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// KeyInfo describes a store key written by the pipeline.
type KeyInfo struct {
	Base     string
	Width    int
	Original bool
	Ext      string
}

// ParseKey reports whether key has the shape of a pipeline output for
// field: "<field>_<ms>.<ext>", "<field>_<ms>_<width>.<ext>" or
// "<field>_<ms>_orig.<ext>". Width is 0 for the primary and the original.
func ParseKey(field, key string) (KeyInfo, bool) {
	if field == "" || strings.ContainsAny(key, `/\`) || !strings.HasPrefix(key, field+"_") {
		return KeyInfo{}, false
	}

	rest := key[len(field)+1:]

	dot := strings.LastIndexByte(rest, '.')
	if dot <= 0 {
		return KeyInfo{}, false
	}

	ext := rest[dot+1:]
	if ext == "" || len(ext) > 5 || !isAlnum(ext) {
		return KeyInfo{}, false
	}

	parts := strings.Split(rest[:dot], "_")
	if !isDigits(parts[0]) {
		return KeyInfo{}, false
	}

	info := KeyInfo{Base: field + "_" + parts[0], Ext: ext}

	switch {
	case len(parts) == 1:
	case len(parts) == 2 && parts[1] == "orig":
		info.Original = true
	case len(parts) == 2 && isDigits(parts[1]):
		width, err := strconv.Atoi(parts[1])
		if err != nil || width == 0 {
			return KeyInfo{}, false
		}
		info.Width = width
	default:
		return KeyInfo{}, false
	}

	return info, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
