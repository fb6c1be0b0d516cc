package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyRoot       = "root"
	KeyFile       = "file"
	KeyLine       = "line"
	KeyLink       = "link"
	KeyTarget     = "target"
	KeyAnchor     = "anchor"
	KeyFiles      = "files"
	KeyLinks      = "links"
	KeyProblems   = "problems"
	KeyDurationMS = "duration_ms"
	KeySubject    = "subject"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Root(p string) slog.Attr         { return slog.String(KeyRoot, p) }
func File(p string) slog.Attr         { return slog.String(KeyFile, p) }
func Line(n int) slog.Attr            { return slog.Int(KeyLine, n) }
func Link(l string) slog.Attr         { return slog.String(KeyLink, l) }
func Target(p string) slog.Attr       { return slog.String(KeyTarget, p) }
func Anchor(a string) slog.Attr       { return slog.String(KeyAnchor, a) }
func Files(n int) slog.Attr           { return slog.Int(KeyFiles, n) }
func Links(n int) slog.Attr           { return slog.Int(KeyLinks, n) }
func Problems(n int) slog.Attr        { return slog.Int(KeyProblems, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Subject(s string) slog.Attr      { return slog.String(KeySubject, s) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
