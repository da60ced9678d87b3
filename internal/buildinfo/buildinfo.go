// Package buildinfo holds build identifiers injected with
//
//	-ldflags "-X sparkdraw/internal/buildinfo.Version=v0.1.0 -X sparkdraw/internal/buildinfo.Commit=abc123"
package buildinfo

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns a compact build identifier for window titles and log lines.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	return "dev"
}

// Long returns every known identifier, e.g. "v0.1.0 (abc123, 2026-10-16)".
func Long() string {
	v := Version
	if v == "" {
		v = "dev"
	}
	return v + " (" + orUnknown(Commit) + ", " + orUnknown(Date) + ")"
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
