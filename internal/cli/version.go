package cli

import (
	"runtime/debug"
	"strings"
)

const fallbackVersion = "dev"

// Seam for tests; the binary always reads its own build info.
var readBuildInfo = debug.ReadBuildInfo

// buildVersion resolves what the --version flag prints. Precedence: the
// value baked in at link time, then the module version stamped by
// `go install`, then the short VCS revision, then "dev".
func buildVersion(linked string) string {
	if v := strings.TrimSpace(linked); v != "" && v != fallbackVersion {
		return v
	}

	info, ok := readBuildInfo()
	if !ok || info == nil {
		return fallbackVersion
	}
	if v := strings.TrimSpace(info.Main.Version); v != "" && v != "(devel)" {
		return v
	}
	if rev := vcsStamp(info.Settings); rev != "" {
		return rev
	}
	return fallbackVersion
}

// vcsStamp condenses the embedded VCS settings into a short revision tag,
// suffixed with -dirty when the tree had local modifications.
func vcsStamp(settings []debug.BuildSetting) string {
	values := make(map[string]string, len(settings))
	for _, setting := range settings {
		values[setting.Key] = strings.TrimSpace(setting.Value)
	}
	rev := values["vcs.revision"]
	if rev == "" {
		return ""
	}
	if len(rev) > 12 {
		rev = rev[:12]
	}
	if strings.EqualFold(values["vcs.modified"], "true") {
		rev += "-dirty"
	}
	return rev
}
