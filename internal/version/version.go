package version

import "fmt"

// Заполняются линкером: -ldflags "-X rogue-server/internal/version.BuildDate=..."
var (
	BuildDate   string // YYYY-MM-DD (UTC)
	BuildCommit string
	BuildBranch string
)

// VersionInfo describes the build metadata in structured form.
type VersionInfo struct {
	BuildDate string `json:"buildDate"`
	Commit    string `json:"commit"`
	Branch    string `json:"branch"`
}

func Info() VersionInfo {
	return VersionInfo{
		BuildDate: orDev(BuildDate),
		Commit:    orDev(BuildCommit),
		Branch:    orDev(BuildBranch),
	}
}

func String() string {
	i := Info()
	return fmt.Sprintf("rogue-server build %s (%s@%s)", i.BuildDate, i.Branch, i.Commit)
}

func orDev(s string) string {
	if s == "" {
		return "dev"
	}
	return s
}
