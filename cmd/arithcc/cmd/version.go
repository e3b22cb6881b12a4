package cmd

import (
	"fmt"
	"runtime"
)

var (
	Version   = "0.1.0"
	GitCommit = "development"
	BuildDate = "unknown"
)

// versionTemplate is the --version output.
func versionTemplate() string {
	return fmt.Sprintf(`{{.Name}} v{{.Version}}
  Git Commit: %s
  Build Date: %s
  Go Version: %s
  OS/Arch:    %s/%s
`, GitCommit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
