package hints

import (
	"slices"

	"github.com/alnah/go-paperscan/internal/fileutil"
)

// Runtime holds the environment signals that shape how Chrome is launched
// and what to suggest when it fails.
type Runtime struct {
	CI            bool
	Container     bool
	ContainerHint string // signal that revealed the container
	NoSandbox     bool   // ROD_NO_SANDBOX=1
	BrowserBin    string // ROD_BROWSER_BIN
}

var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// dockerEnvFile is created by Docker at the root of every container.
var dockerEnvFile = "/.dockerenv"

// Detect reads the runtime signals through getenv, usually os.Getenv.
func Detect(getenv func(string) string) Runtime {
	rt := Runtime{
		NoSandbox:  getenv("ROD_NO_SANDBOX") == "1",
		BrowserBin: getenv("ROD_BROWSER_BIN"),
		CI: slices.ContainsFunc(ciVars, func(name string) bool {
			return getenv(name) != ""
		}),
	}
	rt.Container, rt.ContainerHint = detectContainer(getenv)
	return rt
}

// SandboxUnsafe reports whether Chrome's sandbox will likely fail to start
// and nobody has turned it off.
func (rt Runtime) SandboxUnsafe() bool {
	return (rt.CI || rt.Container) && !rt.NoSandbox
}

// detectContainer checks the explicit override first, then Docker, then
// Podman and systemd-nspawn, then Kubernetes.
func detectContainer(getenv func(string) string) (bool, string) {
	switch {
	case getenv("PAPERSCAN_CONTAINER") == "1":
		return true, "PAPERSCAN_CONTAINER=1"
	case fileutil.FileExists(dockerEnvFile):
		return true, dockerEnvFile
	case getenv("container") != "":
		return true, "container=" + getenv("container")
	case getenv("KUBERNETES_SERVICE_HOST") != "":
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}
