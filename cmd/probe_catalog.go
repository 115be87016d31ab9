package cmd

import (
	"regexp"
	"time"

	"github.com/minhnv203/toolvet/internal/probe"
)

// catalogConfig carries the runtime knobs the catalog bakes into strategies.
type catalogConfig struct {
	Timeout     time.Duration
	SearchRoots []string
}

// defaultSearchRoots are the installation roots walked by filesystem-search
// probes when the config does not override them. Missing roots are skipped,
// so the same catalog works on every platform.
var defaultSearchRoots = []string{
	`C:\Program Files`,
	`C:\Program Files (x86)`,
	`C:\Tools`,
	"/usr/local/bin",
	"/opt",
}

// buildProbeCatalog declares every probe. This is the sole extension point:
// supporting a new tool means adding a declaration here, never touching the
// engine. Probe order is the scan's streamed output order.
func buildProbeCatalog(cfg catalogConfig) []probe.Probe {
	roots := cfg.SearchRoots
	if len(roots) == 0 {
		roots = defaultSearchRoots
	}
	timeout := cfg.Timeout

	exec := probe.ExecStrategy{Timeout: timeout}

	ps := []probe.Probe{
		// Version control
		{Category: "Version Control", Name: "Git", Target: "git", Pattern: regexp.MustCompile(`git version (\S+)`), Strategy: exec},
		{Category: "Version Control", Name: "Git LFS", Target: "git-lfs", Pattern: regexp.MustCompile(`git-lfs/(\S+)`), Strategy: exec},
		{Category: "Version Control", Name: "Subversion", Target: "svn", Pattern: regexp.MustCompile(`svn, version (\S+)`), Strategy: exec},
		{Category: "Version Control", Name: "Mercurial", Target: "hg", Pattern: regexp.MustCompile(`version (\S+?)\)`), Strategy: exec},

		// Languages & runtimes
		{Category: "Languages & Runtimes", Name: "Go", Target: "go", Arg: "version", Pattern: regexp.MustCompile(`go version go(\S+)`), Strategy: exec},
		{Category: "Languages & Runtimes", Name: "Python", Target: "python", Pattern: regexp.MustCompile(`Python (\S+)`), Strategy: exec},
		{Category: "Languages & Runtimes", Name: "Node.js", Target: "node", Strategy: exec},
		{Category: "Languages & Runtimes", Name: "Java", Target: "java", Arg: "-version", Pattern: regexp.MustCompile(`version "([^"]+)"`), Strategy: exec},
		{Category: "Languages & Runtimes", Name: "Ruby", Target: "ruby", Pattern: regexp.MustCompile(`ruby (\S+)`), Strategy: exec},
		{Category: "Languages & Runtimes", Name: "Perl", Target: "perl", Arg: "-v", Pattern: regexp.MustCompile(`\(v(\S+?)\)`), Strategy: exec},
		{Category: "Languages & Runtimes", Name: "PHP", Target: "php", Pattern: regexp.MustCompile(`PHP (\S+)`), Strategy: exec},
		{Category: "Languages & Runtimes", Name: "Rust", Target: "rustc", Pattern: regexp.MustCompile(`rustc (\S+)`), Strategy: exec},
		{Category: "Languages & Runtimes", Name: "Cargo", Target: "cargo", Pattern: regexp.MustCompile(`cargo (\S+)`), Strategy: exec},
		{Category: "Languages & Runtimes", Name: ".NET SDK", Target: "dotnet", Arg: "--version", Strategy: exec},
		{Category: "Languages & Runtimes", Name: "PowerShell 7", Target: "pwsh", Pattern: regexp.MustCompile(`PowerShell (\S+)`), Strategy: exec},
		{Category: "Languages & Runtimes", Name: "Deno", Target: "deno", Pattern: regexp.MustCompile(`deno (\S+)`), Strategy: exec},
		{Category: "Languages & Runtimes", Name: "Bun", Target: "bun", Strategy: exec},

		// Package managers
		{Category: "Package Managers", Name: "pip", Target: "pip",
			Pattern: regexp.MustCompile(`pip (\d+\.\d+(?:\.\d+)?).*\(python (\d+\.\d+)\)`),
			Format:  "pip %s, Python %s", Strategy: exec},
		{Category: "Package Managers", Name: "pipx", Target: "pipx", Strategy: exec},
		{Category: "Package Managers", Name: "Poetry", Target: "poetry", Pattern: regexp.MustCompile(`Poetry \(version (\S+?)\)`), Strategy: exec},
		{Category: "Package Managers", Name: "uv", Target: "uv", Pattern: regexp.MustCompile(`uv (\S+)`), Strategy: exec},
		{Category: "Package Managers", Name: "npm", Target: "npm", Strategy: exec},
		{Category: "Package Managers", Name: "Yarn", Target: "yarn", Strategy: exec},
		{Category: "Package Managers", Name: "pnpm", Target: "pnpm", Strategy: exec},
		{Category: "Package Managers", Name: "Chocolatey", Target: "choco", Strategy: exec},
		{Category: "Package Managers", Name: "winget", Target: "winget", Strategy: exec},

		// Containers & infrastructure-as-code
		{Category: "Containers & IaC", Name: "Docker", Target: "docker", Pattern: regexp.MustCompile(`Docker version (\S+?),`), Strategy: exec},
		{Category: "Containers & IaC", Name: "Docker Compose", Target: "docker", Strategy: probe.DualStrategy{
			Modern:  probe.Variant{Name: "Docker Compose (v2)", Target: "docker", Arg: "compose version"},
			Legacy:  probe.Variant{Name: "docker-compose (v1)", Target: "docker-compose", Arg: "--version"},
			Timeout: timeout,
		}},
		{Category: "Containers & IaC", Name: "Podman", Target: "podman", Pattern: regexp.MustCompile(`podman version (\S+)`), Strategy: exec},
		{Category: "Containers & IaC", Name: "kubectl", Target: "kubectl", Arg: "version --client", Strategy: exec},
		{Category: "Containers & IaC", Name: "Helm", Target: "helm", Arg: "version --short", Strategy: exec},
		{Category: "Containers & IaC", Name: "Terraform", Target: "terraform", Pattern: regexp.MustCompile(`Terraform v(\S+)`), Strategy: exec},
		{Category: "Containers & IaC", Name: "Packer", Target: "packer", Strategy: exec},
		{Category: "Containers & IaC", Name: "Vagrant", Target: "vagrant", Pattern: regexp.MustCompile(`Vagrant (\S+)`), Strategy: exec},
		{Category: "Containers & IaC", Name: "Minikube", Target: "minikube", Arg: "version", Pattern: regexp.MustCompile(`minikube version: v(\S+)`), Strategy: exec},

		// Cloud CLIs
		{Category: "Cloud CLIs", Name: "AWS CLI", Target: "aws", Pattern: regexp.MustCompile(`aws-cli/(\S+)`), Strategy: exec},
		{Category: "Cloud CLIs", Name: "Azure CLI", Target: "az", Pattern: regexp.MustCompile(`azure-cli\s+(\S+)`), Strategy: exec},
		{Category: "Cloud CLIs", Name: "Google Cloud SDK", Target: "gcloud", Pattern: regexp.MustCompile(`Google Cloud SDK (\S+)`), Strategy: exec},

		// Networking & security
		{Category: "Networking & Security", Name: "OpenSSH", Target: "ssh", Arg: "-V",
			Pattern: regexp.MustCompile(`OpenSSH_(?:for_Windows_)?(\d+\.\d+[a-z0-9]*)`),
			Marker:  "OpenSSH", Strategy: exec},
		{Category: "Networking & Security", Name: "curl", Target: "curl", Pattern: regexp.MustCompile(`curl (\S+)`), Strategy: exec},
		{Category: "Networking & Security", Name: "Wget", Target: "wget", Pattern: regexp.MustCompile(`Wget (\S+)`), Strategy: exec},
		{Category: "Networking & Security", Name: "OpenSSL", Target: "openssl", Arg: "version", Pattern: regexp.MustCompile(`OpenSSL (\S+)`), Strategy: exec},
		{Category: "Networking & Security", Name: "GnuPG", Target: "gpg", Pattern: regexp.MustCompile(`gpg \(GnuPG\) (\S+)`), Strategy: exec},
		{Category: "Networking & Security", Name: "Nmap", Target: "nmap", Pattern: regexp.MustCompile(`Nmap version (\S+)`), Strategy: exec},
		{Category: "Networking & Security", Name: "Robocopy", Target: "robocopy", Arg: "/?",
			Pattern: regexp.MustCompile(`Version (\d+(?:\.\d+)+)`),
			Marker:  "ROBOCOPY", Strategy: exec},

		// Build tools
		{Category: "Build Tools", Name: "CMake", Target: "cmake", Pattern: regexp.MustCompile(`cmake version (\S+)`), Strategy: exec},
		{Category: "Build Tools", Name: "Make", Target: "make", Pattern: regexp.MustCompile(`Make (\S+)`), Strategy: exec},
		{Category: "Build Tools", Name: "Ninja", Target: "ninja", Strategy: exec},
		{Category: "Build Tools", Name: "Gradle", Target: "gradle", Pattern: regexp.MustCompile(`Gradle (\S+)`), Strategy: exec},
		{Category: "Build Tools", Name: "Maven", Target: "mvn", Pattern: regexp.MustCompile(`Apache Maven (\S+)`), Strategy: exec},
		{Category: "Build Tools", Name: "MSBuild", Target: "msbuild", Strategy: probe.ChainStrategy{
			exec,
			probe.SearchStrategy{Roots: roots, Filename: "MSBuild.exe", Timeout: timeout},
		}},

		// Archivers & utilities
		{Category: "Utilities", Name: "7-Zip", Target: "7z", Marker: "7-Zip",
			Pattern: regexp.MustCompile(`7-Zip(?:[^\d]*)(\d+\.\d+)`),
			Strategy: probe.ChainStrategy{
				exec,
				probe.RegistryStrategy{
					Keys: []probe.RegistryKey{
						{Root: "HKLM", Path: `SOFTWARE\7-Zip`, Value: "Path"},
						{Root: "HKCU", Path: `SOFTWARE\7-Zip`, Value: "Path"},
					},
					Exe:     "7z.exe",
					Timeout: timeout,
				},
				probe.SearchStrategy{Roots: roots, Filename: "7z.exe", Timeout: timeout},
			}},
		{Category: "Utilities", Name: "jq", Target: "jq", Pattern: regexp.MustCompile(`jq-(\S+)`), Strategy: exec},
		{Category: "Utilities", Name: "FFmpeg", Target: "ffmpeg", Arg: "-version", Pattern: regexp.MustCompile(`ffmpeg version (\S+)`), Strategy: exec},
		{Category: "Utilities", Name: "Pandoc", Target: "pandoc", Pattern: regexp.MustCompile(`pandoc(?:\.exe)? (\S+)`), Strategy: exec},
		{Category: "Utilities", Name: "ripgrep", Target: "rg", Pattern: regexp.MustCompile(`ripgrep (\S+)`), Strategy: exec},

		// Editors & GUI applications. GUI binaries block or open a window
		// when invoked with a version flag, so their versions come from
		// file metadata, never execution.
		{Category: "Editors & GUI", Name: "VS Code", Target: "code", Strategy: exec},
		{Category: "Editors & GUI", Name: "Vim", Target: "vim", Pattern: regexp.MustCompile(`VIM - Vi IMproved (\S+)`), Strategy: exec},
		{Category: "Editors & GUI", Name: "Notepad++", Target: "notepad++.exe", Strategy: probe.MetadataStrategy{
			Paths: []string{
				`C:\Program Files\Notepad++\notepad++.exe`,
				`C:\Program Files (x86)\Notepad++\notepad++.exe`,
			},
		}},
		{Category: "Editors & GUI", Name: "Sublime Text", Target: "sublime_text.exe", Strategy: probe.MetadataStrategy{
			Paths: []string{
				`C:\Program Files\Sublime Text\sublime_text.exe`,
				`C:\Program Files\Sublime Text 3\sublime_text.exe`,
			},
		}},
		{Category: "Editors & GUI", Name: "WinMerge", Target: "WinMergeU.exe", Strategy: probe.MetadataStrategy{
			Paths: []string{
				`C:\Program Files\WinMerge\WinMergeU.exe`,
				`C:\Program Files (x86)\WinMerge\WinMergeU.exe`,
			},
		}},

		// OS optional features. Feature probes are three-state: enabled,
		// disabled, or unanswerable without elevation.
		{Category: "OS Features", Name: "WSL", Target: "Microsoft-Windows-Subsystem-Linux", Strategy: probe.FeatureStrategy{Timeout: timeout}},
		{Category: "OS Features", Name: "Hyper-V", Target: "Microsoft-Hyper-V-All", Strategy: probe.FeatureStrategy{Timeout: timeout}},
		{Category: "OS Features", Name: "Windows Sandbox", Target: "Containers-DisposableClientVM", Strategy: probe.FeatureStrategy{Timeout: timeout}},
		{Category: "OS Features", Name: "Windows Containers", Target: "Containers", Strategy: probe.FeatureStrategy{Timeout: timeout}},
	}
	return ps
}
