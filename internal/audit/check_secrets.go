package audit

import (
	"context"
	"path/filepath"

	"github.com/clawaudit/clawaudit/internal/security"
)

// SecretScanning looks for provider credentials in the config file and the
// files next to it. The dedicated secrets file is the one place they belong.
type SecretScanning struct{}

// Name implements Check.
func (SecretScanning) Name() string { return "Secret Scanning" }

// Description implements Describer.
func (SecretScanning) Description() string {
	return "provider keys in the config file and top-level state directory files"
}

// Evaluate implements Check.
func (SecretScanning) Evaluate(_ context.Context, in Input, rec *Recorder) {
	clean := true
	targets, err := scanTargets(in)
	if err != nil {
		rec.Warn("Unable to list %s for secret scanning", in.Paths.StateDir)
		clean = false
	}

	s := scanner(in)
	secretsName := filepath.Base(in.Paths.SecretsFile)
	for _, path := range targets {
		var data []byte
		if path == in.Paths.ConfigFile {
			data, err = configContent(in)
		} else {
			data, err = in.Host.ReadFile(path)
		}
		if err != nil {
			rec.Warn("Unable to read %s for secret scanning", path)
			clean = false
			continue
		}
		if matches := s.ScanBytes(data); len(matches) > 0 {
			rec.Warn("%s contains credentials outside %s: %s", path, secretsName, security.Summary(matches))
			clean = false
		}
	}

	if clean {
		rec.Pass("No credentials found outside %s", secretsName)
	}
}

// scanTargets lists the regular files of the state directory in name order,
// followed by the config file when it lives elsewhere. The secrets file is
// never a target. The config file is included even when the directory
// cannot be listed.
func scanTargets(in Input) ([]string, error) {
	var targets []string
	seen := map[string]bool{in.Paths.SecretsFile: true}
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			targets = append(targets, path)
		}
	}

	entries, err := in.Host.ReadDir(in.Paths.StateDir)
	for _, e := range entries {
		if e.Regular {
			add(filepath.Join(in.Paths.StateDir, e.Name))
		}
	}
	add(in.Paths.ConfigFile)
	return targets, err
}
