package audit

import (
	"context"
	stderrors "errors"
	"io/fs"

	"github.com/clawaudit/clawaudit/internal/security"
)

// Required permission bits.
const (
	SecretFileMode fs.FileMode = 0o600
	StateDirMode   fs.FileMode = 0o700
)

// CredentialPermissions checks the modes of the credential files and the
// state directory, and looks for credentials committed to the config file.
type CredentialPermissions struct{}

// Name implements Check.
func (CredentialPermissions) Name() string { return "Credentials & Permissions" }

// Description implements Describer.
func (CredentialPermissions) Description() string {
	return "modes of the secrets file, config file and state directory; keys in config"
}

// Evaluate implements Check.
func (CredentialPermissions) Evaluate(_ context.Context, in Input, rec *Recorder) {
	checkMode(in, rec, in.Paths.SecretsFile, "Secrets file", SecretFileMode, Fail)
	checkMode(in, rec, in.Paths.ConfigFile, "Config file", SecretFileMode, Fail)
	checkMode(in, rec, in.Paths.StateDir, "State directory", StateDirMode, Warn)

	data, err := configContent(in)
	if err != nil {
		rec.Warn("Unable to read %s for credential scanning", in.Paths.ConfigFile)
		return
	}
	if matches := scanner(in).ScanBytes(data); len(matches) > 0 {
		rec.Warn("Config file contains credential-shaped values (%s); move them to %s",
			security.Summary(matches), in.Paths.SecretsFile)
		return
	}
	rec.Pass("No credential-shaped values in config file")
}

// checkMode requires an exact mode match. Deviation records sev.
func checkMode(in Input, rec *Recorder, path, label string, want fs.FileMode, sev Severity) {
	mode, err := in.Host.FileMode(path)
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		rec.Note("%s not found: %s", label, path)
	case err != nil:
		rec.Warn("Unable to read permissions of %s", path)
	case mode != want:
		rec.Record(sev, "%s %s has mode %04o (required %04o)", label, path, uint32(mode), uint32(want))
	default:
		rec.Pass("%s %s has mode %04o", label, path, uint32(mode))
	}
}

// configContent returns the bytes the config snapshot was parsed from, so
// content checks agree with the values the other checks read. Snapshots
// built without source bytes fall back to the file on the host.
func configContent(in Input) ([]byte, error) {
	if data := in.Config.Bytes(); data != nil {
		return data, nil
	}
	return in.Host.ReadFile(in.Paths.ConfigFile)
}

func scanner(in Input) *security.SecretScanner {
	if in.Scanner != nil {
		return in.Scanner
	}
	return security.NewSecretScanner()
}
