package workflows

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/envkeep/internal/audit"
	"github.com/PolarWolf314/envkeep/internal/envfile"
	kerrors "github.com/PolarWolf314/envkeep/internal/errors"
)

// ExportFormat selects the output encoding of ExportEnv.
type ExportFormat string

const (
	ExportDotenv ExportFormat = "dotenv"
	ExportJSON   ExportFormat = "json"
)

// ExportEnvOptions configures the export workflow.
type ExportEnvOptions struct {
	Target Target

	// Format defaults to ExportDotenv.
	Format ExportFormat

	// Keys limits the export to these variables. Empty exports everything.
	Keys []string

	// OutputPath, when set, receives the output with 0600 permissions.
	OutputPath string
}

// ExportEnvResult contains the outcome of an export operation.
type ExportEnvResult struct {
	// Path is the env file that was read.
	Path string

	// Data is the encoded output.
	Data []byte

	// Count is the number of exported variables.
	Count int

	// OutputPath is where Data was written, if anywhere.
	OutputPath string
}

// ExportEnv encodes an app's variables as dotenv or JSON. JSON output is an
// object whose keys keep file order.
//
// Returns ErrEnvFileNotFound if the app has no env file.
// Returns ErrInvalidFormat for an unknown format.
func ExportEnv(ctx context.Context, ws *Workspace, opts ExportEnvOptions) (*ExportEnvResult, error) {
	format := opts.Format
	if format == "" {
		format = ExportDotenv
	}
	if format != ExportDotenv && format != ExportJSON {
		return nil, fmt.Errorf("%w: %q (expected dotenv or json)", kerrors.ErrInvalidFormat, format)
	}

	appDir, path, err := ws.resolve(opts.Target)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrEnvFileNotFound, path)
	}

	vars, err := envfile.Load(path)
	if err != nil {
		return nil, err
	}
	vars = dedupe(vars)

	if len(opts.Keys) > 0 {
		var selected []envfile.EnvVar
		for _, key := range opts.Keys {
			value, ok := envfile.Get(vars, key)
			if !ok {
				return nil, fmt.Errorf("%w: %s", kerrors.ErrEnvVarNotFound, key)
			}
			selected = envfile.Set(selected, key, value)
		}
		vars = selected
	}

	var data []byte
	switch format {
	case ExportJSON:
		data, err = encodeJSONObject(vars)
		if err != nil {
			return nil, err
		}
	default:
		data = []byte(envfile.Serialize(vars))
		if len(data) > 0 {
			data = append(data, '\n')
		}
	}

	result := &ExportEnvResult{Path: path, Data: data, Count: len(vars)}
	if opts.OutputPath == "" {
		return result, nil
	}

	if err := os.WriteFile(opts.OutputPath, data, 0600); err != nil {
		return nil, fmt.Errorf("writing %s: %w", opts.OutputPath, err)
	}
	result.OutputPath = opts.OutputPath

	entry := audit.NewEntry("env.export")
	entry.App = filepath.Base(appDir)
	entry.OutputPath = opts.OutputPath
	entry.Keys = envfile.Keys(vars)
	entry.Count = len(vars)
	ws.record(entry)

	return result, nil
}

// encodeJSONObject writes vars as an indented JSON object in slice order.
func encodeJSONObject(vars []envfile.EnvVar) ([]byte, error) {
	if len(vars) == 0 {
		return []byte("{}\n"), nil
	}

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, v := range vars {
		key, err := json.Marshal(v.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(v.Value)
		if err != nil {
			return nil, err
		}
		buf.WriteString("  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(value)
		if i < len(vars)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}
