package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vitalvas/jwsjcs/jsonvalue"
	"github.com/vitalvas/jwsjcs/jwk"
)

// Input formats.
const (
	formatAuto = "auto"
	formatJSON = "json"
	formatYAML = "yaml"
)

// readInput reads the named file, or stdin when args is empty or "-".
func readInput(cmd *cobra.Command, args []string) ([]byte, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, "", fmt.Errorf("failed to read stdin: %w", err)
		}

		return data, "", nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, "", fmt.Errorf("failed to read input: %w", err)
	}

	return data, args[0], nil
}

// parseDocument decodes data as JSON or YAML. In auto mode the file
// extension decides, defaulting to JSON.
func parseDocument(data []byte, name, format string) (jsonvalue.Value, error) {
	if format == "" || format == formatAuto {
		switch strings.ToLower(filepath.Ext(name)) {
		case ".yaml", ".yml":
			format = formatYAML
		default:
			format = formatJSON
		}
	}

	switch format {
	case formatJSON:
		return jsonvalue.Parse(data)
	case formatYAML:
		return jsonvalue.ParseYAML(data)
	default:
		return jsonvalue.Null(), fmt.Errorf("unknown format %q: expected auto, json or yaml", format)
	}
}

// loadKey reads a JWK file. An empty path falls back to the config file key.
func (o *options) loadKey(path string) (*jwk.Key, error) {
	if path == "" && o.config != nil {
		path = o.config.Key
	}

	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key: %w", err)
	}

	key, err := jwk.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load key %s: %w", path, err)
	}

	o.logger.Debug("key loaded", "path", path, "kid", key.KeyID, "alg", key.Algorithm, "public", key.IsPublic())

	return key, nil
}

func writeLine(cmd *cobra.Command, data []byte) error {
	out := cmd.OutOrStdout()

	if _, err := out.Write(data); err != nil {
		return err
	}

	_, err := fmt.Fprintln(out)

	return err
}
