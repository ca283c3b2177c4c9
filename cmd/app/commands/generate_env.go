package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"unicode"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/allisson/configd/internal/fsutil"
	configUseCase "github.com/allisson/configd/internal/serviceconfig/usecase"
)

// RunGenerateEnv flattens the document of service into KEY=value lines and
// writes them to output. Nested keys are joined with "_" and upper-cased, so
// service.port becomes SERVICE_PORT. Sequences are written as compact JSON and
// nulls as empty values. A non-empty runtime appends TARGET_RUNTIME=<runtime>.
func RunGenerateEnv(
	ctx context.Context,
	configUseCase configUseCase.ConfigUseCase,
	logger *slog.Logger,
	writer io.Writer,
	service string,
	output string,
	runtime string,
) error {
	document, err := configUseCase.GetConfig(ctx, service)
	if err != nil {
		return fmt.Errorf("failed to read config of %s: %w", service, err)
	}

	root, ok := document.(*orderedmap.OrderedMap[string, any])
	if !ok {
		return fmt.Errorf("config of %s is not a mapping", service)
	}

	var lines []string
	if err := flattenEnv(root, "", &lines); err != nil {
		return err
	}
	if runtime != "" {
		lines = append(lines, "TARGET_RUNTIME="+runtime)
	}

	var data []byte
	if len(lines) > 0 {
		data = []byte(strings.Join(lines, "\n") + "\n")
	}
	if err := fsutil.WriteFileAtomic(output, data, 0o644, 0o755); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	logger.Debug("generated env file",
		slog.String("service", service),
		slog.String("output", output),
		slog.Int("variables", len(lines)),
	)

	_, _ = fmt.Fprintf(writer, "Generated %s from %s\n", output, service)
	return nil
}

func flattenEnv(m *orderedmap.OrderedMap[string, any], prefix string, lines *[]string) error {
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		key := envKey(pair.Key)
		if prefix != "" {
			key = prefix + "_" + key
		}

		if nested, ok := pair.Value.(*orderedmap.OrderedMap[string, any]); ok {
			if err := flattenEnv(nested, key, lines); err != nil {
				return err
			}
			continue
		}

		value, err := envValue(pair.Value)
		if err != nil {
			return fmt.Errorf("failed to format %s: %w", key, err)
		}
		*lines = append(*lines, key+"="+value)
	}
	return nil
}

// envKey upper-cases a key segment and replaces anything but letters and
// digits with "_".
func envKey(segment string) string {
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return unicode.ToUpper(r)
		}
		return '_'
	}, segment)
}

func envValue(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return quoteEnvString(val), nil
	case bool:
		return strconv.FormatBool(val), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case int, uint64, json.Number:
		return fmt.Sprint(val), nil
	default:
		out, err := json.Marshal(val)
		if err != nil {
			return "", err
		}
		return quoteEnvString(string(out)), nil
	}
}

// quoteEnvString double quotes values that a dotenv reader would not read back
// verbatim. "$" is escaped so the reader does not expand it.
func quoteEnvString(s string) string {
	if s != strings.TrimSpace(s) || strings.ContainsAny(s, "\n\r\"'#$\\") {
		return strings.ReplaceAll(strconv.Quote(s), "$", `\$`)
	}
	return s
}
