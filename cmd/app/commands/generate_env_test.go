package commands

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	configDomain "github.com/allisson/configd/internal/serviceconfig/domain"
	configMocks "github.com/allisson/configd/internal/serviceconfig/usecase/mocks"
)

func documentValue(t *testing.T, src string) any {
	t.Helper()
	doc, err := configDomain.ParseDocument([]byte(src))
	require.NoError(t, err)
	v, err := doc.Value()
	require.NoError(t, err)
	return v
}

func TestRunGenerateEnv(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	document := `
account:
  size: 150000
  risk-per-trade: 0.01
network:
  master_port: 8015
  sim_latency_ms: ~
vix_gate: 25.5
enabled: true
symbols: [ES, NQ]
motd: " hello # world "
password: p$HOME\x
`

	t.Run("writes flattened variables", func(t *testing.T) {
		mockUseCase := configMocks.NewMockConfigUseCase(t)
		mockUseCase.On("GetConfig", mock.Anything, "fks_sim").Return(documentValue(t, document), nil).Once()

		output := filepath.Join(t.TempDir(), ".env.generated")
		var out bytes.Buffer
		err := RunGenerateEnv(ctx, mockUseCase, logger, &out, "fks_sim", output, "")
		require.NoError(t, err)
		assert.Equal(t, "Generated "+output+" from fks_sim\n", out.String())

		data, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("ACCOUNT_SIZE=150000\nACCOUNT_RISK_PER_TRADE=0.01\n")))
		assert.Contains(t, string(data), "NETWORK_SIM_LATENCY_MS=\n")

		vars, err := godotenv.Read(output)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"ACCOUNT_SIZE":           "150000",
			"ACCOUNT_RISK_PER_TRADE": "0.01",
			"NETWORK_MASTER_PORT":    "8015",
			"NETWORK_SIM_LATENCY_MS": "",
			"VIX_GATE":               "25.5",
			"ENABLED":                "true",
			"SYMBOLS":                `["ES","NQ"]`,
			"MOTD":                   " hello # world ",
			"PASSWORD":               `p$HOME\x`,
		}, vars)
	})

	t.Run("appends target runtime", func(t *testing.T) {
		mockUseCase := configMocks.NewMockConfigUseCase(t)
		mockUseCase.On("GetConfig", mock.Anything, "fks_sim").
			Return(documentValue(t, "port: 8015\n"), nil).Once()

		output := filepath.Join(t.TempDir(), "nested", ".env")
		err := RunGenerateEnv(ctx, mockUseCase, logger, &bytes.Buffer{}, "fks_sim", output, "docker")
		require.NoError(t, err)

		data, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.Equal(t, "PORT=8015\nTARGET_RUNTIME=docker\n", string(data))
	})

	t.Run("service not found", func(t *testing.T) {
		mockUseCase := configMocks.NewMockConfigUseCase(t)
		mockUseCase.On("GetConfig", mock.Anything, "fks_missing").
			Return(nil, configDomain.ErrServiceNotFound).Once()

		output := filepath.Join(t.TempDir(), ".env")
		err := RunGenerateEnv(ctx, mockUseCase, logger, &bytes.Buffer{}, "fks_missing", output, "")
		require.ErrorIs(t, err, configDomain.ErrServiceNotFound)
		assert.NoFileExists(t, output)
	})
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "port", expected: "PORT"},
		{input: "risk-per-trade", expected: "RISK_PER_TRADE"},
		{input: "api.v2", expected: "API_V2"},
		{input: "café", expected: "CAF_"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, envKey(tt.input))
		})
	}
}
