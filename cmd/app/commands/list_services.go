package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/allisson/configd/internal/serviceconfig/http/dto"
	configUseCase "github.com/allisson/configd/internal/serviceconfig/usecase"
)

// RunListServices prints the service documents stored under CONFIG_DIR/services.
// JSON output uses the same shape as GET /api/v1/services.
func RunListServices(
	ctx context.Context,
	configUseCase configUseCase.ConfigUseCase,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	services, err := configUseCase.ListServices(ctx)
	if err != nil {
		return fmt.Errorf("failed to list services: %w", err)
	}

	logger.Debug("listed services", slog.Int("count", len(services)))

	if format == formatJSON {
		return writeJSON(writer, dto.MapToListServicesResponse(services))
	}

	if len(services) == 0 {
		_, _ = fmt.Fprintln(writer, "No services found")
		return nil
	}

	for _, service := range services {
		_, _ = fmt.Fprintf(writer, "%s\t%s\n", service.Name, service.ConfigFile)
	}
	return nil
}
