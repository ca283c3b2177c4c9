package app

import (
	"fmt"

	configHTTP "github.com/allisson/configd/internal/serviceconfig/http"
	configRepository "github.com/allisson/configd/internal/serviceconfig/repository"
	configUseCase "github.com/allisson/configd/internal/serviceconfig/usecase"
)

// ConfigRepository returns the YAML document repository for service configuration.
func (c *Container) ConfigRepository() (*configRepository.FileDocumentRepository, error) {
	var err error
	c.configRepositoryInit.Do(func() {
		c.configRepository, err = c.initConfigRepository()
		if err != nil {
			c.initErrors["configRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["configRepository"]; exists {
		return nil, storedErr
	}
	return c.configRepository, nil
}

// ConfigUseCase returns the service configuration use case.
func (c *Container) ConfigUseCase() (configUseCase.ConfigUseCase, error) {
	var err error
	c.configUseCaseInit.Do(func() {
		c.configUseCase, err = c.initConfigUseCase()
		if err != nil {
			c.initErrors["configUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["configUseCase"]; exists {
		return nil, storedErr
	}
	return c.configUseCase, nil
}

// ConfigHandler returns the HTTP handler for service configuration.
func (c *Container) ConfigHandler() (*configHTTP.ConfigHandler, error) {
	var err error
	c.configHandlerInit.Do(func() {
		c.configHandler, err = c.initConfigHandler()
		if err != nil {
			c.initErrors["configHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["configHandler"]; exists {
		return nil, storedErr
	}
	return c.configHandler, nil
}

func (c *Container) initConfigRepository() (*configRepository.FileDocumentRepository, error) {
	if err := c.StorageDirs(); err != nil {
		return nil, err
	}
	return configRepository.NewFileDocumentRepository(c.config.ConfigDir), nil
}

func (c *Container) initConfigUseCase() (configUseCase.ConfigUseCase, error) {
	repo, err := c.ConfigRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get config repository for config use case: %w", err)
	}

	baseUseCase := configUseCase.NewConfigUseCase(repo, c.Logger())

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for config use case: %w", err)
		}
		return configUseCase.NewConfigUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initConfigHandler() (*configHTTP.ConfigHandler, error) {
	uc, err := c.ConfigUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get config use case for config handler: %w", err)
	}
	return configHTTP.NewConfigHandler(uc, c.Logger()), nil
}
