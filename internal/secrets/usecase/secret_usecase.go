package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	validation "github.com/jellydator/validation"

	secretsDomain "github.com/allisson/configd/internal/secrets/domain"
	customValidation "github.com/allisson/configd/internal/validation"
)

// secretUseCase implements SecretUseCase over a whole-document repository.
//
// Every operation reloads the document. Writers hold the lock across the full
// load, mutate and persist cycle so concurrent updates are never lost.
type secretUseCase struct {
	mu     sync.RWMutex
	repo   SecretRepository
	policy secretsDomain.DecryptFailurePolicy
	logger *slog.Logger
}

// NewSecretUseCase creates a SecretUseCase. An empty policy defaults to DecryptFailurePolicyFail.
func NewSecretUseCase(
	repo SecretRepository,
	policy secretsDomain.DecryptFailurePolicy,
	logger *slog.Logger,
) SecretUseCase {
	if policy == "" {
		policy = secretsDomain.DecryptFailurePolicyFail
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &secretUseCase{
		repo:   repo,
		policy: policy,
		logger: logger,
	}
}

func (s *secretUseCase) List(ctx context.Context) (secretsDomain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.load(ctx)
}

func (s *secretUseCase) ListService(ctx context.Context, service string) (map[string]string, error) {
	if err := validateService(service); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Service(service), nil
}

func (s *secretUseCase) Get(ctx context.Context, service, key string) (string, error) {
	if err := validateServiceKey(service, key); err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.load(ctx)
	if err != nil {
		return "", err
	}

	value, ok := doc.Get(service, key)
	if !ok {
		return "", secretsDomain.ErrSecretNotFound
	}
	return value, nil
}

func (s *secretUseCase) Set(ctx context.Context, service, key, value string) error {
	if err := validateServiceKey(service, key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return err
	}

	doc.Set(service, key, value)

	if err := s.repo.Save(ctx, doc); err != nil {
		return err
	}

	s.logger.Info("secret saved", slog.String("service", service), slog.String("key_name", key))
	return nil
}

func (s *secretUseCase) Delete(ctx context.Context, service, key string) error {
	if err := validateServiceKey(service, key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return err
	}

	if !doc.Delete(service, key) {
		return secretsDomain.ErrSecretNotFound
	}

	if err := s.repo.Save(ctx, doc); err != nil {
		return err
	}

	s.logger.Info("secret deleted", slog.String("service", service), slog.String("key_name", key))
	return nil
}

// load applies the decrypt failure policy to the repository result.
func (s *secretUseCase) load(ctx context.Context) (secretsDomain.Document, error) {
	result, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	switch result.State {
	case secretsDomain.LoadStateLoaded:
		return result.Document, nil
	case secretsDomain.LoadStateUnreadable:
		if s.policy == secretsDomain.DecryptFailurePolicyEmpty {
			s.logger.Error("secrets store unreadable, continuing with an empty document",
				slog.Any("error", result.Cause),
			)
			return secretsDomain.NewDocument(), nil
		}
		return nil, fmt.Errorf("%w: %v", secretsDomain.ErrSecretsUnreadable, result.Cause)
	default:
		return nil, fmt.Errorf("unknown load state %s", result.State)
	}
}

func validateService(service string) error {
	err := validation.Validate(service, validation.Required, customValidation.NotBlank)
	if err != nil {
		return customValidation.WrapValidationError(fmt.Errorf("service: %w", err))
	}
	return nil
}

func validateServiceKey(service, key string) error {
	err := validation.Errors{
		"service":  validation.Validate(service, validation.Required, customValidation.NotBlank),
		"key_name": validation.Validate(key, validation.Required, customValidation.NotBlank),
	}.Filter()
	return customValidation.WrapValidationError(err)
}
