package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	cryptoDomain "github.com/allisson/configd/internal/crypto/domain"
	cryptoService "github.com/allisson/configd/internal/crypto/service"
	apperrors "github.com/allisson/configd/internal/errors"
	secretsDomain "github.com/allisson/configd/internal/secrets/domain"
	"github.com/allisson/configd/internal/secrets/repository"
	secretsUsecaseMocks "github.com/allisson/configd/internal/secrets/usecase/mocks"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func docWith(entries ...[3]string) secretsDomain.Document {
	doc := secretsDomain.NewDocument()
	for _, e := range entries {
		doc.Set(e[0], e[1], e[2])
	}
	return doc
}

func newFileRepository(t *testing.T) *repository.FileSecretRepository {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)

	mk, err := cryptoDomain.NewMasterKey(key)
	require.NoError(t, err)

	c, err := cryptoService.NewSecretCipher(mk, cryptoDomain.AESGCM, cryptoService.NewAEADManager())
	require.NoError(t, err)

	return repository.NewFileSecretRepository(filepath.Join(t.TempDir(), ".secrets", "api_keys.encrypted"), c)
}

func TestSecretUseCase_List(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := secretsUsecaseMocks.NewMockSecretRepository(t)
		doc := docWith([3]string{"fks_ai", "API_KEY", "sk-1234567890"})
		repo.On("Load", ctx).Return(secretsDomain.Loaded(doc), nil).Once()

		uc := NewSecretUseCase(repo, secretsDomain.DecryptFailurePolicyFail, nil)
		got, err := uc.List(ctx)

		require.NoError(t, err)
		assert.Equal(t, doc, got)
	})

	t.Run("Error_RepositoryFailure", func(t *testing.T) {
		repo := secretsUsecaseMocks.NewMockSecretRepository(t)
		repo.On("Load", ctx).Return(secretsDomain.LoadResult{}, errors.New("permission denied")).Once()

		uc := NewSecretUseCase(repo, secretsDomain.DecryptFailurePolicyFail, nil)
		_, err := uc.List(ctx)

		assert.EqualError(t, err, "permission denied")
	})
}

func TestSecretUseCase_ListService(t *testing.T) {
	ctx := context.Background()
	doc := docWith([3]string{"fks_ai", "API_KEY", "sk-1234567890"})

	repo := secretsUsecaseMocks.NewMockSecretRepository(t)
	repo.On("Load", ctx).Return(secretsDomain.Loaded(doc), nil).Twice()
	uc := NewSecretUseCase(repo, "", nil)

	keys, err := uc.ListService(ctx, "fks_ai")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"API_KEY": "sk-1234567890"}, keys)

	keys, err = uc.ListService(ctx, "unknown")
	require.NoError(t, err)
	assert.NotNil(t, keys)
	assert.Empty(t, keys)

	_, err = uc.ListService(ctx, "  ")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestSecretUseCase_Get(t *testing.T) {
	ctx := context.Background()
	doc := docWith([3]string{"fks_ai", "API_KEY", "sk-1234567890"})

	t.Run("Success", func(t *testing.T) {
		repo := secretsUsecaseMocks.NewMockSecretRepository(t)
		repo.On("Load", ctx).Return(secretsDomain.Loaded(doc), nil).Once()

		value, err := NewSecretUseCase(repo, "", nil).Get(ctx, "fks_ai", "API_KEY")
		require.NoError(t, err)
		assert.Equal(t, "sk-1234567890", value)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		repo := secretsUsecaseMocks.NewMockSecretRepository(t)
		repo.On("Load", ctx).Return(secretsDomain.Loaded(doc), nil).Once()

		_, err := NewSecretUseCase(repo, "", nil).Get(ctx, "fks_ai", "MISSING")
		assert.ErrorIs(t, err, secretsDomain.ErrSecretNotFound)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("Error_BlankKey", func(t *testing.T) {
		repo := secretsUsecaseMocks.NewMockSecretRepository(t)

		_, err := NewSecretUseCase(repo, "", nil).Get(ctx, "fks_ai", "")
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestSecretUseCase_Set(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_KeepsOtherEntries", func(t *testing.T) {
		repo := secretsUsecaseMocks.NewMockSecretRepository(t)
		existing := docWith([3]string{"fks_api", "TOKEN", "t"})
		expected := docWith([3]string{"fks_api", "TOKEN", "t"}, [3]string{"fks_ai", "API_KEY", "sk"})

		repo.On("Load", ctx).Return(secretsDomain.Loaded(existing), nil).Once()
		repo.On("Save", ctx, expected).Return(nil).Once()

		err := NewSecretUseCase(repo, "", nil).Set(ctx, "fks_ai", "API_KEY", "sk")
		assert.NoError(t, err)
	})

	t.Run("Success_EmptyValue", func(t *testing.T) {
		repo := secretsUsecaseMocks.NewMockSecretRepository(t)
		repo.On("Load", ctx).Return(secretsDomain.Loaded(nil), nil).Once()
		repo.On("Save", ctx, docWith([3]string{"svc", "EMPTY", ""})).Return(nil).Once()

		assert.NoError(t, NewSecretUseCase(repo, "", nil).Set(ctx, "svc", "EMPTY", ""))
	})

	t.Run("Error_SaveFailure", func(t *testing.T) {
		repo := secretsUsecaseMocks.NewMockSecretRepository(t)
		repo.On("Load", ctx).Return(secretsDomain.Loaded(nil), nil).Once()
		repo.On("Save", ctx, mock.Anything).Return(errors.New("disk full")).Once()

		err := NewSecretUseCase(repo, "", nil).Set(ctx, "svc", "k", "v")
		assert.EqualError(t, err, "disk full")
	})
}

func TestSecretUseCase_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_DropsEmptyService", func(t *testing.T) {
		repo := secretsUsecaseMocks.NewMockSecretRepository(t)
		repo.On("Load", ctx).Return(secretsDomain.Loaded(docWith([3]string{"fks_ai", "API_KEY", "sk"})), nil).Once()
		repo.On("Save", ctx, secretsDomain.NewDocument()).Return(nil).Once()

		assert.NoError(t, NewSecretUseCase(repo, "", nil).Delete(ctx, "fks_ai", "API_KEY"))
	})

	t.Run("Error_AbsentEntryDoesNotRewrite", func(t *testing.T) {
		repo := secretsUsecaseMocks.NewMockSecretRepository(t)
		repo.On("Load", ctx).Return(secretsDomain.Loaded(docWith([3]string{"fks_ai", "API_KEY", "sk"})), nil).Once()

		err := NewSecretUseCase(repo, "", nil).Delete(ctx, "fks_ai", "MISSING")
		assert.ErrorIs(t, err, secretsDomain.ErrSecretNotFound)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestSecretUseCase_DecryptFailurePolicy(t *testing.T) {
	ctx := context.Background()
	cause := cryptoDomain.ErrDecryptionFailed

	t.Run("Fail_ReadsReturnUnavailable", func(t *testing.T) {
		repo := secretsUsecaseMocks.NewMockSecretRepository(t)
		repo.On("Load", ctx).Return(secretsDomain.Unreadable(cause), nil).Once()

		_, err := NewSecretUseCase(repo, secretsDomain.DecryptFailurePolicyFail, nil).List(ctx)
		assert.ErrorIs(t, err, secretsDomain.ErrSecretsUnreadable)
		assert.ErrorIs(t, err, apperrors.ErrUnavailable)
	})

	t.Run("Fail_WritesNeverOverwriteBlob", func(t *testing.T) {
		repo := secretsUsecaseMocks.NewMockSecretRepository(t)
		repo.On("Load", ctx).Return(secretsDomain.Unreadable(cause), nil).Twice()

		uc := NewSecretUseCase(repo, secretsDomain.DecryptFailurePolicyFail, nil)
		assert.ErrorIs(t, uc.Set(ctx, "svc", "k", "v"), secretsDomain.ErrSecretsUnreadable)
		assert.ErrorIs(t, uc.Delete(ctx, "svc", "k"), secretsDomain.ErrSecretsUnreadable)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("Empty_TreatsBlobAsEmpty", func(t *testing.T) {
		repo := secretsUsecaseMocks.NewMockSecretRepository(t)
		repo.On("Load", ctx).Return(secretsDomain.Unreadable(cause), nil).Twice()
		repo.On("Save", ctx, docWith([3]string{"svc", "k", "v"})).Return(nil).Once()

		uc := NewSecretUseCase(repo, secretsDomain.DecryptFailurePolicyEmpty, nil)

		doc, err := uc.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, doc)

		assert.NoError(t, uc.Set(ctx, "svc", "k", "v"))
	})
}

func TestSecretUseCase_Scenario(t *testing.T) {
	ctx := context.Background()
	uc := NewSecretUseCase(newFileRepository(t), "", nil)

	require.NoError(t, uc.Set(ctx, "fks_ai", "API_KEY", "sk-1234567890"))

	keys, err := uc.ListService(ctx, "fks_ai")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"API_KEY": "sk-1***7890"}, secretsDomain.MaskService(keys))

	value, err := uc.Get(ctx, "fks_ai", "API_KEY")
	require.NoError(t, err)
	assert.Equal(t, "sk-1234567890", value)

	require.NoError(t, uc.Delete(ctx, "fks_ai", "API_KEY"))

	doc, err := uc.List(ctx)
	require.NoError(t, err)
	assert.NotContains(t, doc, "fks_ai")

	assert.ErrorIs(t, uc.Delete(ctx, "fks_ai", "API_KEY"), secretsDomain.ErrSecretNotFound)
}

func TestSecretUseCase_ConcurrentSets(t *testing.T) {
	ctx := context.Background()
	uc := NewSecretUseCase(newFileRepository(t), "", nil)

	const writers = 20
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, uc.Set(ctx, "svc", fmt.Sprintf("KEY_%02d", i), fmt.Sprintf("value-%d", i)))
		}(i)
	}
	wg.Wait()

	keys, err := uc.ListService(ctx, "svc")
	require.NoError(t, err)
	assert.Len(t, keys, writers)
	for i := 0; i < writers; i++ {
		assert.Equal(t, fmt.Sprintf("value-%d", i), keys[fmt.Sprintf("KEY_%02d", i)])
	}
}
