// Package repository stores one YAML configuration document per service.
package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/allisson/configd/internal/fsutil"
	configDomain "github.com/allisson/configd/internal/serviceconfig/domain"
)

const (
	servicesDirName = "services"
	documentExt     = ".yaml"

	documentFilePerm = 0o644
	documentDirPerm  = 0o755
)

// FileDocumentRepository keeps documents as <configDir>/services/<name>.yaml.
type FileDocumentRepository struct {
	configDir   string
	servicesDir string
}

// NewFileDocumentRepository creates a repository rooted at configDir.
func NewFileDocumentRepository(configDir string) *FileDocumentRepository {
	return &FileDocumentRepository{
		configDir:   configDir,
		servicesDir: filepath.Join(configDir, servicesDirName),
	}
}

func (r *FileDocumentRepository) documentPath(service string) (string, error) {
	if err := configDomain.ValidateServiceName(service); err != nil {
		return "", err
	}
	return filepath.Join(r.servicesDir, service+documentExt), nil
}

// Load reads the document of service. An absent file is ErrServiceNotFound.
func (r *FileDocumentRepository) Load(ctx context.Context, service string) (*configDomain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := r.documentPath(service)
	if err != nil {
		return nil, err
	}

	data, exists, err := fsutil.ReadFileIfExists(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config of %s: %w", service, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", configDomain.ErrServiceNotFound, service)
	}

	doc, err := configDomain.ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("config of %s: %w", service, err)
	}
	return doc, nil
}

// Save rewrites the whole document of service.
func (r *FileDocumentRepository) Save(ctx context.Context, service string, doc *configDomain.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := r.documentPath(service)
	if err != nil {
		return err
	}

	data, err := doc.Marshal()
	if err != nil {
		return err
	}

	if err := fsutil.WriteFileAtomic(path, data, documentFilePerm, documentDirPerm); err != nil {
		return fmt.Errorf("failed to write config of %s: %w", service, err)
	}
	return nil
}

// List returns the stored services sorted by name. Files whose names are not
// valid service names are skipped. A missing services directory lists nothing.
func (r *FileDocumentRepository) List(ctx context.Context) ([]configDomain.ServiceInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(r.servicesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []configDomain.ServiceInfo{}, nil
		}
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	services := make([]configDomain.ServiceInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != documentExt {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), documentExt)
		if configDomain.ValidateServiceName(name) != nil {
			continue
		}
		services = append(services, configDomain.ServiceInfo{
			Name:       name,
			ConfigFile: filepath.ToSlash(filepath.Join(servicesDirName, entry.Name())),
		})
	}

	sort.Slice(services, func(i, j int) bool {
		return services[i].Name < services[j].Name
	})
	return services, nil
}

// Ping checks that the services directory is reachable.
func (r *FileDocumentRepository) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := os.Stat(r.servicesDir)
	if err != nil {
		return fmt.Errorf("services directory unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("services directory unavailable: %s is not a directory", r.servicesDir)
	}
	return nil
}
