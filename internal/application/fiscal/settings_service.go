package fiscal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/comunidad/backend/internal/domain/fiscal"
	"github.com/comunidad/backend/internal/domain/shared"
	"github.com/comunidad/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ObjectStorageService defines the interface for object storage operations.
// It is implemented by the infrastructure layer (S3 or any compatible backend).
type ObjectStorageService interface {
	// GenerateUploadURL generates a presigned URL for uploading a file
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL generates a presigned URL for downloading a file
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks if an object exists in storage
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// allowed logo content types mapped to their object key extension
var logoExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

const logoURLExpiry = 15 * time.Minute

// SettingsService manages the community's fiscal configuration singleton
type SettingsService struct {
	settingsRepo fiscal.Repository
	storage      ObjectStorageService
	logger       *zap.Logger
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(settingsRepo fiscal.Repository, storage ObjectStorageService, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		storage:      storage,
		logger:       logger,
	}
}

// Get returns the current fiscal settings, creating the default row on
// first access.
func (s *SettingsService) Get(ctx context.Context) (*SettingsDTO, error) {
	settings, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	dto := ToSettingsDTO(settings)
	return &dto, nil
}

// Update applies the non-nil fields of the request to the settings
func (s *SettingsService) Update(ctx context.Context, req UpdateSettingsRequest) (*SettingsDTO, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "fiscal", "update_settings")
	defer span.End()

	settings, err := s.load(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if req.BusinessName != nil || req.RIF != nil || req.Address != nil {
		name := settings.BusinessName
		rif := settings.RIF
		address := settings.Address
		if req.BusinessName != nil {
			name = *req.BusinessName
		}
		if req.RIF != nil {
			rif = *req.RIF
		}
		if req.Address != nil {
			address = *req.Address
		}
		if err := settings.UpdateBusiness(name, rif, address); err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
	}

	if req.InvoicePrefix != nil {
		if err := settings.SetInvoicePrefix(*req.InvoicePrefix); err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
	}

	if req.IVARate != nil {
		if err := settings.SetIVARate(*req.IVARate); err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
	}

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	s.logger.Info("Fiscal settings updated")

	dto := ToSettingsDTO(settings)
	return &dto, nil
}

// NextInvoiceNumber consumes and returns the next invoice number. The
// counter only advances when the settings save succeeds.
func (s *SettingsService) NextInvoiceNumber(ctx context.Context) (string, error) {
	settings, err := s.load(ctx)
	if err != nil {
		return "", err
	}

	number := settings.ConsumeInvoiceNumber()

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return "", fmt.Errorf("failed to save settings: %w", err)
	}

	return number, nil
}

// PrepareLogoUpload returns a presigned URL the caller PUTs the logo to.
// ConfirmLogoUpload must be called once the upload finishes.
func (s *SettingsService) PrepareLogoUpload(ctx context.Context, contentType string) (*LogoUploadResult, error) {
	ext, ok := logoExtensions[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		return nil, shared.NewDomainError("INVALID_CONTENT_TYPE", "Logo must be a PNG, JPEG or WebP image")
	}

	objectKey := fmt.Sprintf("fiscal/logo/%s%s", uuid.New().String(), ext)

	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, objectKey, contentType, logoURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate upload URL: %w", err)
	}

	return &LogoUploadResult{
		UploadURL: uploadURL,
		ObjectKey: objectKey,
		ExpiresAt: expiresAt,
	}, nil
}

// ConfirmLogoUpload verifies the object landed in storage and records it
// as the current logo. A previously stored logo is removed.
func (s *SettingsService) ConfirmLogoUpload(ctx context.Context, objectKey string) (*SettingsDTO, error) {
	if !strings.HasPrefix(objectKey, "fiscal/logo/") {
		return nil, shared.NewDomainError("INVALID_OBJECT_KEY", "Object key does not belong to the logo folder")
	}

	exists, err := s.storage.ObjectExists(ctx, objectKey)
	if err != nil {
		return nil, fmt.Errorf("failed to check uploaded logo: %w", err)
	}
	if !exists {
		return nil, shared.NewDomainError("UPLOAD_NOT_FOUND", "Logo upload was not completed")
	}

	settings, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	previous := settings.LogoObjectKey
	settings.SetLogo(objectKey)

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	if previous != "" && previous != objectKey {
		if err := s.storage.DeleteObject(ctx, previous); err != nil {
			s.logger.Warn("Failed to delete previous logo", zap.String("object_key", previous), zap.Error(err))
		}
	}

	s.logger.Info("Fiscal logo updated", zap.String("object_key", objectKey))

	dto := ToSettingsDTO(settings)
	return &dto, nil
}

// GetLogoURL returns a presigned download URL for the stored logo
func (s *SettingsService) GetLogoURL(ctx context.Context) (*LogoDownloadResult, error) {
	settings, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if settings.LogoObjectKey == "" {
		return nil, shared.NewDomainError("NOT_FOUND", "No logo has been uploaded")
	}

	downloadURL, expiresAt, err := s.storage.GenerateDownloadURL(ctx, settings.LogoObjectKey, logoURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate download URL: %w", err)
	}

	return &LogoDownloadResult{
		DownloadURL: downloadURL,
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *SettingsService) load(ctx context.Context) (*fiscal.Settings, error) {
	settings, err := s.settingsRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if settings == nil {
		settings = fiscal.DefaultSettings()
	}
	return settings, nil
}
