package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/classroom-api/internal/dto"
	appErrors "github.com/noah-isme/classroom-api/pkg/errors"
	"github.com/noah-isme/classroom-api/pkg/export"
	"github.com/noah-isme/classroom-api/pkg/validation"
)

type certificateRenderer interface {
	RenderCertificate(c export.Certificate) ([]byte, error)
}

// CertificateService renders badge certificates.
type CertificateService struct {
	renderer  certificateRenderer
	validator *validation.Validator
	logger    *zap.Logger
}

// NewCertificateService constructs the certificate service.
func NewCertificateService(renderer certificateRenderer, validator *validation.Validator, logger *zap.Logger) *CertificateService {
	if validator == nil {
		validator = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CertificateService{renderer: renderer, validator: validator, logger: logger}
}

// Generate renders a certificate named after the student and badge.
func (s *CertificateService) Generate(ctx context.Context, req dto.CertificateRequest) (*Document, error) {
	req.StudentName = strings.TrimSpace(req.StudentName)
	req.BadgeName = strings.TrimSpace(req.BadgeName)
	req.DateAwarded = strings.TrimSpace(req.DateAwarded)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(s.validator, err, "Missing data")
	}
	body, err := s.renderer.RenderCertificate(export.Certificate{
		StudentName: req.StudentName,
		BadgeName:   req.BadgeName,
		DateAwarded: req.DateAwarded,
	})
	if err != nil {
		s.logger.Error("render certificate failed", zap.String("student", req.StudentName), zap.Error(err))
		return nil, appErrors.WrapAs(appErrors.ErrInternal, err, "failed to render certificate")
	}
	return &Document{
		Filename:    fileSafe(req.StudentName) + "_" + fileSafe(req.BadgeName) + ".pdf",
		ContentType: "application/pdf",
		Body:        body,
	}, nil
}

var fileNameReplacer = strings.NewReplacer("/", "-", `\`, "-", `"`, "", "\n", " ", "\r", " ")

func fileSafe(s string) string {
	return fileNameReplacer.Replace(s)
}
