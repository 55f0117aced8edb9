package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classroom-api/internal/dto"
	appErrors "github.com/noah-isme/classroom-api/pkg/errors"
	"github.com/noah-isme/classroom-api/pkg/export"
)

func TestCertificateServiceGenerate(t *testing.T) {
	svc := NewCertificateService(export.NewPDFExporter(export.PDFOptions{}), nil, nil)

	doc, err := svc.Generate(context.Background(), dto.CertificateRequest{
		StudentName: "Amina",
		BadgeName:   "Reader",
		DateAwarded: "2024-05-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "Amina_Reader.pdf", doc.Filename)
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.True(t, strings.HasPrefix(string(doc.Body), "%PDF"))
}

func TestCertificateServiceMissingField(t *testing.T) {
	svc := NewCertificateService(export.NewPDFExporter(export.PDFOptions{}), nil, nil)

	_, err := svc.Generate(context.Background(), dto.CertificateRequest{StudentName: "Amina", BadgeName: " "})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Contains(t, appErr.Fields, "badge_name")
	assert.Contains(t, appErr.Fields, "date_awarded")
}

func TestFileSafe(t *testing.T) {
	assert.Equal(t, "a-b-c", fileSafe(`a/b\c`))
}
