package service

import (
	"strings"

	"github.com/fquiz/fquiz/internal/access"
	"github.com/fquiz/fquiz/internal/apperr"
	"github.com/fquiz/fquiz/internal/dto"
	"github.com/fquiz/fquiz/internal/model"
	"github.com/fquiz/fquiz/internal/repository"
	"github.com/rs/zerolog/log"
)

type UploadService interface {
	CreateUpload(ident access.Identity, req dto.CreateUploadRequest) (*dto.UploadResponse, error)
}

type uploadService struct {
	uploadRepo repository.UploadRepository
}

func NewUploadService(uploadRepo repository.UploadRepository) UploadService {
	return &uploadService{uploadRepo: uploadRepo}
}

// CreateUpload stores pre-extracted text for later use as generation input.
// Parsing of binary formats happens client side; this accepts text only.
func (s *uploadService) CreateUpload(ident access.Identity, req dto.CreateUploadRequest) (*dto.UploadResponse, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, apperr.Validation("text must not be empty")
	}
	upload := model.Upload{
		Filename:   req.Filename,
		ParsedText: req.Text,
	}
	if ident.UserID != "" {
		uid := ident.UserID
		upload.CreatedBy = &uid
	}
	if err := s.uploadRepo.Create(&upload); err != nil {
		log.Error().Err(err).Msg("Failed to store upload")
		return nil, err
	}
	return &dto.UploadResponse{ID: upload.ID, Filename: upload.Filename}, nil
}
