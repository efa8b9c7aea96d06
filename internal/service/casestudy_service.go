package service

import (
	"bytes"
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Spyyy004/designbuddy/internal/completion"
	"github.com/Spyyy004/designbuddy/internal/domain"
	"github.com/Spyyy004/designbuddy/internal/prompt"
	"github.com/Spyyy004/designbuddy/internal/repository"
	"github.com/Spyyy004/designbuddy/pkg/utils"
)

// CaseStudyService drives one generation request end to end: store every
// image, compose the prompt, run the completion. All-or-nothing: a case study
// is never produced unless every image was stored first.
type CaseStudyService interface {
	Generate(ctx context.Context, req *domain.UploadRequest) (*domain.CaseStudyResult, error)
}

type caseStudyService struct {
	blobs  repository.BlobRepository
	client completion.Client
	log    *zap.Logger
}

func NewCaseStudyService(blobs repository.BlobRepository, client completion.Client, log *zap.Logger) CaseStudyService {
	return &caseStudyService{
		blobs:  blobs,
		client: client,
		log:    log,
	}
}

func (s *caseStudyService) Generate(ctx context.Context, req *domain.UploadRequest) (*domain.CaseStudyResult, error) {
	if len(req.Files) == 0 {
		return nil, domain.ErrNoFiles
	}

	urls, err := s.storeAll(ctx, req.Files)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}

	s.log.Info("Images uploaded", zap.Strings("urls", urls))

	messages := prompt.Compose(req.ThoughtProcess, req.ResultAchieved, urls)

	text, err := s.client.Complete(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCompletion, err)
	}

	return &domain.CaseStudyResult{
		ImageURLs:     urls,
		CaseStudyText: text,
	}, nil
}

// storeAll uploads every file concurrently and waits for the whole batch.
// Slots are index-stable so the returned URLs match upload order; the first
// failure cancels the remaining uploads and fails the phase.
func (s *caseStudyService) storeAll(ctx context.Context, files []domain.UploadedFile) ([]string, error) {
	urls := make([]string, len(files))

	g, ctx := errgroup.WithContext(ctx)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			key := utils.StorageKey(file.OriginalName)

			url, err := s.blobs.Store(ctx, key, bytes.NewReader(file.Data), file.Size, file.ContentType)
			if err != nil {
				return fmt.Errorf("store %s: %w", file.OriginalName, err)
			}
			urls[i] = url
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}
