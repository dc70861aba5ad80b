package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/idealmente/idealmente/internal/model"
	"github.com/idealmente/idealmente/internal/repository"
)

type ReportUsecase struct {
	store repository.Store
}

func NewReportUsecase(store repository.Store) *ReportUsecase {
	return &ReportUsecase{store: store}
}

// List returns all reports, newest upload first.
func (uc *ReportUsecase) List(ctx context.Context) []model.Report {
	docs := uc.store.LoadAll(ctx, repository.Reports)
	reports := make([]model.Report, 0, len(docs))
	for _, d := range docs {
		var r model.Report
		if err := json.Unmarshal(d.Data, &r); err != nil {
			log.Printf("reports: skipping malformed record %s: %v", d.ID, err)
			continue
		}
		reports = append(reports, r)
	}
	return reports
}

func (uc *ReportUsecase) Get(ctx context.Context, id string) (*model.Report, error) {
	for _, r := range uc.List(ctx) {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, ErrNotFound
}

// Upload stores a whole file payload as one record. Content arrives
// already encoded for storage, so the record is self-contained.
func (uc *ReportUsecase) Upload(ctx context.Context, name, mime, content, uploadedBy string, size int64) (*model.Report, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: file name is required", ErrValidation)
	}
	report := model.Report{
		ID:         uuid.NewString(),
		Name:       name,
		Size:       size,
		Type:       mime,
		Content:    content,
		UploadedBy: uploadedBy,
		UploadedAt: time.Now().UnixMilli(),
	}
	data, err := json.Marshal(report)
	if err != nil {
		return nil, err
	}
	uc.store.Save(ctx, repository.Reports, report.ID, data)
	return &report, nil
}

// Delete removes a report. Only the uploader may delete it; like
// comment deletion the policy is enforced here, not by the store.
func (uc *ReportUsecase) Delete(ctx context.Context, id, requestedBy string) error {
	report, err := uc.Get(ctx, id)
	if err != nil {
		return err
	}
	if report.UploadedBy != requestedBy {
		return fmt.Errorf("%w: only the uploader can delete a report", ErrForbidden)
	}
	uc.store.Delete(ctx, repository.Reports, id)
	return nil
}
