package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"tradewise/internal/models/db_models"
	"tradewise/internal/models/response_models"
	"tradewise/internal/repositories"
	"tradewise/pkg/utils"
)

const downloadLinkTTL = 15 * time.Minute

type DownloadServiceInterface interface {
	ListFiles(ctx context.Context) ([]response_models.DownloadFileResponse, error)
	IssueLink(ctx context.Context, userID string, fileID string) (*response_models.DownloadLinkResponse, error)
	ResolveLink(ctx context.Context, fileID string, expires int64, sig string) (*db_models.DownloadFile, error)
}

type DownloadService struct {
	downloadRepo repositories.IDownloadRepository
	subRepo      repositories.ISubscriptionRepository
	planRepo     repositories.IPlanRepository
	baseURL      string
	linkSecret   []byte
}

func NewDownloadService(
	downloadRepo repositories.IDownloadRepository,
	subRepo repositories.ISubscriptionRepository,
	planRepo repositories.IPlanRepository,
	baseURL string,
	linkSecret string,
) DownloadServiceInterface {
	if linkSecret == "" {
		log.Println("download link secret is empty, issued links will not survive a restart")
		linkSecret = uuid.NewString()
	}
	return &DownloadService{
		downloadRepo: downloadRepo,
		subRepo:      subRepo,
		planRepo:     planRepo,
		baseURL:      baseURL,
		linkSecret:   []byte(linkSecret),
	}
}

func (d *DownloadService) ListFiles(ctx context.Context) ([]response_models.DownloadFileResponse, error) {
	files, err := d.downloadRepo.ListFiles(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	result := make([]response_models.DownloadFileResponse, 0, len(files))
	for _, f := range files {
		result = append(result, response_models.DownloadFileResponse{
			ID:          f.ID,
			Name:        f.Name,
			Description: f.Description,
			SizeBytes:   f.SizeBytes,
			IsPremium:   f.IsPremium,
		})
	}

	return result, nil
}

// IssueLink hands out a short-lived signed URL for a file, counted against
// the plan's per-period quota. Free files skip the subscription check.
func (d *DownloadService) IssueLink(ctx context.Context, userID string, fileID string) (*response_models.DownloadLinkResponse, error) {
	if _, err := uuid.Parse(fileID); err != nil {
		return nil, utils.ErrContentNotFound
	}

	file, err := d.downloadRepo.GetFileById(ctx, fileID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if file == nil || !file.IsPublished {
		return nil, utils.ErrContentNotFound
	}

	if file.IsPremium {
		if err := d.checkQuota(ctx, userID); err != nil {
			return nil, err
		}
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.ErrUnauthorized
	}

	entry := &db_models.DownloadLog{
		UserID: uid,
		FileID: file.ID,
	}
	if err := d.downloadRepo.InsertLog(ctx, entry); err != nil {
		return nil, utils.ErrDatabaseError
	}

	expires := time.Now().Add(downloadLinkTTL).Unix()
	return &response_models.DownloadLinkResponse{
		URL:       d.signURL(file.ID.String(), expires),
		ExpiresAt: expires,
	}, nil
}

func (d *DownloadService) checkQuota(ctx context.Context, userID string) error {
	sub, err := d.subRepo.GetActiveByUser(ctx, userID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if sub == nil {
		return utils.ErrSubscriptionRequired
	}

	plan, err := d.planRepo.GetPlanById(ctx, sub.PlanID.String())
	if err != nil {
		return utils.ErrDatabaseError
	}
	if plan == nil || plan.DownloadQuota <= 0 {
		// No quota configured means unlimited for the plan.
		return nil
	}

	// Lifetime subscriptions have no period boundary, count a rolling
	// 30-day window instead.
	since := sub.StartsAt
	if sub.EndsAt == nil {
		since = time.Now().AddDate(0, 0, -30).Unix()
	}

	used, err := d.downloadRepo.CountLogsSince(ctx, userID, since)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if used >= int64(plan.DownloadQuota) {
		return utils.ErrQuotaExceeded
	}

	return nil
}

func (d *DownloadService) signURL(fileID string, expires int64) string {
	mac := hmac.New(sha256.New, d.linkSecret)
	fmt.Fprintf(mac, "%s:%d", fileID, expires)
	sig := hex.EncodeToString(mac.Sum(nil))
	return fmt.Sprintf("%s/downloads/%s/fetch?expires=%d&sig=%s", d.baseURL, fileID, expires, sig)
}

// ResolveLink checks the signature and expiry produced by signURL and returns
// the file record. Used by the fetch handler before streaming the object.
func (d *DownloadService) ResolveLink(ctx context.Context, fileID string, expires int64, sig string) (*db_models.DownloadFile, error) {
	if _, err := uuid.Parse(fileID); err != nil {
		return nil, utils.ErrContentNotFound
	}
	if time.Now().Unix() > expires {
		return nil, utils.ErrUnauthorized
	}
	mac := hmac.New(sha256.New, d.linkSecret)
	fmt.Fprintf(mac, "%s:%d", fileID, expires)
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(sig)) {
		return nil, utils.ErrUnauthorized
	}

	file, err := d.downloadRepo.GetFileById(ctx, fileID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if file == nil {
		return nil, utils.ErrContentNotFound
	}
	return file, nil
}
