package usecase

import (
	"context"
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/smartkart/kiosk/internal/domain"
	"go.uber.org/zap"
)

// RegionScan is the notice area under the scan form
const RegionScan = "scan"

// DefaultNoticeTTL is how long a notice stays on screen
const DefaultNoticeTTL = 5 * time.Second

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// NoticeBoard stores transient notices per screen region. A new notice
// replaces the previous one together with its expiry.
type NoticeBoard struct {
	store domain.CacheRepository
	ttl   time.Duration
	now   func() time.Time
}

// NewNoticeBoard creates a notice board over a TTL store
func NewNoticeBoard(store domain.CacheRepository, ttl time.Duration) *NoticeBoard {
	if ttl <= 0 {
		ttl = DefaultNoticeTTL
	}
	return &NoticeBoard{store: store, ttl: ttl, now: time.Now}
}

func noticeKey(region string) string {
	return "notice:" + region
}

// Post shows message in region for the board's TTL
func (b *NoticeBoard) Post(ctx context.Context, region string, level domain.Level, message string) error {
	notice := domain.Notice{
		Level:     level,
		Message:   message,
		ExpiresAt: b.now().Add(b.ttl),
	}

	data, err := json.Marshal(notice)
	if err != nil {
		return err
	}
	if err := b.store.Set(ctx, noticeKey(region), data, b.ttl); err != nil {
		zap.L().Error("failed to store notice", zap.String("region", region), zap.Error(err))
		return err
	}
	return nil
}

// Current returns the live notice of region, or nil once it has expired
func (b *NoticeBoard) Current(ctx context.Context, region string) *domain.Notice {
	data, err := b.store.Get(ctx, noticeKey(region))
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			zap.L().Error("failed to read notice", zap.String("region", region), zap.Error(err))
		}
		return nil
	}

	var notice domain.Notice
	if err := json.Unmarshal(data, &notice); err != nil {
		zap.L().Error("failed to decode notice", zap.String("region", region), zap.Error(err))
		return nil
	}
	return &notice
}

// Dismiss removes the notice of region immediately
func (b *NoticeBoard) Dismiss(ctx context.Context, region string) error {
	return b.store.Delete(ctx, noticeKey(region))
}
