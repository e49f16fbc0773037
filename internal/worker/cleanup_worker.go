package worker

import (
	"context"
	"time"

	cleanupsvc "vidtube/internal/api/cleanup/service"
	"vidtube/internal/logger"
)

// CleanupWorker xử lý cleanup_tasks: các file media còn sót trên storage và các
// tham chiếu còn sót sau khi xóa document. Chạy định kỳ (mặc định 5 phút),
// mỗi lần xử lý tối đa batchSize task.
type CleanupWorker struct {
	cleanupService *cleanupsvc.CleanupService
	interval       time.Duration // Khoảng thời gian giữa các lần chạy
	batchSize      int64         // Số task tối đa mỗi lần (vd: 50)
}

// NewCleanupWorker tạo mới CleanupWorker.
// Tham số:
//   - interval: Khoảng thời gian giữa các lần chạy (mặc định: 5 phút)
//   - batchSize: Số task tối đa mỗi lần (mặc định: 50)
func NewCleanupWorker(interval time.Duration, batchSize int64) (*CleanupWorker, error) {
	cleanupService, err := cleanupsvc.NewCleanupService()
	if err != nil {
		return nil, err
	}
	if interval < time.Minute {
		interval = 5 * time.Minute
	}
	if batchSize <= 0 {
		batchSize = 50
	}
	return &CleanupWorker{
		cleanupService: cleanupService,
		interval:       interval,
		batchSize:      batchSize,
	}, nil
}

// Start chạy worker trong vòng lặp: mỗi interval đọc batch task đã tới hạn và
// xử lý từng task. Panic trong một chu kỳ được recover, chu kỳ sau chạy tiếp.
func (w *CleanupWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval":  w.interval.String(),
		"batchSize": w.batchSize,
	}).Info("🧹 [CLEANUP] Starting Cleanup Worker...")

	for {
		select {
		case <-ctx.Done():
			log.Info("🧹 [CLEANUP] Cleanup Worker stopped")
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.WithFields(map[string]interface{}{
							"panic": r,
						}).Error("🧹 [CLEANUP] Panic khi xử lý cleanup tasks, sẽ tiếp tục ở lần chạy tiếp theo")
					}
				}()

				processed, err := w.cleanupService.ProcessDue(ctx, w.batchSize)
				if err != nil {
					log.WithError(err).Error("🧹 [CLEANUP] Lỗi xử lý batch cleanup tasks")
					return
				}
				if processed > 0 {
					log.WithFields(map[string]interface{}{
						"processed": processed,
					}).Info("🧹 [CLEANUP] Đã xử lý batch cleanup tasks")
				}
			}()
		}
	}
}
