package cleanupworker

import (
	"context"
	"time"

	emailverify "employee-portal-backend/lib/email-verify"
	baseworker "employee-portal-backend/lib/utils/base-worker"
)

const (
	firstRunDelay = 1 * time.Minute
	runInterval   = 10 * time.Minute
)

type workerImpl struct {
	*baseworker.BaseImpl
}

// StartWorker drops expired verification codes so stale rows do not pile up.
func StartWorker(ctx context.Context) {
	worker := workerImpl{
		BaseImpl: baseworker.NewInstance("email_verify_cleanup", firstRunDelay, runInterval),
	}
	go worker.Run(ctx, worker.job)
}

func (i workerImpl) job(ctx context.Context) {
	deleted, err := emailverify.Instance.DeleteExpired(time.Now())
	if err != nil {
		i.GetLogger().WithError(err).Error("expired verification code cleanup failed")
		return
	}
	if deleted > 0 {
		i.GetLogger().WithField("deleted", deleted).Info("expired verification codes removed")
	}
}
