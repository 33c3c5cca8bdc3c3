package initializers

import (
	"context"
	"time"

	"employee-portal-backend/config"
	"employee-portal-backend/fiberlog"
	approvalhandler "employee-portal-backend/lib/approval"
	"employee-portal-backend/lib/eligibility"
	emailverify "employee-portal-backend/lib/email-verify"
	cleanupworker "employee-portal-backend/lib/email-verify/cleanup-worker"
	exceptionrequesthandler "employee-portal-backend/lib/exception-request"
	xlsexport "employee-portal-backend/lib/export/xls"
	filestorage "employee-portal-backend/lib/file-storage"
	jobapplicationhandler "employee-portal-backend/lib/job-application"
	portalauthhandler "employee-portal-backend/lib/portal-auth"
	portalusershandler "employee-portal-backend/lib/portal-users"
	resignationhandler "employee-portal-backend/lib/resignation"
	connectionhub "employee-portal-backend/lib/ws/hub/connection-hub"
	s3client "employee-portal-backend/s3"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3()
	InitSmtp()
	connectionhub.Init()
	filestorage.NewHandler(s3client.Client)
	xlsexport.NewHandler()
	emailverify.NewHandler(config.Conf.Smtp.EmailFrom,
		time.Second*time.Duration(config.Conf.VerifyCode.TTLInSec),
		*config.Conf.VerifyCode.RateLimit, config.Conf.VerifyCode.RateLimitBurst)
	portalauthhandler.NewHandler()
	portalusershandler.NewHandler(*config.Conf.Users.RoleConflictPrompt)
	approvalhandler.NewHandler()

	windows := eligibility.Windows{
		ReapplyWindow:     time.Hour * 24 * time.Duration(config.Conf.Eligibility.ReapplyWindowInDays),
		ExceptionCooldown: time.Hour * time.Duration(config.Conf.Eligibility.ExceptionCooldownInHours),
	}
	jobapplicationhandler.NewHandler(config.Conf.Smtp.EmailFrom, windows)
	exceptionrequesthandler.NewHandler(windows)
	resignationhandler.NewHandler(windows)

	go initWorkers(ctx)
}

func initWorkers(ctx context.Context) {
	// expired verification codes cleanup
	cleanupworker.StartWorker(ctx)
}
