package wire

import (
	"Gloom/internal/api"
	"Gloom/internal/api/config"
	"Gloom/internal/api/handler"
	"Gloom/internal/job"
	"Gloom/internal/pkg/cron"
	"Gloom/internal/pkg/minio"
	"Gloom/internal/repository"
	"Gloom/internal/service"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRecordRepo(db)
	videoRepo := repository.NewVideoRecordRepo(db)
	blobRepo := repository.NewBlobRepo(minio.Client)

	userService := service.NewUserService(userRepo, videoRepo, blobRepo, minio.AvatarBucket)
	videoService := service.NewVideoService(videoRepo)
	publicationService := service.NewPublicationService(videoRepo, blobRepo, minio.VideoBucket)
	followService := service.NewFollowService(userRepo)

	handlers := &api.HandlersGroup{
		UserHandler:   handler.NewUserHandler(userService),
		VideoHandler:  handler.NewVideoHandler(publicationService, videoService),
		FollowHandler: handler.NewFollowHandler(followService),
	}

	router := api.SetupRouter(handlers)

	grace := time.Duration(cfg.Sweep.GraceMinutes) * time.Minute
	sweepJob := job.NewBlobSweepJob(videoRepo, blobRepo, minio.VideoBucket, grace)
	cronMgr := cron.NewCronManager(sweepJob)

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}, nil
}
